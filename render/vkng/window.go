package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/hellotriangle/render"
)

// Window is a fixed-size SDL window that Vulkan can present to.
type Window struct {
	window *sdl.Window
}

func OpenWindow(config render.Config) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "init sdl")
	}

	window, err := sdl.CreateWindow(config.AppName, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(config.WindowWidth), int32(config.WindowHeight), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "create window")
	}

	return &Window{window: window}, nil
}

// RequiredExtensions lists the instance extensions SDL needs to create a
// surface for this window.
func (w *Window) RequiredExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

func (w *Window) DrawableSize() render.Extent {
	width, height := w.window.VulkanGetDrawableSize()
	return render.Extent{Width: uint32(width), Height: uint32(height)}
}

// PollEvents drains the event queue and reports whether the user asked to
// quit.
func (w *Window) PollEvents() (quit bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if isQuit(event) {
			quit = true
		}
	}
	return quit
}

// WaitForQuit blocks on the event queue until the user asks to quit. Stages
// that draw nothing use it in place of a render loop.
func (w *Window) WaitForQuit() {
	for !isQuit(sdl.WaitEvent()) {
	}
}

func isQuit(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return true
	case *sdl.KeyboardEvent:
		return e.Keysym.Sym == sdl.K_ESCAPE && e.State == sdl.PRESSED
	}
	return false
}

func (w *Window) Destroy() {
	w.window.Destroy()
	sdl.Quit()
}
