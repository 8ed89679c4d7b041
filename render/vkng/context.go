package vkng

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	"github.com/vkngwrapper/hellotriangle/render"
)

// Context carries everything the tutorial stages build, in creation order.
// Each stage calls the setup methods it needs; Destroy releases whatever
// was created, newest first.
type Context struct {
	config   render.Config
	logger   *slog.Logger
	releases *render.ReleaseList

	window       *Window
	globalDriver core1_0.GlobalDriver

	instanceDriver core1_0.CoreInstanceDriver
	debugDriver    ext_debug_utils.ExtensionDriver
	debugMessenger ext_debug_utils.DebugUtilsMessenger
	surface        *Surface

	adapter *Adapter
	indices render.QueueFamilyIndices

	deviceDriver  core1_0.CoreDeviceDriver
	graphicsQueue core1_0.Queue
	presentQueue  core1_0.Queue

	swapchainExtension  khr_swapchain.ExtensionDriver
	swapchain           khr_swapchain.Swapchain
	swapConfig          render.SwapConfiguration
	swapchainImages     []core1_0.Image
	swapchainImageViews []core1_0.ImageView

	renderPass       core1_0.RenderPass
	pipelineLayout   core1_0.PipelineLayout
	graphicsPipeline core1_0.Pipeline

	swapchainFramebuffers []core1_0.Framebuffer
	commandPool           core1_0.CommandPool
	commandBuffers        []core1_0.CommandBuffer

	frames *render.FrameController
}

// NewContext validates config, opens the window and loads the Vulkan
// global driver through SDL.
func NewContext(config render.Config, logger *slog.Logger) (*Context, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx := &Context{
		config:   config,
		logger:   logger,
		releases: render.NewReleaseList(logger),
	}

	window, err := OpenWindow(config)
	if err != nil {
		return nil, err
	}
	ctx.window = window
	ctx.releases.Push("window", window.Destroy)

	ctx.globalDriver, err = core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		ctx.releases.Release()
		return nil, errors.Wrap(err, "load vulkan")
	}

	return ctx, nil
}

func (c *Context) Window() *Window { return c.window }

func (c *Context) Config() render.Config { return c.config }

func (c *Context) Frames() *render.FrameController { return c.frames }

// Destroy waits for the device to finish all work and then releases every
// resource. If the wait fails nothing is released.
func (c *Context) Destroy() error {
	if c.deviceDriver != nil {
		if _, err := c.deviceDriver.DeviceWaitIdle(); err != nil {
			return errors.Wrap(err, "wait for device idle")
		}
	}

	if c.frames != nil {
		if err := c.frames.Shutdown(); err != nil {
			return err
		}
		c.frames = nil
	}

	c.logger.Debug("releasing resources", slog.Any("order", c.releases.Names()))
	c.releases.Release()
	return nil
}
