package render

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
)

// Semaphore and Fence are backend handles. A nil Fence means "no fence".
type (
	Semaphore interface{}
	Fence     interface{}
)

// FrameDevice is the slice of the device the frame controller drives. All
// waits are unbounded.
type FrameDevice interface {
	CreateSemaphore() (Semaphore, error)
	CreateFence(signaled bool) (Fence, error)
	DestroySemaphore(semaphore Semaphore)
	DestroyFence(fence Fence)

	WaitForFence(fence Fence) error
	FenceSignaled(fence Fence) (bool, error)
	ResetFence(fence Fence) error

	// AcquireNextImage returns the index of the next presentable image and
	// signals the semaphore once the image is ready to be written.
	AcquireNextImage(signal Semaphore) (int, error)
	// Submit queues the command buffer recorded for image. The GPU waits on
	// wait at the color attachment output stage, and signals both signal
	// and fence when done.
	Submit(image int, wait, signal Semaphore, fence Fence) error
	Present(image int, wait Semaphore) error

	WaitIdle() error
}

type frameSlot struct {
	imageAvailable Semaphore
	renderFinished Semaphore
	inFlight       Fence
}

type FrameStats struct {
	Frames     int
	CrossWaits int
	// WaitTime is the time spent blocked on fences.
	WaitTime time.Duration
}

// FrameController paces frame submission over a fixed ring of frame slots.
// It is not safe for concurrent use; the render loop is its only caller.
type FrameController struct {
	device FrameDevice
	logger *slog.Logger

	slots          []frameSlot
	imagesInFlight []Fence
	currentFrame   int

	releases ReleaseList
	idle     bool

	stats FrameStats
}

// NewFrameController creates the synchronization primitives for
// maxFramesInFlight slots over a swapchain of imageCount images. If any
// creation fails, the primitives created before it are destroyed.
func NewFrameController(device FrameDevice, imageCount, maxFramesInFlight int, logger *slog.Logger) (*FrameController, error) {
	if maxFramesInFlight < 1 {
		return nil, errors.Mark(errors.Newf("max frames in flight must be positive, got %d", maxFramesInFlight), ErrInvalidConfig)
	}
	if imageCount < 1 {
		return nil, errors.Mark(errors.Newf("swapchain has %d images", imageCount), ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &FrameController{
		device:         device,
		logger:         logger,
		slots:          make([]frameSlot, maxFramesInFlight),
		imagesInFlight: make([]Fence, imageCount),
	}

	for i := range c.slots {
		slot := &c.slots[i]
		var err error

		slot.imageAvailable, err = c.createSemaphore(fmt.Sprintf("image available semaphore %d", i))
		if err == nil {
			slot.renderFinished, err = c.createSemaphore(fmt.Sprintf("render finished semaphore %d", i))
		}
		if err == nil {
			slot.inFlight, err = c.createFence(fmt.Sprintf("in flight fence %d", i))
		}
		if err != nil {
			c.releases.Release()
			return nil, err
		}
	}

	return c, nil
}

func (c *FrameController) createSemaphore(name string) (Semaphore, error) {
	semaphore, err := c.device.CreateSemaphore()
	if err != nil {
		return nil, CreationFailed(name, err)
	}
	c.releases.Push(name, func() { c.device.DestroySemaphore(semaphore) })
	return semaphore, nil
}

func (c *FrameController) createFence(name string) (Fence, error) {
	// Created signaled so the first wait on each slot returns at once.
	fence, err := c.device.CreateFence(true)
	if err != nil {
		return nil, CreationFailed(name, err)
	}
	c.releases.Push(name, func() { c.device.DestroyFence(fence) })
	return fence, nil
}

func (c *FrameController) CurrentFrame() int { return c.currentFrame }

func (c *FrameController) Stats() FrameStats { return c.stats }

func (c *FrameController) wait(fence Fence) error {
	start := hrtime.Now()
	err := c.device.WaitForFence(fence)
	c.stats.WaitTime += hrtime.Since(start)
	return err
}

// DrawFrame renders and presents one frame using the current slot.
func (c *FrameController) DrawFrame() error {
	if c.idle {
		return errors.New("draw after shutdown")
	}
	slot := c.slots[c.currentFrame]

	if err := c.wait(slot.inFlight); err != nil {
		return errors.Wrapf(err, "wait for frame slot %d", c.currentFrame)
	}

	imageIndex, err := c.device.AcquireNextImage(slot.imageAvailable)
	if err != nil {
		return errors.Wrap(err, "acquire swapchain image")
	}
	if imageIndex < 0 || imageIndex >= len(c.imagesInFlight) {
		return errors.AssertionFailedf("acquired image %d outside swapchain of %d images", imageIndex, len(c.imagesInFlight))
	}

	// Another slot may still be rendering into this image.
	if previous := c.imagesInFlight[imageIndex]; previous != nil {
		signaled, err := c.device.FenceSignaled(previous)
		if err != nil {
			return errors.Wrapf(err, "query fence for image %d", imageIndex)
		}
		if !signaled {
			c.stats.CrossWaits++
			c.logger.Debug("image still in flight", slog.Int("image", imageIndex), slog.Int("slot", c.currentFrame))
			if err := c.wait(previous); err != nil {
				return errors.Wrapf(err, "wait for image %d", imageIndex)
			}
		}
	}
	c.imagesInFlight[imageIndex] = slot.inFlight

	if err := c.device.ResetFence(slot.inFlight); err != nil {
		return errors.Wrapf(err, "reset fence for frame slot %d", c.currentFrame)
	}

	err = c.device.Submit(imageIndex, slot.imageAvailable, slot.renderFinished, slot.inFlight)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "submit image %d", imageIndex), ErrSubmitFailed)
	}

	// Out of date and suboptimal results are not acted on; the swapchain is
	// never recreated.
	if err := c.device.Present(imageIndex, slot.renderFinished); err != nil {
		return errors.Wrapf(err, "present image %d", imageIndex)
	}

	c.stats.Frames++
	c.currentFrame = (c.currentFrame + 1) % len(c.slots)
	return nil
}

// Shutdown waits for the device to go idle and then destroys every
// primitive. If the idle wait fails nothing is destroyed.
func (c *FrameController) Shutdown() error {
	if c.releases.Len() == 0 {
		return nil
	}

	if err := c.device.WaitIdle(); err != nil {
		return errors.Wrap(err, "wait for device idle")
	}
	c.idle = true

	c.logger.Info("frame controller shut down",
		slog.Int("frames", c.stats.Frames),
		slog.Int("crossWaits", c.stats.CrossWaits),
		slog.Duration("fenceWait", c.stats.WaitTime))
	c.destroy()
	return nil
}

func (c *FrameController) destroy() {
	if !c.idle {
		panic("render: destroying frame synchronization primitives while the device may still use them")
	}
	c.releases.Release()
	for i := range c.imagesInFlight {
		c.imagesInFlight[i] = nil
	}
}
