package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	"github.com/vkngwrapper/hellotriangle/render"
)

// frameDevice drives the frame controller with the context's device,
// swapchain and recorded command buffers.
type frameDevice struct {
	ctx *Context
}

var _ render.FrameDevice = (*frameDevice)(nil)

func asSemaphore(semaphore render.Semaphore) core1_0.Semaphore {
	s, ok := semaphore.(core1_0.Semaphore)
	if !ok {
		panic(errors.AssertionFailedf("semaphore %T was not created by this backend", semaphore))
	}
	return s
}

func asFence(fence render.Fence) core1_0.Fence {
	f, ok := fence.(core1_0.Fence)
	if !ok {
		panic(errors.AssertionFailedf("fence %T was not created by this backend", fence))
	}
	return f
}

func (d *frameDevice) CreateSemaphore() (render.Semaphore, error) {
	semaphore, _, err := d.ctx.deviceDriver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return nil, err
	}
	return semaphore, nil
}

func (d *frameDevice) CreateFence(signaled bool) (render.Fence, error) {
	var options core1_0.FenceCreateInfo
	if signaled {
		options.Flags = core1_0.FenceCreateSignaled
	}

	fence, _, err := d.ctx.deviceDriver.CreateFence(nil, options)
	if err != nil {
		return nil, err
	}
	return fence, nil
}

func (d *frameDevice) DestroySemaphore(semaphore render.Semaphore) {
	d.ctx.deviceDriver.DestroySemaphore(asSemaphore(semaphore), nil)
}

func (d *frameDevice) DestroyFence(fence render.Fence) {
	d.ctx.deviceDriver.DestroyFence(asFence(fence), nil)
}

func (d *frameDevice) WaitForFence(fence render.Fence) error {
	_, err := d.ctx.deviceDriver.WaitForFences(true, common.NoTimeout, asFence(fence))
	return err
}

// FenceSignaled polls the fence with a zero timeout.
func (d *frameDevice) FenceSignaled(fence render.Fence) (bool, error) {
	res, err := d.ctx.deviceDriver.WaitForFences(true, 0, asFence(fence))
	if err != nil {
		return false, err
	}
	return res != core1_0.VKTimeout, nil
}

func (d *frameDevice) ResetFence(fence render.Fence) error {
	_, err := d.ctx.deviceDriver.ResetFences(asFence(fence))
	return err
}

func (d *frameDevice) AcquireNextImage(signal render.Semaphore) (int, error) {
	semaphore := asSemaphore(signal)
	imageIndex, _, err := d.ctx.swapchainExtension.AcquireNextImage(d.ctx.swapchain, common.NoTimeout, &semaphore, nil)
	return imageIndex, err
}

func (d *frameDevice) Submit(image int, wait, signal render.Semaphore, fence render.Fence) error {
	inFlight := asFence(fence)
	_, err := d.ctx.deviceDriver.QueueSubmit(d.ctx.graphicsQueue, &inFlight,
		core1_0.SubmitInfo{
			WaitSemaphores:   []core1_0.Semaphore{asSemaphore(wait)},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []core1_0.CommandBuffer{d.ctx.commandBuffers[image]},
			SignalSemaphores: []core1_0.Semaphore{asSemaphore(signal)},
		},
	)
	return err
}

// Present queues the image for presentation. Suboptimal and out-of-date
// results are not acted on since the window cannot be resized.
func (d *frameDevice) Present(image int, wait render.Semaphore) error {
	_, err := d.ctx.swapchainExtension.QueuePresent(d.ctx.presentQueue, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{asSemaphore(wait)},
		Swapchains:     []khr_swapchain.Swapchain{d.ctx.swapchain},
		ImageIndices:   []int{image},
	})
	return err
}

func (d *frameDevice) WaitIdle() error {
	_, err := d.ctx.deviceDriver.QueueWaitIdle(d.ctx.graphicsQueue)
	return err
}

// CreateSyncObjects creates the frame controller and its per-slot
// semaphores and fences.
func (c *Context) CreateSyncObjects() error {
	if len(c.commandBuffers) == 0 {
		return errors.AssertionFailedf("sync objects requested before command buffers were recorded")
	}

	frames, err := render.NewFrameController(&frameDevice{ctx: c}, len(c.swapchainImages), c.config.MaxFramesInFlight, c.logger)
	if err != nil {
		return err
	}
	c.frames = frames
	return nil
}
