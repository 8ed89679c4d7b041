package vkng

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/hellotriangle/render"
)

// CreateFramebuffers wraps every swapchain image view in a framebuffer for
// the render pass.
func (c *Context) CreateFramebuffers() error {
	extent := toExtent2D(c.swapConfig.Extent)

	for i, imageView := range c.swapchainImageViews {
		framebuffer, _, err := c.deviceDriver.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
			RenderPass: c.renderPass,
			Layers:     1,
			Attachments: []core1_0.ImageView{
				imageView,
			},
			Width:  extent.Width,
			Height: extent.Height,
		})
		if err != nil {
			return render.CreationFailed(fmt.Sprintf("framebuffer %d", i), err)
		}
		c.releases.Push(fmt.Sprintf("framebuffer %d", i), func() { c.deviceDriver.DestroyFramebuffer(framebuffer, nil) })

		c.swapchainFramebuffers = append(c.swapchainFramebuffers, framebuffer)
	}

	return nil
}

func (c *Context) CreateCommandPool() error {
	graphics, ok := c.indices.Graphics.Get()
	if !ok {
		return errors.Mark(errors.New("command pool needs a graphics family"), render.ErrQueueFamilyIncomplete)
	}

	var err error
	c.commandPool, _, err = c.deviceDriver.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		QueueFamilyIndex: graphics,
	})
	if err != nil {
		return render.CreationFailed("command pool", err)
	}
	c.releases.Push("command pool", func() { c.deviceDriver.DestroyCommandPool(c.commandPool, nil) })

	return nil
}

// CreateCommandBuffers allocates one primary command buffer per framebuffer
// and records the clear-and-draw sequence into each once.
func (c *Context) CreateCommandBuffers() error {
	buffers, _, err := c.deviceDriver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        c.commandPool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: len(c.swapchainFramebuffers),
	})
	if err != nil {
		return render.CreationFailed("command buffers", err)
	}
	c.commandBuffers = buffers
	c.releases.Push("command buffers", func() { c.deviceDriver.FreeCommandBuffers(c.commandBuffers...) })

	for bufferIdx, buffer := range buffers {
		if err := c.recordCommandBuffer(buffer, c.swapchainFramebuffers[bufferIdx]); err != nil {
			return errors.Wrapf(err, "record command buffer %d", bufferIdx)
		}
	}

	return nil
}

func (c *Context) recordCommandBuffer(buffer core1_0.CommandBuffer, framebuffer core1_0.Framebuffer) error {
	_, err := c.deviceDriver.BeginCommandBuffer(buffer, core1_0.CommandBufferBeginInfo{})
	if err != nil {
		return err
	}

	err = c.deviceDriver.CmdBeginRenderPass(buffer, core1_0.SubpassContentsInline,
		core1_0.RenderPassBeginInfo{
			RenderPass:  c.renderPass,
			Framebuffer: framebuffer,
			RenderArea: core1_0.Rect2D{
				Offset: core1_0.Offset2D{X: 0, Y: 0},
				Extent: toExtent2D(c.swapConfig.Extent),
			},
			ClearValues: []core1_0.ClearValue{
				core1_0.ClearValueFloat(c.config.ClearColor),
			},
		})
	if err != nil {
		return err
	}

	c.deviceDriver.CmdBindPipeline(buffer, core1_0.PipelineBindPointGraphics, c.graphicsPipeline)
	c.deviceDriver.CmdDraw(buffer, 3, 1, 0, 0)
	c.deviceDriver.CmdEndRenderPass(buffer)

	_, err = c.deviceDriver.EndCommandBuffer(buffer)
	return err
}
