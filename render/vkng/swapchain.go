package vkng

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	"github.com/vkngwrapper/hellotriangle/render"
)

// CreateSwapchain negotiates a swap configuration against the surface and
// creates the swapchain and one image view per image.
func (c *Context) CreateSwapchain() error {
	if c.surface == nil || c.deviceDriver == nil {
		return errors.AssertionFailedf("swapchain requested before surface and device exist")
	}

	support, err := c.adapter.SwapchainSupport(c.surface)
	if err != nil {
		return errors.Wrap(err, "query swapchain support")
	}

	requested := c.window.DrawableSize()
	if requested.Width == 0 || requested.Height == 0 {
		requested = c.config.WindowExtent()
	}

	c.swapConfig, err = render.Negotiate(support, c.indices, requested)
	if err != nil {
		return err
	}

	sharingMode := core1_0.SharingModeExclusive
	if c.swapConfig.SharingMode == render.SharingConcurrent {
		sharingMode = core1_0.SharingModeConcurrent
	}

	c.swapchainExtension = khr_swapchain.CreateExtensionDriverFromCoreDriver(c.deviceDriver)
	c.swapchain, _, err = c.swapchainExtension.CreateSwapchain(nil, khr_swapchain.SwapchainCreateInfo{
		Surface: c.surface.handle,

		MinImageCount:    int(c.swapConfig.ImageCount),
		ImageFormat:      core1_0.Format(c.swapConfig.Format.Format),
		ImageColorSpace:  khr_surface.ColorSpace(c.swapConfig.Format.ColorSpace),
		ImageExtent:      toExtent2D(c.swapConfig.Extent),
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: c.swapConfig.QueueFamilyIndices,

		PreTransform:   khr_surface.SurfaceTransformFlags(c.swapConfig.Transform),
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    khr_surface.PresentMode(c.swapConfig.PresentMode),
		Clipped:        true,
	})
	if err != nil {
		return render.CreationFailed("swapchain", err)
	}
	c.releases.Push("swapchain", func() { c.swapchainExtension.DestroySwapchain(c.swapchain, nil) })

	c.logger.Info("created swapchain",
		slog.Any("format", c.swapConfig.Format.Format),
		slog.String("presentMode", c.swapConfig.PresentMode.String()),
		slog.Any("extent", c.swapConfig.Extent),
		slog.Uint64("minImages", uint64(c.swapConfig.ImageCount)),
		slog.String("sharing", c.swapConfig.SharingMode.String()))

	return c.createImageViews()
}

// createImageViews creates the views as one batch: if any fails, the ones
// already made are destroyed before returning.
func (c *Context) createImageViews() error {
	images, _, err := c.swapchainExtension.GetSwapchainImages(c.swapchain)
	if err != nil {
		return errors.Wrap(err, "get swapchain images")
	}
	c.swapchainImages = images

	batch := render.NewReleaseList(c.logger)
	var imageViews []core1_0.ImageView
	for i, image := range images {
		view, _, err := c.deviceDriver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
			Image:    image,
			ViewType: core1_0.ImageViewType2D,
			Format:   core1_0.Format(c.swapConfig.Format.Format),
			SubresourceRange: core1_0.ImageSubresourceRange{
				AspectMask:     core1_0.ImageAspectColor,
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		})
		if err != nil {
			batch.Release()
			return render.CreationFailed(fmt.Sprintf("image view %d", i), err)
		}
		batch.Push(fmt.Sprintf("image view %d", i), func() { c.deviceDriver.DestroyImageView(view, nil) })

		imageViews = append(imageViews, view)
	}

	c.releases.Adopt(batch)
	c.swapchainImageViews = imageViews
	return nil
}

// SwapConfiguration reports what was negotiated for the current swapchain.
func (c *Context) SwapConfiguration() render.SwapConfiguration { return c.swapConfig }
