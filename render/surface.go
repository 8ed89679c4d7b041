package render

import (
	"github.com/cockroachdb/errors"
)

type SharingMode int

const (
	SharingExclusive SharingMode = iota
	SharingConcurrent
)

func (m SharingMode) String() string {
	if m == SharingConcurrent {
		return "concurrent"
	}
	return "exclusive"
}

// SwapConfiguration is everything needed to create a swapchain.
type SwapConfiguration struct {
	Format      SurfaceFormat
	PresentMode PresentMode
	Extent      Extent
	ImageCount  uint32
	Transform   uint32

	SharingMode SharingMode
	// QueueFamilyIndices is only filled for concurrent sharing.
	QueueFamilyIndices []int
}

// ChooseSurfaceFormat prefers B8G8R8A8 sRGB with an sRGB nonlinear color
// space and otherwise takes the first format offered.
func ChooseSurfaceFormat(available []SurfaceFormat) (SurfaceFormat, error) {
	if len(available) == 0 {
		return SurfaceFormat{}, errors.Mark(errors.New("no surface formats"), ErrSwapchainInadequate)
	}

	for _, format := range available {
		if format.Format == FormatB8G8R8A8SRGB && format.ColorSpace == ColorSpaceSRGBNonlinear {
			return format, nil
		}
	}

	return available[0], nil
}

// ChoosePresentMode prefers mailbox and falls back to FIFO, which every
// implementation has to support.
func ChoosePresentMode(available []PresentMode) PresentMode {
	for _, mode := range available {
		if mode == PresentModeMailbox {
			return mode
		}
	}

	return PresentModeFIFO
}

// ChooseExtent uses the surface's current extent unless the surface leaves
// it to the application, in which case requested is clamped into the
// supported range.
func ChooseExtent(caps SurfaceCapabilities, requested Extent) Extent {
	if caps.CurrentExtent.Width != SpecialExtent {
		return caps.CurrentExtent
	}

	return Extent{
		Width:  clamp(requested.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(requested.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

func clamp(v, lo, hi uint32) uint32 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// ChooseImageCount asks for one image more than the minimum, capped at the
// maximum when there is one.
func ChooseImageCount(caps SurfaceCapabilities) uint32 {
	imageCount := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && caps.MaxImageCount < imageCount {
		imageCount = caps.MaxImageCount
	}
	return imageCount
}

// ChooseSharing uses exclusive ownership when graphics and presentation share
// a queue family, and concurrent sharing across both families otherwise.
func ChooseSharing(indices QueueFamilyIndices) (SharingMode, []int, error) {
	graphics, present, err := indices.Require()
	if err != nil {
		return SharingExclusive, nil, err
	}

	if graphics == present {
		return SharingExclusive, nil, nil
	}
	return SharingConcurrent, []int{graphics, present}, nil
}

// Negotiate derives the swap configuration from a support snapshot.
func Negotiate(support SwapchainSupport, indices QueueFamilyIndices, requested Extent) (SwapConfiguration, error) {
	var config SwapConfiguration

	if len(support.PresentModes) == 0 {
		return config, errors.Mark(errors.New("no present modes"), ErrSwapchainInadequate)
	}

	format, err := ChooseSurfaceFormat(support.Formats)
	if err != nil {
		return config, err
	}

	sharing, families, err := ChooseSharing(indices)
	if err != nil {
		return config, err
	}

	config = SwapConfiguration{
		Format:             format,
		PresentMode:        ChoosePresentMode(support.PresentModes),
		Extent:             ChooseExtent(support.Capabilities, requested),
		ImageCount:         ChooseImageCount(support.Capabilities),
		Transform:          support.Capabilities.CurrentTransform,
		SharingMode:        sharing,
		QueueFamilyIndices: families,
	}
	return config, nil
}
