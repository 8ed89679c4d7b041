// Package render holds the backend-neutral parts of the hello triangle
// bring-up: adapter selection, queue family resolution, swapchain
// negotiation and per-frame synchronization. The Vulkan bindings for these
// ports live in render/vkng.
package render

import (
	"fmt"

	"github.com/google/uuid"
)

// QueueFlags mirrors VkQueueFlags.
type QueueFlags uint32

const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

func (f QueueFlags) String() string {
	if f == 0 {
		return "None"
	}
	var s string
	for _, n := range []struct {
		flag QueueFlags
		name string
	}{
		{QueueGraphics, "Graphics"},
		{QueueCompute, "Compute"},
		{QueueTransfer, "Transfer"},
		{QueueSparseBinding, "SparseBinding"},
	} {
		if f&n.flag != 0 {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	return s
}

// Format mirrors the VkFormat values this module cares about.
type Format int32

const (
	FormatUndefined     Format = 0
	FormatR8G8B8A8UNorm Format = 37
	FormatR8G8B8A8SRGB  Format = 43
	FormatB8G8R8A8UNorm Format = 44
	FormatB8G8R8A8SRGB  Format = 50
)

// ColorSpace mirrors VkColorSpaceKHR.
type ColorSpace int32

const (
	ColorSpaceSRGBNonlinear      ColorSpace = 0
	ColorSpaceDisplayP3Nonlinear ColorSpace = 1000104001
	ColorSpaceExtendedSRGBLinear ColorSpace = 1000104002
)

type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

// PresentMode mirrors VkPresentModeKHR.
type PresentMode int32

const (
	PresentModeImmediate   PresentMode = 0
	PresentModeMailbox     PresentMode = 1
	PresentModeFIFO        PresentMode = 2
	PresentModeFIFORelaxed PresentMode = 3
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeImmediate:
		return "Immediate"
	case PresentModeMailbox:
		return "Mailbox"
	case PresentModeFIFO:
		return "FIFO"
	case PresentModeFIFORelaxed:
		return "FIFORelaxed"
	}
	return fmt.Sprintf("PresentMode(%d)", int32(m))
}

// SpecialExtent is the currentExtent width a surface reports when the
// swapchain extent is left to the application.
const SpecialExtent = ^uint32(0)

type Extent struct {
	Width  uint32
	Height uint32
}

type SurfaceCapabilities struct {
	MinImageCount uint32
	// MaxImageCount of zero means there is no upper bound.
	MaxImageCount uint32

	CurrentExtent  Extent
	MinImageExtent Extent
	MaxImageExtent Extent

	CurrentTransform uint32
}

// SwapchainSupport is a snapshot of what a surface offers on one adapter.
type SwapchainSupport struct {
	Capabilities SurfaceCapabilities
	Formats      []SurfaceFormat
	PresentModes []PresentMode
}

// Adequate reports whether a swapchain can be built at all.
func (s SwapchainSupport) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

type AdapterType int

const (
	AdapterOther AdapterType = iota
	AdapterIntegratedGPU
	AdapterDiscreteGPU
	AdapterVirtualGPU
	AdapterCPU
)

func (t AdapterType) String() string {
	switch t {
	case AdapterIntegratedGPU:
		return "integrated"
	case AdapterDiscreteGPU:
		return "discrete"
	case AdapterVirtualGPU:
		return "virtual"
	case AdapterCPU:
		return "cpu"
	}
	return "other"
}

type AdapterInfo struct {
	Name              string
	Type              AdapterType
	VendorID          uint32
	DeviceID          uint32
	APIVersion        string
	PipelineCacheUUID uuid.UUID
}

func (i AdapterInfo) String() string {
	return fmt.Sprintf("%s (%s, vendor 0x%04x, device 0x%04x, api %s, cache %s)",
		i.Name, i.Type, i.VendorID, i.DeviceID, i.APIVersion, i.PipelineCacheUUID)
}

type QueueFamily struct {
	Flags      QueueFlags
	QueueCount int
}

// Surface is a presentation target owned by the backend.
type Surface interface {
	Destroy()
}

// Adapter is a physical device. Adapters are never mutated; every method is
// a read against the backend.
type Adapter interface {
	Info() AdapterInfo
	QueueFamilies() []QueueFamily
	Extensions() (map[string]struct{}, error)
	PresentSupport(surface Surface, family int) (bool, error)
	SwapchainSupport(surface Surface) (SwapchainSupport, error)
}

// Instance enumerates adapters.
type Instance interface {
	Adapters() ([]Adapter, error)
}
