package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/hellotriangle/render"
)

// Surface is a khr_surface handle together with the driver that destroys it.
type Surface struct {
	handle khr_surface.Surface
	driver khr_surface.ExtensionDriver
}

func (s *Surface) Destroy() {
	s.driver.DestroySurface(s.handle, nil)
}

func asSurface(surface render.Surface) (*Surface, error) {
	s, ok := surface.(*Surface)
	if !ok {
		return nil, errors.AssertionFailedf("surface %T was not created by this backend", surface)
	}
	return s, nil
}

// Adapter is a physical device seen through the instance driver.
type Adapter struct {
	device         core1_0.PhysicalDevice
	instanceDriver core1_0.CoreInstanceDriver
	info           render.AdapterInfo
}

func newAdapter(instanceDriver core1_0.CoreInstanceDriver, device core1_0.PhysicalDevice) (*Adapter, error) {
	properties, err := instanceDriver.GetPhysicalDeviceProperties(device)
	if err != nil {
		return nil, errors.Wrap(err, "get physical device properties")
	}

	return &Adapter{
		device:         device,
		instanceDriver: instanceDriver,
		info: render.AdapterInfo{
			Name:              properties.DriverName,
			Type:              adapterType(properties.DriverType),
			VendorID:          uint32(properties.VendorID),
			DeviceID:          uint32(properties.DeviceID),
			APIVersion:        properties.APIVersion.String(),
			PipelineCacheUUID: properties.PipelineCacheUUID,
		},
	}, nil
}

func adapterType(t core1_0.PhysicalDeviceType) render.AdapterType {
	switch t {
	case core1_0.PhysicalDeviceTypeIntegratedGPU:
		return render.AdapterIntegratedGPU
	case core1_0.PhysicalDeviceTypeDiscreteGPU:
		return render.AdapterDiscreteGPU
	case core1_0.PhysicalDeviceTypeVirtualGPU:
		return render.AdapterVirtualGPU
	case core1_0.PhysicalDeviceTypeCPU:
		return render.AdapterCPU
	}
	return render.AdapterOther
}

func (a *Adapter) Info() render.AdapterInfo { return a.info }

func (a *Adapter) QueueFamilies() []render.QueueFamily {
	var families []render.QueueFamily
	for _, family := range a.instanceDriver.GetPhysicalDeviceQueueFamilyProperties(a.device) {
		families = append(families, render.QueueFamily{
			Flags:      render.QueueFlags(family.QueueFlags),
			QueueCount: family.QueueCount,
		})
	}
	return families
}

func (a *Adapter) Extensions() (map[string]struct{}, error) {
	extensions, _, err := a.instanceDriver.EnumerateDeviceExtensionProperties(a.device)
	if err != nil {
		return nil, err
	}

	available := make(map[string]struct{}, len(extensions))
	for name := range extensions {
		available[name] = struct{}{}
	}
	return available, nil
}

func (a *Adapter) PresentSupport(surface render.Surface, family int) (bool, error) {
	s, err := asSurface(surface)
	if err != nil {
		return false, err
	}

	supported, _, err := s.driver.GetPhysicalDeviceSurfaceSupport(s.handle, a.device, family)
	return supported, err
}

func (a *Adapter) SwapchainSupport(surface render.Surface) (render.SwapchainSupport, error) {
	var support render.SwapchainSupport

	s, err := asSurface(surface)
	if err != nil {
		return support, err
	}

	capabilities, _, err := s.driver.GetPhysicalDeviceSurfaceCapabilities(s.handle, a.device)
	if err != nil {
		return support, errors.Wrap(err, "get surface capabilities")
	}
	support.Capabilities = surfaceCapabilities(capabilities)

	formats, _, err := s.driver.GetPhysicalDeviceSurfaceFormats(s.handle, a.device)
	if err != nil {
		return support, errors.Wrap(err, "get surface formats")
	}
	for _, format := range formats {
		support.Formats = append(support.Formats, render.SurfaceFormat{
			Format:     render.Format(format.Format),
			ColorSpace: render.ColorSpace(format.ColorSpace),
		})
	}

	presentModes, _, err := s.driver.GetPhysicalDeviceSurfacePresentModes(s.handle, a.device)
	if err != nil {
		return support, errors.Wrap(err, "get surface present modes")
	}
	for _, mode := range presentModes {
		support.PresentModes = append(support.PresentModes, render.PresentMode(mode))
	}

	return support, nil
}

func surfaceCapabilities(caps *khr_surface.SurfaceCapabilities) render.SurfaceCapabilities {
	return render.SurfaceCapabilities{
		MinImageCount:    uint32(caps.MinImageCount),
		MaxImageCount:    uint32(caps.MaxImageCount),
		CurrentExtent:    fromExtent2D(caps.CurrentExtent),
		MinImageExtent:   fromExtent2D(caps.MinImageExtent),
		MaxImageExtent:   fromExtent2D(caps.MaxImageExtent),
		CurrentTransform: uint32(caps.CurrentTransform),
	}
}

// fromExtent2D keeps the special -1 width as render.SpecialExtent.
func fromExtent2D(extent core1_0.Extent2D) render.Extent {
	return render.Extent{Width: uint32(extent.Width), Height: uint32(extent.Height)}
}

func toExtent2D(extent render.Extent) core1_0.Extent2D {
	return core1_0.Extent2D{Width: int(extent.Width), Height: int(extent.Height)}
}

// Instance exposes the instance's physical devices as render adapters.
type Instance struct {
	driver core1_0.CoreInstanceDriver
}

func (i *Instance) Adapters() ([]render.Adapter, error) {
	devices, _, err := i.driver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	adapters := make([]render.Adapter, 0, len(devices))
	for _, device := range devices {
		adapter, err := newAdapter(i.driver, device)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter)
	}
	return adapters, nil
}
