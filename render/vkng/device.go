package vkng

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/hellotriangle/render"
)

// CreateLogicalDevice creates one queue per distinct family in the resolved
// indices. The present queue is only fetched once a surface exists.
func (c *Context) CreateLogicalDevice() error {
	if c.adapter == nil {
		return errors.AssertionFailedf("logical device requested before an adapter was picked")
	}

	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	queuePriority := float32(1.0)
	for _, queueFamily := range c.indices.Unique() {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queueFamily,
			QueuePriorities:  []float32{queuePriority},
		})
	}

	var extensionNames []string
	extensionNames = append(extensionNames, c.config.DeviceExtensions...)

	// Required on portability implementations such as MoltenVK.
	available, err := c.adapter.Extensions()
	if err != nil {
		return errors.Wrap(err, "enumerate device extensions")
	}
	if _, supported := available[khr_portability_subset.ExtensionName]; supported {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	c.deviceDriver, _, err = c.instanceDriver.CreateDevice(c.adapter.device, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueFamilyOptions,
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return render.CreationFailed("logical device", err)
	}
	c.releases.Push("logical device", func() { c.deviceDriver.DestroyDevice(nil) })

	graphics, _ := c.indices.Graphics.Get()
	c.graphicsQueue = c.deviceDriver.GetQueue(graphics, 0)
	if present, ok := c.indices.Present.Get(); ok {
		c.presentQueue = c.deviceDriver.GetQueue(present, 0)
	}

	c.logger.Info("created logical device",
		slog.Any("queueFamilies", c.indices.Unique()),
		slog.Any("extensions", extensionNames))
	return nil
}
