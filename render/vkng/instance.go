package vkng

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
	"github.com/vkngwrapper/hellotriangle/render"
)

// CreateInstance creates the Vulkan instance with the window's extensions
// and, when validation is enabled, the validation layers and a debug
// messenger.
func (c *Context) CreateInstance() error {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    c.config.AppName,
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         "No Engine",
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         common.Vulkan1_2,
	}

	extensions, _, err := c.globalDriver.AvailableExtensions()
	if err != nil {
		return errors.Wrap(err, "enumerate instance extensions")
	}
	available := make(map[string]struct{}, len(extensions))
	for name := range extensions {
		available[name] = struct{}{}
	}

	required := c.window.RequiredExtensions()
	if c.config.EnableValidation {
		required = append(required, ext_debug_utils.ExtensionName)
	}
	if err := render.CheckInstanceExtensions(available, required); err != nil {
		return err
	}
	instanceOptions.EnabledExtensionNames = required

	if _, ok := available[khr_portability_enumeration.ExtensionName]; ok {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if c.config.EnableValidation {
		layers, _, err := c.globalDriver.AvailableLayers()
		if err != nil {
			return errors.Wrap(err, "enumerate instance layers")
		}
		availableLayers := make(map[string]struct{}, len(layers))
		for name := range layers {
			availableLayers[name] = struct{}{}
		}

		if err := render.CheckValidationLayers(availableLayers, c.config.ValidationLayers); err != nil {
			return err
		}
		instanceOptions.EnabledLayerNames = c.config.ValidationLayers

		// Covers messages emitted during instance creation and destruction.
		instanceOptions.Next = c.debugMessengerOptions()
	}

	c.instanceDriver, _, err = c.globalDriver.CreateInstance(nil, instanceOptions)
	if err != nil {
		return render.CreationFailed("instance", err)
	}
	c.releases.Push("instance", func() { c.instanceDriver.DestroyInstance(nil) })

	c.logger.Info("created instance",
		slog.Any("extensions", instanceOptions.EnabledExtensionNames),
		slog.Any("layers", instanceOptions.EnabledLayerNames))

	if c.config.EnableValidation {
		return c.setupDebugMessenger()
	}
	return nil
}

func (c *Context) debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    c.logDebug,
	}
}

func (c *Context) setupDebugMessenger() error {
	var err error
	c.debugDriver = ext_debug_utils.CreateExtensionDriverFromCoreDriver(c.instanceDriver)
	c.debugMessenger, _, err = c.debugDriver.CreateDebugUtilsMessenger(nil, c.debugMessengerOptions())
	if err != nil {
		return render.CreationFailed("debug messenger", err)
	}
	c.releases.Push("debug messenger", func() { c.debugDriver.DestroyDebugUtilsMessenger(c.debugMessenger, nil) })
	return nil
}

func (c *Context) logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	level := slog.LevelWarn
	if severity&ext_debug_utils.SeverityError != 0 {
		level = slog.LevelError
	}
	c.logger.Log(context.Background(), level, data.Message,
		slog.String("type", msgType.String()),
		slog.String("severity", severity.String()))
	return false
}

// CreateSurface creates a presentation surface for the window.
func (c *Context) CreateSurface() error {
	surfaceExtension := khr_surface.CreateExtensionDriverFromCoreDriver(c.instanceDriver)
	handle, err := vkng_sdl2.CreateSurface(c.instanceDriver.Instance(), surfaceExtension, c.window.window)
	if err != nil {
		return render.CreationFailed("surface", err)
	}

	c.surface = &Surface{handle: handle, driver: surfaceExtension}
	c.releases.Push("surface", c.surface.Destroy)
	return nil
}

// PickAdapter selects the first adapter meeting the stage's requirements.
// Presentation is only checked once a surface exists.
func (c *Context) PickAdapter() error {
	req := render.Requirements{
		Queues:     c.config.RequiredQueues,
		Extensions: c.config.DeviceExtensions,
	}
	if c.surface != nil {
		req.Surface = c.surface
	}

	adapter, result, err := render.PickAdapter(&Instance{driver: c.instanceDriver}, req, c.logger)
	if err != nil {
		return err
	}

	c.adapter = adapter.(*Adapter)
	c.indices = result.Indices
	return nil
}
