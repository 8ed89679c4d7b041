package render

import (
	"github.com/cockroachdb/errors"
)

// Requirements is what an adapter has to offer to be picked.
type Requirements struct {
	Queues     QueueFlags
	Extensions []string
	// Surface is nil until the window surface stage; without one neither a
	// present family nor swapchain support is required.
	Surface Surface
}

// Suitability is the outcome of probing one adapter.
type Suitability struct {
	Indices           QueueFamilyIndices
	MissingExtensions []string
	SwapchainAdequate bool
}

func (s Suitability) Suitable(req Requirements) bool {
	return s.Indices.satisfies(req.Surface != nil) &&
		len(s.MissingExtensions) == 0 &&
		(req.Surface == nil || s.SwapchainAdequate)
}

// CheckExtensionSupport returns the required extensions the adapter does not
// advertise, in the order they were required.
func CheckExtensionSupport(adapter Adapter, required []string) ([]string, error) {
	if len(required) == 0 {
		return nil, nil
	}

	available, err := adapter.Extensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate device extensions")
	}

	var missing []string
	for _, name := range required {
		if _, ok := available[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// ProbeAdapter checks queue families, then extensions, then swapchain
// support, stopping at the first check that fails.
func ProbeAdapter(adapter Adapter, req Requirements) (Suitability, error) {
	var result Suitability
	var err error

	result.Indices, err = FindQueueFamilies(adapter, req.Queues, req.Surface)
	if err != nil {
		return result, err
	}
	if !result.Indices.satisfies(req.Surface != nil) {
		return result, nil
	}

	result.MissingExtensions, err = CheckExtensionSupport(adapter, req.Extensions)
	if err != nil {
		return result, err
	}
	if len(result.MissingExtensions) > 0 || req.Surface == nil {
		return result, nil
	}

	support, err := adapter.SwapchainSupport(req.Surface)
	if err != nil {
		return result, errors.Wrap(err, "query swapchain support")
	}
	result.SwapchainAdequate = support.Adequate()

	return result, nil
}
