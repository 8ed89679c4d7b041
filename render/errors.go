package render

import "github.com/cockroachdb/errors"

// Error kinds. Failures returned by this package and by render/vkng are
// marked with one of these, so callers can test them with errors.Is.
var (
	ErrNoAdaptersFound        = errors.New("no vulkan adapters found")
	ErrNoSuitableAdapter      = errors.New("no suitable vulkan adapter")
	ErrMissingValidationLayer = errors.New("validation layer unavailable")
	ErrMissingExtension       = errors.New("extension unavailable")
	ErrQueueFamilyIncomplete  = errors.New("required queue families not found")
	ErrSwapchainInadequate    = errors.New("surface offers no formats or present modes")
	ErrResourceCreationFailed = errors.New("resource creation failed")
	ErrSubmitFailed           = errors.New("queue submission failed")
	ErrInvalidConfig          = errors.New("invalid configuration")
)

// CreationFailed wraps err as a failure to create the named resource.
func CreationFailed(resource string, err error) error {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return errors.Mark(errors.Wrapf(err, "create %s", resource), ErrResourceCreationFailed)
}
