package render

import (
	"strings"

	"github.com/cockroachdb/errors"
)

func missingNames(available map[string]struct{}, requested []string) []string {
	var missing []string
	for _, name := range requested {
		if _, ok := available[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// CheckValidationLayers fails with ErrMissingValidationLayer naming every
// requested layer that is not available.
func CheckValidationLayers(available map[string]struct{}, requested []string) error {
	missing := missingNames(available, requested)
	if len(missing) == 0 {
		return nil
	}
	return errors.Mark(
		errors.Newf("validation layers requested but not available: %s (install the Vulkan SDK)", strings.Join(missing, ", ")),
		ErrMissingValidationLayer)
}

// CheckInstanceExtensions fails with ErrMissingExtension naming every
// requested instance extension that is not available.
func CheckInstanceExtensions(available map[string]struct{}, requested []string) error {
	missing := missingNames(available, requested)
	if len(missing) == 0 {
		return nil
	}
	return errors.Mark(
		errors.Newf("instance extensions not available: %s", strings.Join(missing, ", ")),
		ErrMissingExtension)
}
