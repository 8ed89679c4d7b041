package render

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// FamilyIndex is a queue family index that may be absent.
type FamilyIndex struct {
	index int
	set   bool
}

func Some(index int) FamilyIndex { return FamilyIndex{index: index, set: true} }

var None = FamilyIndex{}

func (f FamilyIndex) Get() (int, bool) { return f.index, f.set }

func (f FamilyIndex) IsSet() bool { return f.set }

func (f FamilyIndex) String() string {
	if !f.set {
		return "none"
	}
	return fmt.Sprintf("%d", f.index)
}

type QueueFamilyIndices struct {
	Graphics FamilyIndex
	Present  FamilyIndex
}

func (i QueueFamilyIndices) IsComplete() bool {
	return i.Graphics.IsSet() && i.Present.IsSet()
}

func (i QueueFamilyIndices) satisfies(needPresent bool) bool {
	return i.Graphics.IsSet() && (!needPresent || i.Present.IsSet())
}

// Require returns the graphics and present family indices, or
// ErrQueueFamilyIncomplete if either is missing.
func (i QueueFamilyIndices) Require() (graphics, present int, err error) {
	if !i.IsComplete() {
		return 0, 0, errors.Mark(
			errors.Newf("graphics family %s, present family %s", i.Graphics, i.Present),
			ErrQueueFamilyIncomplete)
	}
	return i.Graphics.index, i.Present.index, nil
}

// Unique lists the distinct family indices that are set, graphics first.
func (i QueueFamilyIndices) Unique() []int {
	var unique []int
	if g, ok := i.Graphics.Get(); ok {
		unique = append(unique, g)
	}
	if p, ok := i.Present.Get(); ok && (len(unique) == 0 || unique[0] != p) {
		unique = append(unique, p)
	}
	return unique
}

// FindQueueFamilies scans the adapter's queue families in index order. A
// family whose flags intersect required becomes the graphics family; a
// family that can present to surface becomes the present family. The scan
// stops as soon as both are known. With a nil surface no present family is
// looked for and the scan stops at the first graphics family.
func FindQueueFamilies(adapter Adapter, required QueueFlags, surface Surface) (QueueFamilyIndices, error) {
	var indices QueueFamilyIndices

	for familyIdx, family := range adapter.QueueFamilies() {
		if family.Flags&required != 0 {
			indices.Graphics = Some(familyIdx)
		}

		if surface != nil {
			supported, err := adapter.PresentSupport(surface, familyIdx)
			if err != nil {
				return indices, errors.Wrapf(err, "query present support for queue family %d", familyIdx)
			}
			if supported {
				indices.Present = Some(familyIdx)
			}
		}

		if indices.satisfies(surface != nil) {
			break
		}
	}

	return indices, nil
}
