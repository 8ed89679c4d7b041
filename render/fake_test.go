package render

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSurface struct {
	destroyed bool
}

func (s *fakeSurface) Destroy() { s.destroyed = true }

type fakeAdapter struct {
	name       string
	families   []QueueFamily
	present    map[int]bool
	presentErr error
	extensions []string
	extErr     error
	support    SwapchainSupport
	supportErr error

	presentQueries int
	supportQueries int
}

func (a *fakeAdapter) Info() AdapterInfo {
	return AdapterInfo{Name: a.name, Type: AdapterDiscreteGPU}
}

func (a *fakeAdapter) QueueFamilies() []QueueFamily { return a.families }

func (a *fakeAdapter) Extensions() (map[string]struct{}, error) {
	if a.extErr != nil {
		return nil, a.extErr
	}
	available := make(map[string]struct{}, len(a.extensions))
	for _, name := range a.extensions {
		available[name] = struct{}{}
	}
	return available, nil
}

func (a *fakeAdapter) PresentSupport(surface Surface, family int) (bool, error) {
	a.presentQueries++
	if a.presentErr != nil {
		return false, a.presentErr
	}
	return a.present[family], nil
}

func (a *fakeAdapter) SwapchainSupport(surface Surface) (SwapchainSupport, error) {
	a.supportQueries++
	return a.support, a.supportErr
}

func adequateSupport() SwapchainSupport {
	return SwapchainSupport{
		Capabilities: SurfaceCapabilities{
			MinImageCount:  2,
			MaxImageCount:  8,
			CurrentExtent:  Extent{Width: 800, Height: 600},
			MinImageExtent: Extent{Width: 1, Height: 1},
			MaxImageExtent: Extent{Width: 4096, Height: 4096},
		},
		Formats:      []SurfaceFormat{{Format: FormatB8G8R8A8SRGB, ColorSpace: ColorSpaceSRGBNonlinear}},
		PresentModes: []PresentMode{PresentModeFIFO},
	}
}

// suitableAdapter has one family doing both graphics and presentation.
func suitableAdapter(name string) *fakeAdapter {
	return &fakeAdapter{
		name:       name,
		families:   []QueueFamily{{Flags: QueueGraphics | QueueCompute | QueueTransfer, QueueCount: 1}},
		present:    map[int]bool{0: true},
		extensions: []string{SwapchainExtension},
		support:    adequateSupport(),
	}
}

type fakeInstance struct {
	adapters []Adapter
	err      error
}

func (i *fakeInstance) Adapters() ([]Adapter, error) { return i.adapters, i.err }

type fakeSemaphore struct{ id int }

type fakeFence struct {
	id       int
	signaled bool
}

// fakeFrameDevice records every call in order. Submitted work completes
// when its fence is waited on, or immediately when autoComplete is set.
type fakeFrameDevice struct {
	calls []string

	images       []int
	autoComplete bool

	creates    int
	failCreate int

	submitErr error
	idleErr   error

	nextID int
}

func (d *fakeFrameDevice) record(format string, args ...interface{}) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *fakeFrameDevice) create() error {
	d.creates++
	if d.creates == d.failCreate {
		return errors.New("out of device memory")
	}
	return nil
}

func (d *fakeFrameDevice) CreateSemaphore() (Semaphore, error) {
	if err := d.create(); err != nil {
		return nil, err
	}
	d.nextID++
	d.record("create semaphore %d", d.nextID)
	return &fakeSemaphore{id: d.nextID}, nil
}

func (d *fakeFrameDevice) CreateFence(signaled bool) (Fence, error) {
	if err := d.create(); err != nil {
		return nil, err
	}
	d.nextID++
	d.record("create fence %d", d.nextID)
	return &fakeFence{id: d.nextID, signaled: signaled}, nil
}

func (d *fakeFrameDevice) DestroySemaphore(semaphore Semaphore) {
	d.record("destroy semaphore %d", semaphore.(*fakeSemaphore).id)
}

func (d *fakeFrameDevice) DestroyFence(fence Fence) {
	d.record("destroy fence %d", fence.(*fakeFence).id)
}

func (d *fakeFrameDevice) WaitForFence(fence Fence) error {
	f := fence.(*fakeFence)
	d.record("wait fence %d", f.id)
	f.signaled = true
	return nil
}

func (d *fakeFrameDevice) FenceSignaled(fence Fence) (bool, error) {
	return fence.(*fakeFence).signaled, nil
}

func (d *fakeFrameDevice) ResetFence(fence Fence) error {
	f := fence.(*fakeFence)
	d.record("reset fence %d", f.id)
	f.signaled = false
	return nil
}

func (d *fakeFrameDevice) AcquireNextImage(signal Semaphore) (int, error) {
	if len(d.images) == 0 {
		return 0, errors.New("no more images scripted")
	}
	image := d.images[0]
	d.images = d.images[1:]
	d.record("acquire %d", image)
	return image, nil
}

func (d *fakeFrameDevice) Submit(image int, wait, signal Semaphore, fence Fence) error {
	if d.submitErr != nil {
		return d.submitErr
	}
	f := fence.(*fakeFence)
	d.record("submit %d fence %d", image, f.id)
	if d.autoComplete {
		f.signaled = true
	}
	return nil
}

func (d *fakeFrameDevice) Present(image int, wait Semaphore) error {
	d.record("present %d", image)
	return nil
}

func (d *fakeFrameDevice) WaitIdle() error {
	d.record("wait idle")
	return d.idleErr
}
