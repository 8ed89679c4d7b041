package render

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameControllerCrossWaitsOnlyForBusyImages(t *testing.T) {
	tests := []struct {
		name         string
		images       []int
		autoComplete bool
		crossWaits   []int
	}{
		{
			// Slot 0 renders image 2 in frame 2, so when image 0 comes back in
			// frame 3 its last user (slot 0) is still busy. The same happens to
			// image 1 in frame 4.
			name:       "rotating images",
			images:     []int{0, 1, 2, 0, 1},
			crossWaits: []int{0, 0, 0, 1, 1},
		},
		{
			// Each image returns to the slot that last used it, whose fence
			// was already waited on at the start of the frame.
			name:       "images follow slots",
			images:     []int{0, 1, 0, 1, 0},
			crossWaits: []int{0, 0, 0, 0, 0},
		},
		{
			name:         "gpu keeps up",
			images:       []int{0, 1, 2, 0, 1},
			autoComplete: true,
			crossWaits:   []int{0, 0, 0, 0, 0},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			device := &fakeFrameDevice{images: test.images, autoComplete: test.autoComplete}
			controller, err := NewFrameController(device, 3, 2, discardLogger)
			require.NoError(t, err)

			for frame, expected := range test.crossWaits {
				before := controller.Stats().CrossWaits
				require.NoError(t, controller.DrawFrame())
				assert.Equal(t, expected, controller.Stats().CrossWaits-before, "frame %d", frame)
				assert.Equal(t, (frame+1)%2, controller.CurrentFrame())
			}
			assert.Equal(t, len(test.crossWaits), controller.Stats().Frames)
		})
	}
}

func TestFrameControllerStepOrder(t *testing.T) {
	device := &fakeFrameDevice{images: []int{0, 1, 2, 0}}
	controller, err := NewFrameController(device, 3, 2, discardLogger)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, controller.DrawFrame())
	}

	// Fences are ids 3 and 6: each slot creates two semaphores and a fence.
	assert.Equal(t, []string{
		"wait fence 3", "acquire 0", "reset fence 3", "submit 0 fence 3", "present 0",
		"wait fence 6", "acquire 1", "reset fence 6", "submit 1 fence 6", "present 1",
		"wait fence 3", "acquire 2", "reset fence 3", "submit 2 fence 3", "present 2",
		"wait fence 6", "acquire 0", "wait fence 3", "reset fence 6", "submit 0 fence 6", "present 0",
	}, device.calls[6:])
}

func TestFrameControllerSubmitFailure(t *testing.T) {
	device := &fakeFrameDevice{images: []int{0}, submitErr: errors.New("device lost")}
	controller, err := NewFrameController(device, 3, 2, discardLogger)
	require.NoError(t, err)

	err = controller.DrawFrame()
	require.True(t, errors.Is(err, ErrSubmitFailed))
	assert.Contains(t, err.Error(), "device lost")
	assert.Equal(t, 0, controller.CurrentFrame())
}

func TestFrameControllerRejectsImageOutOfRange(t *testing.T) {
	device := &fakeFrameDevice{images: []int{5}}
	controller, err := NewFrameController(device, 3, 2, discardLogger)
	require.NoError(t, err)

	assert.Error(t, controller.DrawFrame())
}

func TestFrameControllerShutdownWaitsForIdleFirst(t *testing.T) {
	device := &fakeFrameDevice{images: []int{0, 1, 2}}
	controller, err := NewFrameController(device, 3, 2, discardLogger)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, controller.DrawFrame())
	}

	start := len(device.calls)
	require.NoError(t, controller.Shutdown())

	assert.Equal(t, []string{
		"wait idle",
		"destroy fence 6",
		"destroy semaphore 5",
		"destroy semaphore 4",
		"destroy fence 3",
		"destroy semaphore 2",
		"destroy semaphore 1",
	}, device.calls[start:])

	require.NoError(t, controller.Shutdown())
	assert.Len(t, device.calls, start+7)
	assert.Error(t, controller.DrawFrame())
}

func TestFrameControllerShutdownKeepsPrimitivesWhenIdleFails(t *testing.T) {
	device := &fakeFrameDevice{idleErr: errors.New("device lost")}
	controller, err := NewFrameController(device, 2, 2, discardLogger)
	require.NoError(t, err)

	start := len(device.calls)
	require.Error(t, controller.Shutdown())
	for _, call := range device.calls[start:] {
		assert.False(t, strings.HasPrefix(call, "destroy"), call)
	}
}

func TestFrameControllerDestroyBeforeIdlePanics(t *testing.T) {
	controller, err := NewFrameController(&fakeFrameDevice{}, 2, 2, discardLogger)
	require.NoError(t, err)

	assert.Panics(t, controller.destroy)
}

func TestNewFrameControllerPartialFailureReleasesBatch(t *testing.T) {
	// The fourth primitive is slot 1's image available semaphore.
	device := &fakeFrameDevice{failCreate: 4}

	_, err := NewFrameController(device, 3, 2, discardLogger)
	require.True(t, errors.Is(err, ErrResourceCreationFailed))
	assert.Contains(t, err.Error(), "image available semaphore 1")

	assert.Equal(t, []string{
		"create semaphore 1",
		"create semaphore 2",
		"create fence 3",
		"destroy fence 3",
		"destroy semaphore 2",
		"destroy semaphore 1",
	}, device.calls)
}

func TestNewFrameControllerValidatesCounts(t *testing.T) {
	_, err := NewFrameController(&fakeFrameDevice{}, 3, 0, discardLogger)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewFrameController(&fakeFrameDevice{}, 0, 2, discardLogger)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
