package render

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func presentingRequirements() Requirements {
	return Requirements{
		Queues:     QueueGraphics,
		Extensions: []string{SwapchainExtension},
		Surface:    &fakeSurface{},
	}
}

func TestPickAdapterFirstSuitableWins(t *testing.T) {
	unsuitable := suitableAdapter("unsuitable")
	unsuitable.families = []QueueFamily{{Flags: QueueCompute}}
	suitableA := suitableAdapter("suitable A")
	suitableB := suitableAdapter("suitable B")

	instance := &fakeInstance{adapters: []Adapter{unsuitable, suitableA, suitableB}}

	picked, result, err := PickAdapter(instance, presentingRequirements(), discardLogger)
	require.NoError(t, err)
	assert.Same(t, suitableA, picked)
	assert.True(t, result.Indices.IsComplete())
	assert.Zero(t, suitableB.presentQueries, "adapters after the pick are never probed")
}

func TestPickAdapterNoAdapters(t *testing.T) {
	_, _, err := PickAdapter(&fakeInstance{}, presentingRequirements(), discardLogger)
	assert.True(t, errors.Is(err, ErrNoAdaptersFound))
}

func TestPickAdapterEnumerationError(t *testing.T) {
	_, _, err := PickAdapter(&fakeInstance{err: errors.New("loader broken")}, presentingRequirements(), discardLogger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loader broken")
}

func TestPickAdapterNoneSuitable(t *testing.T) {
	noExtension := suitableAdapter("no swapchain")
	noExtension.extensions = nil
	noFormats := suitableAdapter("no formats")
	noFormats.support.Formats = nil
	noPresent := suitableAdapter("headless")
	noPresent.present = nil
	broken := suitableAdapter("broken")
	broken.extErr = errors.New("driver lost")

	instance := &fakeInstance{adapters: []Adapter{noExtension, noFormats, noPresent, broken}}

	_, _, err := PickAdapter(instance, presentingRequirements(), discardLogger)
	require.True(t, errors.Is(err, ErrNoSuitableAdapter))
	assert.Contains(t, err.Error(), "missing extensions VK_KHR_swapchain")
	assert.Contains(t, err.Error(), "no formats or present modes")
	assert.Contains(t, err.Error(), "no queue family can present")
	assert.Contains(t, err.Error(), "driver lost")
}

func TestPickAdapterWithoutSurface(t *testing.T) {
	computeOnly := &fakeAdapter{name: "compute", families: []QueueFamily{{Flags: QueueCompute}}}
	graphics := &fakeAdapter{name: "graphics", families: []QueueFamily{{Flags: QueueGraphics}}}

	picked, result, err := PickAdapter(&fakeInstance{adapters: []Adapter{computeOnly, graphics}},
		Requirements{Queues: QueueGraphics}, discardLogger)
	require.NoError(t, err)
	assert.Same(t, graphics, picked)
	assert.Equal(t, Some(0), result.Indices.Graphics)
	assert.Zero(t, graphics.supportQueries)
}

func TestProbeAdapterShortCircuits(t *testing.T) {
	adapter := suitableAdapter("gpu")
	adapter.families = []QueueFamily{{Flags: QueueTransfer}}
	adapter.extErr = errors.New("must not be queried")

	result, err := ProbeAdapter(adapter, presentingRequirements())
	require.NoError(t, err)
	assert.False(t, result.Suitable(presentingRequirements()))
	assert.Zero(t, adapter.supportQueries)
}

func TestCheckExtensionSupportNamesMissing(t *testing.T) {
	adapter := &fakeAdapter{extensions: []string{"VK_KHR_swapchain", "VK_KHR_maintenance1"}}

	missing, err := CheckExtensionSupport(adapter, []string{"VK_KHR_ray_query", "VK_KHR_swapchain", "VK_EXT_mesh_shader"})
	require.NoError(t, err)
	assert.Equal(t, []string{"VK_KHR_ray_query", "VK_EXT_mesh_shader"}, missing)

	missing, err = CheckExtensionSupport(adapter, []string{"VK_KHR_swapchain"})
	require.NoError(t, err)
	assert.Empty(t, missing)
}
