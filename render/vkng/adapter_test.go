package vkng

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/hellotriangle/render"
)

func TestExtentConversion(t *testing.T) {
	special := fromExtent2D(core1_0.Extent2D{Width: -1, Height: -1})
	require.Equal(t, render.SpecialExtent, special.Width)
	require.Equal(t, render.SpecialExtent, special.Height)

	extent := render.Extent{Width: 800, Height: 600}
	require.Equal(t, core1_0.Extent2D{Width: 800, Height: 600}, toExtent2D(extent))
	require.Equal(t, extent, fromExtent2D(toExtent2D(extent)))
}

func TestAdapterType(t *testing.T) {
	tests := []struct {
		in   core1_0.PhysicalDeviceType
		want render.AdapterType
	}{
		{core1_0.PhysicalDeviceTypeIntegratedGPU, render.AdapterIntegratedGPU},
		{core1_0.PhysicalDeviceTypeDiscreteGPU, render.AdapterDiscreteGPU},
		{core1_0.PhysicalDeviceTypeVirtualGPU, render.AdapterVirtualGPU},
		{core1_0.PhysicalDeviceTypeCPU, render.AdapterCPU},
		{core1_0.PhysicalDeviceTypeOther, render.AdapterOther},
	}

	for _, test := range tests {
		t.Run(test.want.String(), func(t *testing.T) {
			require.Equal(t, test.want, adapterType(test.in))
		})
	}
}

func TestForeignHandlesRejected(t *testing.T) {
	_, err := asSurface(struct{ render.Surface }{})
	require.Error(t, err)

	require.Panics(t, func() { asFence("not a fence") })
	require.Panics(t, func() { asSemaphore(42) })
}
