package vkng

import (
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/hellotriangle/render"
)

const fpsInterval = 5 * time.Second

// Run draws frames until the window is closed, then waits for the device to
// go idle so that Destroy can release everything safely.
func (c *Context) Run() error {
	if c.frames == nil {
		return errors.AssertionFailedf("render loop started before sync objects were created")
	}

	meter := render.NewFrameMeter(fpsInterval)

	for !c.window.PollEvents() {
		if err := c.frames.DrawFrame(); err != nil {
			return errors.Wrapf(err, "draw frame %d", c.frames.Stats().Frames)
		}

		if fps, ok := meter.Tick(); ok {
			c.logger.Debug("frame rate", slog.Float64("fps", fps))
		}
	}

	_, err := c.deviceDriver.DeviceWaitIdle()
	return errors.Wrap(err, "wait for device idle")
}
