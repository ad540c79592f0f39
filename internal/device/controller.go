package device

import (
	"context"
	"image"
	"time"
)

// Controller is the opaque actuator/sensor boundary to the device. Screencap
// may return (nil, nil) when no frame is available; callers retry on their
// own cadence. Tap and Hold return only after the platform acknowledges the
// input, and are never invoked concurrently.
type Controller interface {
	Screencap(ctx context.Context) (image.Image, error)
	Tap(ctx context.Context, x, y int) error
	Hold(ctx context.Context, x, y int, duration time.Duration) error
}
