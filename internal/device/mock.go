package device

import (
	"context"
	"image"
	"sync"
	"time"
)

// TapEvent records one actuator invocation on the mock.
type TapEvent struct {
	X int
	Y int
}

// HoldEvent records one long press on the mock.
type HoldEvent struct {
	X        int
	Y        int
	Duration time.Duration
}

// MockController returns scripted frames in order and records every input.
// A nil entry in Frames models a sensor miss. When the script runs out the
// last entry repeats.
type MockController struct {
	mu     sync.Mutex
	Frames []image.Image
	idx    int
	Taps   []TapEvent
	Holds  []HoldEvent
}

func (m *MockController) Screencap(_ context.Context) (image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Frames) == 0 {
		return nil, nil
	}
	i := m.idx
	if i >= len(m.Frames) {
		i = len(m.Frames) - 1
	} else {
		m.idx++
	}
	return m.Frames[i], nil
}

func (m *MockController) Tap(_ context.Context, x, y int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Taps = append(m.Taps, TapEvent{X: x, Y: y})
	return nil
}

func (m *MockController) Hold(_ context.Context, x, y int, d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Holds = append(m.Holds, HoldEvent{X: x, Y: y, Duration: d})
	return nil
}

// TapCount returns how many taps have been recorded.
func (m *MockController) TapCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Taps)
}
