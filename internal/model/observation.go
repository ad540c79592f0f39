package model

// Interval is a half-open horizontal span [Start, End) on the progress bar,
// in screen-pixel coordinates.
type Interval struct {
	Start float64
	End   float64
}

// Width returns the span's horizontal extent.
func (i Interval) Width() float64 { return i.End - i.Start }

// Center returns the span's midpoint.
func (i Interval) Center() float64 { return (i.Start + i.End) / 2 }

// FieldBounds is the horizontal span the cursor travels within; constant per round.
type FieldBounds struct {
	Left  float64
	Right float64
}

// Observation is one structured reading of the mini-game progress bar,
// built fresh from a single frame and never mutated.
type Observation struct {
	CursorX       float64
	HasCursor     bool
	BonusZones    []Interval
	CriticalZones []Interval
	Valid         bool
}
