package motion

import "AutoAngler/internal/model"

// Union merges the given zones into a single covering span. The second return
// value is false when the list is empty.
func Union(zones []model.Interval) (model.Interval, bool) {
	if len(zones) == 0 {
		return model.Interval{}, false
	}
	u := zones[0]
	for _, z := range zones[1:] {
		if z.Start < u.Start {
			u.Start = z.Start
		}
		if z.End > u.End {
			u.End = z.End
		}
	}
	return u, true
}

// TimeToVanish returns the seconds until a symmetrically shrinking zone
// collapses to zero width, at shrinkRate pixels per frame.
func TimeToVanish(span model.Interval, shrinkRate, frameRate float64) float64 {
	if shrinkRate <= 0 || frameRate <= 0 {
		return 0
	}
	frames := (span.End - span.Center()) / shrinkRate
	return frames / frameRate
}

// SpanAfter predicts the zone's extents after elapsedFrames of symmetric
// shrinkage toward its center.
func SpanAfter(span model.Interval, elapsedFrames, shrinkRate float64) model.Interval {
	shrink := shrinkRate * elapsedFrames
	return model.Interval{Start: span.Start + shrink, End: span.End - shrink}
}

// Vanished reports whether a predicted span is too narrow to be a usable
// click target.
func Vanished(span model.Interval, minWidth float64) bool {
	return span.Width() < minWidth
}
