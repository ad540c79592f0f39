package vision

import (
	"image"
	"sort"

	"AutoAngler/internal/model"
)

// Extractor reduces raw recognition results into a structured Observation.
type Extractor struct {
	rec Recognizer
}

// NewExtractor creates an Extractor over the given recognizer.
func NewExtractor(rec Recognizer) *Extractor {
	return &Extractor{rec: rec}
}

// Observe runs the three progress-bar recognitions against one frame and
// reduces them to an Observation. Valid holds iff a cursor was found and at
// least one zone list is non-empty.
func (e *Extractor) Observe(frame image.Image) model.Observation {
	var obs model.Observation

	if d := e.rec.DetectCursor(frame); d.Hit {
		obs.CursorX = d.Best.CenterX()
		obs.HasCursor = true
	}
	obs.BonusZones = intervalsOf(e.rec.DetectBonusZones(frame))
	obs.CriticalZones = intervalsOf(e.rec.DetectCriticalZones(frame))

	obs.Valid = obs.HasCursor && (len(obs.BonusZones) > 0 || len(obs.CriticalZones) > 0)
	return obs
}

// BiteDetected reports whether the took-bait indicator is visible in the frame.
func (e *Extractor) BiteDetected(frame image.Image) bool {
	return e.rec.DetectBite(frame).Hit
}

func intervalsOf(d model.Detection) []model.Interval {
	if !d.Hit || len(d.All) == 0 {
		return nil
	}
	zones := make([]model.Interval, 0, len(d.All))
	for _, b := range d.All {
		zones = append(zones, model.Interval{Start: float64(b.X), End: float64(b.X + b.W)})
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].Start < zones[j].Start })
	return zones
}
