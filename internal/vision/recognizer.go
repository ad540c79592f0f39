package vision

import (
	"image"

	"AutoAngler/internal/model"
)

// Recognizer is the detection oracle for a single frame. One method per
// detection kind keeps substitution in tests deterministic.
type Recognizer interface {
	DetectBite(frame image.Image) model.Detection
	DetectCursor(frame image.Image) model.Detection
	DetectBonusZones(frame image.Image) model.Detection
	DetectCriticalZones(frame image.Image) model.Detection
}

// CannedRecognizer returns fixed detections regardless of the frame,
// for driving the extractor and round loop in tests.
type CannedRecognizer struct {
	Bite     model.Detection
	Cursor   model.Detection
	Bonus    model.Detection
	Critical model.Detection
}

func (c *CannedRecognizer) DetectBite(_ image.Image) model.Detection   { return c.Bite }
func (c *CannedRecognizer) DetectCursor(_ image.Image) model.Detection { return c.Cursor }
func (c *CannedRecognizer) DetectBonusZones(_ image.Image) model.Detection {
	return c.Bonus
}
func (c *CannedRecognizer) DetectCriticalZones(_ image.Image) model.Detection {
	return c.Critical
}
