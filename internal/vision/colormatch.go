package vision

import (
	"image"

	"AutoAngler/internal/config"
	"AutoAngler/internal/model"
)

// ColorMatcher is the default Recognizer. It classifies pixels by RGB band:
// zone and cursor detection scans the columns of the progress-bar band and
// groups consecutive matching columns into boxes; bite detection counts
// matching pixels inside a fixed region.
type ColorMatcher struct {
	barTop, barBottom int
	minRun            int
	biteRegion        config.Region
	minBitePixels     int

	cursor, bonus, critical, bite config.ColorRange
}

// NewColorMatcher builds a matcher from the vision config section.
func NewColorMatcher(cfg *config.Config) *ColorMatcher {
	v := cfg.Vision
	return &ColorMatcher{
		barTop:        v.BarTop,
		barBottom:     v.BarBottom,
		minRun:        v.MinRun,
		biteRegion:    v.BiteRegion,
		minBitePixels: v.MinBitePixels,
		cursor:        v.CursorColor,
		bonus:         v.BonusColor,
		critical:      v.CriticalColor,
		bite:          v.BiteColor,
	}
}

func (m *ColorMatcher) DetectCursor(frame image.Image) model.Detection {
	return m.scanBar(frame, m.cursor)
}

func (m *ColorMatcher) DetectBonusZones(frame image.Image) model.Detection {
	return m.scanBar(frame, m.bonus)
}

func (m *ColorMatcher) DetectCriticalZones(frame image.Image) model.Detection {
	return m.scanBar(frame, m.critical)
}

func (m *ColorMatcher) DetectBite(frame image.Image) model.Detection {
	r := m.biteRegion
	count := 0
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if inRange(frame, x, y, m.bite) {
				count++
			}
		}
	}
	if count < m.minBitePixels {
		return model.Detection{}
	}
	box := model.Box{X: r.X, Y: r.Y, W: r.W, H: r.H}
	return model.Detection{Hit: true, Best: box, All: []model.Box{box}}
}

// scanBar walks the progress-bar band column by column. A column counts as
// matching when any row inside the band falls within the color range; runs of
// at least minRun matching columns become boxes. Best is the widest run.
func (m *ColorMatcher) scanBar(frame image.Image, c config.ColorRange) model.Detection {
	bounds := frame.Bounds()
	top, bottom := m.barTop, m.barBottom
	if top < bounds.Min.Y {
		top = bounds.Min.Y
	}
	if bottom > bounds.Max.Y {
		bottom = bounds.Max.Y
	}
	if top >= bottom {
		return model.Detection{}
	}

	var boxes []model.Box
	runStart, runLen := 0, 0
	flush := func() {
		if runLen >= m.minRun {
			boxes = append(boxes, model.Box{X: runStart, Y: top, W: runLen, H: bottom - top})
		}
		runLen = 0
	}

	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		matched := false
		for y := top; y < bottom; y++ {
			if inRange(frame, x, y, c) {
				matched = true
				break
			}
		}
		if matched {
			if runLen == 0 {
				runStart = x
			}
			runLen++
		} else if runLen > 0 {
			flush()
		}
	}
	flush()

	if len(boxes) == 0 {
		return model.Detection{}
	}
	best := boxes[0]
	for _, b := range boxes[1:] {
		if b.W > best.W {
			best = b
		}
	}
	return model.Detection{Hit: true, Best: best, All: boxes}
}

func inRange(frame image.Image, x, y int, c config.ColorRange) bool {
	r, g, b, _ := frame.At(x, y).RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return r8 >= c.RMin && r8 <= c.RMax &&
		g8 >= c.GMin && g8 <= c.GMax &&
		b8 >= c.BMin && b8 <= c.BMax
}
