package motion

import (
	"math"
	"testing"

	"AutoAngler/internal/model"
)

func TestUnion(t *testing.T) {
	zones := []model.Interval{
		{Start: 500, End: 520},
		{Start: 410, End: 440},
		{Start: 470, End: 490},
	}
	u, ok := Union(zones)
	if !ok {
		t.Fatal("expected union of non-empty zone list")
	}
	if u.Start != 410 || u.End != 520 {
		t.Errorf("expected union (410, 520), got (%.0f, %.0f)", u.Start, u.End)
	}

	if _, ok := Union(nil); ok {
		t.Error("expected no union for empty zone list")
	}
}

func TestSpanAfter_ZeroFrames(t *testing.T) {
	span := model.Interval{Start: 400, End: 460}
	got := SpanAfter(span, 0, 0.83)
	if got != span {
		t.Errorf("zero elapsed frames should leave span unchanged, got (%.2f, %.2f)", got.Start, got.End)
	}
}

func TestSpanAfter_Additivity(t *testing.T) {
	span := model.Interval{Start: 400, End: 460}
	stepped := SpanAfter(SpanAfter(span, 10, 0.83), 15, 0.83)
	direct := SpanAfter(span, 25, 0.83)
	if math.Abs(stepped.Start-direct.Start) > 1e-9 || math.Abs(stepped.End-direct.End) > 1e-9 {
		t.Errorf("repeated shrinkage should equal one summed application: (%.4f,%.4f) vs (%.4f,%.4f)",
			stepped.Start, stepped.End, direct.Start, direct.End)
	}
}

func TestVanished(t *testing.T) {
	if Vanished(model.Interval{Start: 400, End: 406}, 5) {
		t.Error("6px span should not be vanished at 5px threshold")
	}
	if !Vanished(model.Interval{Start: 400, End: 404}, 5) {
		t.Error("4px span should be vanished at 5px threshold")
	}
	if !Vanished(model.Interval{Start: 404, End: 400}, 5) {
		t.Error("negative-width span should be vanished")
	}
}

func TestTimeToVanish_Scenario(t *testing.T) {
	// 20px union shrinking at 0.83 px/frame: the outer edge has ~12 frames to
	// the center, so a 5px-usable window closes after roughly 9 frames.
	span := model.Interval{Start: 400, End: 420}
	sec := TimeToVanish(span, 0.83, 60)

	frames := sec * 60
	if frames < 8 || frames > 10+5 {
		t.Errorf("expected collapse within a dozen frames, got %.2f frames", frames)
	}

	// Confirm the span is usable just before the window closes and gone after.
	before := SpanAfter(span, 9, 0.83)
	if Vanished(before, 5) {
		t.Errorf("span should still be usable at 9 frames, width %.2f", before.Width())
	}
	after := SpanAfter(span, 10, 0.83)
	if !Vanished(after, 5) {
		t.Errorf("span should be unusable at 10 frames, width %.2f", after.Width())
	}
}

func TestTimeToVanish_DegenerateRates(t *testing.T) {
	span := model.Interval{Start: 400, End: 420}
	if TimeToVanish(span, 0, 60) != 0 {
		t.Error("zero shrink rate should yield zero vanish time")
	}
	if TimeToVanish(span, 0.83, 0) != 0 {
		t.Error("zero frame rate should yield zero vanish time")
	}
}
