package motion

import (
	"math"
	"testing"

	"AutoAngler/internal/model"
)

func TestDirectionAt_Windows(t *testing.T) {
	for f := 0; f < 88; f++ {
		if d := DirectionAt(f, 88); d != 1 {
			t.Fatalf("frame %d: expected +1, got %d", f, d)
		}
	}
	for f := 88; f < 176; f++ {
		if d := DirectionAt(f, 88); d != -1 {
			t.Fatalf("frame %d: expected -1, got %d", f, d)
		}
	}
}

func TestDirectionAt_Periodicity(t *testing.T) {
	for f := 0; f < 400; f++ {
		if DirectionAt(f, 88) != DirectionAt(f+176, 88) {
			t.Fatalf("direction not periodic at frame %d", f)
		}
	}
}

func TestTimeToReach_Direct(t *testing.T) {
	bounds := model.FieldBounds{Left: 0, Right: 800}
	tests := []struct {
		name      string
		cursorX   float64
		targetX   float64
		direction int
		distance  float64
	}{
		{"rightward ahead", 100, 150, 1, 50},
		{"rightward at target", 100, 100, 1, 0},
		{"leftward ahead", 500, 420, -1, 80},
	}
	for _, tt := range tests {
		sec, err := TimeToReach(tt.cursorX, tt.targetX, tt.direction, bounds, 4.2, 60)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		want := tt.distance / 4.2 / 60
		if math.Abs(sec-want) > 1e-9 {
			t.Errorf("%s: expected %.6fs, got %.6fs", tt.name, want, sec)
		}
	}
}

func TestTimeToReach_MonotonicInDistance(t *testing.T) {
	bounds := model.FieldBounds{Left: 0, Right: 800}
	prev := -1.0
	for target := 110.0; target <= 700; target += 35 {
		sec, err := TimeToReach(100, target, 1, bounds, 4.2, 60)
		if err != nil {
			t.Fatalf("target %.0f: %v", target, err)
		}
		if sec <= prev {
			t.Fatalf("time not increasing with distance: %.6f after %.6f", sec, prev)
		}
		prev = sec
	}
}

func TestTimeToReach_BounceRight(t *testing.T) {
	// Rightward cursor at 100, target behind at 50: path is (800-100)+(800-50).
	bounds := model.FieldBounds{Left: 0, Right: 800}
	sec, err := TimeToReach(100, 50, 1, bounds, 4.2, 60)
	if err != nil {
		t.Fatal(err)
	}
	want := 1350.0 / 4.2 / 60
	if math.Abs(sec-want) > 1e-9 {
		t.Errorf("expected %.6fs for 1350px bounce path, got %.6fs", want, sec)
	}
	direct := 50.0 / 4.2 / 60
	if sec <= direct {
		t.Errorf("bounce path %.6fs should exceed direct path %.6fs", sec, direct)
	}
}

func TestTimeToReach_BounceLeft(t *testing.T) {
	// Leftward cursor at 400, target behind at 600: path is (400-300)+(600-300).
	bounds := model.FieldBounds{Left: 300, Right: 900}
	sec, err := TimeToReach(400, 600, -1, bounds, 4.2, 60)
	if err != nil {
		t.Fatal(err)
	}
	want := 400.0 / 4.2 / 60
	if math.Abs(sec-want) > 1e-9 {
		t.Errorf("expected %.6fs, got %.6fs", want, sec)
	}
}

func TestTimeToReach_InvalidInputs(t *testing.T) {
	bounds := model.FieldBounds{Left: 0, Right: 800}
	if _, err := TimeToReach(100, 200, 1, bounds, 0, 60); err == nil {
		t.Error("expected error for zero speed")
	}
	if _, err := TimeToReach(100, 200, 1, bounds, 4.2, 0); err == nil {
		t.Error("expected error for zero frame rate")
	}
	if _, err := TimeToReach(100, 200, 1, model.FieldBounds{Left: 800, Right: 800}, 4.2, 60); err == nil {
		t.Error("expected error for degenerate bounds")
	}
}
