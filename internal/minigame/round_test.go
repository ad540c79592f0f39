package minigame

import (
	"context"
	"image"
	"sync"
	"testing"
	"time"

	"AutoAngler/internal/device"
	"AutoAngler/internal/model"
	"AutoAngler/internal/vision"
)

// seqRecognizer replays a script of canned detections, advancing one step per
// Observe cycle (the extractor's last call per cycle is DetectCriticalZones).
// The final step repeats once the script runs out.
type seqRecognizer struct {
	mu    sync.Mutex
	steps []vision.CannedRecognizer
	i     int
}

func (s *seqRecognizer) step() *vision.CannedRecognizer {
	if s.i >= len(s.steps) {
		return &s.steps[len(s.steps)-1]
	}
	return &s.steps[s.i]
}

func (s *seqRecognizer) DetectBite(f image.Image) model.Detection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step().Bite
}

func (s *seqRecognizer) DetectCursor(f image.Image) model.Detection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step().Cursor
}

func (s *seqRecognizer) DetectBonusZones(f image.Image) model.Detection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step().Bonus
}

func (s *seqRecognizer) DetectCriticalZones(f image.Image) model.Detection {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.step().Critical
	s.i++
	return d
}

func cursorAt(x float64) model.Detection {
	return model.Detection{Hit: true, Best: model.Box{X: int(x) - 4, Y: 607, W: 8, H: 12}}
}

func zonesAt(spans ...model.Interval) model.Detection {
	d := model.Detection{Hit: true}
	for _, s := range spans {
		d.All = append(d.All, model.Box{X: int(s.Start), Y: 607, W: int(s.Width()), H: 12})
	}
	if len(d.All) > 0 {
		d.Best = d.All[0]
	}
	return d
}

func testRoundConfig() RoundConfig {
	p := testParams()
	p.ActionBuffer = 0 // no look-ahead margin; keeps scripted geometry simple
	return RoundConfig{
		Params:         p,
		Budget:         2 * time.Second,
		TapX:           1130,
		TapY:           570,
		InputComp:      45 * time.Millisecond,
		PostClickReset: 0,
	}
}

func frame() image.Image { return image.NewRGBA(image.Rect(0, 0, 1280, 720)) }

func TestPlayRound_TimeoutWithoutClicks(t *testing.T) {
	cfg := testRoundConfig()
	cfg.Budget = 0 // lapses on the first tick
	dev := &device.MockController{Frames: []image.Image{frame()}}
	ext := vision.NewExtractor(&vision.CannedRecognizer{})

	res := PlayRound(context.Background(), dev, ext, cfg, nil)
	if res.Outcome != model.RoundTimeout {
		t.Fatalf("expected timeout, got %s", res.Outcome)
	}
	if res.Clicks != 0 {
		t.Errorf("expected no clicks, got %d", res.Clicks)
	}
}

func TestPlayRound_InvalidObservationEndsAsSuccess(t *testing.T) {
	// The extractor loses the progress bar: the round reports success on the
	// assumption that the minigame concluded on its own.
	dev := &device.MockController{Frames: []image.Image{frame()}}
	ext := vision.NewExtractor(&vision.CannedRecognizer{}) // nothing detected

	res := PlayRound(context.Background(), dev, ext, testRoundConfig(), nil)
	if res.Outcome != model.RoundSuccess {
		t.Fatalf("expected success on invalid observation, got %s", res.Outcome)
	}
	if res.Clicks != 0 {
		t.Errorf("expected no clicks, got %d", res.Clicks)
	}
}

func TestPlayRound_ClickThenBarDisappears(t *testing.T) {
	rec := &seqRecognizer{steps: []vision.CannedRecognizer{
		{
			Cursor:   cursorAt(500),
			Critical: zonesAt(model.Interval{Start: 504, End: 524}),
		},
		{}, // bar gone after the click
	}}
	dev := &device.MockController{Frames: []image.Image{frame()}}
	ext := vision.NewExtractor(rec)

	res := PlayRound(context.Background(), dev, ext, testRoundConfig(), nil)
	if res.Outcome != model.RoundSuccess {
		t.Fatalf("expected success, got %s", res.Outcome)
	}
	if res.Clicks != 1 {
		t.Fatalf("expected exactly one click, got %d", res.Clicks)
	}
	if dev.TapCount() != 1 {
		t.Fatalf("expected one tap on the device, got %d", dev.TapCount())
	}
	if dev.Taps[0] != (device.TapEvent{X: 1130, Y: 570}) {
		t.Errorf("tap landed at %+v, expected the cast point", dev.Taps[0])
	}
}

func TestPlayRound_BudgetAfterClickIsSuccess(t *testing.T) {
	// One click, then the cursor has swept past the only critical zone and no
	// bonus zones remain: the loop idles until the budget lapses, and a round
	// with at least one click ends as success.
	rec := &seqRecognizer{steps: []vision.CannedRecognizer{
		{
			Cursor:   cursorAt(500),
			Critical: zonesAt(model.Interval{Start: 504, End: 524}),
		},
		{
			Cursor:   cursorAt(700),
			Critical: zonesAt(model.Interval{Start: 504, End: 524}),
		},
	}}
	dev := &device.MockController{Frames: []image.Image{frame()}}
	ext := vision.NewExtractor(rec)
	cfg := testRoundConfig()
	cfg.Budget = 50 * time.Millisecond

	res := PlayRound(context.Background(), dev, ext, cfg, nil)
	if res.Outcome != model.RoundSuccess {
		t.Fatalf("expected success once clicked, got %s", res.Outcome)
	}
	if res.Clicks < 1 {
		t.Fatalf("expected at least one click, got %d", res.Clicks)
	}
}

func TestPlayRound_SensorMissRetries(t *testing.T) {
	// First capture misses; the tick retries and the round then ends on the
	// invalid observation.
	dev := &device.MockController{Frames: []image.Image{nil, frame()}}
	ext := vision.NewExtractor(&vision.CannedRecognizer{})

	res := PlayRound(context.Background(), dev, ext, testRoundConfig(), nil)
	if res.Outcome != model.RoundSuccess {
		t.Fatalf("expected success, got %s", res.Outcome)
	}
}

func TestPlayRound_IdleWaitForZoneCollapse(t *testing.T) {
	// No reachable target while the bonus union is collapsing: the loop waits
	// out the collapse, restarts its clock, and continues.
	p := testParams()
	p.ActionBuffer = 10 // force the vanish-margin test to fail
	rec := &seqRecognizer{steps: []vision.CannedRecognizer{
		{
			Cursor: cursorAt(500),
			Bonus:  zonesAt(model.Interval{Start: 600, End: 612}),
		},
		{}, // bar gone on the next tick
	}}
	dev := &device.MockController{Frames: []image.Image{frame()}}
	ext := vision.NewExtractor(rec)
	cfg := testRoundConfig()
	cfg.Params = p

	start := time.Now()
	res := PlayRound(context.Background(), dev, ext, cfg, nil)
	if res.Outcome != model.RoundSuccess {
		t.Fatalf("expected success, got %s", res.Outcome)
	}
	// Vanish time for a 12px union at 0.83px/frame is ~0.12s.
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("expected the loop to wait out the zone collapse, returned after %v", elapsed)
	}
}

func TestPlayRound_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dev := &device.MockController{Frames: []image.Image{frame()}}
	ext := vision.NewExtractor(&vision.CannedRecognizer{})

	res := PlayRound(ctx, dev, ext, testRoundConfig(), nil)
	if res.Outcome != model.RoundAborted {
		t.Fatalf("expected aborted, got %s", res.Outcome)
	}
}

func TestPlayRound_EmitsEvents(t *testing.T) {
	var events struct {
		mu                       sync.Mutex
		ticks, decided, finished int
		clicks                   int
	}
	ev := &recordingEvents{
		onTick:    func() { events.mu.Lock(); events.ticks++; events.mu.Unlock() },
		onDecided: func() { events.mu.Lock(); events.decided++; events.mu.Unlock() },
		onClick:   func() { events.mu.Lock(); events.clicks++; events.mu.Unlock() },
		onDone:    func() { events.mu.Lock(); events.finished++; events.mu.Unlock() },
	}

	rec := &seqRecognizer{steps: []vision.CannedRecognizer{
		{
			Cursor:   cursorAt(500),
			Critical: zonesAt(model.Interval{Start: 504, End: 524}),
		},
		{},
	}}
	dev := &device.MockController{Frames: []image.Image{frame()}}
	PlayRound(context.Background(), dev, vision.NewExtractor(rec), testRoundConfig(), ev)

	if events.ticks < 2 || events.decided < 1 || events.clicks != 1 || events.finished != 1 {
		t.Errorf("unexpected event counts: ticks=%d decided=%d clicks=%d finished=%d",
			events.ticks, events.decided, events.clicks, events.finished)
	}
}

type recordingEvents struct {
	onTick, onDecided, onClick, onDone func()
}

func (r *recordingEvents) Tick(int, model.Observation)   { r.onTick() }
func (r *recordingEvents) Decided(model.ClickDecision)   { r.onDecided() }
func (r *recordingEvents) Clicked(int, model.TargetKind) { r.onClick() }
func (r *recordingEvents) Finished(model.RoundResult)    { r.onDone() }
