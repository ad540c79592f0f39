package session

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"AutoAngler/internal/config"
	"AutoAngler/internal/device"
	"AutoAngler/internal/minigame"
	"AutoAngler/internal/model"
	"AutoAngler/internal/recorder"
	"AutoAngler/internal/vision"
)

// Session drives the outer fishing loop: cast, wait for a bite, play the
// mini-game round, settle, and sell every N catches.
type Session struct {
	Dev    device.Controller
	Ext    *vision.Extractor
	Stats  *StatsManager
	Rec    recorder.Recorder
	Cfg    *config.Config
	Events minigame.Events
}

// New wires a session from its collaborators.
func New(dev device.Controller, ext *vision.Extractor, stats *StatsManager, rec recorder.Recorder, cfg *config.Config, ev minigame.Events) *Session {
	return &Session{Dev: dev, Ext: ext, Stats: stats, Rec: rec, Cfg: cfg, Events: ev}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Run fishes for up to MaxRounds casts or until ctx is cancelled, and returns
// a summary of the session.
func (s *Session) Run(ctx context.Context) (*model.SessionSummary, error) {
	sum := &model.SessionSummary{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}
	if err := s.Stats.SessionStarted(); err != nil {
		log.Printf("[WARN] persist session start: %v", err)
	}
	log.Printf("[INFO] fishing session %s started (max %d rounds)", sum.ID, s.Cfg.Session.MaxRounds)

	for i := 0; i < s.Cfg.Session.MaxRounds; i++ {
		if ctx.Err() != nil {
			break
		}

		if err := s.castRod(ctx); err != nil {
			log.Printf("[WARN] cast rod: %v", err)
			continue
		}
		if err := s.Stats.RecordAttempt(); err != nil {
			log.Printf("[WARN] persist attempt: %v", err)
		}

		bit, err := s.waitForBite(ctx)
		if err != nil {
			log.Printf("[WARN] wait for bite: %v", err)
			continue
		}
		if !bit {
			log.Println("[INFO] no bite before timeout, recasting")
			continue
		}
		log.Println("[INFO] fish on the hook, entering minigame")
		if !sleepCtx(ctx, seconds(s.Cfg.Timing.AfterCast)) {
			break
		}

		res := s.playRound(ctx)
		sum.RoundsPlayed++
		if err := s.Rec.RecordRound(&recorder.RoundRecord{
			SessionID: sum.ID,
			Outcome:   string(res.Outcome),
			Clicks:    res.Clicks,
			Duration:  res.Duration,
		}); err != nil {
			log.Printf("[ERROR] record round: %v", err)
		}
		if res.Outcome == model.RoundAborted {
			break
		}

		s.settle(ctx)

		if res.Caught() {
			sinceSell, err := s.Stats.RecordCatch()
			if err != nil {
				log.Printf("[WARN] persist catch: %v", err)
			}
			sum.FishCaught++
			log.Printf("[INFO] fish caught (%d this session, %d since last sell)", sum.FishCaught, sinceSell)
			if sinceSell >= s.Cfg.Session.SellEvery {
				s.sellFish(ctx, sum)
			}
		} else {
			log.Printf("[INFO] round ended without a catch: %s", res.Outcome)
		}
	}

	sum.EndedAt = time.Now()
	if err := s.Rec.RecordSession(&recorder.SessionRecord{
		ID:           sum.ID,
		RoundsPlayed: sum.RoundsPlayed,
		FishCaught:   sum.FishCaught,
		Sells:        sum.Sells,
		StartedAt:    sum.StartedAt,
		EndedAt:      sum.EndedAt,
	}); err != nil {
		log.Printf("[ERROR] record session: %v", err)
	}
	log.Printf("[INFO] session %s finished: %d/%d rounds caught", sum.ID, sum.FishCaught, sum.RoundsPlayed)
	return sum, nil
}

func (s *Session) castRod(ctx context.Context) error {
	p := s.Cfg.Points.CastRod
	return s.Dev.Hold(ctx, p.X, p.Y, time.Duration(s.Cfg.Timing.CastHoldMs)*time.Millisecond)
}

// waitForBite polls for the took-bait indicator until it appears or the bite
// timeout lapses.
func (s *Session) waitForBite(ctx context.Context) (bool, error) {
	deadline := time.Now().Add(seconds(s.Cfg.Timing.BiteTimeout))
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		frame, err := s.Dev.Screencap(ctx)
		if err != nil {
			return false, err
		}
		if frame != nil && s.Ext.BiteDetected(frame) {
			return true, nil
		}
		if !sleepCtx(ctx, seconds(s.Cfg.Timing.BitePollInterval)) {
			return false, ctx.Err()
		}
	}
	return false, nil
}

func (s *Session) playRound(ctx context.Context) model.RoundResult {
	m := s.Cfg.Motion
	t := s.Cfg.Timing
	return minigame.PlayRound(ctx, s.Dev, s.Ext, minigame.RoundConfig{
		Params: minigame.Params{
			CursorSpeed:   m.CursorSpeed,
			ShrinkRate:    m.ShrinkRate,
			FrameRate:     m.FrameRate,
			CycleFrames:   m.CycleFrames,
			Bounds:        model.FieldBounds{Left: m.FieldLeft, Right: m.FieldRight},
			ActionBuffer:  t.ActionBuffer,
			SanityCeiling: t.SanityCeiling,
			MinZoneWidth:  m.MinZoneWidth,
			CriticalOnly:  s.Cfg.Session.CriticalOnly,
		},
		Budget:         seconds(t.RoundBudget),
		TapX:           s.Cfg.Points.CastRod.X,
		TapY:           s.Cfg.Points.CastRod.Y,
		InputComp:      seconds(t.InputCompensation),
		PostClickReset: seconds(t.PostClickReset),
	}, s.Events)
}

// settle dismisses the catch screen with a tap at the fixed settle point.
func (s *Session) settle(ctx context.Context) {
	if !sleepCtx(ctx, seconds(s.Cfg.Timing.SettleDelay)) {
		return
	}
	p := s.Cfg.Points.Settle
	if err := s.Dev.Tap(ctx, p.X, p.Y); err != nil {
		log.Printf("[WARN] settle tap: %v", err)
	}
	sleepCtx(ctx, seconds(s.Cfg.Timing.SettleDelay))
}

func (s *Session) sellFish(ctx context.Context, sum *model.SessionSummary) {
	log.Println("[INFO] sell threshold reached, selling fish")
	open, confirm := s.Cfg.Points.SellOpen, s.Cfg.Points.SellConfirm
	if err := s.Dev.Tap(ctx, open.X, open.Y); err != nil {
		log.Printf("[WARN] sell open tap: %v", err)
		return
	}
	if !sleepCtx(ctx, seconds(s.Cfg.Timing.SellClickInterval)) {
		return
	}
	if err := s.Dev.Tap(ctx, confirm.X, confirm.Y); err != nil {
		log.Printf("[WARN] sell confirm tap: %v", err)
		return
	}
	sleepCtx(ctx, seconds(s.Cfg.Timing.SellClickInterval))

	total, err := s.Stats.RecordSell()
	if err != nil {
		log.Printf("[WARN] persist sell: %v", err)
	}
	sum.Sells++
	if err := s.Rec.RecordSell(&recorder.SellRecord{SessionID: sum.ID, TotalSells: total}); err != nil {
		log.Printf("[ERROR] record sell: %v", err)
	}
	log.Printf("[INFO] sell complete (lifetime sells: %d)", total)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
