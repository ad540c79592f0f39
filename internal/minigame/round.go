package minigame

import (
	"context"
	"log"
	"time"

	"AutoAngler/internal/device"
	"AutoAngler/internal/model"
	"AutoAngler/internal/motion"
	"AutoAngler/internal/vision"
)

// RoundConfig holds everything one round needs besides its collaborators.
type RoundConfig struct {
	Params         Params
	Budget         time.Duration // per-cycle time budget; the clock restarts on click
	TapX           int
	TapY           int
	InputComp      time.Duration // fixed input-pipeline latency subtracted from each wait
	PostClickReset time.Duration // pause after a click while the cursor resets
}

// PlayRound runs one mini-game round: sample, decide, wait, act, until the
// budget runs out or the observation goes invalid. A round that loses the
// progress bar mid-flight ends as a success — in practice the minigame has
// closed because the fish was caught. Cancellation is polled at the top of
// every tick and during every sleep.
func PlayRound(ctx context.Context, dev device.Controller, ext *vision.Extractor, cfg RoundConfig, ev Events) model.RoundResult {
	if ev == nil {
		ev = NopEvents{}
	}
	started := time.Now()
	anchor := started
	clicks := 0

	finish := func(outcome model.RoundOutcome) model.RoundResult {
		r := model.RoundResult{Outcome: outcome, Clicks: clicks, Duration: time.Since(started)}
		ev.Finished(r)
		return r
	}

	for {
		select {
		case <-ctx.Done():
			return finish(model.RoundAborted)
		default:
		}

		// One monotonic read per tick feeds both the frame index and the
		// budget check.
		tickStart := time.Now()
		elapsed := tickStart.Sub(anchor)
		frameIndex := int(elapsed.Seconds() * cfg.Params.FrameRate)

		if elapsed > cfg.Budget {
			if clicks > 0 {
				return finish(model.RoundSuccess)
			}
			return finish(model.RoundTimeout)
		}

		frame, err := dev.Screencap(ctx)
		if err != nil {
			log.Printf("[WARN] screencap failed, retrying: %v", err)
			continue
		}
		if frame == nil {
			continue
		}

		obs := ext.Observe(frame)
		ev.Tick(frameIndex, obs)
		if !obs.Valid {
			return finish(model.RoundSuccess)
		}

		d := Decide(obs, frameIndex, cfg.Params)
		ev.Decided(d)

		if d.Target == model.TargetNone {
			// Nothing reachable. If the bonus union is still collapsing, wait
			// it out: the cursor resets when the zone regenerates.
			if union, ok := motion.Union(obs.BonusZones); ok {
				if v := motion.TimeToVanish(union, cfg.Params.ShrinkRate, cfg.Params.FrameRate); v > 0 {
					if !sleepCtx(ctx, secondsToDuration(v)) {
						return finish(model.RoundAborted)
					}
					anchor = time.Now()
				}
			}
			continue
		}

		analysis := time.Since(tickStart)
		wait := secondsToDuration(d.WaitSeconds) - analysis - cfg.InputComp
		if wait > 0 {
			if !sleepCtx(ctx, wait) {
				return finish(model.RoundAborted)
			}
		}

		if err := dev.Tap(ctx, cfg.TapX, cfg.TapY); err != nil {
			log.Printf("[WARN] tap failed: %v", err)
		} else {
			clicks++
			ev.Clicked(clicks, d.Target)
		}

		// Let the cursor visibly reset before sampling again.
		if cfg.PostClickReset > 0 && !sleepCtx(ctx, cfg.PostClickReset) {
			return finish(model.RoundAborted)
		}
		anchor = time.Now()
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
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
