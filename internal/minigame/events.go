package minigame

import (
	"log"

	"AutoAngler/internal/model"
)

// Events receives structured notifications from a round in progress.
// Formatting and printing live in the implementation, not in the loop.
type Events interface {
	Tick(frameIndex int, obs model.Observation)
	Decided(d model.ClickDecision)
	Clicked(clicks int, target model.TargetKind)
	Finished(r model.RoundResult)
}

// NopEvents discards all notifications.
type NopEvents struct{}

func (NopEvents) Tick(int, model.Observation)   {}
func (NopEvents) Decided(model.ClickDecision)   {}
func (NopEvents) Clicked(int, model.TargetKind) {}
func (NopEvents) Finished(model.RoundResult)    {}

// LogEvents prints round progress through the standard logger.
type LogEvents struct{}

func (LogEvents) Tick(frameIndex int, obs model.Observation) {
	log.Printf("[DEBUG] tick frame=%d cursor=%.0f bonus=%d critical=%d valid=%v",
		frameIndex, obs.CursorX, len(obs.BonusZones), len(obs.CriticalZones), obs.Valid)
}

func (LogEvents) Decided(d model.ClickDecision) {
	if d.Target == model.TargetNone {
		log.Println("[DEBUG] no clickable target this tick")
		return
	}
	log.Printf("[INFO] targeting %s zone in %.3fs", d.Target, d.WaitSeconds)
}

func (LogEvents) Clicked(clicks int, target model.TargetKind) {
	log.Printf("[INFO] click #%d on %s zone", clicks, target)
}

func (LogEvents) Finished(r model.RoundResult) {
	log.Printf("[INFO] round finished: %s after %d clicks in %.1fs",
		r.Outcome, r.Clicks, r.Duration.Seconds())
}
