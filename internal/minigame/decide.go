package minigame

import (
	"AutoAngler/internal/model"
	"AutoAngler/internal/motion"
)

// Params holds every tuning value the decision logic reads. Decide sees no
// other state, so identical inputs always produce identical decisions.
type Params struct {
	CursorSpeed   float64 // px/frame
	ShrinkRate    float64 // px/frame
	FrameRate     float64
	CycleFrames   int
	Bounds        model.FieldBounds
	ActionBuffer  float64 // seconds between deciding and the tap landing
	SanityCeiling float64 // seconds beyond which a predicted wait is stale
	MinZoneWidth  float64 // px below which a shrinking zone is unusable
	CriticalOnly  bool
}

// Decide picks a click target for one tick. Critical zones are tried first;
// a critical target is only eligible while the cursor has not already swept
// past the last critical zone's far edge by the look-ahead margin. Either
// tier is rejected when its wait, padded by the action buffer, would overrun
// the bonus union's collapse.
func Decide(obs model.Observation, frameIndex int, p Params) model.ClickDecision {
	none := model.ClickDecision{Target: model.TargetNone}
	if !obs.Valid {
		return none
	}

	dir := motion.DirectionAt(frameIndex, p.CycleFrames)

	bonusUnion, hasBonus := motion.Union(obs.BonusZones)
	vanish := 0.0
	if hasBonus {
		vanish = motion.TimeToVanish(bonusUnion, p.ShrinkRate, p.FrameRate)
	}
	fits := func(wait float64) bool {
		return !hasBonus || wait+p.ActionBuffer < vanish
	}

	if len(obs.CriticalZones) > 0 {
		lookahead := p.CursorSpeed * p.ActionBuffer * p.FrameRate
		lastEnd := obs.CriticalZones[len(obs.CriticalZones)-1].End
		if obs.CursorX+lookahead < lastEnd {
			// Near edge in the direction of approach.
			first := obs.CriticalZones[0]
			target := first.Start
			if dir < 0 {
				target = first.End
			}
			wait, err := motion.TimeToReach(obs.CursorX, target, dir, p.Bounds, p.CursorSpeed, p.FrameRate)
			if err == nil && wait <= p.SanityCeiling && fits(wait) {
				return model.ClickDecision{Target: model.TargetCritical, WaitSeconds: wait}
			}
		}
	}

	if hasBonus && !p.CriticalOnly {
		wait, err := motion.TimeToReach(obs.CursorX, bonusUnion.Center(), dir, p.Bounds, p.CursorSpeed, p.FrameRate)
		if err == nil && wait <= p.SanityCeiling && fits(wait) {
			predicted := motion.SpanAfter(bonusUnion, wait*p.FrameRate, p.ShrinkRate)
			if !motion.Vanished(predicted, p.MinZoneWidth) {
				return model.ClickDecision{Target: model.TargetBonus, WaitSeconds: wait}
			}
		}
	}

	return none
}
