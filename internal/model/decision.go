package model

import "time"

// TargetKind identifies which zone tier a click decision aims at.
type TargetKind string

const (
	TargetNone     TargetKind = "NONE"
	TargetCritical TargetKind = "CRITICAL"
	TargetBonus    TargetKind = "BONUS"
)

// ClickDecision is the per-tick output of the click scheduler.
// WaitSeconds is meaningful only when Target is not TargetNone.
type ClickDecision struct {
	Target      TargetKind
	WaitSeconds float64
}

// RoundOutcome classifies how a mini-game round ended.
type RoundOutcome string

const (
	RoundSuccess RoundOutcome = "SUCCESS"
	RoundTimeout RoundOutcome = "TIMEOUT"
	RoundAborted RoundOutcome = "ABORTED"
)

// RoundResult is the terminal value of one mini-game round.
type RoundResult struct {
	Outcome  RoundOutcome
	Clicks   int
	Duration time.Duration
}

// Caught reports whether the round counts as a successful catch.
func (r RoundResult) Caught() bool { return r.Outcome == RoundSuccess }
