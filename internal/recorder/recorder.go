package recorder

import "time"

// RoundRecord captures the outcome of one mini-game round.
type RoundRecord struct {
	SessionID string
	Outcome   string
	Clicks    int
	Duration  time.Duration
}

// SessionRecord captures one completed fishing session.
type SessionRecord struct {
	ID           string
	RoundsPlayed int
	FishCaught   int
	Sells        int
	StartedAt    time.Time
	EndedAt      time.Time
}

// SellRecord captures one sell-all-fish trigger.
type SellRecord struct {
	SessionID  string
	TotalSells int
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordRound(rec *RoundRecord) error
	RecordSession(rec *SessionRecord) error
	RecordSell(rec *SellRecord) error
	Close() error
}
