package model

import "time"

// SessionStats tracks running totals across fishing sessions.
type SessionStats struct {
	FishAttempted int       `json:"fish_attempted"`
	FishCaught    int       `json:"fish_caught"`
	FishSinceSell int       `json:"fish_since_sell"`
	SellCount     int       `json:"sell_count"`
	SessionsRun   int       `json:"sessions_run"`
	LastSessionAt time.Time `json:"last_session_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SessionSummary is the outcome of one completed fishing session.
type SessionSummary struct {
	ID           string
	RoundsPlayed int
	FishCaught   int
	Sells        int
	StartedAt    time.Time
	EndedAt      time.Time
}
