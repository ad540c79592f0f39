package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			session_id  TEXT,
			outcome     TEXT,
			clicks      INTEGER,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_ts ON rounds(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id            TEXT PRIMARY KEY,
			rounds_played INTEGER,
			fish_caught   INTEGER,
			sells         INTEGER,
			started_ts    INTEGER,
			ended_ts      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_ts)`,

		`CREATE TABLE IF NOT EXISTS sell_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			session_id  TEXT,
			total_sells INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sell_ts ON sell_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRound(rec *RoundRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO rounds
		(timestamp, session_id, outcome, clicks, duration_ms)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), rec.SessionID, rec.Outcome, rec.Clicks,
		rec.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) RecordSession(rec *SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR REPLACE INTO sessions
		(id, rounds_played, fish_caught, sells, started_ts, ended_ts)
		VALUES (?,?,?,?,?,?)`,
		rec.ID, rec.RoundsPlayed, rec.FishCaught, rec.Sells,
		rec.StartedAt.Unix(), rec.EndedAt.Unix(),
	)
	return err
}

func (r *SQLiteRecorder) RecordSell(rec *SellRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO sell_events
		(timestamp, session_id, total_sells)
		VALUES (?,?,?)`,
		time.Now().Unix(), rec.SessionID, rec.TotalSells,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
