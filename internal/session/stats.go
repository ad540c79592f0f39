package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"AutoAngler/internal/model"
)

// StatsManager owns the process-wide fishing totals with concurrency safety.
// Totals survive restarts through a JSON state file.
type StatsManager struct {
	mu       sync.Mutex
	stats    *model.SessionStats
	filePath string
}

// NewStatsManager creates a StatsManager, loading or initializing state from disk.
func NewStatsManager(filePath string) (*StatsManager, error) {
	stats, err := loadStats(filePath)
	if err != nil {
		return nil, err
	}
	return &StatsManager{stats: stats, filePath: filePath}, nil
}

// loadStats reads stats from a JSON file. Returns zero stats if the file doesn't exist.
func loadStats(filePath string) (*model.SessionStats, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.SessionStats{}, nil
		}
		return nil, err
	}
	var stats model.SessionStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (m *StatsManager) save() error {
	m.stats.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(m.stats, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(m.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(m.filePath, data, 0644)
}

// Snapshot returns a copy of the current stats.
func (m *StatsManager) Snapshot() model.SessionStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.stats
}

// RecordAttempt counts one cast.
func (m *StatsManager) RecordAttempt() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.FishAttempted++
	return m.save()
}

// RecordCatch counts one successful round and returns how many fish have
// accumulated since the last sell.
func (m *StatsManager) RecordCatch() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.FishCaught++
	m.stats.FishSinceSell++
	return m.stats.FishSinceSell, m.save()
}

// RecordSell counts one sell trigger and resets the since-sell counter.
// Returns the lifetime sell count.
func (m *StatsManager) RecordSell() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.SellCount++
	m.stats.FishSinceSell = 0
	return m.stats.SellCount, m.save()
}

// SessionStarted counts one session launch.
func (m *StatsManager) SessionStarted() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.SessionsRun++
	m.stats.LastSessionAt = time.Now()
	return m.save()
}
