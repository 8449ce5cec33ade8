package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNoRuns is returned when no optimization run has been recorded yet.
var ErrNoRuns = errors.New("no runs recorded")

// MemoryRecorder keeps run records in process memory. Used when no
// DATABASE_URL is configured; records are lost on restart.
type MemoryRecorder struct {
	mu   sync.Mutex
	seq  int
	runs []RunRecord
}

func (m *MemoryRecorder) Ping(ctx context.Context) error { return nil }

func (m *MemoryRecorder) CreateRun(ctx context.Context, vehicleID, routeID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("run-%d", m.seq)
	m.runs = append(m.runs, RunRecord{
		ID:        id,
		VehicleID: vehicleID,
		RouteID:   routeID,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	})
	return id, nil
}

func (m *MemoryRecorder) FinishRun(ctx context.Context, runID, status, message string, durationMs int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.runs {
		if m.runs[i].ID == runID {
			now := time.Now().UTC()
			m.runs[i].Status = status
			m.runs[i].Message = message
			m.runs[i].DurationMs = durationMs
			m.runs[i].FinishedAt = &now
			return nil
		}
	}
	return fmt.Errorf("run %s not found", runID)
}

func (m *MemoryRecorder) LatestRun(ctx context.Context) (RunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.runs) == 0 {
		return RunRecord{}, ErrNoRuns
	}
	return m.runs[len(m.runs)-1], nil
}
