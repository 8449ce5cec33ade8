package db

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRecorderLifecycle(t *testing.T) {
	m := &MemoryRecorder{}
	ctx := context.Background()

	if _, err := m.LatestRun(ctx); !errors.Is(err, ErrNoRuns) {
		t.Fatalf("expected ErrNoRuns, got %v", err)
	}

	id, err := m.CreateRun(ctx, "v1", "r1")
	if err != nil {
		t.Fatalf("create run: %v", err)
	}
	if err := m.FinishRun(ctx, id, RunStatusSuccess, "", 120); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	record, err := m.LatestRun(ctx)
	if err != nil {
		t.Fatalf("latest run: %v", err)
	}
	if record.ID != id || record.Status != RunStatusSuccess || record.DurationMs != 120 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.FinishedAt == nil {
		t.Fatalf("expected finished timestamp")
	}
}

func TestMemoryRecorderFinishUnknownRun(t *testing.T) {
	m := &MemoryRecorder{}
	if err := m.FinishRun(context.Background(), "missing", RunStatusFailed, "boom", 0); err == nil {
		t.Fatalf("expected error for unknown run")
	}
}
