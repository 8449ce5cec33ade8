package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunRecord is one recorded optimization attempt. Routes themselves are
// never persisted here; the record is back-office audit data only.
type RunRecord struct {
	ID         string     `json:"id"`
	VehicleID  string     `json:"vehicle_id"`
	RouteID    string     `json:"route_id"`
	Status     string     `json:"status"`
	Message    string     `json:"message,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	DurationMs int64      `json:"duration_ms"`
}

const (
	RunStatusRunning = "RUNNING"
	RunStatusSuccess = "SUCCESS"
	RunStatusFailed  = "FAILED"
)

// RunRecorder records optimization runs. Backed by Postgres when a database
// is configured, by process memory otherwise.
type RunRecorder interface {
	Ping(ctx context.Context) error
	CreateRun(ctx context.Context, vehicleID, routeID string) (string, error)
	FinishRun(ctx context.Context, runID, status, message string, durationMs int64) error
	LatestRun(ctx context.Context) (RunRecord, error)
}

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) CreateRun(ctx context.Context, vehicleID, routeID string) (string, error) {
	var id string
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO optimization_runs (vehicle_id, route_id, status, started_at)
		 VALUES ($1, $2, $3, NOW()) RETURNING id`,
		vehicleID, routeID, RunStatusRunning).Scan(&id)
	return id, err
}

func (s *Store) FinishRun(ctx context.Context, runID, status, message string, durationMs int64) error {
	_, err := s.Pool.Exec(ctx,
		`UPDATE optimization_runs
		 SET status = $1, message = $2, duration_ms = $3, finished_at = NOW()
		 WHERE id = $4`,
		status, message, durationMs, runID)
	return err
}

func (s *Store) LatestRun(ctx context.Context) (RunRecord, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT id, vehicle_id, route_id, status, message, started_at, finished_at, duration_ms
		 FROM optimization_runs ORDER BY started_at DESC LIMIT 1`)
	var r RunRecord
	if err := row.Scan(&r.ID, &r.VehicleID, &r.RouteID, &r.Status, &r.Message,
		&r.StartedAt, &r.FinishedAt, &r.DurationMs); err != nil {
		return RunRecord{}, err
	}
	return r, nil
}
