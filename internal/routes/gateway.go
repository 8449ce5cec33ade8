package routes

import (
	"context"
	"fmt"

	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/models"
)

// Gateway is the route query service consumed by the generation workflow.
// FetchRoutesForVehicle returns every known route for a vehicle, in server
// order; OptimizeRoute triggers the remote ordering heuristic and returns
// the route with its stops populated.
type Gateway interface {
	FetchRoutesForVehicle(ctx context.Context, vehicleID string) ([]models.Route, error)
	OptimizeRoute(ctx context.Context, routeID string, params OptimizeParams) (models.Route, error)
}

// OptimizeParams are the optimization inputs forwarded to the route service.
// Zero values fall back to the Bogotá depot defaults the service assumes.
type OptimizeParams struct {
	StartLat    float64 `json:"start_lat"`
	StartLon    float64 `json:"start_lon"`
	AvgSpeedKmh float64 `json:"avg_speed_kmh"`
}

const (
	DefaultStartLat    = 4.6097
	DefaultStartLon    = -74.0817
	DefaultAvgSpeedKmh = 40
)

// WithDefaults fills unset fields with the depot defaults.
func (p OptimizeParams) WithDefaults() OptimizeParams {
	if p.StartLat == 0 {
		p.StartLat = DefaultStartLat
	}
	if p.StartLon == 0 {
		p.StartLon = DefaultStartLon
	}
	if p.AvgSpeedKmh <= 0 {
		p.AvgSpeedKmh = DefaultAvgSpeedKmh
	}
	return p
}

// TransportError is a network failure or a non-2xx response that carried no
// machine-readable detail. Its message is intentionally generic.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DomainError is a client-error response whose body carried a server-supplied
// detail string. The detail is surfaced to the user verbatim.
type DomainError struct {
	Detail string
}

func (e *DomainError) Error() string { return e.Detail }
