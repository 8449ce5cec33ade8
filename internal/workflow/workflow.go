package workflow

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/models"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/routes"
)

// StateTag identifies one state of the route generation workflow.
type StateTag string

const (
	StateIdle            StateTag = "idle"
	StateLoadingRoutes   StateTag = "loading_routes"
	StateNoPendingRoute  StateTag = "no_pending_route"
	StateReadyToOptimize StateTag = "ready_to_optimize"
	StateOptimizing      StateTag = "optimizing"
	StateOptimized       StateTag = "optimized"
	StateFailed          StateTag = "failed"
)

// NoPendingRouteMessage is the informational text for vehicles with nothing
// actionable. It is an expected outcome, not an error.
const NoPendingRouteMessage = "no pending routes to optimize for this vehicle"

// FetchFailedMessage is the generic user-facing text for fetch failures.
const FetchFailedMessage = "could not load routes"

// State is one snapshot of the workflow. Candidate is set from
// ReadyToOptimize onward; Route only in Optimized; Message carries the
// failure text in Failed and the informational text in NoPendingRoute.
type State struct {
	Tag       StateTag      `json:"state"`
	VehicleID string        `json:"vehicleId,omitempty"`
	Candidate *models.Route `json:"candidate,omitempty"`
	Route     *models.Route `json:"route,omitempty"`
	Message   string        `json:"message,omitempty"`
}

var (
	// ErrBusy rejects a trigger while the corresponding call is in flight.
	ErrBusy = errors.New("a request is already in flight")
	// ErrOptimizeUnavailable rejects the optimize trigger in any state
	// without a selected candidate route.
	ErrOptimizeUnavailable = errors.New("optimize is not available in the current state")
	// ErrClosed rejects triggers on a torn-down workflow.
	ErrClosed = errors.New("workflow is closed")
)

// Controller drives the route generation workflow for one vehicle: fetch the
// candidate route, gate the optimize trigger, and hold the latest outcome.
// One Controller per open workflow; instances are never shared across
// vehicles. At most one fetch and one optimize call are in flight at a time.
type Controller struct {
	gateway routes.Gateway
	logger  zerolog.Logger

	mu     sync.Mutex
	closed bool
	gen    int
	state  State
}

func New(gateway routes.Gateway, logger zerolog.Logger) *Controller {
	return &Controller{
		gateway: gateway,
		logger:  logger,
		state:   State{Tag: StateIdle},
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start opens the workflow for a vehicle: fetches its routes and selects the
// first pending one, in gateway return order, as the candidate. Calling
// Start again re-enters the flow (a fresh user action after a failure, or a
// different vehicle); it is rejected only while a call is in flight.
func (c *Controller) Start(ctx context.Context, vehicleID string) (State, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return State{}, ErrClosed
	}
	if c.state.Tag == StateLoadingRoutes || c.state.Tag == StateOptimizing {
		state := c.state
		c.mu.Unlock()
		return state, ErrBusy
	}
	c.gen++
	gen := c.gen
	c.state = State{Tag: StateLoadingRoutes, VehicleID: vehicleID}
	c.mu.Unlock()

	fetched, err := c.gateway.FetchRoutesForVehicle(ctx, vehicleID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.gen != gen {
		// The workflow moved on; a stale response must not corrupt it.
		return c.state, nil
	}
	if err != nil {
		c.logger.Error().Err(err).Str("vehicle_id", vehicleID).Msg("fetch routes failed")
		c.state = State{Tag: StateFailed, VehicleID: vehicleID, Message: FetchFailedMessage}
		return c.state, nil
	}

	if candidate := firstPending(fetched); candidate != nil {
		c.state = State{Tag: StateReadyToOptimize, VehicleID: vehicleID, Candidate: candidate}
	} else {
		c.state = State{Tag: StateNoPendingRoute, VehicleID: vehicleID, Message: NoPendingRouteMessage}
	}
	return c.state, nil
}

// Optimize triggers the remote optimization for the selected candidate. It
// is a no-op while already Optimizing or Optimized (no duplicate call is
// issued), can be re-triggered from a failed optimize, and is rejected in
// every other state.
func (c *Controller) Optimize(ctx context.Context, params routes.OptimizeParams) (State, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return State{}, ErrClosed
	}
	switch c.state.Tag {
	case StateOptimizing, StateOptimized:
		state := c.state
		c.mu.Unlock()
		return state, nil
	case StateReadyToOptimize:
	case StateFailed:
		if c.state.Candidate == nil {
			state := c.state
			c.mu.Unlock()
			return state, ErrOptimizeUnavailable
		}
	default:
		state := c.state
		c.mu.Unlock()
		return state, ErrOptimizeUnavailable
	}
	candidate := *c.state.Candidate
	gen := c.gen
	c.state = State{Tag: StateOptimizing, VehicleID: c.state.VehicleID, Candidate: &candidate}
	c.mu.Unlock()

	optimized, err := c.gateway.OptimizeRoute(ctx, candidate.ID, params)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.gen != gen || c.state.Tag != StateOptimizing {
		return c.state, nil
	}
	if err != nil {
		c.logger.Error().Err(err).Str("route_id", candidate.ID).Msg("optimize route failed")
		// Keep the candidate so the user can re-trigger the same action.
		c.state = State{
			Tag:       StateFailed,
			VehicleID: c.state.VehicleID,
			Candidate: &candidate,
			Message:   err.Error(),
		}
		return c.state, nil
	}

	c.state = State{Tag: StateOptimized, VehicleID: c.state.VehicleID, Route: &optimized}
	return c.state, nil
}

// Close tears the workflow down. In-flight calls run to completion but
// their results are discarded; no observer remains.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func firstPending(all []models.Route) *models.Route {
	for i := range all {
		if all[i].Status == models.StatusPending {
			route := all[i]
			return &route
		}
	}
	return nil
}
