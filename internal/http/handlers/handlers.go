package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/db"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/geoplot"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/routes"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/summary"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/workflow"
)

type Handler struct {
	Gateway   routes.Gateway
	Runs      db.RunRecorder
	Validator *validator.Validate
	Logger    zerolog.Logger
	Canvas    geoplot.Canvas
	Defaults  routes.OptimizeParams

	mu        sync.Mutex
	seq       int
	workflows map[string]*session
}

// session pairs a workflow controller with a lock that serializes optimize
// requests, so concurrent triggers on one workflow write at most one run
// record per gateway call.
type session struct {
	ctrl  *workflow.Controller
	optMu sync.Mutex
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Runs.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary List routes for a vehicle
// @Tags routes
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} map[string]any
// @Router /api/vehicles/{id}/routes [get]
func (h *Handler) VehicleRoutes(c *gin.Context) {
	vehicleID := strings.TrimSpace(c.Param("id"))
	if vehicleID == "" {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "vehicle id is required", nil)
		return
	}

	items, err := h.Gateway.FetchRoutesForVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		h.Logger.Error().Err(err).Str("vehicle_id", vehicleID).Msg("fetch routes failed")
		writeError(c, http.StatusBadGateway, "UPSTREAM_ERROR", workflow.FetchFailedMessage, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary Open a route generation workflow
// @Tags workflow
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 201 {object} map[string]any
// @Router /api/vehicles/{id}/route-workflow [post]
func (h *Handler) OpenWorkflow(c *gin.Context) {
	vehicleID := strings.TrimSpace(c.Param("id"))
	if vehicleID == "" {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "vehicle id is required", nil)
		return
	}

	ctrl := workflow.New(h.Gateway, h.Logger)
	state, err := ctrl.Start(c.Request.Context(), vehicleID)
	if err != nil {
		writeError(c, http.StatusConflict, "WORKFLOW_BUSY", err.Error(), nil)
		return
	}

	h.mu.Lock()
	if h.workflows == nil {
		h.workflows = map[string]*session{}
	}
	h.seq++
	id := fmt.Sprintf("wf_%d_%d", time.Now().UnixNano(), h.seq)
	h.workflows[id] = &session{ctrl: ctrl}
	h.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"workflow_id": id, "workflow": h.snapshot(state)})
}

func (h *Handler) WorkflowState(c *gin.Context) {
	sess, ok := h.lookup(c.Param("wid"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Workflow not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workflow": h.snapshot(sess.ctrl.State())})
}

type OptimizeRequest struct {
	StartLat    *float64 `json:"start_lat" validate:"omitempty,gte=-90,lte=90"`
	StartLon    *float64 `json:"start_lon" validate:"omitempty,gte=-180,lte=180"`
	AvgSpeedKmh *float64 `json:"avg_speed_kmh" validate:"omitempty,gt=0,lte=200"`
}

// @Summary Trigger route optimization
// @Tags workflow
// @Accept json
// @Produce json
// @Param wid path string true "Workflow ID"
// @Param request body OptimizeRequest false "Optimization overrides"
// @Success 200 {object} map[string]any
// @Router /api/route-workflow/{wid}/optimize [post]
func (h *Handler) OptimizeWorkflow(c *gin.Context) {
	sess, ok := h.lookup(c.Param("wid"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Workflow not found", nil)
		return
	}
	ctrl := sess.ctrl

	var req OptimizeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
			return
		}
		if err := h.Validator.Struct(req); err != nil {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
			return
		}
	}

	params := h.Defaults
	if req.StartLat != nil {
		params.StartLat = *req.StartLat
	}
	if req.StartLon != nil {
		params.StartLon = *req.StartLon
	}
	if req.AvgSpeedKmh != nil {
		params.AvgSpeedKmh = *req.AvgSpeedKmh
	}

	sess.optMu.Lock()
	defer sess.optMu.Unlock()

	before := ctrl.State()
	runID := ""
	if before.Candidate != nil {
		var err error
		runID, err = h.Runs.CreateRun(c.Request.Context(), before.VehicleID, before.Candidate.ID)
		if err != nil {
			h.Logger.Error().Err(err).Msg("failed to create run record")
		}
	}
	start := time.Now()

	state, err := ctrl.Optimize(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, workflow.ErrClosed) {
			writeError(c, http.StatusGone, "WORKFLOW_CLOSED", "Workflow is closed", nil)
			return
		}
		writeError(c, http.StatusConflict, "OPTIMIZE_UNAVAILABLE", err.Error(), nil)
		return
	}

	if runID != "" {
		status := db.RunStatusSuccess
		if state.Tag != workflow.StateOptimized {
			status = db.RunStatusFailed
		}
		if finishErr := h.Runs.FinishRun(c.Request.Context(), runID, status, state.Message,
			time.Since(start).Milliseconds()); finishErr != nil {
			h.Logger.Error().Err(finishErr).Msg("failed to finish run record")
		}
	}

	// A failed optimization is still a 200: the workflow carries the message
	// and the client surfaces it as a notification, not a page error.
	c.JSON(http.StatusOK, gin.H{"workflow": h.snapshot(state)})
}

func (h *Handler) CloseWorkflow(c *gin.Context) {
	id := c.Param("wid")
	h.mu.Lock()
	sess, ok := h.workflows[id]
	if ok {
		delete(h.workflows, id)
	}
	h.mu.Unlock()
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Workflow not found", nil)
		return
	}
	sess.ctrl.Close()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Latest optimization run
// @Tags runs
// @Produce json
// @Success 200 {object} db.RunRecord
// @Router /api/runs/latest [get]
func (h *Handler) RunsLatest(c *gin.Context) {
	record, err := h.Runs.LatestRun(c.Request.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, db.ErrNoRuns) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "No runs found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load latest run", err.Error())
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) lookup(id string) (*session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, ok := h.workflows[id]
	return sess, ok
}

// snapshot shapes a workflow state for the client; an optimized route is
// handed to the pure projection and summary helpers here, never inside the
// state machine.
func (h *Handler) snapshot(state workflow.State) gin.H {
	resp := gin.H{"state": state.Tag}
	if state.VehicleID != "" {
		resp["vehicle_id"] = state.VehicleID
	}
	if state.Message != "" {
		resp["message"] = state.Message
	}
	if state.Candidate != nil {
		resp["candidate"] = state.Candidate
	}
	if state.Route != nil {
		resp["route"] = state.Route
		resp["summary"] = summary.Summarize(*state.Route)
		resp["render_plan"] = geoplot.Project(state.Route.Stops, h.Canvas)
	}
	return resp
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
