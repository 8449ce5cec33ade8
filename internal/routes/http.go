package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/models"
)

const fetchLimit = 100

// HTTPGateway talks to the logistics route service over REST.
type HTTPGateway struct {
	BaseURL string
	Client  *http.Client
}

// listEnvelope is the wrapped list shape some deployments of the route
// service return; others return a bare array. Both are normalized here so
// callers only ever see []models.Route.
type listEnvelope struct {
	Data []models.Route `json:"data"`
}

func (g *HTTPGateway) FetchRoutesForVehicle(ctx context.Context, vehicleID string) ([]models.Route, error) {
	endpoint := fmt.Sprintf("%s/rutas?vehicle_id=%s&limit=%d",
		strings.TrimRight(g.BaseURL, "/"), url.QueryEscape(vehicleID), fetchLimit)

	body, err := g.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}
	var list []models.Route
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode routes response: %w", err)
	}
	return list, nil
}

func (g *HTTPGateway) OptimizeRoute(ctx context.Context, routeID string, params OptimizeParams) (models.Route, error) {
	params = params.WithDefaults()

	query := url.Values{}
	query.Set("start_lat", strconv.FormatFloat(params.StartLat, 'f', -1, 64))
	query.Set("start_lon", strconv.FormatFloat(params.StartLon, 'f', -1, 64))
	query.Set("avg_speed_kmh", strconv.FormatFloat(params.AvgSpeedKmh, 'f', -1, 64))
	endpoint := fmt.Sprintf("%s/rutas/%s/optimize?%s",
		strings.TrimRight(g.BaseURL, "/"), url.PathEscape(routeID), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return models.Route{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client().Do(req)
	if err != nil {
		return models.Route{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Route{}, optimizeStatusError(resp)
	}

	var route models.Route
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		return models.Route{}, fmt.Errorf("decode optimized route: %w", err)
	}
	return route, nil
}

func (g *HTTPGateway) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client().Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Status: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// optimizeStatusError prefers the server-supplied detail string when the
// body carries one, falling back to the generic transport message.
func optimizeStatusError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && strings.TrimSpace(body.Detail) != "" {
			return &DomainError{Detail: body.Detail}
		}
	}
	return &TransportError{Status: resp.StatusCode}
}

var defaultClient = &http.Client{Timeout: 15 * time.Second}

// client must not write back to the gateway; instances are shared across
// concurrent handlers.
func (g *HTTPGateway) client() *http.Client {
	if g.Client == nil {
		return defaultClient
	}
	return g.Client
}
