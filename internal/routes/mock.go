package routes

import (
	"context"
	"fmt"
	"time"

	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/models"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/utils"
)

// MockGateway serves deterministic fixtures derived from the vehicle id, so
// the service can run without the route backend (demos, local dev).
type MockGateway struct{}

var mockClients = []struct {
	clientID string
	lat, lon float64
	address  string
}{
	{"CLI-001", 4.6534, -74.0548, "Cra 7 # 72-41, Bogotá"},
	{"CLI-002", 4.6486, -74.1098, "Av Boyacá # 12-50, Bogotá"},
	{"CLI-003", 4.7110, -74.0721, "Cll 170 # 45-30, Bogotá"},
	{"CLI-004", 4.5981, -74.0760, "Cra 10 # 26-71, Bogotá"},
	{"CLI-005", 4.6668, -74.0560, "Cll 85 # 11-53, Bogotá"},
}

func (MockGateway) FetchRoutesForVehicle(ctx context.Context, vehicleID string) ([]models.Route, error) {
	h := utils.HashStringToUint64(vehicleID)
	if h%7 == 0 {
		// Some vehicles have nothing actionable.
		return []models.Route{mockRoute(vehicleID, 1, "completed")}, nil
	}

	routes := []models.Route{}
	if h%3 == 0 {
		routes = append(routes, mockRoute(vehicleID, 1, "completed"))
	}
	routes = append(routes, mockRoute(vehicleID, 2, models.StatusPending))
	return routes, nil
}

func (MockGateway) OptimizeRoute(ctx context.Context, routeID string, params OptimizeParams) (models.Route, error) {
	params = params.WithDefaults()
	h := utils.HashStringToUint64(routeID)
	stopCount := 3 + int(h%uint64(len(mockClients)-2))

	route := models.Route{
		ID:            routeID,
		VehicleID:     fmt.Sprintf("VEH-%03d", h%900+100),
		Status:        models.StatusPending,
		PriorityLevel: "media",
		Date:          time.Now().UTC().Format("2006-01-02"),
	}

	prevLat, prevLon := params.StartLat, params.StartLon
	for i := 0; i < stopCount; i++ {
		c := mockClients[(h+uint64(i))%uint64(len(mockClients))]
		lat, lon, addr := c.lat, c.lon, c.address
		route.Stops = append(route.Stops, models.RouteStop{
			ID:        fmt.Sprintf("%s-stop-%d", routeID, i+1),
			RouteID:   routeID,
			ClientID:  c.clientID,
			Sequence:  i + 1,
			Latitude:  &lat,
			Longitude: &lon,
			Address:   &addr,
		})
		route.TotalDistanceKm += utils.HaversineKm(prevLat, prevLon, lat, lon)
		prevLat, prevLon = lat, lon
	}
	route.EstimatedTimeH = route.TotalDistanceKm / params.AvgSpeedKmh
	return route, nil
}

func mockRoute(vehicleID string, n int, status string) models.Route {
	return models.Route{
		ID:            fmt.Sprintf("%s-route-%d", vehicleID, n),
		VehicleID:     vehicleID,
		Status:        status,
		PriorityLevel: "alta",
		Date:          time.Now().UTC().Format("2006-01-02"),
	}
}
