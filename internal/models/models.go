package models

// Route is one vehicle's delivery route for a given date. Stops and the
// aggregate metrics stay zero until the route has been optimized; only a
// route with status "pending" is actionable.
type Route struct {
	ID              string      `json:"id"`
	VehicleID       string      `json:"vehicleId"`
	Date            string      `json:"date,omitempty"`
	TotalDistanceKm float64     `json:"totalDistanceKm"`
	EstimatedTimeH  float64     `json:"estimatedTimeH"`
	PriorityLevel   string      `json:"priorityLevel"`
	Status          string      `json:"status"`
	Stops           []RouteStop `json:"stops,omitempty"`
	CreatedAt       string      `json:"createdAt,omitempty"`
	UpdatedAt       string      `json:"updatedAt,omitempty"`
}

const StatusPending = "pending"

// RouteStop is a single delivery point within a route. Sequence is 1-based,
// unique and strictly increasing within the route's stop list. Either
// coordinate may be null, in which case the stop cannot be placed on a map.
type RouteStop struct {
	ID               string   `json:"id"`
	RouteID          string   `json:"routeId"`
	ClientID         string   `json:"clientId"`
	Sequence         int      `json:"sequence"`
	EstimatedArrival string   `json:"estimatedArrival,omitempty"`
	Delivered        bool     `json:"delivered"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Address          *string  `json:"address"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
}

// Placeable reports whether the stop carries both coordinates.
func (s RouteStop) Placeable() bool {
	return s.Latitude != nil && s.Longitude != nil
}
