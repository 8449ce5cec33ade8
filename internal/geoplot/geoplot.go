package geoplot

import (
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/models"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/utils"
)

// boundsPaddingDeg expands the bounding box on every side so a single stop
// (a zero-area box) still projects without dividing by zero.
const boundsPaddingDeg = 0.01

// Canvas is the logical drawing surface the stops are projected onto.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var DefaultCanvas = Canvas{Width: 500, Height: 300}

type PathOp string

const (
	OpMove PathOp = "move"
	OpLine PathOp = "line"
)

// PathPoint is one vertex of the connective polyline, in canvas units.
type PathPoint struct {
	Op PathOp  `json:"op"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type MarkerRole string

const (
	RoleOrigin      MarkerRole = "origin"
	RoleWaypoint    MarkerRole = "waypoint"
	RoleDestination MarkerRole = "destination"
	// RoleOriginDestination marks a single-stop route, where the first and
	// last point coincide.
	RoleOriginDestination MarkerRole = "origin-destination"
)

// Marker is a positioned stop on the canvas.
type Marker struct {
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Role     MarkerRole `json:"role"`
	Sequence int        `json:"sequence"`
	ClientID string     `json:"clientId"`
	Address  *string    `json:"address"`
}

// RenderPlan is everything a drawing surface needs to paint the route.
// HasCoordinates is false when no stop carried both coordinates; Path and
// Markers are empty in that case.
type RenderPlan struct {
	Canvas         Canvas      `json:"canvas"`
	HasCoordinates bool        `json:"hasCoordinates"`
	Path           []PathPoint `json:"path"`
	Markers        []Marker    `json:"markers"`
	ApproxPathKm   float64     `json:"approxPathKm"`
}

// Project maps the stops onto the canvas. Stops missing either coordinate
// are skipped; the rest are projected linearly inside the padded bounding
// box and connected in their given order. The vertical axis is inverted
// (north is a smaller y) because drawing surfaces grow downward.
//
// Project is pure: identical input always yields identical output and the
// stops slice is never mutated.
func Project(stops []models.RouteStop, canvas Canvas) RenderPlan {
	plan := RenderPlan{Canvas: canvas}

	placeable := make([]models.RouteStop, 0, len(stops))
	for _, s := range stops {
		if s.Placeable() {
			placeable = append(placeable, s)
		}
	}
	if len(placeable) == 0 {
		return plan
	}
	plan.HasCoordinates = true

	minLat, maxLat := *placeable[0].Latitude, *placeable[0].Latitude
	minLon, maxLon := *placeable[0].Longitude, *placeable[0].Longitude
	for _, s := range placeable[1:] {
		minLat = min(minLat, *s.Latitude)
		maxLat = max(maxLat, *s.Latitude)
		minLon = min(minLon, *s.Longitude)
		maxLon = max(maxLon, *s.Longitude)
	}
	minLat -= boundsPaddingDeg
	maxLat += boundsPaddingDeg
	minLon -= boundsPaddingDeg
	maxLon += boundsPaddingDeg
	width := maxLon - minLon
	height := maxLat - minLat

	for i, s := range placeable {
		x := (*s.Longitude - minLon) / width * canvas.Width
		y := (maxLat - *s.Latitude) / height * canvas.Height

		op := OpLine
		if i == 0 {
			op = OpMove
		}
		plan.Path = append(plan.Path, PathPoint{Op: op, X: x, Y: y})
		plan.Markers = append(plan.Markers, Marker{
			X:        x,
			Y:        y,
			Role:     markerRole(i, len(placeable)),
			Sequence: s.Sequence,
			ClientID: s.ClientID,
			Address:  s.Address,
		})

		if i > 0 {
			prev := placeable[i-1]
			plan.ApproxPathKm += utils.HaversineKm(*prev.Latitude, *prev.Longitude, *s.Latitude, *s.Longitude)
		}
	}
	return plan
}

func markerRole(i, total int) MarkerRole {
	switch {
	case total == 1:
		return RoleOriginDestination
	case i == 0:
		return RoleOrigin
	case i == total-1:
		return RoleDestination
	default:
		return RoleWaypoint
	}
}
