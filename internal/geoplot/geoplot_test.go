package geoplot

import (
	"math"
	"reflect"
	"testing"

	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/models"
)

func stop(seq int, lat, lon float64) models.RouteStop {
	return models.RouteStop{
		ID:        "s",
		ClientID:  "c",
		Sequence:  seq,
		Latitude:  &lat,
		Longitude: &lon,
	}
}

func TestProjectTwoStops(t *testing.T) {
	stops := []models.RouteStop{
		stop(1, 4.6097, -74.0817),
		stop(2, 4.6534, -74.0548),
	}
	plan := Project(stops, DefaultCanvas)

	if !plan.HasCoordinates {
		t.Fatalf("expected placeable plan")
	}
	if len(plan.Path) != 2 {
		t.Fatalf("expected 2 path points, got %d", len(plan.Path))
	}
	if plan.Path[0].Op != OpMove || plan.Path[1].Op != OpLine {
		t.Fatalf("expected move then line, got %s %s", plan.Path[0].Op, plan.Path[1].Op)
	}
	if plan.Markers[0].Role != RoleOrigin {
		t.Fatalf("expected first marker origin, got %s", plan.Markers[0].Role)
	}
	if plan.Markers[1].Role != RoleDestination {
		t.Fatalf("expected last marker destination, got %s", plan.Markers[1].Role)
	}
	for _, p := range plan.Path {
		if p.X <= 0 || p.X >= 500 || p.Y <= 0 || p.Y >= 300 {
			t.Fatalf("point (%f, %f) outside canvas interior", p.X, p.Y)
		}
	}
	// North is up: the higher-latitude stop draws with the smaller y.
	if plan.Path[1].Y >= plan.Path[0].Y {
		t.Fatalf("expected inverted vertical axis, got y0=%f y1=%f", plan.Path[0].Y, plan.Path[1].Y)
	}
}

func TestProjectSingleStop(t *testing.T) {
	plan := Project([]models.RouteStop{stop(1, 4.6097, -74.0817)}, DefaultCanvas)

	if !plan.HasCoordinates {
		t.Fatalf("expected placeable plan")
	}
	if len(plan.Markers) != 1 {
		t.Fatalf("expected one marker, got %d", len(plan.Markers))
	}
	if plan.Markers[0].Role != RoleOriginDestination {
		t.Fatalf("expected combined origin/destination marker, got %s", plan.Markers[0].Role)
	}
	// The padding keeps a single point away from a degenerate box: the
	// projection must land on the canvas center, not NaN.
	p := plan.Path[0]
	if math.Abs(p.X-250) > 1e-6 || math.Abs(p.Y-150) > 1e-6 {
		t.Fatalf("expected center projection, got (%f, %f)", p.X, p.Y)
	}
}

func TestProjectNoPlaceableStops(t *testing.T) {
	lat := 4.6097
	stops := []models.RouteStop{
		{Sequence: 1, Latitude: &lat},
		{Sequence: 2},
	}
	plan := Project(stops, DefaultCanvas)

	if plan.HasCoordinates {
		t.Fatalf("expected no-coordinates result")
	}
	if len(plan.Path) != 0 || len(plan.Markers) != 0 {
		t.Fatalf("expected empty path and markers, got %d/%d", len(plan.Path), len(plan.Markers))
	}
}

func TestProjectEmptyInput(t *testing.T) {
	plan := Project(nil, DefaultCanvas)
	if plan.HasCoordinates {
		t.Fatalf("expected no-coordinates result for empty input")
	}
}

func TestProjectSkipsUnplaceableKeepsOrder(t *testing.T) {
	lon := -74.06
	stops := []models.RouteStop{
		stop(1, 4.60, -74.08),
		{Sequence: 2, Longitude: &lon},
		stop(3, 4.65, -74.05),
		stop(4, 4.70, -74.07),
	}
	plan := Project(stops, DefaultCanvas)

	if len(plan.Markers) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(plan.Markers))
	}
	if plan.Markers[0].Sequence != 1 || plan.Markers[1].Sequence != 3 || plan.Markers[2].Sequence != 4 {
		t.Fatalf("expected sequence order preserved, got %+v", plan.Markers)
	}
	if plan.Markers[1].Role != RoleWaypoint {
		t.Fatalf("expected middle marker waypoint, got %s", plan.Markers[1].Role)
	}
	if plan.ApproxPathKm <= 0 {
		t.Fatalf("expected positive path length estimate")
	}
}

func TestProjectDeterministic(t *testing.T) {
	stops := []models.RouteStop{
		stop(1, 4.6097, -74.0817),
		stop(2, 4.6534, -74.0548),
		stop(3, 4.7110, -74.0721),
	}
	a := Project(stops, DefaultCanvas)
	b := Project(stops, DefaultCanvas)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical plans for identical input")
	}
}

func TestProjectCustomCanvas(t *testing.T) {
	stops := []models.RouteStop{
		stop(1, 4.60, -74.08),
		stop(2, 4.65, -74.05),
	}
	canvas := Canvas{Width: 1000, Height: 800}
	plan := Project(stops, canvas)

	if plan.Canvas != canvas {
		t.Fatalf("expected canvas carried into plan, got %+v", plan.Canvas)
	}
	for _, p := range plan.Path {
		if p.X <= 0 || p.X >= 1000 || p.Y <= 0 || p.Y >= 800 {
			t.Fatalf("point (%f, %f) outside custom canvas", p.X, p.Y)
		}
	}
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	lat1, lon1 := 4.60, -74.08
	lat2, lon2 := 4.65, -74.05
	stops := []models.RouteStop{
		{Sequence: 1, Latitude: &lat1, Longitude: &lon1},
		{Sequence: 2, Latitude: &lat2, Longitude: &lon2},
	}
	Project(stops, DefaultCanvas)

	if *stops[0].Latitude != 4.60 || *stops[1].Longitude != -74.05 {
		t.Fatalf("input stops were mutated")
	}
	if stops[0].Sequence != 1 || stops[1].Sequence != 2 {
		t.Fatalf("input order was mutated")
	}
}
