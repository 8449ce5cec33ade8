package summary

import (
	"testing"

	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/models"
)

func TestSummarizeFormatsMetrics(t *testing.T) {
	route := models.Route{
		TotalDistanceKm: 18.449,
		EstimatedTimeH:  0.459,
		PriorityLevel:   "alta",
		Stops: []models.RouteStop{
			{Sequence: 1},
			{Sequence: 2},
			{Sequence: 3},
		},
	}
	s := Summarize(route)

	if s.Distance != "18.45 km" {
		t.Fatalf("expected 18.45 km, got %s", s.Distance)
	}
	// 0.459 h = 27.54 min, rounds to 28.
	if s.Duration != "28 min" {
		t.Fatalf("expected 28 min, got %s", s.Duration)
	}
	if s.StopCount != 3 {
		t.Fatalf("expected 3 stops, got %d", s.StopCount)
	}
	if s.Priority != "Alta" {
		t.Fatalf("expected capitalized priority, got %s", s.Priority)
	}
}

func TestSummarizeZeroRoute(t *testing.T) {
	s := Summarize(models.Route{})
	if s.Distance != "0.00 km" {
		t.Fatalf("expected 0.00 km, got %s", s.Distance)
	}
	if s.Duration != "0 min" {
		t.Fatalf("expected 0 min, got %s", s.Duration)
	}
	if s.StopCount != 0 {
		t.Fatalf("expected 0 stops, got %d", s.StopCount)
	}
	if s.Priority != "" {
		t.Fatalf("expected empty priority, got %q", s.Priority)
	}
}

func TestSummarizeCountsUnplaceableStops(t *testing.T) {
	// The stop count covers every stop, placeable or not.
	route := models.Route{
		Stops: []models.RouteStop{
			{Sequence: 1},
			{Sequence: 2},
		},
	}
	if s := Summarize(route); s.StopCount != 2 {
		t.Fatalf("expected 2 stops, got %d", s.StopCount)
	}
}

func TestSummarizeDoesNotMutateRoute(t *testing.T) {
	route := models.Route{
		TotalDistanceKm: 12.5,
		EstimatedTimeH:  1.25,
		PriorityLevel:   "BAJA",
		Stops:           []models.RouteStop{{Sequence: 1}},
	}
	Summarize(route)

	if route.PriorityLevel != "BAJA" {
		t.Fatalf("priority was mutated: %s", route.PriorityLevel)
	}
	if route.TotalDistanceKm != 12.5 || route.EstimatedTimeH != 1.25 {
		t.Fatalf("metrics were mutated: %+v", route)
	}
}
