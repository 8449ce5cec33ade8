package summary

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/models"
)

// RouteSummary is the display form of a resolved route's metrics.
type RouteSummary struct {
	Distance  string `json:"distance"`
	Duration  string `json:"duration"`
	StopCount int    `json:"stopCount"`
	Priority  string `json:"priority"`
}

// Summarize derives the human-readable metrics for a route: distance to two
// decimals in km, duration in whole minutes, the unfiltered stop count, and
// the priority label capitalized for display. The route is not modified.
func Summarize(route models.Route) RouteSummary {
	minutes := int(math.Round(route.EstimatedTimeH * 60))
	return RouteSummary{
		Distance:  fmt.Sprintf("%.2f km", route.TotalDistanceKm),
		Duration:  fmt.Sprintf("%d min", minutes),
		StopCount: len(route.Stops),
		Priority:  capitalize(route.PriorityLevel),
	}
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
