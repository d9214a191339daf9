package pipeline

import "github.com/bobmcallan/finsilio/internal/models"

// route is the successor path chosen after intent classification.
type route int

const (
	// routeAnalyze continues into entity extraction and the analysis chain.
	routeAnalyze route = iota
	// routeReject sends the fixed rejection message and terminates.
	routeReject
)

// routeByIntent selects the successor path. Only a STOCK intent proceeds to
// analysis; everything else, including classifier failures already mapped to
// OTHER, is rejected. This is the pipeline's only branch point.
func routeByIntent(intent models.Intent) route {
	if intent == models.IntentStock {
		return routeAnalyze
	}
	return routeReject
}
