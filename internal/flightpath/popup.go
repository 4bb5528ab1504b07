package flightpath

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// PathPopup is the text shown when the primary line of a trip is clicked,
// e.g. "LHR → JFK · 5,540 km · 637 kg CO₂".
func PathPopup(trip Trip) string {
	return fmt.Sprintf("%s → %s · %s km · %s kg CO₂",
		codeOrUnknown(trip.OriginCode),
		codeOrUnknown(trip.DestCode),
		humanize.Comma(int64(math.Round(trip.DistanceKm))),
		humanize.Comma(int64(math.Round(trip.EmissionsKg))),
	)
}

// OriginPopup is the text for the primary origin marker.
func OriginPopup(trip Trip) string {
	return "Origin: " + codeOrUnknown(trip.OriginCode)
}

// DestinationPopup is the text for the primary destination marker.
func DestinationPopup(trip Trip) string {
	return "Destination: " + codeOrUnknown(trip.DestCode)
}

func codeOrUnknown(code string) string {
	if code == "" {
		return "???"
	}
	return code
}
