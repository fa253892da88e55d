package sources

import (
	"strings"

	"github.com/voyago/voyago/internal/domain"
)

// cityAnchor pins fixture coordinates to a real city center so route
// distances come out plausible.
type cityAnchor struct {
	lat     float64
	lng     float64
	country string
}

var cityAnchors = map[string]cityAnchor{
	"paris":    {48.8566, 2.3522, "France"},
	"london":   {51.5074, -0.1278, "United Kingdom"},
	"tokyo":    {35.6762, 139.6503, "Japan"},
	"bangkok":  {13.7563, 100.5018, "Thailand"},
	"new york": {40.7128, -74.0060, "United States"},
	"berlin":   {52.5200, 13.4050, "Germany"},
	"rome":     {41.9028, 12.4964, "Italy"},
}

func anchorFor(destination string) cityAnchor {
	if a, ok := cityAnchors[strings.ToLower(destination)]; ok {
		return a
	}
	return cityAnchor{country: "Unknown"}
}

func fixtureLocation(name, address, destination string, latOffset, lngOffset float64) domain.Location {
	anchor := anchorFor(destination)
	return domain.Location{
		Name:      name,
		Address:   address + ", " + destination,
		Latitude:  anchor.lat + latOffset,
		Longitude: anchor.lng + lngOffset,
		City:      destination,
		Country:   anchor.country,
	}
}

func weekdayHours(open, close string) map[string]string {
	hours := make(map[string]string, 7)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		hours[day] = open + "-" + close
	}
	return hours
}
