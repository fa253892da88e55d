// Package geo provides the geometry utilities the Explorer's route
// optimization depends on: haversine distance and greedy
// nearest-neighbour ordering.
package geo

import (
	"math"

	"github.com/voyago/voyago/internal/domain"
)

const earthRadiusKM = 6371

// Distance returns the haversine distance between two locations in
// kilometers.
func Distance(a, b domain.Location) float64 {
	lat1 := radians(a.Latitude)
	lon1 := radians(a.Longitude)
	lat2 := radians(b.Latitude)
	lon2 := radians(b.Longitude)

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Asin(math.Sqrt(h))

	return c * earthRadiusKM
}

// GreedyNearestNeighborOrder returns a permutation of indices into
// points, built by repeatedly visiting the unvisited point nearest to
// the current one. The walk starts at start when given, otherwise at
// the first point; the start location itself is not part of the
// returned order unless it is one of the points.
func GreedyNearestNeighborOrder(points []domain.Location, start *domain.Location) []int {
	if len(points) == 0 {
		return nil
	}
	if len(points) == 1 {
		return []int{0}
	}

	order := make([]int, 0, len(points))
	visited := make([]bool, len(points))

	var current domain.Location
	if start != nil {
		current = *start
	} else {
		current = points[0]
		visited[0] = true
		order = append(order, 0)
	}

	for len(order) < len(points) {
		nearest := -1
		minDist := math.Inf(1)
		for i, p := range points {
			if visited[i] {
				continue
			}
			if d := Distance(current, p); d < minDist {
				minDist = d
				nearest = i
			}
		}
		visited[nearest] = true
		order = append(order, nearest)
		current = points[nearest]
	}

	return order
}

// PathDistance sums the pairwise distances along an ordered sequence of
// locations.
func PathDistance(points []domain.Location) float64 {
	var total float64
	for i := 0; i+1 < len(points); i++ {
		total += Distance(points[i], points[i+1])
	}
	return total
}

// ValidCoordinates reports whether a latitude/longitude pair is within
// bounds.
func ValidCoordinates(latitude, longitude float64) bool {
	return latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
