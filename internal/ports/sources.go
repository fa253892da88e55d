package ports

import (
	"context"

	"github.com/voyago/voyago/internal/domain"
)

// AttractionSource is an abstract attraction lookup. It may be backed
// by a live service, fixtures, or static tables; the planner assumes
// nothing about latency beyond "usually fast, occasionally exceeds the
// worker timeout".
type AttractionSource interface {
	// Name identifies the source in logs.
	Name() string

	// SearchAttractions returns candidate attractions for a
	// destination, optionally biased by interests.
	SearchAttractions(ctx context.Context, destination string, interests []string) ([]domain.Attraction, error)
}

// RestaurantFilter narrows a restaurant search. Near takes precedence
// over Destination when set.
type RestaurantFilter struct {
	Destination string
	CuisineType string
	PriceRange  string
	Near        *domain.Location
}

// RestaurantSource is an abstract restaurant lookup with the same
// black-box contract as AttractionSource.
type RestaurantSource interface {
	Name() string
	SearchRestaurants(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, error)
}
