package sources

import (
	"context"
	"strings"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/ports"
)

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func restaurantLocation(name, address string, filter ports.RestaurantFilter, latOffset, lngOffset float64) domain.Location {
	if filter.Near != nil {
		// Anchor near the requested point rather than the city center.
		return domain.Location{
			Name:      name,
			Address:   address + ", " + filter.Near.City,
			Latitude:  filter.Near.Latitude + latOffset/10,
			Longitude: filter.Near.Longitude + lngOffset/10,
			City:      filter.Near.City,
			Country:   filter.Near.Country,
		}
	}
	return fixtureLocation(name, address, filter.Destination, latOffset, lngOffset)
}

// Savora is a fixture-backed restaurant source modeled on a reviews
// API.
type Savora struct{}

// NewSavora creates a Savora source.
func NewSavora() *Savora {
	return &Savora{}
}

// Name implements ports.RestaurantSource.
func (s *Savora) Name() string { return "savora" }

var savoraMealCost = map[string]float64{
	"$":    15,
	"$$":   28,
	"$$$":  52,
	"$$$$": 88,
}

// SearchRestaurants implements ports.RestaurantSource.
func (s *Savora) SearchRestaurants(ctx context.Context, filter ports.RestaurantFilter) ([]domain.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cuisine := filter.CuisineType
	if cuisine == "" {
		cuisine = "french"
	}
	priceRange := filter.PriceRange
	if priceRange == "" {
		priceRange = "$$"
	}
	mealCost, ok := savoraMealCost[priceRange]
	if !ok {
		mealCost = 25
	}

	return []domain.Restaurant{
		{
			ID:              "savora_3001",
			Name:            "The " + titleCase(cuisine) + " Corner",
			CuisineType:     cuisine,
			Location:        restaurantLocation("The "+titleCase(cuisine)+" Corner", "789 Restaurant Row", filter, 0.003, -0.005),
			Rating:          4.6,
			PriceRange:      priceRange,
			AverageMealCost: mealCost,
			OpeningHours:    weekdayHours("11:00", "22:00"),
			Specialties:     []string{"Signature " + cuisine + " dish", "Chef's special"},
			DietaryOptions:  []string{"vegetarian options available"},
		},
		{
			ID:              "savora_3002",
			Name:            "Bistro Central",
			CuisineType:     cuisine,
			Location:        restaurantLocation("Bistro Central", "12 Market Lane", filter, -0.004, 0.002),
			Rating:          4.3,
			PriceRange:      priceRange,
			AverageMealCost: mealCost,
			OpeningHours:    weekdayHours("10:00", "23:00"),
			Specialties:     []string{"Local " + cuisine + " cuisine"},
			DietaryOptions:  []string{"vegan options", "gluten-free available"},
		},
	}, nil
}

// Tavola is a fixture-backed restaurant source with a different
// catalogue and dietary profile than Savora.
type Tavola struct{}

// NewTavola creates a Tavola source.
func NewTavola() *Tavola {
	return &Tavola{}
}

// Name implements ports.RestaurantSource.
func (t *Tavola) Name() string { return "tavola" }

var tavolaMealCost = map[string]float64{
	"$":    13,
	"$$":   26,
	"$$$":  50,
	"$$$$": 85,
}

// SearchRestaurants implements ports.RestaurantSource.
func (t *Tavola) SearchRestaurants(ctx context.Context, filter ports.RestaurantFilter) ([]domain.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cuisine := filter.CuisineType
	if cuisine == "" {
		cuisine = "thai"
	}
	priceRange := filter.PriceRange
	if priceRange == "" {
		priceRange = "$$"
	}
	mealCost, ok := tavolaMealCost[priceRange]
	if !ok {
		mealCost = 22
	}

	return []domain.Restaurant{
		{
			ID:              "tavola_4001",
			Name:            titleCase(cuisine) + " Garden",
			CuisineType:     cuisine,
			Location:        restaurantLocation(titleCase(cuisine)+" Garden", "321 Food Street", filter, 0.006, 0.004),
			Rating:          4.5,
			PriceRange:      priceRange,
			AverageMealCost: mealCost,
			OpeningHours:    weekdayHours("12:00", "22:00"),
			Specialties:     []string{"Authentic " + cuisine + " flavors"},
			DietaryOptions:  []string{"halal options", "vegetarian friendly"},
		},
	}, nil
}

var (
	_ ports.RestaurantSource = (*Savora)(nil)
	_ ports.RestaurantSource = (*Tavola)(nil)
)
