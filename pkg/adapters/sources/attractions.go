package sources

import (
	"context"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/ports"
)

// CityScout is a fixture-backed attraction source modeled on a
// places-style API.
type CityScout struct{}

// NewCityScout creates a CityScout source.
func NewCityScout() *CityScout {
	return &CityScout{}
}

// Name implements ports.AttractionSource.
func (c *CityScout) Name() string { return "cityscout" }

// SearchAttractions implements ports.AttractionSource.
func (c *CityScout) SearchAttractions(ctx context.Context, destination string, interests []string) ([]domain.Attraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return []domain.Attraction{
		{
			ID:              "cs_1001",
			Name:            "Historic Museum",
			Description:     "Explore the rich history and culture",
			Location:        fixtureLocation("Historic Museum", "123 Main St", destination, 0.004, 0.006),
			Category:        "museum",
			Rating:          4.6,
			Price:           15,
			OpeningHours:    weekdayHours("09:00", "17:00"),
			VisitDuration:   120,
			PopularityScore: 0.91,
			ImageURL:        "https://cityscout.example.com/image_cs_1001.jpg",
		},
		{
			ID:              "cs_1002",
			Name:            "Central Park",
			Description:     "Beautiful green space in the city center",
			Location:        fixtureLocation("Central Park", "1 Park Plaza", destination, -0.006, 0.003),
			Category:        "park",
			Rating:          4.7,
			Price:           0,
			OpeningHours:    weekdayHours("06:00", "22:00"),
			VisitDuration:   90,
			PopularityScore: 0.88,
			ImageURL:        "https://cityscout.example.com/image_cs_1002.jpg",
		},
		{
			ID:              "cs_1003",
			Name:            "Art Gallery",
			Description:     "Contemporary and classical art collections",
			Location:        fixtureLocation("Art Gallery", "45 Museum Row", destination, 0.009, -0.004),
			Category:        "museum",
			Rating:          4.3,
			Price:           18,
			OpeningHours:    weekdayHours("10:00", "18:00"),
			VisitDuration:   120,
			PopularityScore: 0.74,
			ImageURL:        "https://cityscout.example.com/image_cs_1003.jpg",
		},
		{
			ID:              "cs_1004",
			Name:            "Historic Cathedral",
			Description:     "Stunning architecture and religious history",
			Location:        fixtureLocation("Historic Cathedral", "2 Cathedral Square", destination, -0.002, -0.007),
			Category:        "monument",
			Rating:          4.8,
			Price:           5,
			OpeningHours:    weekdayHours("08:00", "19:00"),
			VisitDuration:   60,
			PopularityScore: 0.85,
			ImageURL:        "https://cityscout.example.com/image_cs_1004.jpg",
		},
	}, nil
}

// AtlasTrails is a fixture-backed attraction source modeled on a
// reviews-style API. It returns a different catalogue than CityScout
// so the Explorer's dedup and ranking have material to work on.
type AtlasTrails struct{}

// NewAtlasTrails creates an AtlasTrails source.
func NewAtlasTrails() *AtlasTrails {
	return &AtlasTrails{}
}

// Name implements ports.AttractionSource.
func (a *AtlasTrails) Name() string { return "atlastrails" }

// SearchAttractions implements ports.AttractionSource.
func (a *AtlasTrails) SearchAttractions(ctx context.Context, destination string, interests []string) ([]domain.Attraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return []domain.Attraction{
		{
			ID:              "at_2001",
			Name:            "City Walking Tour",
			Description:     "Discover hidden gems with a local guide",
			Location:        fixtureLocation("City Walking Tour", "456 Tourist Ave", destination, 0.001, 0.009),
			Category:        "tour",
			Rating:          4.5,
			Price:           25,
			OpeningHours:    weekdayHours("08:00", "20:00"),
			VisitDuration:   150,
			PopularityScore: 0.82,
			ImageURL:        "https://atlastrails.example.com/image_at_2001.jpg",
		},
		{
			ID:              "at_2002",
			Name:            "Observation Deck",
			Description:     "Panoramic views of the entire city",
			Location:        fixtureLocation("Observation Deck", "88 Skyline Blvd", destination, -0.008, -0.002),
			Category:        "viewpoint",
			Rating:          4.6,
			Price:           20,
			OpeningHours:    weekdayHours("08:00", "20:00"),
			VisitDuration:   60,
			PopularityScore: 0.95,
			ImageURL:        "https://atlastrails.example.com/image_at_2002.jpg",
		},
	}, nil
}

var (
	_ ports.AttractionSource = (*CityScout)(nil)
	_ ports.AttractionSource = (*AtlasTrails)(nil)
)
