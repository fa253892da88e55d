package workers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/ports"
	"github.com/voyago/voyago/pkg/adapters/sources"
)

func newTestFood() *Food {
	return NewFood([]ports.RestaurantSource{
		sources.NewSavora(),
		sources.NewTavola(),
	}, zap.NewNop())
}

// staticRestaurantSource returns a fixed catalogue regardless of the
// filter.
type staticRestaurantSource struct {
	restaurants []domain.Restaurant
}

func (s *staticRestaurantSource) Name() string { return "static" }

func (s *staticRestaurantSource) SearchRestaurants(ctx context.Context, filter ports.RestaurantFilter) ([]domain.Restaurant, error) {
	return s.restaurants, nil
}

func TestFoodProcessWithoutLocationsSkipsLunch(t *testing.T) {
	f := newTestFood()

	report, err := f.Process(context.Background(), domain.TaskRequest{
		Destination:  "Paris",
		Budget:       1000,
		DurationDays: 2,
		FoodBudget:   270,
	})
	require.NoError(t, err)
	require.NotNil(t, report.Food)

	// No attraction locations means no lunch anchor, so each day gets
	// breakfast and dinner only.
	require.Len(t, report.Food.Day1Restaurants, 2)
	require.Len(t, report.Food.Day2Restaurants, 2)

	breakfast := report.Food.Day1Restaurants[0]
	dinner := report.Food.Day1Restaurants[1]
	assert.Equal(t, "The Cafe Corner", breakfast.Name)
	assert.Equal(t, "$", breakfast.PriceRange)
	assert.Equal(t, "The Restaurant Corner", dinner.Name)
	assert.Equal(t, "$$", dinner.PriceRange)

	// 2 days x (15 breakfast + 28 dinner).
	assert.InDelta(t, 86, report.Food.TotalEstimatedCost, 0.001)

	assert.False(t, report.Food.DietaryAccommodations)
	assert.NotEmpty(t, report.Food.LocalSpecialties)
	assert.NotEmpty(t, report.Food.FoodTips)
}

func TestFoodProcessAnchorsLunchNearAttractions(t *testing.T) {
	f := newTestFood()

	report, err := f.Process(context.Background(), domain.TaskRequest{
		Destination:  "Paris",
		DurationDays: 2,
		FoodBudget:   270,
		AttractionLocations: []domain.Location{
			{Name: "Louvre", City: "Paris", Country: "France", Latitude: 48.8606, Longitude: 2.3376},
			{Name: "Eiffel Tower", City: "Paris", Country: "France", Latitude: 48.8584, Longitude: 2.2945},
		},
	})
	require.NoError(t, err)

	require.Len(t, report.Food.Day1Restaurants, 3)
	require.Len(t, report.Food.Day2Restaurants, 3)

	lunch := report.Food.Day1Restaurants[1]
	assert.Equal(t, "Bistro Central", lunch.Name)
	assert.Equal(t, "Paris", lunch.Location.City)
	// Daily budget 135, a third per meal, lands in the $$$ tier.
	assert.Equal(t, "$$$", lunch.PriceRange)
}

func TestFoodProcessMealSlotAffinity(t *testing.T) {
	f := newTestFood()

	report, err := f.Process(context.Background(), domain.TaskRequest{
		Destination:  "Paris",
		DurationDays: 2,
		FoodBudget:   270,
	})
	require.NoError(t, err)

	day1 := report.Food.Day1Restaurants
	require.Len(t, day1, 2)
	assert.True(t, mealMatches(day1[0], "breakfast"), "got %q", day1[0].Name)
	assert.True(t, mealMatches(day1[1], "dinner"), "got %q", day1[1].Name)
}

func TestFoodProcessOmitsSlotsWithoutSuitableVenue(t *testing.T) {
	// A catalogue with no breakfast/lunch/dinner indicators in any
	// name or cuisine must leave every slot empty rather than fill it
	// with a mismatched pick.
	f := NewFood([]ports.RestaurantSource{&staticRestaurantSource{
		restaurants: []domain.Restaurant{
			{ID: "st_1", Name: "Tapas Place", CuisineType: "tapas", Rating: 4.8, AverageMealCost: 20},
		},
	}}, zap.NewNop())

	report, err := f.Process(context.Background(), domain.TaskRequest{
		Destination:  "Madrid",
		DurationDays: 2,
		FoodBudget:   200,
	})
	require.NoError(t, err)

	assert.Empty(t, report.Food.Day1Restaurants)
	assert.Empty(t, report.Food.Day2Restaurants)
	assert.Zero(t, report.Food.TotalEstimatedCost)
}

func TestFoodProcessDietaryRestrictionNarrowsChoices(t *testing.T) {
	f := newTestFood()

	report, err := f.Process(context.Background(), domain.TaskRequest{
		Destination:         "Bangkok",
		DurationDays:        2,
		FoodBudget:          120,
		DietaryRestrictions: []string{"halal"},
	})
	require.NoError(t, err)

	require.NotEmpty(t, report.Food.Day1Restaurants)
	for _, r := range report.Food.Day1Restaurants {
		assert.Equal(t, "tavola_4001", r.ID)
		assert.True(t, matchesDietary(r, []string{"halal"}))
	}
	assert.True(t, report.Food.DietaryAccommodations)
}

func TestMatchesDietary(t *testing.T) {
	plantBased := domain.Restaurant{DietaryOptions: []string{"plant-based menu"}}
	celiac := domain.Restaurant{DietaryOptions: []string{"celiac friendly"}}
	muslimFriendly := domain.Restaurant{DietaryOptions: []string{"muslim-friendly kitchen"}}
	jewish := domain.Restaurant{DietaryOptions: []string{"jewish cuisine"}}

	// Synonyms satisfy their restriction.
	assert.True(t, matchesDietary(plantBased, []string{"vegetarian"}))
	assert.True(t, matchesDietary(plantBased, []string{"vegan"}))
	assert.True(t, matchesDietary(celiac, []string{"gluten-free"}))
	assert.True(t, matchesDietary(muslimFriendly, []string{"halal"}))
	assert.True(t, matchesDietary(jewish, []string{"kosher"}))

	// Vegetarian-only options do not satisfy vegan.
	vegetarianOnly := domain.Restaurant{DietaryOptions: []string{"vegetarian options available"}}
	assert.False(t, matchesDietary(vegetarianOnly, []string{"vegan"}))
	assert.False(t, matchesDietary(vegetarianOnly, []string{"halal"}))

	// Every restriction must hold.
	assert.False(t, matchesDietary(celiac, []string{"gluten-free", "kosher"}))
	assert.True(t, matchesDietary(celiac, nil))
}

func TestFilterByDietaryQuery(t *testing.T) {
	f := newTestFood()
	restaurants := []domain.Restaurant{
		{ID: "a", DietaryOptions: []string{"vegan options"}},
		{ID: "b", DietaryOptions: []string{"halal options"}},
		{ID: "c"},
	}

	res, err := f.Handle(context.Background(), domain.FilterByDietaryQuery{
		Restaurants:         restaurants,
		DietaryRestrictions: []string{"vegan"},
	})
	require.NoError(t, err)

	filtered, ok := res.(domain.DietaryFilterResult)
	require.True(t, ok)
	assert.Equal(t, 3, filtered.OriginalCount)
	assert.Equal(t, 1, filtered.FilteredCount)
	require.Len(t, filtered.Restaurants, 1)
	assert.Equal(t, "a", filtered.Restaurants[0].ID)
}

func TestBudgetToPriceRange(t *testing.T) {
	assert.Equal(t, "$", budgetToPriceRange(10))
	assert.Equal(t, "$$", budgetToPriceRange(15))
	assert.Equal(t, "$$$", budgetToPriceRange(45))
	assert.Equal(t, "$$$$", budgetToPriceRange(60))
}

func TestFoodTipsDietaryAndCap(t *testing.T) {
	// Unknown destination, no restrictions: just the generic tips.
	assert.Len(t, foodTips("Atlantis", nil), 3)

	plain := foodTips("Paris", nil)
	require.Len(t, plain, 5)
	assert.Contains(t, plain[3], "Lunch")

	// Dietary tips take the last two slots and push destination tips
	// past the cap.
	restricted := foodTips("Paris", []string{"vegan"})
	require.Len(t, restricted, 5)
	assert.Contains(t, restricted[3], "translation")
	assert.Contains(t, restricted[4], "dietary")
}

func TestFoodRecommendNearAttractions(t *testing.T) {
	f := newTestFood()
	locations := []domain.Location{
		{Name: "Louvre", City: "Paris", Country: "France", Latitude: 48.8606, Longitude: 2.3376},
		{Name: "Eiffel Tower", City: "Paris", Country: "France", Latitude: 48.8584, Longitude: 2.2945},
	}

	res, err := f.Handle(context.Background(), domain.RecommendNearAttractionsQuery{
		AttractionLocations: locations,
		BudgetPerMeal:       20,
	})
	require.NoError(t, err)

	nearby, ok := res.(domain.NearbyRecommendations)
	require.True(t, ok)
	require.Len(t, nearby.ByAttraction, 2)

	for _, key := range []string{"attraction_1", "attraction_2"} {
		restaurants := nearby.ByAttraction[key]
		require.NotEmpty(t, restaurants)
		assert.LessOrEqual(t, len(restaurants), 3)
		for _, r := range restaurants {
			assert.Equal(t, "Paris", r.Location.City)
			assert.Equal(t, "$$", r.PriceRange)
		}
	}
}

func TestFoodFindRestaurantsQuery(t *testing.T) {
	f := newTestFood()

	res, err := f.Handle(context.Background(), domain.FindRestaurantsQuery{
		Location:    "Rome",
		CuisineType: "italian",
		PriceRange:  "$$",
	})
	require.NoError(t, err)

	result, ok := res.(domain.RestaurantSearchResult)
	require.True(t, ok)
	require.NotEmpty(t, result.Restaurants)
	assert.Equal(t, len(result.Restaurants), result.Count)
	assert.LessOrEqual(t, result.Count, 5)
	for _, r := range result.Restaurants {
		assert.Equal(t, "italian", r.CuisineType)
	}
	// Highest rated first.
	for i := 1; i < len(result.Restaurants); i++ {
		assert.GreaterOrEqual(t, result.Restaurants[i-1].Rating, result.Restaurants[i].Rating)
	}
}

func TestFoodLocalSpecialties(t *testing.T) {
	f := newTestFood()

	res, err := f.Handle(context.Background(), domain.LocalSpecialtiesQuery{Destination: "Paris"})
	require.NoError(t, err)

	specialties, ok := res.(domain.SpecialtiesResult)
	require.True(t, ok)

	names := make([]string, 0, len(specialties.Specialties))
	for _, s := range specialties.Specialties {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Croissants")
	assert.NotEmpty(t, specialties.CultureTips)
	assert.NotEmpty(t, specialties.Restaurants)

	// Unknown destinations fall back to a generic answer.
	res, err = f.Handle(context.Background(), domain.LocalSpecialtiesQuery{Destination: "Atlantis"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.(domain.SpecialtiesResult).Specialties)
}

func TestFoodIgnoresForeignQueries(t *testing.T) {
	f := newTestFood()

	res, err := f.Handle(context.Background(), domain.OptimizeRouteQuery{})
	assert.NoError(t, err)
	assert.Nil(t, res)
}
