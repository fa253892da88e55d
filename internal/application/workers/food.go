package workers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/ports"
)

// dietaryKeywords maps a restriction to the synonyms that satisfy it in
// a restaurant's dietary options. Unknown restrictions fall back to a
// literal substring match.
var dietaryKeywords = map[string][]string{
	"vegetarian":  {"vegetarian", "veggie", "plant-based"},
	"vegan":       {"vegan", "plant-based"},
	"gluten-free": {"gluten-free", "gluten free", "celiac"},
	"halal":       {"halal", "muslim-friendly"},
	"kosher":      {"kosher", "jewish"},
}

// mealIndicators are the keywords that mark a restaurant as suitable
// for a meal slot, matched against the name or cuisine type.
var mealIndicators = map[string][]string{
	"breakfast": {"cafe", "bakery", "breakfast", "brunch"},
	"lunch":     {"restaurant", "cafe", "bistro", "lunch"},
	"dinner":    {"restaurant", "fine dining", "dinner", "bar"},
}

var specialtiesTable = map[string][]domain.Specialty{
	"paris": {
		{Name: "Croissants", Description: "Fresh from a corner boulangerie"},
		{Name: "Coq au Vin", Description: "Chicken braised in red wine"},
		{Name: "Macarons", Description: "Delicate almond meringue sandwiches"},
	},
	"tokyo": {
		{Name: "Sushi", Description: "Best eaten at the morning fish market"},
		{Name: "Ramen", Description: "Rich broth noodles, regional styles vary"},
	},
	"rome": {
		{Name: "Carbonara", Description: "Guanciale, egg and pecorino, no cream"},
		{Name: "Gelato", Description: "Artisanal gelaterias cluster near Pantheon"},
	},
	"bangkok": {
		{Name: "Pad Thai", Description: "Street-side stir-fried noodles"},
		{Name: "Mango Sticky Rice", Description: "Seasonal dessert, best April to June"},
	},
	"london": {
		{Name: "Fish and Chips", Description: "Classic battered cod with thick chips"},
	},
	"new york": {
		{Name: "Bagels", Description: "Boiled then baked, best with lox"},
		{Name: "New York Pizza", Description: "Thin-crust slices, folded to eat"},
	},
}

var cultureTipsTable = map[string][]string{
	"paris":   {"Lunch is served 12:00-14:00, many kitchens close between services", "A 'formule' menu is the best lunch value"},
	"tokyo":   {"Slurping noodles is polite", "Many small restaurants are cash only"},
	"rome":    {"Cappuccino is a morning drink only", "Cover charge (coperto) is normal"},
	"bangkok": {"Street food stalls with queues are the safe bet", "Spice levels run hot by default"},
}

var cuisineByDestination = map[string]string{
	"paris":    "french",
	"tokyo":    "japanese",
	"rome":     "italian",
	"bangkok":  "thai",
	"london":   "british",
	"new york": "american",
	"berlin":   "german",
}

// Food searches restaurant sources, filters by dietary restrictions and
// plans one restaurant per meal slot per day.
type Food struct {
	base
	sources []ports.RestaurantSource
}

// NewFood creates a Food worker backed by the given sources.
func NewFood(sources []ports.RestaurantSource, logger *zap.Logger) *Food {
	return &Food{
		base: newBase("food", []string{
			"find_restaurants",
			"recommend_near_attractions",
			"filter_by_dietary",
			"get_local_specialties",
		}, logger),
		sources: sources,
	}
}

// Process plans the meals for a full trip. The attraction locations
// are split between the two days and anchor each day's lunch search.
func (f *Food) Process(ctx context.Context, req domain.TaskRequest) (*domain.WorkerReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	foodBudget := req.FoodBudget
	if foodBudget == 0 {
		foodBudget = req.Budget * 0.27
	}
	dailyBudget := foodBudget / 2

	half := len(req.AttractionLocations) / 2
	day1 := f.findDayRestaurants(ctx, req.Destination, req.DietaryRestrictions, dailyBudget, req.AttractionLocations[:half])
	day2 := f.findDayRestaurants(ctx, req.Destination, req.DietaryRestrictions, dailyBudget, req.AttractionLocations[half:])

	var totalCost float64
	for _, r := range day1 {
		totalCost += r.AverageMealCost
	}
	for _, r := range day2 {
		totalCost += r.AverageMealCost
	}

	f.logger.Info("meal plan built",
		zap.String("destination", req.Destination),
		zap.Int("day1_restaurants", len(day1)),
		zap.Int("day2_restaurants", len(day2)))

	return &domain.WorkerReport{Food: &domain.FoodReport{
		Day1Restaurants:       day1,
		Day2Restaurants:       day2,
		LocalSpecialties:      localSpecialties(req.Destination),
		FoodTips:              foodTips(req.Destination, req.DietaryRestrictions),
		TotalEstimatedCost:    round2(totalCost),
		DietaryAccommodations: len(req.DietaryRestrictions) > 0,
	}}, nil
}

// Handle answers the Food worker's query kinds.
func (f *Food) Handle(ctx context.Context, q domain.Query) (any, error) {
	switch q := q.(type) {
	case domain.FindRestaurantsQuery:
		filter := ports.RestaurantFilter{
			Destination: q.Location,
			CuisineType: q.CuisineType,
			PriceRange:  q.PriceRange,
		}
		restaurants, err := f.searchRestaurants(ctx, filter, q.DietaryRestrictions, "", 5)
		if err != nil {
			return nil, err
		}
		return domain.RestaurantSearchResult{Restaurants: restaurants, Count: len(restaurants)}, nil

	case domain.RecommendNearAttractionsQuery:
		priceRange := budgetToPriceRange(q.BudgetPerMeal)
		byAttraction := make(map[string][]domain.Restaurant, len(q.AttractionLocations))
		for i, loc := range q.AttractionLocations {
			filter := ports.RestaurantFilter{
				Destination: loc.City,
				PriceRange:  priceRange,
				Near:        &loc,
			}
			restaurants, err := f.searchRestaurants(ctx, filter, q.DietaryRestrictions, "", 3)
			if err != nil {
				return nil, err
			}
			byAttraction[fmt.Sprintf("attraction_%d", i+1)] = restaurants
		}
		return domain.NearbyRecommendations{ByAttraction: byAttraction}, nil

	case domain.FilterByDietaryQuery:
		filtered := make([]domain.Restaurant, 0, len(q.Restaurants))
		for _, r := range q.Restaurants {
			if matchesDietary(r, q.DietaryRestrictions) {
				filtered = append(filtered, r)
			}
		}
		return domain.DietaryFilterResult{
			Restaurants:   filtered,
			OriginalCount: len(q.Restaurants),
			FilteredCount: len(filtered),
		}, nil

	case domain.LocalSpecialtiesQuery:
		filter := ports.RestaurantFilter{
			Destination: q.Destination,
			CuisineType: inferCuisine(q.Destination),
		}
		restaurants, err := f.searchRestaurants(ctx, filter, nil, "", 5)
		if err != nil {
			return nil, err
		}
		return domain.SpecialtiesResult{
			Specialties: localSpecialties(q.Destination),
			Restaurants: restaurants,
			CultureTips: cultureTips(q.Destination),
		}, nil

	default:
		return nil, nil
	}
}

// findDayRestaurants picks one restaurant per meal slot: a cheap cafe
// for breakfast, a lunch spot near the day's middle attraction, and a
// mid-priced restaurant for dinner. A slot with no suitable candidate
// is left out rather than filled with a mismatch; lunch is skipped
// entirely when the day has no attraction locations.
func (f *Food) findDayRestaurants(ctx context.Context, destination string, dietary []string, dailyBudget float64, dayLocations []domain.Location) []domain.Restaurant {
	out := make([]domain.Restaurant, 0, 3)
	perMeal := dailyBudget / 3

	breakfast, err := f.searchRestaurants(ctx, ports.RestaurantFilter{
		Destination: destination,
		CuisineType: "cafe",
		PriceRange:  "$",
	}, dietary, "breakfast", 5)
	if err != nil {
		f.logger.Warn("breakfast search failed", zap.Error(err))
	} else if len(breakfast) > 0 {
		out = append(out, breakfast[0])
	}

	if len(dayLocations) > 0 {
		anchor := dayLocations[len(dayLocations)/2]
		lunch, err := f.searchRestaurants(ctx, ports.RestaurantFilter{
			Destination: anchor.City,
			PriceRange:  budgetToPriceRange(perMeal),
			Near:        &anchor,
		}, dietary, "lunch", 5)
		if err != nil {
			f.logger.Warn("lunch search failed", zap.Error(err))
		} else if len(lunch) > 0 {
			out = append(out, lunch[0])
		}
	}

	dinner, err := f.searchRestaurants(ctx, ports.RestaurantFilter{
		Destination: destination,
		CuisineType: "restaurant",
		PriceRange:  "$$",
	}, dietary, "dinner", 5)
	if err != nil {
		f.logger.Warn("dinner search failed", zap.Error(err))
	} else if len(dinner) > 0 {
		out = append(out, dinner[0])
	}

	return out
}

// searchRestaurants queries all sources, filters by dietary
// restrictions and meal slot, and keeps the highest-rated results. A
// failing source degrades the result set instead of failing the
// search.
func (f *Food) searchRestaurants(ctx context.Context, filter ports.RestaurantFilter, dietary []string, mealType string, limit int) ([]domain.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var combined []domain.Restaurant
	seen := make(map[string]bool)
	for _, src := range f.sources {
		found, err := src.SearchRestaurants(ctx, filter)
		if err != nil {
			f.logger.Warn("restaurant source failed",
				zap.String("source", src.Name()),
				zap.Error(err))
			continue
		}
		for _, r := range found {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			if !matchesDietary(r, dietary) {
				continue
			}
			if mealType != "" && !mealMatches(r, mealType) {
				continue
			}
			combined = append(combined, r)
		}
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Rating > combined[j].Rating
	})
	if len(combined) > limit {
		combined = combined[:limit]
	}
	return combined, nil
}

// matchesDietary reports whether a restaurant satisfies every
// restriction.
func matchesDietary(r domain.Restaurant, restrictions []string) bool {
	for _, restriction := range restrictions {
		restriction = strings.ToLower(strings.TrimSpace(restriction))
		if restriction == "" {
			continue
		}
		synonyms, ok := dietaryKeywords[restriction]
		if !ok {
			synonyms = []string{restriction}
		}

		matched := false
		for _, option := range r.DietaryOptions {
			option = strings.ToLower(option)
			for _, syn := range synonyms {
				if strings.Contains(option, syn) {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func mealMatches(r domain.Restaurant, meal string) bool {
	name := strings.ToLower(r.Name)
	cuisine := strings.ToLower(r.CuisineType)
	for _, keyword := range mealIndicators[meal] {
		if strings.Contains(name, keyword) || strings.Contains(cuisine, keyword) {
			return true
		}
	}
	return false
}

func budgetToPriceRange(perMeal float64) string {
	switch {
	case perMeal < 15:
		return "$"
	case perMeal < 30:
		return "$$"
	case perMeal < 60:
		return "$$$"
	default:
		return "$$$$"
	}
}

func localSpecialties(destination string) []domain.Specialty {
	if s, ok := specialtiesTable[strings.ToLower(destination)]; ok {
		return s
	}
	return []domain.Specialty{
		{Name: "Local market dishes", Description: "Seasonal dishes from the central market"},
	}
}

func cultureTips(destination string) []string {
	if tips, ok := cultureTipsTable[strings.ToLower(destination)]; ok {
		return tips
	}
	return []string{"Ask locals where they eat, not where tourists eat"}
}

// foodTips assembles at most five tips: the generic ones, two extra
// when dietary restrictions are in play, then whatever destination
// tips still fit.
func foodTips(destination string, restrictions []string) []string {
	tips := []string{
		"Carry some cash, small eateries often do not take cards",
		"Lunch menus are usually cheaper than the same dishes at dinner",
		"Book dinner ahead on weekends",
	}
	if len(restrictions) > 0 {
		tips = append(tips,
			"Download a translation app to explain dietary restrictions",
			"Research local dietary options before arriving")
	}
	tips = append(tips, cultureTipsTable[strings.ToLower(destination)]...)
	if len(tips) > 5 {
		tips = tips[:5]
	}
	return tips
}

func inferCuisine(destination string) string {
	if c, ok := cuisineByDestination[strings.ToLower(destination)]; ok {
		return c
	}
	return "local"
}

var _ ports.Worker = (*Food)(nil)
