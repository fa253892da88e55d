package domain

// Query is the closed union of cross-worker query kinds. Dispatch is a
// type switch rather than open string matching, so an unhandled kind is
// visible at the call site instead of silently misrouted. A worker
// returns (nil, nil) from Handle for a kind it does not implement,
// signaling "not applicable" as distinct from an error.
type Query interface {
	queryKind() string
}

// Explorer queries.

// FindAttractionsQuery asks the Explorer for a fresh attraction search,
// typically with a tightened per-activity budget.
type FindAttractionsQuery struct {
	Destination       string
	Interests         []string
	BudgetPerActivity float64
}

// OptimizeRouteQuery asks the Explorer to order the given attractions
// into a timed route.
type OptimizeRouteQuery struct {
	AttractionIDs []string
	StartLocation *Location
}

// AttractionDetailsQuery looks up a single attraction by ID.
type AttractionDetailsQuery struct {
	AttractionID string
}

// Budget queries.

// AllocateBudgetQuery splits a total budget using the default ratio
// table merged with caller overrides (override replaces, never blends).
type AllocateBudgetQuery struct {
	TotalBudget float64
	Preferences map[string]float64
}

// ValidateCostsQuery checks proposed spending against an allocation.
type ValidateCostsQuery struct {
	Allocation    BudgetAllocation
	ProposedCosts map[string]float64
}

// OptimizeSpendingQuery clamps over-limit categories down to their
// limits, cutting lowest-priority categories first.
type OptimizeSpendingQuery struct {
	CurrentCosts map[string]float64
	BudgetLimits map[string]float64
	Priorities   map[string]int
}

// EstimateCostsQuery estimates per-item costs for a category.
type EstimateCostsQuery struct {
	Destination string
	Items       []string
	Category    string
}

// Food queries.

// FindRestaurantsQuery searches restaurants by broad criteria.
type FindRestaurantsQuery struct {
	Location            string
	CuisineType         string
	PriceRange          string
	DietaryRestrictions []string
}

// RecommendNearAttractionsQuery asks the Food worker for restaurants
// geographically aligned with the day's attractions.
type RecommendNearAttractionsQuery struct {
	AttractionLocations []Location
	BudgetPerMeal       float64
	DietaryRestrictions []string
}

// FilterByDietaryQuery filters a provided restaurant list.
type FilterByDietaryQuery struct {
	Restaurants         []Restaurant
	DietaryRestrictions []string
}

// LocalSpecialtiesQuery asks for destination food specialties.
type LocalSpecialtiesQuery struct {
	Destination string
}

func (FindAttractionsQuery) queryKind() string          { return "find_attractions" }
func (OptimizeRouteQuery) queryKind() string            { return "optimize_route" }
func (AttractionDetailsQuery) queryKind() string        { return "get_attraction_details" }
func (AllocateBudgetQuery) queryKind() string           { return "allocate_budget" }
func (ValidateCostsQuery) queryKind() string            { return "validate_costs" }
func (OptimizeSpendingQuery) queryKind() string         { return "optimize_spending" }
func (EstimateCostsQuery) queryKind() string            { return "estimate_costs" }
func (FindRestaurantsQuery) queryKind() string          { return "find_restaurants" }
func (RecommendNearAttractionsQuery) queryKind() string { return "recommend_near_attractions" }
func (FilterByDietaryQuery) queryKind() string          { return "filter_by_dietary" }
func (LocalSpecialtiesQuery) queryKind() string         { return "get_local_specialties" }

// Query results.

// AttractionSearchResult answers FindAttractionsQuery.
type AttractionSearchResult struct {
	Attractions []Attraction `json:"attractions"`
	Count       int          `json:"count"`
}

// CategoryValidation is the per-category outcome of a cost validation.
type CategoryValidation struct {
	Allocated      float64 `json:"allocated"`
	Proposed       float64 `json:"proposed"`
	WithinBudget   bool    `json:"within_budget"`
	Overspend      float64 `json:"overspend"`
	PercentageUsed float64 `json:"percentage_used"`
}

// CostValidation answers ValidateCostsQuery. Feasible iff
// TotalOverspend is exactly zero.
type CostValidation struct {
	Results        map[string]CategoryValidation `json:"validation_results"`
	TotalOverspend float64                       `json:"total_overspend"`
	Feasible       bool                          `json:"budget_feasible"`
	Adjustments    []string                      `json:"adjustments_needed"`
}

// AllocationResult answers AllocateBudgetQuery.
type AllocationResult struct {
	Allocation BudgetAllocation   `json:"allocation"`
	PerDay     map[string]float64 `json:"per_day_budget"`
}

// SpendingOutcome is the per-category result of spending optimization.
type SpendingOutcome struct {
	OriginalCost  float64 `json:"original_cost"`
	OptimizedCost float64 `json:"optimized_cost"`
	Savings       float64 `json:"savings"`
	Adjusted      bool    `json:"optimization_applied"`
}

// SpendingPlan answers OptimizeSpendingQuery.
type SpendingPlan struct {
	Categories   map[string]SpendingOutcome `json:"optimized_costs"`
	TotalSavings float64                    `json:"total_savings"`
	Suggestions  []string                   `json:"optimization_suggestions"`
}

// CostEstimates answers EstimateCostsQuery.
type CostEstimates struct {
	Estimated  map[string]float64 `json:"estimated_costs"`
	Total      float64            `json:"total_estimated"`
	Confidence string             `json:"cost_confidence"`
}

// RestaurantSearchResult answers FindRestaurantsQuery.
type RestaurantSearchResult struct {
	Restaurants []Restaurant `json:"restaurants"`
	Count       int          `json:"count"`
}

// NearbyRecommendations answers RecommendNearAttractionsQuery, keyed
// "attraction_1".."attraction_N" in input order.
type NearbyRecommendations struct {
	ByAttraction map[string][]Restaurant `json:"recommendations"`
}

// DietaryFilterResult answers FilterByDietaryQuery.
type DietaryFilterResult struct {
	Restaurants   []Restaurant `json:"filtered_restaurants"`
	OriginalCount int          `json:"original_count"`
	FilteredCount int          `json:"filtered_count"`
}

// SpecialtiesResult answers LocalSpecialtiesQuery.
type SpecialtiesResult struct {
	Specialties []Specialty  `json:"local_specialties"`
	Restaurants []Restaurant `json:"specialty_restaurants"`
	CultureTips []string     `json:"food_culture_tips"`
}
