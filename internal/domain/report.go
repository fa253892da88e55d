package domain

// TaskRequest is the uniform input for a worker's Process call. Each
// worker reads the fields it cares about; missing optional fields
// default silently inside the worker.
type TaskRequest struct {
	Destination         string     `json:"destination"`
	Budget              float64    `json:"budget"`
	DurationDays        int        `json:"duration_days"`
	Interests           []string   `json:"interests"`
	DietaryRestrictions []string   `json:"dietary_restrictions"`
	AccommodationType   string     `json:"accommodation_type"`
	BudgetPerActivity   float64    `json:"budget_per_activity"`
	FoodBudget          float64    `json:"food_budget"`
	AttractionLocations []Location `json:"attraction_locations"`
}

// RouteStop is one attraction visit in an optimized route with
// synthetic arrival and departure times.
type RouteStop struct {
	Attraction         Attraction `json:"attraction"`
	Order              int        `json:"order"`
	EstimatedArrival   string     `json:"estimated_arrival"`
	EstimatedDeparture string     `json:"estimated_departure"`
}

// Route is an ordered sequence of stops for one day.
type Route struct {
	Stops            []RouteStop `json:"optimized_route"`
	TotalDistanceKM  float64     `json:"total_distance"`
	EstimatedTimeMin int         `json:"estimated_time"`
}

// FeasibilityAnalysis summarizes whether an allocation covers the
// baseline cost estimates per category.
type FeasibilityAnalysis struct {
	PerCategory     map[string]bool `json:"per_category"`
	OverallFeasible bool            `json:"overall_feasible"`
	Score           float64         `json:"feasibility_score"`
	RiskLevel       string          `json:"risk_level"`
}

// Specialty is a local dish recommendation.
type Specialty struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ExplorerReport is the Explorer worker's phase-1 output.
type ExplorerReport struct {
	Attractions            []Attraction `json:"attractions"`
	Day1Route              Route        `json:"day1_route"`
	Day2Route              Route        `json:"day2_route"`
	TotalEstimatedCost     float64      `json:"total_estimated_cost"`
	EstimatedTravelTimeMin int          `json:"estimated_travel_time"`
}

// BudgetReport is the Budget worker's phase-1 output.
type BudgetReport struct {
	Allocation      BudgetAllocation              `json:"budget_allocation"`
	CostEstimates   map[string]map[string]float64 `json:"cost_estimates"`
	Analysis        FeasibilityAnalysis           `json:"budget_analysis"`
	Recommendations []string                      `json:"recommendations"`
}

// FoodReport is the Food worker's phase-1 output.
type FoodReport struct {
	Day1Restaurants       []Restaurant `json:"day1_restaurants"`
	Day2Restaurants       []Restaurant `json:"day2_restaurants"`
	LocalSpecialties      []Specialty  `json:"local_specialties"`
	FoodTips              []string     `json:"food_tips"`
	TotalEstimatedCost    float64      `json:"total_estimated_cost"`
	DietaryAccommodations bool         `json:"dietary_accommodations"`
}

// WorkerReport is the tagged success payload of a Process call; exactly
// one section is set, matching the worker that produced it.
type WorkerReport struct {
	Explorer *ExplorerReport `json:"explorer,omitempty"`
	Budget   *BudgetReport   `json:"budget,omitempty"`
	Food     *FoodReport     `json:"food,omitempty"`
}
