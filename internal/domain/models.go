package domain

import (
	"time"
)

// Location is a geographical point with descriptive fields.
type Location struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
}

// Attraction is a candidate point of interest produced by the Explorer
// worker's data sources. Never mutated after creation; only filtered
// into smaller lists.
type Attraction struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Location        Location          `json:"location"`
	Category        string            `json:"category"`
	Rating          float64           `json:"rating"`
	Price           float64           `json:"price"`
	OpeningHours    map[string]string `json:"opening_hours"`
	VisitDuration   int               `json:"visit_duration"` // minutes
	PopularityScore float64           `json:"popularity_score"`
	ImageURL        string            `json:"image_url,omitempty"`
}

// Restaurant is a candidate dining spot produced by the Food worker's
// data sources.
type Restaurant struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	CuisineType     string            `json:"cuisine_type"`
	Location        Location          `json:"location"`
	Rating          float64           `json:"rating"`
	PriceRange      string            `json:"price_range"` // $, $$, $$$, $$$$
	AverageMealCost float64           `json:"average_meal_cost"`
	OpeningHours    map[string]string `json:"opening_hours"`
	Specialties     []string          `json:"specialties"`
	DietaryOptions  []string          `json:"dietary_options"`
}

// BudgetAllocation splits a total budget across spending categories.
// The four category amounts plus contingency are not guaranteed to sum
// to TotalBudget: the contingency is additive and accommodation-type
// adjustments are not renormalized.
type BudgetAllocation struct {
	TotalBudget   float64 `json:"total_budget"`
	Accommodation float64 `json:"accommodation"`
	Food          float64 `json:"food"`
	Activities    float64 `json:"activities"`
	Transport     float64 `json:"transport"`
	Contingency   float64 `json:"contingency"`
}

// BudgetCategory is a named slice of an allocation.
type BudgetCategory struct {
	Name   string
	Amount float64
}

// Categories returns the allocation's categories in a fixed order so
// downstream iteration is deterministic.
func (b BudgetAllocation) Categories() []BudgetCategory {
	return []BudgetCategory{
		{Name: "accommodation", Amount: b.Accommodation},
		{Name: "food", Amount: b.Food},
		{Name: "activities", Amount: b.Activities},
		{Name: "transport", Amount: b.Transport},
		{Name: "contingency", Amount: b.Contingency},
	}
}

// TripRequest is the immutable input to a planning run.
type TripRequest struct {
	Destination         string   `json:"destination"`
	Budget              float64  `json:"budget"`
	DurationDays        int      `json:"duration_days"`
	Interests           []string `json:"interests"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	AccommodationType   string   `json:"accommodation_type"`
	TransportPreference string   `json:"transport_preference"`
}

// Normalize fills unset optional fields with their defaults.
func (r *TripRequest) Normalize() {
	if r.DurationDays == 0 {
		r.DurationDays = 2
	}
	if r.AccommodationType == "" {
		r.AccommodationType = "hotel"
	}
	if r.TransportPreference == "" {
		r.TransportPreference = "public"
	}
}

// Validate checks the request against the planner's input contract.
func (r TripRequest) Validate() error {
	if r.Destination == "" {
		return NewValidationError("destination is required")
	}
	if r.Budget <= 0 {
		return NewValidationError("budget must be positive")
	}
	if r.DurationDays != 2 {
		return NewValidationError("only 2-day trips are supported, got %d days", r.DurationDays)
	}
	return nil
}

// ItemType classifies an itinerary item.
type ItemType string

const (
	ItemAttraction ItemType = "attraction"
	ItemRestaurant ItemType = "restaurant"
	ItemTransport  ItemType = "transport"
)

// ItineraryItem is a single scheduled entry in a day plan. Created only
// during synthesis; immutable.
type ItineraryItem struct {
	Time     string   `json:"time"`
	Activity string   `json:"activity"`
	Location Location `json:"location"`
	Duration int      `json:"duration"` // minutes
	Cost     float64  `json:"cost"`
	Type     ItemType `json:"type"`
	Notes    string   `json:"notes,omitempty"`
}

// DayPlan is one day's ordered schedule. TotalCost equals the exact sum
// of the item costs.
type DayPlan struct {
	Day                      int             `json:"day"`
	Date                     string          `json:"date"`
	Items                    []ItineraryItem `json:"items"`
	TotalCost                float64         `json:"total_cost"`
	EstimatedWalkingDistance float64         `json:"estimated_walking_distance"` // km
}

// TravelItinerary is the terminal synthesized artifact. Once returned
// it is not mutated.
type TravelItinerary struct {
	Destination       string           `json:"destination"`
	TotalBudget       float64          `json:"total_budget"`
	TotalCost         float64          `json:"total_cost"`
	Days              []DayPlan        `json:"days"`
	BudgetBreakdown   BudgetAllocation `json:"budget_breakdown"`
	Recommendations   []string         `json:"recommendations"`
	EmergencyContacts []string         `json:"emergency_contacts"`
}

// PlanResult is the structured response of a planning run. The caller
// always receives one of these, never a bare error.
type PlanResult struct {
	PlanID        string           `json:"plan_id"`
	Success       bool             `json:"success"`
	Itinerary     *TravelItinerary `json:"itinerary,omitempty"`
	Error         string           `json:"error,omitempty"`
	ProcessedAt   time.Time        `json:"processed_at"`
	Contributions map[string]int   `json:"agent_contributions,omitempty"`
}
