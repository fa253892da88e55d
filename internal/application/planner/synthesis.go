package planner

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/format"
)

// Fixed meal slots in every day plan.
const (
	breakfastTime = "08:00"
	lunchTime     = "12:30"
	dinnerTime    = "19:00"
)

const maxRecommendations = 5

// defaultWalkingKM is used when a day has no routed attractions.
const defaultWalkingKM = 5.0

var emergencyContacts = map[string][]string{
	"paris": {
		"Emergency: 112",
		"Police: 17",
		"Ambulance (SAMU): 15",
		"Tourist medical service: +33 1 42 81 93 33",
	},
	"tokyo": {
		"Police: 110",
		"Fire and ambulance: 119",
		"Japan visitor hotline: 050-3816-2787",
	},
	"rome": {
		"Emergency: 112",
		"Carabinieri: 112",
		"Tourist police: +39 06 46861",
	},
}

// synthesize merges routes, meals and budget into the final itinerary.
// The budget breakdown is recomputed from the default ratios with no
// contingency so the presented split always matches the total budget.
func synthesize(req domain.TripRequest, state *pipelineState) *domain.TravelItinerary {
	budget := req.Budget
	breakdown := domain.BudgetAllocation{
		TotalBudget:   budget,
		Accommodation: round2(budget * 0.45),
		Food:          round2(budget * 0.27),
		Activities:    round2(budget * 0.18),
		Transport:     round2(budget * 0.10),
	}

	baseMeal := budget * foodBudgetShare / 4

	var day1List, day2List []domain.Restaurant
	if state.food != nil {
		day1List = state.food.Day1Restaurants
		day2List = state.food.Day2Restaurants
	}
	extras := flattenNearby(state.nearby)

	used := make(map[string]bool)
	day1Meals := pickMeals(day1List, extras, used)
	day2Meals := pickMeals(day2List, extras, used)

	baseDate := time.Now().AddDate(0, 0, 7)
	days := []domain.DayPlan{
		createDayPlan(1, baseDate, state.day1Route, day1Meals, baseMeal),
		createDayPlan(2, baseDate, state.day2Route, day2Meals, baseMeal),
	}

	var totalCost float64
	attractionCount := 0
	for _, day := range days {
		totalCost += day.TotalCost
		for _, item := range day.Items {
			if item.Type == domain.ItemAttraction {
				attractionCount++
			}
		}
	}
	totalCost = round2(totalCost)

	return &domain.TravelItinerary{
		Destination:       req.Destination,
		TotalBudget:       budget,
		TotalCost:         totalCost,
		Days:              days,
		BudgetBreakdown:   breakdown,
		Recommendations:   buildRecommendations(totalCost, budget, attractionCount),
		EmergencyContacts: contactsFor(req.Destination),
	}
}

// createDayPlan schedules one day. Attraction items keep their route
// times; breakfast opens the day, lunch lands mid-schedule and dinner
// closes it.
func createDayPlan(day int, baseDate time.Time, route domain.Route, meals [3]*domain.Restaurant, baseMeal float64) domain.DayPlan {
	items := make([]domain.ItineraryItem, 0, len(route.Stops)+3)
	for _, stop := range route.Stops {
		a := stop.Attraction
		items = append(items, domain.ItineraryItem{
			Time:     stop.EstimatedArrival,
			Activity: "Visit " + a.Name,
			Location: a.Location,
			Duration: a.VisitDuration,
			Cost:     a.Price,
			Type:     domain.ItemAttraction,
			Notes:    truncate(a.Description, 100),
		})
	}

	breakfast := mealItem("Breakfast", breakfastTime, meals[0], baseMeal*0.5, 60)
	lunch := mealItem("Lunch", lunchTime, meals[1], baseMeal, 90)
	dinner := mealItem("Dinner", dinnerTime, meals[2], baseMeal*1.5, 120)

	items = insertAt(items, 0, breakfast)
	lunchIdx := len(items)/2 + 1
	if lunchIdx > len(items) {
		lunchIdx = len(items)
	}
	items = insertAt(items, lunchIdx, lunch)
	items = append(items, dinner)

	var totalCost float64
	for _, item := range items {
		totalCost += item.Cost
	}

	walking := defaultWalkingKM
	if len(route.Stops) > 0 {
		walking = round2(route.TotalDistanceKM)
	}

	return domain.DayPlan{
		Day:                      day,
		Date:                     baseDate.AddDate(0, 0, day-1).Format("2006-01-02"),
		Items:                    items,
		TotalCost:                round2(totalCost),
		EstimatedWalkingDistance: walking,
	}
}

func mealItem(meal, slot string, r *domain.Restaurant, cost float64, duration int) domain.ItineraryItem {
	item := domain.ItineraryItem{
		Time:     slot,
		Duration: duration,
		Cost:     round2(cost),
		Type:     domain.ItemRestaurant,
	}
	if r != nil {
		item.Activity = meal + " at " + r.Name
		item.Location = r.Location
		if len(r.Specialties) > 0 {
			item.Notes = "Try: " + strings.Join(r.Specialties, ", ")
		}
	} else {
		item.Activity = meal + " at a local restaurant"
	}
	if item.Notes == "" {
		item.Notes = "Allow " + format.Duration(duration)
	}
	return item
}

// pickMeals assigns the day's restaurants to meal slots, then fills
// gaps from the nearby-recommendation pool. A two-entry list means the
// lunch search came back empty, so its entries are breakfast and
// dinner.
func pickMeals(dayList, extras []domain.Restaurant, used map[string]bool) [3]*domain.Restaurant {
	var picks [3]*domain.Restaurant
	slotsByLen := map[int][]int{1: {0}, 2: {0, 2}, 3: {0, 1, 2}}
	n := len(dayList)
	if n > 3 {
		n = 3
	}
	for i, slot := range slotsByLen[n] {
		r := dayList[i]
		picks[slot] = &r
		used[r.ID] = true
	}
	for i := range picks {
		if picks[i] != nil {
			continue
		}
		for j := range extras {
			if used[extras[j].ID] {
				continue
			}
			picks[i] = &extras[j]
			used[extras[j].ID] = true
			break
		}
	}
	return picks
}

// flattenNearby collects the nearby recommendations in attraction
// order.
func flattenNearby(nearby *domain.NearbyRecommendations) []domain.Restaurant {
	if nearby == nil {
		return nil
	}
	var out []domain.Restaurant
	seen := make(map[string]bool)
	for i := 1; ; i++ {
		rs, ok := nearby.ByAttraction[fmt.Sprintf("attraction_%d", i)]
		if !ok {
			break
		}
		for _, r := range rs {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			out = append(out, r)
		}
	}
	return out
}

func buildRecommendations(totalCost, budget float64, attractionCount int) []string {
	var recs []string
	util := format.BudgetUtilization(totalCost, budget)
	if util.Status == "under_budget" {
		remaining := format.Currency(util.Remaining, "USD")
		recs = append(recs, "You are well under budget, about "+remaining+" remains for premium experiences")
	}
	if util.Percentage > 95 {
		recs = append(recs, "Spending is close to the budget, keep some cash back for surprises")
	}
	if attractionCount < 4 {
		recs = append(recs, "Few attractions matched your interests, broadening them may improve the plan")
	}
	recs = append(recs,
		"Book attraction tickets online to skip queues",
		"Validate public transport passes before boarding",
		"Keep digital copies of all reservations",
		"Check opening hours on the day, they shift seasonally",
	)
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func contactsFor(destination string) []string {
	if contacts, ok := emergencyContacts[strings.ToLower(destination)]; ok {
		return contacts
	}
	return []string{"Emergency: 112", "Contact the local tourist police"}
}

func insertAt(items []domain.ItineraryItem, idx int, item domain.ItineraryItem) []domain.ItineraryItem {
	items = append(items, domain.ItineraryItem{})
	copy(items[idx+1:], items[idx:])
	items[idx] = item
	return items
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
