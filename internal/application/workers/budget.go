package workers

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/ports"
)

// defaultRatios is the percentage split applied when the caller gives
// no preferences. The values intentionally sum to 100 before the
// additive contingency.
var defaultRatios = map[string]float64{
	"accommodation": 45,
	"food":          27,
	"activities":    18,
	"transport":     10,
}

// destinationMultipliers scales accommodation and food costs by city
// price level.
var destinationMultipliers = map[string]float64{
	"paris":    1.3,
	"london":   1.4,
	"tokyo":    1.2,
	"bangkok":  0.6,
	"new york": 1.5,
	"berlin":   1.0,
	"rome":     1.1,
}

const contingencyRate = 0.05

// spendCategories is the fixed iteration order for the four spending
// categories.
var spendCategories = []string{"accommodation", "food", "activities", "transport"}

// Budget allocates trip budgets across categories, estimates baseline
// costs and validates proposed spending. It is stateless.
type Budget struct {
	base
}

// NewBudget creates a Budget worker.
func NewBudget(logger *zap.Logger) *Budget {
	return &Budget{
		base: newBase("budget", []string{
			"allocate_budget",
			"validate_costs",
			"optimize_spending",
			"estimate_costs",
		}, logger),
	}
}

// Process builds the full budget report for a request.
func (b *Budget) Process(ctx context.Context, req domain.TaskRequest) (*domain.WorkerReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	days := req.DurationDays
	if days == 0 {
		days = 2
	}

	allocation := createAllocation(req.Budget, req.Destination, req.AccommodationType, nil)
	estimates := estimateCategoryCosts(req.Destination, days)
	analysis := analyzeFeasibility(allocation, estimates)

	var recommendations []string
	for _, cat := range spendCategories {
		if !analysis.PerCategory[cat] {
			recommendations = append(recommendations,
				fmt.Sprintf("Allocated %s budget may not cover typical costs in %s", cat, req.Destination))
		}
	}

	b.logger.Info("budget allocated",
		zap.String("destination", req.Destination),
		zap.Float64("total", req.Budget),
		zap.Bool("feasible", analysis.OverallFeasible))

	return &domain.WorkerReport{Budget: &domain.BudgetReport{
		Allocation:      allocation,
		CostEstimates:   estimates,
		Analysis:        analysis,
		Recommendations: recommendations,
	}}, nil
}

// Handle answers the Budget worker's query kinds.
func (b *Budget) Handle(ctx context.Context, q domain.Query) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch q := q.(type) {
	case domain.AllocateBudgetQuery:
		allocation := createAllocation(q.TotalBudget, "", "hotel", q.Preferences)
		perDay := make(map[string]float64, len(spendCategories))
		for _, cat := range allocation.Categories() {
			if cat.Name == "contingency" {
				continue
			}
			perDay[cat.Name] = round2(cat.Amount / 2)
		}
		return domain.AllocationResult{Allocation: allocation, PerDay: perDay}, nil

	case domain.ValidateCostsQuery:
		return validateCosts(q.Allocation, q.ProposedCosts), nil

	case domain.OptimizeSpendingQuery:
		return optimizeSpending(q.CurrentCosts, q.BudgetLimits, q.Priorities), nil

	case domain.EstimateCostsQuery:
		return estimateCosts(q.Destination, q.Items, q.Category), nil

	default:
		return nil, nil
	}
}

// createAllocation splits a total budget by ratio, applies the
// accommodation-type adjustment, then scales accommodation and food by
// the destination's price multiplier. A preference replaces the default
// ratio of its category outright; the result is not renormalized.
func createAllocation(total float64, destination, accommodationType string, preferences map[string]float64) domain.BudgetAllocation {
	ratios := make(map[string]float64, len(defaultRatios))
	for k, v := range defaultRatios {
		ratios[k] = v
	}
	for k, v := range preferences {
		if _, ok := ratios[k]; ok {
			ratios[k] = v
		}
	}

	accommodation := total * ratios["accommodation"] / 100
	food := total * ratios["food"] / 100
	activities := total * ratios["activities"] / 100
	transport := total * ratios["transport"] / 100

	switch strings.ToLower(accommodationType) {
	case "hostel":
		// The redirect reads the already reduced accommodation share.
		accommodation *= 0.6
		activities += accommodation * 0.4
	case "luxury":
		accommodation *= 1.5
		food *= 0.8
		activities *= 0.8
	}

	mult, _ := destinationMultiplier(destination)
	accommodation *= mult
	food *= mult

	return domain.BudgetAllocation{
		TotalBudget:   total,
		Accommodation: round2(accommodation),
		Food:          round2(food),
		Activities:    round2(activities),
		Transport:     round2(transport),
		Contingency:   round2(total * contingencyRate),
	}
}

// estimateCategoryCosts returns tiered per-category cost baselines for
// a stay. The destination multiplier scales accommodation, food and
// transport; activity prices do not track the city price level.
func estimateCategoryCosts(destination string, durationDays int) map[string]map[string]float64 {
	mult, _ := destinationMultiplier(destination)
	days := float64(durationDays)
	return map[string]map[string]float64{
		"accommodation": {
			"budget":    round2(40 * days * mult),
			"mid_range": round2(80 * days * mult),
			"luxury":    round2(200 * days * mult),
		},
		"food": {
			"budget":    round2(30 * days * mult),
			"mid_range": round2(60 * days * mult),
			"luxury":    round2(120 * days * mult),
		},
		"activities": {
			"budget":    round2(20 * days),
			"mid_range": round2(50 * days),
			"luxury":    round2(100 * days),
		},
		"transport": {
			"public":     round2(10 * days * mult),
			"taxi":       round2(40 * days * mult),
			"car_rental": round2(60 * days * mult),
		},
	}
}

// analyzeFeasibility checks each category's allocation against the
// cheapest tier of its estimate (public transit for transport).
func analyzeFeasibility(allocation domain.BudgetAllocation, estimates map[string]map[string]float64) domain.FeasibilityAnalysis {
	amounts := map[string]float64{
		"accommodation": allocation.Accommodation,
		"food":          allocation.Food,
		"activities":    allocation.Activities,
		"transport":     allocation.Transport,
	}
	baselines := map[string]float64{
		"accommodation": estimates["accommodation"]["budget"],
		"food":          estimates["food"]["budget"],
		"activities":    estimates["activities"]["budget"],
		"transport":     estimates["transport"]["public"],
	}

	perCategory := make(map[string]bool, len(spendCategories))
	feasibleCount := 0
	for _, cat := range spendCategories {
		ok := amounts[cat] >= baselines[cat]
		perCategory[cat] = ok
		if ok {
			feasibleCount++
		}
	}

	overall := feasibleCount == len(spendCategories)
	risk := "medium"
	if overall {
		risk = "low"
	}

	return domain.FeasibilityAnalysis{
		PerCategory:     perCategory,
		OverallFeasible: overall,
		Score:           float64(feasibleCount) / float64(len(spendCategories)),
		RiskLevel:       risk,
	}
}

// validateCosts checks proposed spending against an allocation. Only
// categories present in the proposal are validated; feasibility
// requires zero total overspend.
func validateCosts(allocation domain.BudgetAllocation, proposed map[string]float64) domain.CostValidation {
	results := make(map[string]domain.CategoryValidation)
	var totalOverspend float64
	var adjustments []string

	for _, cat := range allocation.Categories() {
		proposedAmt, ok := proposed[cat.Name]
		if !ok {
			continue
		}

		overspend := proposedAmt - cat.Amount
		if overspend < 0 {
			overspend = 0
		}
		var pct float64
		if cat.Amount > 0 {
			pct = round2(proposedAmt / cat.Amount * 100)
		}

		results[cat.Name] = domain.CategoryValidation{
			Allocated:      cat.Amount,
			Proposed:       proposedAmt,
			WithinBudget:   overspend == 0,
			Overspend:      round2(overspend),
			PercentageUsed: pct,
		}
		totalOverspend += overspend
		if overspend > 0 {
			adjustments = append(adjustments,
				fmt.Sprintf("Reduce %s spending by $%.2f", cat.Name, overspend))
		}
	}

	return domain.CostValidation{
		Results:        results,
		TotalOverspend: round2(totalOverspend),
		Feasible:       totalOverspend == 0,
		Adjustments:    adjustments,
	}
}

// optimizeSpending clamps over-limit categories down to their limits,
// visiting categories in priority order (rank 1 first, missing rank
// defaults to 5, ties broken by name).
func optimizeSpending(current, limits map[string]float64, priorities map[string]int) domain.SpendingPlan {
	names := make([]string, 0, len(current))
	for name := range current {
		names = append(names, name)
	}
	rank := func(name string) int {
		if r, ok := priorities[name]; ok {
			return r
		}
		return 5
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})

	categories := make(map[string]domain.SpendingOutcome, len(names))
	var totalSavings float64
	var suggestions []string
	for _, name := range names {
		cost := current[name]
		limit, bounded := limits[name]
		if !bounded || cost <= limit {
			categories[name] = domain.SpendingOutcome{OriginalCost: cost, OptimizedCost: cost}
			continue
		}
		savings := cost - limit
		categories[name] = domain.SpendingOutcome{
			OriginalCost:  cost,
			OptimizedCost: limit,
			Savings:       round2(savings),
			Adjusted:      true,
		}
		totalSavings += savings
		suggestions = append(suggestions,
			fmt.Sprintf("Cut %s from $%.2f to $%.2f", name, cost, limit))
	}

	return domain.SpendingPlan{
		Categories:   categories,
		TotalSavings: round2(totalSavings),
		Suggestions:  suggestions,
	}
}

// estimateCosts prices a list of items using the category's baseline
// unit cost scaled by destination.
func estimateCosts(destination string, items []string, category string) domain.CostEstimates {
	unitCosts := map[string]float64{
		"activities":    20,
		"food":          25,
		"transport":     15,
		"accommodation": 80,
	}
	unit, ok := unitCosts[category]
	if !ok {
		unit = 20
	}

	mult, known := destinationMultiplier(destination)
	confidence := "medium"
	if known {
		confidence = "high"
	}

	estimated := make(map[string]float64, len(items))
	var total float64
	for _, item := range items {
		cost := round2(unit * mult)
		estimated[item] = cost
		total += cost
	}

	return domain.CostEstimates{
		Estimated:  estimated,
		Total:      round2(total),
		Confidence: confidence,
	}
}

func destinationMultiplier(destination string) (float64, bool) {
	if m, ok := destinationMultipliers[strings.ToLower(destination)]; ok {
		return m, true
	}
	return 1.0, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var _ ports.Worker = (*Budget)(nil)
