package workers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyago/voyago/internal/domain"
)

func newTestBudget() *Budget {
	return NewBudget(zap.NewNop())
}

func TestBudgetProcessDefaultRatios(t *testing.T) {
	b := newTestBudget()

	report, err := b.Process(context.Background(), domain.TaskRequest{
		Destination:       "Berlin",
		Budget:            1000,
		DurationDays:      2,
		AccommodationType: "hotel",
	})
	require.NoError(t, err)
	require.NotNil(t, report.Budget)

	allocation := report.Budget.Allocation
	assert.Equal(t, 1000.0, allocation.TotalBudget)
	assert.Equal(t, 450.0, allocation.Accommodation)
	assert.Equal(t, 270.0, allocation.Food)
	assert.Equal(t, 180.0, allocation.Activities)
	assert.Equal(t, 100.0, allocation.Transport)
	assert.Equal(t, 50.0, allocation.Contingency)
}

func TestBudgetDestinationMultiplierScalesAccommodationAndFood(t *testing.T) {
	b := newTestBudget()

	report, err := b.Process(context.Background(), domain.TaskRequest{
		Destination:       "Paris",
		Budget:            1000,
		AccommodationType: "hotel",
	})
	require.NoError(t, err)

	allocation := report.Budget.Allocation
	assert.Equal(t, 585.0, allocation.Accommodation)
	assert.Equal(t, 351.0, allocation.Food)
	// Activities and transport stay unscaled.
	assert.Equal(t, 180.0, allocation.Activities)
	assert.Equal(t, 100.0, allocation.Transport)
}

func TestBudgetHostelRedirectsSavingsToActivities(t *testing.T) {
	b := newTestBudget()

	report, err := b.Process(context.Background(), domain.TaskRequest{
		Destination:       "Berlin",
		Budget:            1000,
		AccommodationType: "hostel",
	})
	require.NoError(t, err)

	allocation := report.Budget.Allocation
	assert.Equal(t, 270.0, allocation.Accommodation)
	// The activity top-up is 40% of the reduced accommodation share:
	// 180 + 270*0.4.
	assert.Equal(t, 288.0, allocation.Activities)
	assert.Equal(t, 270.0, allocation.Food)
}

func TestBudgetLuxuryAdjustment(t *testing.T) {
	b := newTestBudget()

	report, err := b.Process(context.Background(), domain.TaskRequest{
		Destination:       "Berlin",
		Budget:            1000,
		AccommodationType: "luxury",
	})
	require.NoError(t, err)

	allocation := report.Budget.Allocation
	assert.Equal(t, 675.0, allocation.Accommodation)
	assert.Equal(t, 216.0, allocation.Food)
	assert.Equal(t, 144.0, allocation.Activities)
}

func TestBudgetFeasibilityAnalysis(t *testing.T) {
	b := newTestBudget()

	report, err := b.Process(context.Background(), domain.TaskRequest{
		Destination: "Berlin",
		Budget:      10000,
	})
	require.NoError(t, err)
	assert.True(t, report.Budget.Analysis.OverallFeasible)
	assert.Equal(t, "low", report.Budget.Analysis.RiskLevel)
	assert.Empty(t, report.Budget.Recommendations)

	report, err = b.Process(context.Background(), domain.TaskRequest{
		Destination: "Paris",
		Budget:      100,
	})
	require.NoError(t, err)
	assert.False(t, report.Budget.Analysis.OverallFeasible)
	assert.Equal(t, "medium", report.Budget.Analysis.RiskLevel)
	assert.NotEmpty(t, report.Budget.Recommendations)
}

func TestBudgetCategoryCostTiers(t *testing.T) {
	// Paris carries a 1.3 multiplier on accommodation, food and
	// transport for a 2-day stay; activity prices do not track the
	// city price level.
	estimates := estimateCategoryCosts("Paris", 2)

	assert.Equal(t, 104.0, estimates["accommodation"]["budget"])
	assert.Equal(t, 208.0, estimates["accommodation"]["mid_range"])
	assert.Equal(t, 520.0, estimates["accommodation"]["luxury"])
	assert.Equal(t, 78.0, estimates["food"]["budget"])
	assert.Equal(t, 26.0, estimates["transport"]["public"])

	assert.Equal(t, 40.0, estimates["activities"]["budget"])
	assert.Equal(t, 100.0, estimates["activities"]["mid_range"])
	assert.Equal(t, 200.0, estimates["activities"]["luxury"])
}

func TestBudgetAllocateQueryOverridesReplaceDefaults(t *testing.T) {
	b := newTestBudget()

	res, err := b.Handle(context.Background(), domain.AllocateBudgetQuery{
		TotalBudget: 1000,
		Preferences: map[string]float64{"food": 40},
	})
	require.NoError(t, err)

	result, ok := res.(domain.AllocationResult)
	require.True(t, ok)
	assert.Equal(t, 400.0, result.Allocation.Food)
	assert.Equal(t, 450.0, result.Allocation.Accommodation)
	assert.Equal(t, 180.0, result.Allocation.Activities)
	assert.Equal(t, 200.0, result.PerDay["food"])
	assert.NotContains(t, result.PerDay, "contingency")
}

func TestBudgetValidateCosts(t *testing.T) {
	b := newTestBudget()
	allocation := domain.BudgetAllocation{
		TotalBudget:   1000,
		Accommodation: 450,
		Food:          270,
		Activities:    180,
		Transport:     100,
		Contingency:   50,
	}

	res, err := b.Handle(context.Background(), domain.ValidateCostsQuery{
		Allocation:    allocation,
		ProposedCosts: map[string]float64{"activities": 200, "food": 100},
	})
	require.NoError(t, err)

	validation, ok := res.(domain.CostValidation)
	require.True(t, ok)
	assert.False(t, validation.Feasible)
	assert.Equal(t, 20.0, validation.TotalOverspend)

	activities := validation.Results["activities"]
	assert.False(t, activities.WithinBudget)
	assert.Equal(t, 20.0, activities.Overspend)
	assert.InDelta(t, 111.11, activities.PercentageUsed, 0.01)

	food := validation.Results["food"]
	assert.True(t, food.WithinBudget)
	assert.Zero(t, food.Overspend)

	// Only proposed categories are validated.
	assert.NotContains(t, validation.Results, "transport")
	require.Len(t, validation.Adjustments, 1)
	assert.Equal(t, "Reduce activities spending by $20.00", validation.Adjustments[0])
}

func TestBudgetValidateCostsFeasible(t *testing.T) {
	b := newTestBudget()

	res, err := b.Handle(context.Background(), domain.ValidateCostsQuery{
		Allocation:    domain.BudgetAllocation{Activities: 180},
		ProposedCosts: map[string]float64{"activities": 83},
	})
	require.NoError(t, err)

	validation := res.(domain.CostValidation)
	assert.True(t, validation.Feasible)
	assert.Empty(t, validation.Adjustments)
}

func TestBudgetOptimizeSpending(t *testing.T) {
	b := newTestBudget()

	res, err := b.Handle(context.Background(), domain.OptimizeSpendingQuery{
		CurrentCosts: map[string]float64{"food": 300, "activities": 200},
		BudgetLimits: map[string]float64{"food": 250, "activities": 250},
		Priorities:   map[string]int{"food": 1},
	})
	require.NoError(t, err)

	plan, ok := res.(domain.SpendingPlan)
	require.True(t, ok)
	assert.Equal(t, 50.0, plan.TotalSavings)

	food := plan.Categories["food"]
	assert.True(t, food.Adjusted)
	assert.Equal(t, 250.0, food.OptimizedCost)
	assert.Equal(t, 50.0, food.Savings)

	activities := plan.Categories["activities"]
	assert.False(t, activities.Adjusted)
	assert.Equal(t, 200.0, activities.OptimizedCost)

	require.Len(t, plan.Suggestions, 1)
	assert.Contains(t, plan.Suggestions[0], "food")
}

func TestBudgetEstimateCosts(t *testing.T) {
	b := newTestBudget()

	res, err := b.Handle(context.Background(), domain.EstimateCostsQuery{
		Destination: "Bangkok",
		Items:       []string{"street food tour", "cooking class"},
		Category:    "food",
	})
	require.NoError(t, err)

	estimates, ok := res.(domain.CostEstimates)
	require.True(t, ok)
	assert.Equal(t, 15.0, estimates.Estimated["street food tour"])
	assert.Equal(t, 30.0, estimates.Total)
	assert.Equal(t, "high", estimates.Confidence)

	res, err = b.Handle(context.Background(), domain.EstimateCostsQuery{
		Destination: "Atlantis",
		Items:       []string{"x"},
		Category:    "activities",
	})
	require.NoError(t, err)
	assert.Equal(t, "medium", res.(domain.CostEstimates).Confidence)
}

func TestBudgetIgnoresForeignQueries(t *testing.T) {
	b := newTestBudget()

	res, err := b.Handle(context.Background(), domain.FindAttractionsQuery{Destination: "Paris"})
	assert.NoError(t, err)
	assert.Nil(t, res)
}
