package planner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/ports"
)

// Phase names in execution order.
const (
	PhaseGathering  = "gathering"
	PhaseValidation = "validation"
	PhaseRouting    = "routing"
	PhaseSynthesis  = "synthesis"
)

// Sub-budget shares handed to workers during gathering.
const (
	activityBudgetShare = 0.18
	foodBudgetShare     = 0.27
	activitiesPerTrip   = 4
	mealsPerTrip        = 6
)

type gatherResult struct {
	worker  string
	report  *domain.WorkerReport
	failure *WorkerFailure
}

// pipelineState accumulates everything the phases produce.
type pipelineState struct {
	explorer *domain.ExplorerReport
	budget   *domain.BudgetReport
	food     *domain.FoodReport

	attractions []domain.Attraction
	nearby      *domain.NearbyRecommendations
	day1Route   domain.Route
	day2Route   domain.Route

	contributions map[string]int
}

func (c *Coordinator) runPipeline(ctx context.Context, planID string, req domain.TripRequest, logger *zap.Logger) (*domain.TravelItinerary, map[string]int, error) {
	state := &pipelineState{contributions: make(map[string]int)}

	if err := c.runGathering(ctx, planID, req, state, logger); err != nil {
		return nil, state.contributions, err
	}
	if err := c.runValidation(ctx, planID, req, state, logger); err != nil {
		return nil, state.contributions, err
	}
	if err := c.runRouting(ctx, planID, state, logger); err != nil {
		return nil, state.contributions, err
	}

	phaseStart := time.Now()
	c.publish(ctx, ports.EventPhaseStarted, planID, map[string]any{"phase": PhaseSynthesis})
	itinerary := synthesize(req, state)
	c.metrics.RecordPhase(PhaseSynthesis, time.Since(phaseStart))
	c.publish(ctx, ports.EventPhaseCompleted, planID, map[string]any{"phase": PhaseSynthesis})

	return itinerary, state.contributions, nil
}

// runGathering fans out to all three workers in parallel and reduces
// the results in fixed order. Worker failures degrade the state instead
// of aborting; only a malformed report is fatal.
func (c *Coordinator) runGathering(ctx context.Context, planID string, req domain.TripRequest, state *pipelineState, logger *zap.Logger) error {
	phaseStart := time.Now()
	c.publish(ctx, ports.EventPhaseStarted, planID, map[string]any{"phase": PhaseGathering})

	tasks := map[string]domain.TaskRequest{
		"explorer": {
			Destination:       req.Destination,
			Budget:            req.Budget,
			DurationDays:      req.DurationDays,
			Interests:         req.Interests,
			BudgetPerActivity: req.Budget * activityBudgetShare / activitiesPerTrip,
		},
		"budget": {
			Destination:       req.Destination,
			Budget:            req.Budget,
			DurationDays:      req.DurationDays,
			AccommodationType: req.AccommodationType,
		},
		"food": {
			Destination:         req.Destination,
			Budget:              req.Budget,
			DurationDays:        req.DurationDays,
			DietaryRestrictions: req.DietaryRestrictions,
			FoodBudget:          req.Budget * foodBudgetShare,
		},
	}

	results := make(chan gatherResult, len(tasks))
	for _, w := range c.workers() {
		go func(w ports.Worker, task domain.TaskRequest) {
			report, failure := c.invokeProcess(ctx, w, task)
			results <- gatherResult{worker: w.ID(), report: report, failure: failure}
		}(w, tasks[w.ID()])
	}

	collected := make(map[string]gatherResult, len(tasks))
	for range tasks {
		r := <-results
		collected[r.worker] = r
	}

	// Reduce in fixed order so degraded-worker handling and event
	// ordering are deterministic.
	var degraded []string
	for _, w := range c.workers() {
		r := collected[w.ID()]
		state.contributions[w.ID()]++
		if r.failure != nil {
			degraded = append(degraded, w.ID())
			logger.Warn("worker degraded",
				zap.String("worker", w.ID()),
				zap.String("kind", r.failure.Kind),
				zap.Error(r.failure.Err))
			c.publish(ctx, ports.EventWorkerDegraded, planID, map[string]any{
				"worker": w.ID(),
				"kind":   r.failure.Kind,
			})
			continue
		}

		switch w.ID() {
		case "explorer":
			if r.report.Explorer == nil {
				return pipelineErrorf(PhaseGathering, "explorer returned a report without explorer data")
			}
			state.explorer = r.report.Explorer
			state.attractions = r.report.Explorer.Attractions
		case "budget":
			if r.report.Budget == nil {
				return pipelineErrorf(PhaseGathering, "budget returned a report without budget data")
			}
			state.budget = r.report.Budget
		case "food":
			if r.report.Food == nil {
				return pipelineErrorf(PhaseGathering, "food returned a report without food data")
			}
			state.food = r.report.Food
		}
	}

	c.metrics.RecordPhase(PhaseGathering, time.Since(phaseStart))
	c.publish(ctx, ports.EventPhaseCompleted, planID, map[string]any{
		"phase":    PhaseGathering,
		"degraded": degraded,
	})
	return nil
}

// runValidation cross-checks the proposed activity spending against the
// budget allocation, re-anchors the Food worker at the gathered
// attraction locations, and on an infeasible plan triggers a single
// cheaper re-search whose results replace the attraction list. The
// nearby restaurant query always sees the phase-1 attractions, not the
// re-searched ones. Query errors fall back to the gathered data; only a
// mistyped query result is fatal.
func (c *Coordinator) runValidation(ctx context.Context, planID string, req domain.TripRequest, state *pipelineState, logger *zap.Logger) error {
	phaseStart := time.Now()
	c.publish(ctx, ports.EventPhaseStarted, planID, map[string]any{"phase": PhaseValidation})

	var allocation domain.BudgetAllocation
	if state.budget != nil {
		allocation = state.budget.Allocation
	}

	// A degraded budget worker skips validation entirely; the plan is
	// treated as feasible.
	var validation *domain.CostValidation
	if state.budget != nil && state.explorer != nil {
		var proposed float64
		for _, a := range state.attractions {
			proposed += a.Price
		}
		res, err := c.invokeHandle(ctx, c.budget, domain.ValidateCostsQuery{
			Allocation:    allocation,
			ProposedCosts: map[string]float64{"activities": proposed},
		}, state)
		if err != nil {
			logger.Warn("cost validation failed, treating plan as feasible", zap.Error(err))
		} else {
			v, ok := res.(domain.CostValidation)
			if !ok {
				return pipelineErrorf(PhaseValidation, "validate costs returned %T, want CostValidation", res)
			}
			validation = &v
		}
	}

	if state.food != nil && len(state.attractions) > 0 {
		foodBudget := allocation.Food
		if foodBudget == 0 {
			foodBudget = req.Budget * foodBudgetShare
		}
		locations := make([]domain.Location, len(state.attractions))
		for i, a := range state.attractions {
			locations[i] = a.Location
		}
		res, err := c.invokeHandle(ctx, c.food, domain.RecommendNearAttractionsQuery{
			AttractionLocations: locations,
			BudgetPerMeal:       foodBudget / mealsPerTrip,
			DietaryRestrictions: req.DietaryRestrictions,
		}, state)
		if err != nil {
			logger.Warn("nearby restaurant search failed", zap.Error(err))
		} else {
			nearby, ok := res.(domain.NearbyRecommendations)
			if !ok {
				return pipelineErrorf(PhaseValidation, "recommend near attractions returned %T, want NearbyRecommendations", res)
			}
			state.nearby = &nearby
		}
	}

	if validation != nil && !validation.Feasible {
		logger.Info("plan infeasible, tightening activity budget",
			zap.Float64("overspend", validation.TotalOverspend))
		res, err := c.invokeHandle(ctx, c.explorer, domain.FindAttractionsQuery{
			Destination:       req.Destination,
			Interests:         req.Interests,
			BudgetPerActivity: allocation.Activities / activitiesPerTrip,
		}, state)
		if err != nil {
			logger.Warn("attraction re-search failed, keeping original attractions", zap.Error(err))
		} else {
			search, ok := res.(domain.AttractionSearchResult)
			if !ok {
				return pipelineErrorf(PhaseValidation, "find attractions returned %T, want AttractionSearchResult", res)
			}
			state.attractions = search.Attractions
		}
	}

	c.metrics.RecordPhase(PhaseValidation, time.Since(phaseStart))
	c.publish(ctx, ports.EventPhaseCompleted, planID, map[string]any{"phase": PhaseValidation})
	return nil
}

// runRouting splits the attractions at the midpoint and asks the
// Explorer for one optimized route per day. Route errors leave that
// day's route empty.
func (c *Coordinator) runRouting(ctx context.Context, planID string, state *pipelineState, logger *zap.Logger) error {
	phaseStart := time.Now()
	c.publish(ctx, ports.EventPhaseStarted, planID, map[string]any{"phase": PhaseRouting})

	mid := len(state.attractions) / 2
	day1IDs := attractionIDs(state.attractions[:mid])
	day2IDs := attractionIDs(state.attractions[mid:])

	for i, ids := range [][]string{day1IDs, day2IDs} {
		if len(ids) == 0 {
			continue
		}
		res, err := c.invokeHandle(ctx, c.explorer, domain.OptimizeRouteQuery{AttractionIDs: ids}, state)
		if err != nil {
			logger.Warn("route optimization failed, leaving day unrouted",
				zap.Int("day", i+1),
				zap.Error(err))
			continue
		}
		route, ok := res.(domain.Route)
		if !ok {
			return pipelineErrorf(PhaseRouting, "optimize route returned %T, want Route", res)
		}
		if i == 0 {
			state.day1Route = route
		} else {
			state.day2Route = route
		}
	}

	c.metrics.RecordPhase(PhaseRouting, time.Since(phaseStart))
	c.publish(ctx, ports.EventPhaseCompleted, planID, map[string]any{"phase": PhaseRouting})
	return nil
}

// invokeProcess calls a worker's Process under its own timeout. When
// the timeout fires the call is abandoned; the worker goroutine may
// still be running but its result is discarded.
func (c *Coordinator) invokeProcess(ctx context.Context, w ports.Worker, task domain.TaskRequest) (*domain.WorkerReport, *WorkerFailure) {
	callCtx, cancel := context.WithTimeout(ctx, c.workerTimeout)
	defer cancel()
	start := time.Now()

	type outcome struct {
		report *domain.WorkerReport
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		report, err := w.Process(callCtx, task)
		done <- outcome{report: report, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			c.metrics.RecordWorkerCall(w.ID(), "error", time.Since(start))
			return nil, &WorkerFailure{Worker: w.ID(), Kind: FailureError, Err: out.err}
		}
		c.metrics.RecordWorkerCall(w.ID(), "ok", time.Since(start))
		return out.report, nil
	case <-callCtx.Done():
		c.metrics.RecordWorkerTimeout(w.ID())
		c.metrics.RecordWorkerCall(w.ID(), "timeout", time.Since(start))
		return nil, &WorkerFailure{Worker: w.ID(), Kind: FailureTimeout, Err: callCtx.Err()}
	}
}

// invokeHandle calls a worker's Handle and counts the contribution.
func (c *Coordinator) invokeHandle(ctx context.Context, w ports.Worker, q domain.Query, state *pipelineState) (any, error) {
	start := time.Now()
	state.contributions[w.ID()]++
	res, err := w.Handle(ctx, q)
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordWorkerCall(w.ID(), status, time.Since(start))
	return res, err
}

func attractionIDs(attractions []domain.Attraction) []string {
	ids := make([]string, len(attractions))
	for i, a := range attractions {
		ids[i] = a.ID
	}
	return ids
}
