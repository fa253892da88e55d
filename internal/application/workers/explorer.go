package workers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/geo"
	"github.com/voyago/voyago/internal/ports"
)

const (
	routeStartMinutes = 9 * 60 // routes start at 09:00
	visitBufferMin    = 30     // travel buffer between stops
	maxAttractions    = 8
)

// Explorer searches attraction sources, ranks the results and builds
// timed visit routes. It keeps an index of every attraction it has
// returned so route queries can resolve IDs later in the pipeline.
type Explorer struct {
	base
	sources []ports.AttractionSource

	idxMu sync.RWMutex
	index map[string]domain.Attraction
}

// NewExplorer creates an Explorer backed by the given sources.
func NewExplorer(sources []ports.AttractionSource, logger *zap.Logger) *Explorer {
	return &Explorer{
		base: newBase("explorer", []string{
			"find_attractions",
			"optimize_route",
			"get_attraction_details",
		}, logger),
		sources: sources,
		index:   make(map[string]domain.Attraction),
	}
}

// Process searches attractions for the request and builds one route per
// day.
func (e *Explorer) Process(ctx context.Context, req domain.TaskRequest) (*domain.WorkerReport, error) {
	attractions, err := e.searchAttractions(ctx, req.Destination, req.Interests, req.BudgetPerActivity)
	if err != nil {
		return nil, err
	}

	days := req.DurationDays
	if days == 0 {
		days = 2
	}
	day1, day2, err := splitDays(attractions, days)
	if err != nil {
		return nil, err
	}

	day1Route := e.buildRoute(day1, nil)
	day2Route := e.buildRoute(day2, nil)

	var totalCost float64
	for _, a := range attractions {
		totalCost += a.Price
	}

	e.logger.Info("attraction search completed",
		zap.String("destination", req.Destination),
		zap.Int("attractions", len(attractions)))

	return &domain.WorkerReport{Explorer: &domain.ExplorerReport{
		Attractions:            attractions,
		Day1Route:              day1Route,
		Day2Route:              day2Route,
		TotalEstimatedCost:     totalCost,
		EstimatedTravelTimeMin: day1Route.EstimatedTimeMin + day2Route.EstimatedTimeMin,
	}}, nil
}

// Handle answers the Explorer's query kinds.
func (e *Explorer) Handle(ctx context.Context, q domain.Query) (any, error) {
	switch q := q.(type) {
	case domain.FindAttractionsQuery:
		attractions, err := e.searchAttractions(ctx, q.Destination, q.Interests, q.BudgetPerActivity)
		if err != nil {
			return nil, err
		}
		return domain.AttractionSearchResult{Attractions: attractions, Count: len(attractions)}, nil

	case domain.OptimizeRouteQuery:
		attractions := e.lookup(q.AttractionIDs)
		return e.buildRoute(attractions, q.StartLocation), nil

	case domain.AttractionDetailsQuery:
		e.idxMu.RLock()
		a, ok := e.index[q.AttractionID]
		e.idxMu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("unknown attraction %q", q.AttractionID)
		}
		return a, nil

	default:
		return nil, nil
	}
}

// searchAttractions queries all sources, deduplicates by name and city,
// filters by per-activity budget and keeps the most popular results. A
// failing source degrades the result set instead of failing the search.
func (e *Explorer) searchAttractions(ctx context.Context, destination string, interests []string, budgetPerActivity float64) ([]domain.Attraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var combined []domain.Attraction
	seen := make(map[string]bool)
	for _, src := range e.sources {
		found, err := src.SearchAttractions(ctx, destination, interests)
		if err != nil {
			e.logger.Warn("attraction source failed",
				zap.String("source", src.Name()),
				zap.Error(err))
			continue
		}
		for _, a := range found {
			key := strings.ToLower(a.Name) + "_" + strings.ToLower(a.Location.City)
			if seen[key] {
				continue
			}
			seen[key] = true
			if !geo.ValidCoordinates(a.Location.Latitude, a.Location.Longitude) {
				continue
			}
			if budgetPerActivity > 0 && a.Price > budgetPerActivity {
				continue
			}
			combined = append(combined, a)
		}
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].PopularityScore > combined[j].PopularityScore
	})
	if len(combined) > maxAttractions {
		combined = combined[:maxAttractions]
	}

	e.idxMu.Lock()
	for _, a := range combined {
		e.index[a.ID] = a
	}
	e.idxMu.Unlock()

	return combined, nil
}

// lookup resolves attraction IDs against the index, skipping unknown
// ones.
func (e *Explorer) lookup(ids []string) []domain.Attraction {
	e.idxMu.RLock()
	defer e.idxMu.RUnlock()

	out := make([]domain.Attraction, 0, len(ids))
	for _, id := range ids {
		if a, ok := e.index[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

// buildRoute orders attractions into a timed route starting at 09:00.
// Each stop's departure is its arrival plus the visit duration, with a
// fixed travel buffer before the next arrival.
func (e *Explorer) buildRoute(attractions []domain.Attraction, start *domain.Location) domain.Route {
	if len(attractions) == 0 {
		return domain.Route{}
	}
	if len(attractions) == 1 {
		a := attractions[0]
		return domain.Route{
			Stops: []domain.RouteStop{{
				Attraction:         a,
				Order:              1,
				EstimatedArrival:   "09:00",
				EstimatedDeparture: "11:00",
			}},
			EstimatedTimeMin: a.VisitDuration,
		}
	}

	points := make([]domain.Location, len(attractions))
	for i, a := range attractions {
		points[i] = a.Location
	}
	order := geo.GreedyNearestNeighborOrder(points, start)

	stops := make([]domain.RouteStop, 0, len(order))
	path := make([]domain.Location, 0, len(order)+1)
	if start != nil {
		path = append(path, *start)
	}

	current := routeStartMinutes
	for rank, idx := range order {
		a := attractions[idx]
		stops = append(stops, domain.RouteStop{
			Attraction:         a,
			Order:              rank + 1,
			EstimatedArrival:   clockTime(current),
			EstimatedDeparture: clockTime(current + a.VisitDuration),
		})
		current += a.VisitDuration + visitBufferMin
		path = append(path, a.Location)
	}

	return domain.Route{
		Stops:            stops,
		TotalDistanceKM:  geo.PathDistance(path),
		EstimatedTimeMin: current - routeStartMinutes - visitBufferMin,
	}
}

// splitDays divides attractions across the trip days, first half to day
// one.
func splitDays(attractions []domain.Attraction, days int) ([]domain.Attraction, []domain.Attraction, error) {
	if days != 2 {
		return nil, nil, domain.NewValidationError("only 2-day trips are supported, got %d days", days)
	}
	mid := len(attractions) / 2
	return attractions[:mid], attractions[mid:], nil
}

func clockTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60%24, minutes%60)
}

var _ ports.Worker = (*Explorer)(nil)
