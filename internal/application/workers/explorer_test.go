package workers

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/ports"
	"github.com/voyago/voyago/pkg/adapters/sources"
)

type stubAttractionSource struct {
	name        string
	attractions []domain.Attraction
	err         error
}

func (s *stubAttractionSource) Name() string { return s.name }

func (s *stubAttractionSource) SearchAttractions(ctx context.Context, destination string, interests []string) ([]domain.Attraction, error) {
	return s.attractions, s.err
}

func newTestExplorer() *Explorer {
	return NewExplorer([]ports.AttractionSource{
		sources.NewCityScout(),
		sources.NewAtlasTrails(),
	}, zap.NewNop())
}

func clockMinutes(t *testing.T, clock string) int {
	t.Helper()
	parts := strings.Split(clock, ":")
	require.Len(t, parts, 2)
	h, err := strconv.Atoi(parts[0])
	require.NoError(t, err)
	m, err := strconv.Atoi(parts[1])
	require.NoError(t, err)
	return h*60 + m
}

func TestExplorerProcessRanksByPopularity(t *testing.T) {
	e := newTestExplorer()

	report, err := e.Process(context.Background(), domain.TaskRequest{
		Destination:       "Paris",
		Budget:            1000,
		DurationDays:      2,
		BudgetPerActivity: 100,
	})
	require.NoError(t, err)
	require.NotNil(t, report.Explorer)

	attractions := report.Explorer.Attractions
	require.Len(t, attractions, 6)
	assert.Equal(t, "at_2002", attractions[0].ID)
	for i := 1; i < len(attractions); i++ {
		assert.GreaterOrEqual(t, attractions[i-1].PopularityScore, attractions[i].PopularityScore)
	}

	assert.Equal(t, 83.0, report.Explorer.TotalEstimatedCost)
	assert.Len(t, report.Explorer.Day1Route.Stops, 3)
	assert.Len(t, report.Explorer.Day2Route.Stops, 3)
}

func TestExplorerProcessFiltersByActivityBudget(t *testing.T) {
	e := newTestExplorer()

	report, err := e.Process(context.Background(), domain.TaskRequest{
		Destination:       "Paris",
		DurationDays:      2,
		BudgetPerActivity: 10,
	})
	require.NoError(t, err)

	for _, a := range report.Explorer.Attractions {
		assert.LessOrEqual(t, a.Price, 10.0)
	}
	assert.Len(t, report.Explorer.Attractions, 2)
}

func TestExplorerRejectsUnsupportedDuration(t *testing.T) {
	e := newTestExplorer()

	_, err := e.Process(context.Background(), domain.TaskRequest{
		Destination:  "Paris",
		DurationDays: 3,
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestExplorerDeduplicatesAndDropsInvalidCoordinates(t *testing.T) {
	dup := domain.Attraction{
		ID:   "dup_1",
		Name: "Historic Museum",
		Location: domain.Location{
			City: "Paris", Latitude: 48.85, Longitude: 2.35,
		},
		PopularityScore: 0.99,
	}
	invalid := domain.Attraction{
		ID:   "bad_1",
		Name: "Nowhere",
		Location: domain.Location{
			City: "Paris", Latitude: 200, Longitude: 2.35,
		},
		PopularityScore: 0.5,
	}
	e := NewExplorer([]ports.AttractionSource{
		sources.NewCityScout(),
		&stubAttractionSource{name: "stub", attractions: []domain.Attraction{dup, invalid}},
	}, zap.NewNop())

	report, err := e.Process(context.Background(), domain.TaskRequest{
		Destination:  "Paris",
		DurationDays: 2,
	})
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, a := range report.Explorer.Attractions {
		key := strings.ToLower(a.Name) + "_" + strings.ToLower(a.Location.City)
		assert.False(t, seen[key], "duplicate attraction %s", a.Name)
		seen[key] = true
		assert.NotEqual(t, "bad_1", a.ID)
		assert.NotEqual(t, "dup_1", a.ID, "first occurrence should win")
	}
}

func TestExplorerToleratesFailingSource(t *testing.T) {
	e := NewExplorer([]ports.AttractionSource{
		&stubAttractionSource{name: "broken", err: assert.AnError},
		sources.NewCityScout(),
	}, zap.NewNop())

	report, err := e.Process(context.Background(), domain.TaskRequest{
		Destination:  "Paris",
		DurationDays: 2,
	})
	require.NoError(t, err)
	assert.Len(t, report.Explorer.Attractions, 4)
}

func TestExplorerCapsResults(t *testing.T) {
	var many []domain.Attraction
	for i := 0; i < 12; i++ {
		many = append(many, domain.Attraction{
			ID:   "m_" + strconv.Itoa(i),
			Name: "Spot " + strconv.Itoa(i),
			Location: domain.Location{
				City: "Paris", Latitude: 48.85, Longitude: 2.35 + float64(i)/1000,
			},
			PopularityScore: float64(i) / 20,
		})
	}
	e := NewExplorer([]ports.AttractionSource{
		&stubAttractionSource{name: "many", attractions: many},
	}, zap.NewNop())

	report, err := e.Process(context.Background(), domain.TaskRequest{
		Destination:  "Paris",
		DurationDays: 2,
	})
	require.NoError(t, err)
	assert.Len(t, report.Explorer.Attractions, maxAttractions)
}

func TestExplorerOddCountSplitsFloorFirstDay(t *testing.T) {
	var five []domain.Attraction
	for i := 0; i < 5; i++ {
		five = append(five, domain.Attraction{
			ID:   "s_" + strconv.Itoa(i),
			Name: "Stop " + strconv.Itoa(i),
			Location: domain.Location{
				City: "Paris", Latitude: 48.85, Longitude: 2.35 + float64(i)/1000,
			},
			PopularityScore: 0.9 - float64(i)/100,
			VisitDuration:   60,
		})
	}
	e := NewExplorer([]ports.AttractionSource{
		&stubAttractionSource{name: "five", attractions: five},
	}, zap.NewNop())

	report, err := e.Process(context.Background(), domain.TaskRequest{
		Destination:  "Paris",
		DurationDays: 2,
	})
	require.NoError(t, err)

	// An odd attraction count puts the smaller half on day 1.
	require.Len(t, report.Explorer.Attractions, 5)
	assert.Len(t, report.Explorer.Day1Route.Stops, 2)
	assert.Len(t, report.Explorer.Day2Route.Stops, 3)
}

func TestExplorerRouteTimeline(t *testing.T) {
	e := newTestExplorer()

	report, err := e.Process(context.Background(), domain.TaskRequest{
		Destination:  "Paris",
		DurationDays: 2,
	})
	require.NoError(t, err)

	route := report.Explorer.Day1Route
	require.NotEmpty(t, route.Stops)
	assert.Equal(t, "09:00", route.Stops[0].EstimatedArrival)

	for i, stop := range route.Stops {
		assert.Equal(t, i+1, stop.Order)
		arrival := clockMinutes(t, stop.EstimatedArrival)
		departure := clockMinutes(t, stop.EstimatedDeparture)
		assert.Equal(t, stop.Attraction.VisitDuration, departure-arrival)
		if i > 0 {
			prevDeparture := clockMinutes(t, route.Stops[i-1].EstimatedDeparture)
			assert.Equal(t, visitBufferMin, arrival-prevDeparture)
		}
	}
}

func TestExplorerSingleStopRoute(t *testing.T) {
	e := newTestExplorer()

	// Index the attractions first.
	_, err := e.Process(context.Background(), domain.TaskRequest{
		Destination:  "Paris",
		DurationDays: 2,
	})
	require.NoError(t, err)

	res, err := e.Handle(context.Background(), domain.OptimizeRouteQuery{
		AttractionIDs: []string{"cs_1002"},
	})
	require.NoError(t, err)

	route, ok := res.(domain.Route)
	require.True(t, ok)
	require.Len(t, route.Stops, 1)
	assert.Equal(t, "09:00", route.Stops[0].EstimatedArrival)
	assert.Equal(t, "11:00", route.Stops[0].EstimatedDeparture)
	assert.Zero(t, route.TotalDistanceKM)
}

func TestExplorerRouteSkipsUnknownIDs(t *testing.T) {
	e := newTestExplorer()

	_, err := e.Process(context.Background(), domain.TaskRequest{
		Destination:  "Paris",
		DurationDays: 2,
	})
	require.NoError(t, err)

	res, err := e.Handle(context.Background(), domain.OptimizeRouteQuery{
		AttractionIDs: []string{"cs_1001", "missing", "cs_1002"},
	})
	require.NoError(t, err)

	route := res.(domain.Route)
	assert.Len(t, route.Stops, 2)
}

func TestExplorerAttractionDetails(t *testing.T) {
	e := newTestExplorer()

	_, err := e.Process(context.Background(), domain.TaskRequest{
		Destination:  "Paris",
		DurationDays: 2,
	})
	require.NoError(t, err)

	res, err := e.Handle(context.Background(), domain.AttractionDetailsQuery{AttractionID: "cs_1001"})
	require.NoError(t, err)
	a, ok := res.(domain.Attraction)
	require.True(t, ok)
	assert.Equal(t, "Historic Museum", a.Name)

	_, err = e.Handle(context.Background(), domain.AttractionDetailsQuery{AttractionID: "nope"})
	assert.Error(t, err)
}

func TestExplorerIgnoresForeignQueries(t *testing.T) {
	e := newTestExplorer()

	res, err := e.Handle(context.Background(), domain.AllocateBudgetQuery{TotalBudget: 100})
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestExplorerLifecycle(t *testing.T) {
	e := newTestExplorer()
	ctx := context.Background()

	assert.False(t, e.Active())
	require.NoError(t, e.Start(ctx))
	assert.True(t, e.Active())
	require.NoError(t, e.Stop(ctx))
	assert.False(t, e.Active())
}
