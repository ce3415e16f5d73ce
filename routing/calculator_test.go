package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-journeys/comps"
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/structs"
)

func _NewCalculator(f _Fixture, options CalculatorOptions) *RouteCalculator {
	return NewRouteCalculator(f.graph, f.reachability, comps.NewRunningServicesCache(f.graph, 4, 0), options)
}

func TestCalculateRoute(t *testing.T) {
	f := _LoadFixture(t, "line.yaml")
	options := DefaultCalculatorOptions()
	options.QueryTimes.Offsets = []int32{-5, 0, 5}
	calc := _NewCalculator(f, options)

	journeys, err := calc.CalculateRoute(context.Background(), JourneyRequest{
		Start:       "A",
		Destination: "C",
		Date:        _MONDAY,
		Time:        structs.NewClock(7, 50),
	})
	require.NoError(t, err)
	// all query times find the same trip, it is kept once with the shortest duration
	require.Len(t, journeys, 1)
	assert.Equal(t, structs.NewClock(8, 20), journeys[0].Arrival)
	assert.Equal(t, structs.NewClock(7, 55), journeys[0].QueryTime)
	assert.Equal(t, int32(25), journeys[0].Duration)
}

func TestCalculateArriveBy(t *testing.T) {
	f := _LoadFixture(t, "line.yaml")
	calc := _NewCalculator(f, DefaultCalculatorOptions())

	journeys, err := calc.CalculateRoute(context.Background(), JourneyRequest{
		Start:       "A",
		Destination: "C",
		Date:        _MONDAY,
		Time:        structs.NewClock(8, 25),
		ArriveBy:    true,
	})
	require.NoError(t, err)
	require.Len(t, journeys, 1)
	assert.Equal(t, structs.NewClock(8, 20), journeys[0].Arrival)
	assert.LessOrEqual(t, journeys[0].Arrival, structs.NewClock(8, 25))

	// nothing arrives by 08:15
	journeys, err = calc.CalculateRoute(context.Background(), JourneyRequest{
		Start:       "A",
		Destination: "C",
		Date:        _MONDAY,
		Time:        structs.NewClock(8, 15),
		ArriveBy:    true,
	})
	require.NoError(t, err)
	assert.Empty(t, journeys)
}

func TestCalculateRouteErrors(t *testing.T) {
	f := _LoadFixture(t, "line.yaml")
	calc := _NewCalculator(f, DefaultCalculatorOptions())

	_, err := calc.CalculateRoute(context.Background(), JourneyRequest{Start: "A", Destination: "Q", Date: _MONDAY})
	assert.ErrorIs(t, err, graph.ErrUnknownStation)
	_, err = calc.CalculateRoute(context.Background(), JourneyRequest{Start: "Q", Destination: "A", Date: _MONDAY})
	assert.ErrorIs(t, err, graph.ErrUnknownStation)
	_, err = calc.CalculateRoute(context.Background(), JourneyRequest{Start: "A", Destination: "A", Date: _MONDAY})
	assert.ErrorIs(t, err, ErrSameStartAndDestination)
}

func TestCalculateRouteCancelled(t *testing.T) {
	f := _LoadFixture(t, "line.yaml")
	calc := _NewCalculator(f, DefaultCalculatorOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := calc.CalculateRoute(ctx, JourneyRequest{Start: "A", Destination: "C", Date: _MONDAY, Time: structs.NewClock(7, 50)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMergeJourneys(t *testing.T) {
	ride := func(trip int32) []graph.Edge {
		return []graph.Edge{{From: 0, To: 1, Type: graph.BOARD, Trip: -1}, {From: 2, To: 3, Type: graph.RIDE, Trip: trip}}
	}
	a := Journey{Arrival: structs.NewClock(8, 20), Duration: 30, Edges: ride(0)}
	a_short := Journey{Arrival: structs.NewClock(8, 20), Duration: 20, Edges: ride(0)}
	b := Journey{Arrival: structs.NewClock(8, 10), Duration: 25, Edges: ride(1)}
	c := Journey{Arrival: structs.NewClock(8, 40), Duration: 50, Edges: ride(2)}

	merged := MergeJourneys([]Journey{a, c}, []Journey{a_short, b}, nil)
	require.Len(t, merged, 3)
	assert.Equal(t, b.Arrival, merged[0].Arrival)
	assert.Equal(t, int32(20), merged[1].Duration)
	assert.Equal(t, c.Arrival, merged[2].Arrival)
}

func TestEstimateFeedsArriveBy(t *testing.T) {
	f := _LoadFixture(t, "tram.yaml")
	options := DefaultCalculatorOptions()
	options.Limits = DefaultLimits(structs.TRAM)
	calc := _NewCalculator(f, options)

	journeys, err := calc.CalculateRoute(context.Background(), JourneyRequest{
		Start:       "W",
		Destination: "Z",
		Date:        _MONDAY,
		Time:        structs.NewClock(8, 30),
		ArriveBy:    true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, journeys)
	assert.Equal(t, structs.NewClock(8, 21), journeys[0].Arrival)
}
