package routing

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-journeys/comps"
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/structs"
)

func _FirstNode(g *graph.NetworkGraph, label graph.NodeLabel) int32 {
	for i := 0; i < g.NodeCount(); i++ {
		if g.GetNodeLabel(int32(i)) == label {
			return int32(i)
		}
	}
	return -1
}

func TestWaitTime(t *testing.T) {
	tests := []struct {
		dep   structs.Clock
		clock structs.Clock
		wait  int32
	}{
		{structs.NewClock(8, 0), structs.NewClock(7, 50), 10},
		{structs.NewClock(8, 0), structs.NewClock(8, 0), 0},
		{structs.NewClock(0, 10), structs.NewClock(23, 55), -1425},
		{structs.NewClock(24, 20), structs.NewClock(23, 55), 25},
		{structs.NewClock(25, 10), structs.NewClock(23, 55), 75},
		{structs.NewClock(24, 20), structs.NewClock(0, 10), 1450},
		{structs.NewClock(7, 59), structs.NewClock(8, 0), -1},
	}
	for _, test := range tests {
		assert.Equal(t, test.wait, WaitTime(test.dep, test.clock), "%v at %v", test.dep, test.clock)
	}
}

func TestCheckMinute(t *testing.T) {
	f := _LoadFixture(t, "line.yaml")
	running := comps.NewRunningServices(f.graph, _MONDAY)
	h := NewServiceHeuristics(f.graph, running, f.reachability, []Endpoint{{Node: f.Node(t, "C")}}, 30)
	// first minute node is the 08:00 departure at A
	minute := _FirstNode(f.graph, graph.MINUTE)
	assert.Equal(t, structs.NewClock(8, 0), f.graph.GetMinute(minute).Time)

	reason, clock := h.CheckMinute(minute, structs.NewClock(7, 50))
	assert.Equal(t, REASON_VALID, reason)
	assert.Equal(t, structs.NewClock(8, 0), clock)

	reason, _ = h.CheckMinute(minute, structs.NewClock(7, 20))
	assert.Equal(t, REASON_WAIT_TOO_LONG, reason)

	reason, _ = h.CheckMinute(minute, structs.NewClock(8, 5))
	assert.Equal(t, REASON_ALREADY_DEPARTED, reason)
}

func TestCheckHour(t *testing.T) {
	f := _LoadFixture(t, "line.yaml")
	running := comps.NewRunningServices(f.graph, _MONDAY)
	h := NewServiceHeuristics(f.graph, running, f.reachability, []Endpoint{{Node: f.Node(t, "C")}}, 30)
	hour := _FirstNode(f.graph, graph.HOUR)

	assert.Equal(t, REASON_VALID, h.CheckHour(hour, structs.NewClock(7, 50)))
	assert.Equal(t, REASON_VALID, h.CheckHour(hour, structs.NewClock(8, 30)))
	assert.Equal(t, REASON_HOUR_OUT_OF_RANGE, h.CheckHour(hour, structs.NewClock(6, 50)))
	assert.Equal(t, REASON_HOUR_OUT_OF_RANGE, h.CheckHour(hour, structs.NewClock(9, 0)))

	wide := NewServiceHeuristics(f.graph, running, f.reachability, nil, 150)
	assert.Equal(t, REASON_VALID, wide.CheckHour(hour, structs.NewClock(6, 0)))
}

func _FindNode(g *graph.NetworkGraph, label graph.NodeLabel, match func(node int32) bool) int32 {
	for i := 0; i < g.NodeCount(); i++ {
		if g.GetNodeLabel(int32(i)) == label && match(int32(i)) {
			return int32(i)
		}
	}
	return -1
}

func TestChecksAcrossMidnight(t *testing.T) {
	f := _LoadFixture(t, "night.yaml")
	running := comps.NewRunningServices(f.graph, _MONDAY)
	h := NewServiceHeuristics(f.graph, running, f.reachability, []Endpoint{{Node: f.Node(t, "B")}}, 30)

	early_hour := _FindNode(f.graph, graph.HOUR, func(n int32) bool { return f.graph.GetHour(n).Hour == 0 })
	late_hour := _FindNode(f.graph, graph.HOUR, func(n int32) bool { return f.graph.GetHour(n).Hour == 24 })
	require.NotEqual(t, int32(-1), early_hour)
	require.NotEqual(t, int32(-1), late_hour)

	assert.Equal(t, REASON_VALID, h.CheckHour(late_hour, structs.NewClock(23, 50)))
	assert.Equal(t, REASON_HOUR_OUT_OF_RANGE, h.CheckHour(late_hour, structs.NewClock(0, 10)))
	assert.Equal(t, REASON_HOUR_OUT_OF_RANGE, h.CheckHour(early_hour, structs.NewClock(23, 50)))
	assert.Equal(t, REASON_VALID, h.CheckHour(early_hour, structs.NewClock(0, 5)))

	early := _FindNode(f.graph, graph.MINUTE, func(n int32) bool { return f.graph.GetMinute(n).Time == structs.NewClock(0, 10) })
	late := _FindNode(f.graph, graph.MINUTE, func(n int32) bool { return f.graph.GetMinute(n).Time == structs.NewClock(24, 20) })
	require.NotEqual(t, int32(-1), early)
	require.NotEqual(t, int32(-1), late)

	reason, _ := h.CheckMinute(late, structs.NewClock(0, 10))
	assert.Equal(t, REASON_WAIT_TOO_LONG, reason)
	reason, _ = h.CheckMinute(early, structs.NewClock(23, 55))
	assert.Equal(t, REASON_ALREADY_DEPARTED, reason)
	reason, clock := h.CheckMinute(late, structs.NewClock(23, 55))
	assert.Equal(t, REASON_VALID, reason)
	assert.Equal(t, structs.NewClock(24, 20), clock)
}

func TestCheckCalendar(t *testing.T) {
	f := _LoadFixture(t, "monday.yaml")
	service := _FirstNode(f.graph, graph.SERVICE)

	monday := NewServiceHeuristics(f.graph, comps.NewRunningServices(f.graph, _MONDAY), nil, nil, 30)
	assert.Equal(t, REASON_VALID, monday.CheckCalendar(service))
	tuesday := NewServiceHeuristics(f.graph, comps.NewRunningServices(f.graph, _TUESDAY), nil, nil, 30)
	assert.Equal(t, REASON_NOT_ON_QUERY_DATE, tuesday.CheckCalendar(service))
}

func TestTransferChecks(t *testing.T) {
	h := &ServiceHeuristics{}
	ride := graph.Edge{Type: graph.RIDE, Trip: 3}
	assert.Equal(t, REASON_VALID, h.CheckReboard(-1, false, ride))
	assert.Equal(t, REASON_RETURNED_TO_SAME_TRIP, h.CheckReboard(3, false, ride))
	assert.Equal(t, REASON_VALID, h.CheckReboard(3, true, ride))
	assert.Equal(t, REASON_VALID, h.CheckReboard(4, false, ride))

	board := graph.Edge{Type: graph.INTERCHANGE_BOARD}
	depart := graph.Edge{Type: graph.DEPART}
	assert.Equal(t, REASON_DEPART_AFTER_BOARD, h.CheckDepartAfterBoard(board, depart))
	assert.Equal(t, REASON_VALID, h.CheckDepartAfterBoard(ride, depart))

	limits := Limits{MaxWait: 30, MaxLength: 10, MaxDuration: 60}
	assert.Equal(t, REASON_PATH_TOO_LONG, h.CheckPathLength(11, limits))
	assert.Equal(t, REASON_VALID, h.CheckPathLength(10, limits))
	assert.Equal(t, REASON_TOOK_TOO_LONG, h.CheckDuration(61, limits))
}

func TestCheckReachable(t *testing.T) {
	f := _LoadFixture(t, "tram.yaml")
	running := comps.NewRunningServices(f.graph, _MONDAY)
	h := NewServiceHeuristics(f.graph, running, f.reachability, []Endpoint{{Node: f.Node(t, "Z")}}, 30)

	// route-stations are numbered in order of first call, Y on route 1 is the third
	y := f.graph.RouteStationNode(2)
	assert.Equal(t, f.graph.NodeStation(f.Node(t, "Y")), f.graph.NodeStation(y))
	assert.Equal(t, REASON_STATION_UNREACHABLE, h.CheckReachable(y))
	w := f.graph.RouteStationNode(0)
	assert.Equal(t, REASON_VALID, h.CheckReachable(w))
}

func TestVisitedCache(t *testing.T) {
	cache := NewVisitedCache()
	assert.True(t, cache.TryRecord(5, structs.NewClock(8, 0)))
	assert.False(t, cache.TryRecord(5, structs.NewClock(8, 0)))
	assert.True(t, cache.TryRecord(5, structs.NewClock(8, 1)))
	assert.True(t, cache.TryRecord(37, structs.NewClock(8, 0)))
	assert.True(t, cache.Contains(37, structs.NewClock(8, 0)))
	assert.Equal(t, 3, cache.Len())
}

func TestVisitedCacheConcurrent(t *testing.T) {
	cache := NewVisitedCache()
	var wg sync.WaitGroup
	var lock sync.Mutex
	successes := 0
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count := 0
			for node := int32(0); node < 100; node++ {
				for clock := structs.Clock(0); clock < 10; clock++ {
					if cache.TryRecord(node, clock) {
						count += 1
					}
				}
			}
			lock.Lock()
			successes += count
			lock.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1000, successes)
	assert.Equal(t, 1000, cache.Len())
}

func TestQueryTimes(t *testing.T) {
	options := QueryTimeOptions{
		Offsets:         []int32{5, -5, 0, 0},
		ArriveByOffsets: []int32{-30, 0},
	}
	times := QueryTimes(structs.NewClock(8, 0), false, options)
	assert.Equal(t, []structs.Clock{structs.NewClock(7, 55), structs.NewClock(8, 0), structs.NewClock(8, 5)}, []structs.Clock(times))

	times = QueryTimes(structs.NewClock(8, 0), true, options)
	assert.Equal(t, []structs.Clock{structs.NewClock(7, 30), structs.NewClock(8, 0)}, []structs.Clock(times))

	times = QueryTimes(structs.NewClock(0, 2), false, QueryTimeOptions{Offsets: []int32{-5, 0}})
	assert.Equal(t, []structs.Clock{0, structs.NewClock(0, 2)}, []structs.Clock(times))

	times = QueryTimes(structs.NewClock(9, 0), false, QueryTimeOptions{})
	assert.Equal(t, []structs.Clock{structs.NewClock(9, 0)}, []structs.Clock(times))
}

func TestMergeLimits(t *testing.T) {
	tram := DefaultLimits(structs.TRAM)
	bus := DefaultLimits(structs.BUS)
	assert.Less(t, tram.MaxDuration, bus.MaxDuration)
	assert.Less(t, tram.MaxLength, bus.MaxLength)
	assert.Equal(t, bus, MergeLimits(tram, bus))

	f := _LoadFixture(t, "tram.yaml")
	assert.Equal(t, tram, NetworkLimits(f.graph, nil))
	custom := Limits{MaxWait: 10, MaxLength: 20, MaxDuration: 30}
	assert.Equal(t, custom, NetworkLimits(f.graph, map[structs.TransportMode]Limits{structs.TRAM: custom}))
}
