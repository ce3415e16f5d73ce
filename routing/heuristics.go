package routing

import (
	"math"

	"github.com/ttpr0/go-journeys/comps"
	"github.com/ttpr0/go-journeys/geo"
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/structs"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slices"
)

//*******************************************
// service heuristics
//*******************************************

// ServiceHeuristics holds the admissibility checks of one search.
// All checks are pure, so one instance can be shared by concurrent searches
// with the same date and destinations.
type ServiceHeuristics struct {
	graph        *graph.NetworkGraph
	running      *comps.RunningServices
	reachability *comps.Reachability
	destinations BitSet
	dest_coords  List[geo.Coord]
	max_wait     int32
}

// reachability may be nil, every route-station is treated as reachable then.
func NewServiceHeuristics(g *graph.NetworkGraph, running *comps.RunningServices, reachability *comps.Reachability, destinations []Endpoint, max_wait int32) *ServiceHeuristics {
	stations := NewBitSet(g.StationCount())
	coords := NewList[geo.Coord](len(destinations))
	for _, dest := range destinations {
		station := g.NodeStation(dest.Node)
		if station == -1 || stations.Has(station) {
			continue
		}
		stations.Add(station)
		coords.Add(g.GetStation(station).Loc)
	}
	return &ServiceHeuristics{
		graph:        g,
		running:      running,
		reachability: reachability,
		destinations: stations,
		dest_coords:  coords,
		max_wait:     max_wait,
	}
}

func (self *ServiceHeuristics) MaxWait() int32 {
	return self.max_wait
}

func (self *ServiceHeuristics) IsDestinationStation(station int32) bool {
	return self.destinations.Has(station)
}

// Minutes to wait from clock until a departure at dep, negative if it has left.
// Both clocks count from midnight of the query date and run past 24:00.
func WaitTime(dep structs.Clock, clock structs.Clock) int32 {
	return dep.Sub(clock)
}

func (self *ServiceHeuristics) CheckCalendar(service_node int32) ServiceReason {
	svc := self.graph.GetServiceNode(service_node)
	if !self.running.IsRunning(svc.Service) {
		return REASON_NOT_ON_QUERY_DATE
	}
	return REASON_VALID
}

// Coarse check of a whole hour bucket against the current clock.
func (self *ServiceHeuristics) CheckHour(hour_node int32, clock structs.Clock) ServiceReason {
	diff := self.graph.GetHour(hour_node).Hour - clock.Hour()
	max_hours := (self.max_wait + 59) / 60
	if diff < 0 || diff > max_hours {
		return REASON_HOUR_OUT_OF_RANGE
	}
	return REASON_VALID
}

// Checks a scheduled departure, returns the clock snapped to it.
func (self *ServiceHeuristics) CheckMinute(minute_node int32, clock structs.Clock) (ServiceReason, structs.Clock) {
	dep := self.graph.GetMinute(minute_node).Time
	wait := WaitTime(dep, clock)
	switch {
	case wait < 0:
		return REASON_ALREADY_DEPARTED, clock
	case wait > self.max_wait:
		return REASON_WAIT_TOO_LONG, clock
	}
	return REASON_VALID, clock.Add(wait)
}

// A trip that was left can only be boarded again after an interchange depart.
func (self *ServiceHeuristics) CheckReboard(last_trip int32, via_interchange bool, ride graph.Edge) ServiceReason {
	if last_trip != -1 && ride.Trip == last_trip && !via_interchange {
		return REASON_RETURNED_TO_SAME_TRIP
	}
	return REASON_VALID
}

func (self *ServiceHeuristics) CheckDepartAfterBoard(in graph.Edge, out graph.Edge) ServiceReason {
	if in.Type.IsBoard() && out.Type.IsDepart() {
		return REASON_DEPART_AFTER_BOARD
	}
	return REASON_VALID
}

func (self *ServiceHeuristics) CheckReachable(rs_node int32) ServiceReason {
	if self.reachability == nil {
		return REASON_VALID
	}
	rs := self.graph.GetNode(rs_node).Ref
	if !self.reachability.AnyReachable(rs, self.destinations) {
		return REASON_STATION_UNREACHABLE
	}
	return REASON_VALID
}

func (self *ServiceHeuristics) CheckPathLength(depth int32, limits Limits) ServiceReason {
	if depth > limits.MaxLength {
		return REASON_PATH_TOO_LONG
	}
	return REASON_VALID
}

func (self *ServiceHeuristics) CheckDuration(cost int32, limits Limits) ServiceReason {
	if cost > limits.MaxDuration {
		return REASON_TOOK_TOO_LONG
	}
	return REASON_VALID
}

//*******************************************
// service ordering
//*******************************************

// Orders to-service edges leaving a route-station so that promising services
// are explored first. Rail modes prefer services whose next stop can still
// reach a destination, other modes prefer services heading closer to one.
func (self *ServiceHeuristics) OrderServices(rs_node int32, edges List[graph.Edge]) {
	if edges.Length() < 2 {
		return
	}
	mode := self.graph.GetRouteStationMode(rs_node)
	if mode.IsRail() {
		if self.reachability == nil {
			return
		}
		rank := func(edge graph.Edge) int {
			next := self.graph.GetServiceNode(edge.To).Next
			if next != -1 && self.reachability.AnyReachable(self.graph.GetNode(next).Ref, self.destinations) {
				return 0
			}
			return 1
		}
		slices.SortStableFunc(edges, func(a, b graph.Edge) int {
			return rank(a) - rank(b)
		})
		return
	}
	dists := NewDict[int32, float64](edges.Length())
	for _, edge := range edges {
		dists[edge.To] = self._DestinationDistance(self.graph.GetServiceNode(edge.To).Next)
	}
	slices.SortStableFunc(edges, func(a, b graph.Edge) int {
		da, db := dists[a.To], dists[b.To]
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
}

func (self *ServiceHeuristics) _DestinationDistance(node int32) float64 {
	if node == -1 || self.dest_coords.Length() == 0 {
		return math.Inf(1)
	}
	loc := self.graph.GetNodeGeom(node)
	best := math.Inf(1)
	for _, coord := range self.dest_coords {
		best = Min(best, geo.HaversineDistance(loc, coord))
	}
	return best
}
