package preproc

import (
	"fmt"

	"github.com/ttpr0/go-journeys/comps"
	"github.com/ttpr0/go-journeys/graph"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// prepare reachability
//*******************************************

// Computes for every route-station the stations that can be reached by riding
// on and changing only where a change is allowed (interchanges, termini and
// their neighbour links).
func PrepareReachability(g *graph.NetworkGraph) *comps.Reachability {
	rs_count := g.RouteStationCount()
	station_count := g.StationCount()

	succ, changeable := _RideSuccessors(g)

	boardable := NewArray[List[int32]](station_count)
	for rs := 0; rs < rs_count; rs++ {
		station := g.GetRouteStation(g.RouteStationNode(int32(rs))).Station
		boardable[station].Add(int32(rs))
	}
	links := NewArray[List[int32]](station_count)
	for s := 0; s < station_count; s++ {
		for _, edge := range g.OutEdges(g.StationNode(int32(s))) {
			if edge.Type.IsWalk() {
				links[s].Add(g.NodeStation(edge.To))
			}
		}
	}

	// changing vehicles
	for rs := 0; rs < rs_count; rs++ {
		if !changeable[rs] {
			continue
		}
		station := g.GetRouteStation(g.RouteStationNode(int32(rs))).Station
		for _, other := range boardable[station] {
			succ[rs].Set(other, true)
		}
		for _, s := range links[station] {
			for _, other := range boardable[s] {
				succ[rs].Set(other, true)
			}
		}
	}

	sets := NewArray[BitSet](rs_count)
	stamp := NewArray[int32](rs_count)
	queue := NewList[int32](rs_count)
	for rs := 0; rs < rs_count; rs++ {
		set := NewBitSet(station_count)
		tag := int32(rs + 1)
		queue = queue[:0]
		queue.Add(int32(rs))
		stamp[rs] = tag
		for i := 0; i < queue.Length(); i++ {
			curr := queue[i]
			station := g.GetRouteStation(g.RouteStationNode(curr)).Station
			set.Add(station)
			if changeable[curr] {
				for _, s := range links[station] {
					set.Add(s)
				}
			}
			for next := range succ[curr] {
				if stamp[next] == tag {
					continue
				}
				stamp[next] = tag
				queue.Add(next)
			}
		}
		sets[rs] = set
	}
	slog.Debug(fmt.Sprintf("prepared reachability for %v route-stations", rs_count))
	return comps.NewReachability(sets)
}

// Route-station successors along ride edges. A route-station is changeable
// if its station is an interchange or some trip terminates there.
func _RideSuccessors(g *graph.NetworkGraph) (Array[Dict[int32, bool]], Array[bool]) {
	rs_count := g.RouteStationCount()
	succ := NewArray[Dict[int32, bool]](rs_count)
	changeable := NewArray[bool](rs_count)
	for rs := 0; rs < rs_count; rs++ {
		succ[rs] = NewDict[int32, bool](4)
		node := g.RouteStationNode(int32(rs))
		station := g.GetRouteStation(node).Station
		if g.GetStation(station).Interchange {
			changeable[rs] = true
		}
	}
	for rs := 0; rs < rs_count; rs++ {
		node := g.RouteStationNode(int32(rs))
		for _, to_service := range g.OutEdges(node) {
			if to_service.Type != graph.TO_SERVICE {
				continue
			}
			for _, to_hour := range g.OutEdges(to_service.To) {
				for _, to_minute := range g.OutEdges(to_hour.To) {
					for _, ride := range g.OutEdges(to_minute.To) {
						next := g.GetNode(ride.To).Ref
						succ[rs].Set(next, true)
						if ride.Terminates {
							changeable[next] = true
						}
					}
				}
			}
		}
	}
	return succ, changeable
}
