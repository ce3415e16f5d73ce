package routing

import (
	"github.com/ttpr0/go-journeys/graph"
	. "github.com/ttpr0/go-journeys/util"
)

//*******************************************
// search context
//*******************************************

type _SearchContext struct {
	graph      *graph.NetworkGraph
	heuristics *ServiceHeuristics
	// station node -> walking cost to the final destination
	dest_walk Dict[int32, int32]
}

func _NewSearchContext(g *graph.NetworkGraph, heuristics *ServiceHeuristics, destinations []Endpoint) *_SearchContext {
	dest_walk := NewDict[int32, int32](len(destinations))
	for _, dest := range destinations {
		if cost, ok := dest_walk[dest.Node]; ok && cost <= dest.WalkCost {
			continue
		}
		dest_walk[dest.Node] = dest.WalkCost
	}
	return &_SearchContext{
		graph:      g,
		heuristics: heuristics,
		dest_walk:  dest_walk,
	}
}

//*******************************************
// expand states
//*******************************************

// Returns the edges a state may follow.
func Expand(state TraversalState, ctx *_SearchContext) func(yield func(graph.Edge) bool) {
	return func(yield func(graph.Edge) bool) {
		g := ctx.graph
		switch s := state.(type) {
		case *NotStarted:
			for _, start := range s.starts {
				if !yield(graph.NewLocationWalk(-1, start.Node, start.WalkCost)) {
					return
				}
			}
		case *Walking:
			if !_ExpandStation(s, ctx, false, yield) {
				return
			}
		case *AtStation:
			// no walk right after a walk, the zero cost start does not count
			walked := s.via.Type.IsWalk() && s.via.From != -1
			if !_ExpandStation(s, ctx, !walked, yield) {
				return
			}
		case *AtPlatform:
			for _, edge := range g.OutEdges(s.node) {
				if edge.Type == graph.LEAVE_PLATFORM && s.via.Type == graph.ENTER_PLATFORM {
					continue
				}
				if !edge.Type.IsBoard() && edge.Type != graph.LEAVE_PLATFORM {
					continue
				}
				if !yield(edge) {
					return
				}
			}
		case *JustBoarded:
			services := NewList[graph.Edge](g.OutDegree(s.node))
			for _, edge := range g.OutEdges(s.node) {
				switch {
				case edge.Type == graph.TO_SERVICE:
					services.Add(edge)
				case edge.Type.IsDepart():
					// rejected by the transition, kept for the diagnostics
					if !yield(edge) {
						return
					}
				}
			}
			ctx.heuristics.OrderServices(s.node, services)
			for _, edge := range services {
				if !yield(edge) {
					return
				}
			}
		case *AtService:
			_YieldType(g, s.node, graph.TO_HOUR, yield)
		case *AtHour:
			for _, edge := range g.OutEdges(s.node) {
				if edge.Type != graph.TO_MINUTE {
					continue
				}
				if s.trip != -1 && !_HasRide(g, edge.To, s.trip) {
					continue
				}
				if !yield(edge) {
					return
				}
			}
		case *AtMinute:
			for _, edge := range g.OutEdges(s.node) {
				if edge.Type != graph.RIDE {
					continue
				}
				if s.trip != -1 && edge.Trip != s.trip {
					continue
				}
				if !yield(edge) {
					return
				}
			}
		case *OnTrip:
			service := g.GetTrip(s.trip).Service
			for _, edge := range g.OutEdges(s.node) {
				switch edge.Type {
				case graph.INTERCHANGE_DEPART:
				case graph.DEPART:
					if !ctx.heuristics.IsDestinationStation(edge.Towards) {
						continue
					}
				case graph.TO_SERVICE:
					if edge.Service != service {
						continue
					}
				default:
					continue
				}
				if !yield(edge) {
					return
				}
			}
		case *EndOfTrip:
			for _, edge := range g.OutEdges(s.node) {
				if !edge.Type.IsDepart() && edge.Type != graph.TO_SERVICE {
					continue
				}
				if !yield(edge) {
					return
				}
			}
		case *Destination:
			panic("destination states can not be expanded")
		default:
			panic("unknown traversal state")
		}
	}
}

// Edges leaving a station: boarding, platforms, links and the final walk
// if the station is a destination.
func _ExpandStation(state TraversalState, ctx *_SearchContext, allow_walk bool, yield func(graph.Edge) bool) bool {
	node := state.Node()
	via := state.Via()
	if walk, ok := ctx.dest_walk[node]; ok && walk > 0 {
		if !yield(graph.NewLocationWalk(node, -1, walk)) {
			return false
		}
	}
	for _, edge := range ctx.graph.OutEdges(node) {
		switch {
		case edge.Type.IsBoard():
		case edge.Type == graph.ENTER_PLATFORM:
			if via.Type == graph.LEAVE_PLATFORM && via.From == edge.To {
				continue
			}
		case edge.Type.IsWalk():
			if !allow_walk {
				continue
			}
		default:
			continue
		}
		if !yield(edge) {
			return false
		}
	}
	return true
}

func _YieldType(g *graph.NetworkGraph, node int32, typ graph.EdgeType, yield func(graph.Edge) bool) bool {
	for _, edge := range g.OutEdges(node) {
		if edge.Type != typ {
			continue
		}
		if !yield(edge) {
			return false
		}
	}
	return true
}

func _HasRide(g *graph.NetworkGraph, minute_node int32, trip int32) bool {
	for _, edge := range g.OutEdges(minute_node) {
		if edge.Type == graph.RIDE && edge.Trip == trip {
			return true
		}
	}
	return false
}

//*******************************************
// next state
//*******************************************

// Computes the state reached by following edge from state.
// The parent is never modified. A non valid reason means the edge can not be
// taken from this state.
func NextState(state TraversalState, edge graph.Edge, ctx *_SearchContext) (TraversalState, ServiceReason) {
	g := ctx.graph
	base := _ChildBase(state, edge)

	if edge.To == -1 {
		return &Destination{base}, REASON_VALID
	}
	if g.GetNodeLabel(edge.To) == graph.STATION {
		if walk, ok := ctx.dest_walk[edge.To]; ok && walk == 0 {
			return &Destination{base}, REASON_VALID
		}
	}

	switch s := state.(type) {
	case *NotStarted:
		if edge.Cost > 0 {
			return &Walking{base, _NO_TRANSFER}, REASON_VALID
		}
		return _StationLike(g, base, _NO_TRANSFER), REASON_VALID
	case *Walking:
		return _FromStation(g, base, s._Transfer, edge)
	case *AtStation:
		return _FromStation(g, base, s._Transfer, edge)
	case *AtPlatform:
		return _FromStation(g, base, s._Transfer, edge)
	case *JustBoarded:
		if reason := ctx.heuristics.CheckDepartAfterBoard(s.via, edge); !reason.IsValid() {
			return nil, reason
		}
		if edge.Type == graph.TO_SERVICE {
			return &AtService{base, s._Transfer, -1}, REASON_VALID
		}
	case *AtService:
		if edge.Type == graph.TO_HOUR {
			return &AtHour{base, s._Transfer, s.trip}, REASON_VALID
		}
	case *AtHour:
		if edge.Type == graph.TO_MINUTE {
			reason, clock := ctx.heuristics.CheckMinute(edge.To, s.clock)
			if !reason.IsValid() {
				return nil, reason
			}
			base.cost += clock.Sub(base.clock)
			base.clock = clock
			return &AtMinute{base, s._Transfer, s.trip}, REASON_VALID
		}
	case *AtMinute:
		if edge.Type == graph.RIDE {
			if s.trip == -1 {
				if reason := ctx.heuristics.CheckReboard(s.last_trip, s.via_interchange, edge); !reason.IsValid() {
					return nil, reason
				}
			}
			if edge.Terminates {
				return &EndOfTrip{base, edge.Trip}, REASON_VALID
			}
			return &OnTrip{base, edge.Trip}, REASON_VALID
		}
	case *OnTrip:
		if edge.Type == graph.TO_SERVICE {
			return &AtService{base, _NO_TRANSFER, s.trip}, REASON_VALID
		}
		if edge.Type.IsDepart() {
			return _StationLike(g, base, _Transfer{s.trip, edge.Type == graph.INTERCHANGE_DEPART}), REASON_VALID
		}
	case *EndOfTrip:
		if edge.Type == graph.TO_SERVICE {
			return &AtService{base, _Transfer{s.trip, false}, -1}, REASON_VALID
		}
		if edge.Type.IsDepart() {
			return _StationLike(g, base, _Transfer{s.trip, edge.Type == graph.INTERCHANGE_DEPART}), REASON_VALID
		}
	case *Destination:
		panic("destination states can not be expanded")
	}
	panic("edge " + edge.Type.String() + " can not be followed from this state")
}

func _FromStation(g *graph.NetworkGraph, base StateBase, transfer _Transfer, edge graph.Edge) (TraversalState, ServiceReason) {
	switch {
	case edge.Type.IsBoard():
		return &JustBoarded{base, transfer, g.GetRouteStationMode(edge.To)}, REASON_VALID
	case edge.Type == graph.ENTER_PLATFORM:
		return &AtPlatform{base, transfer}, REASON_VALID
	case edge.Type == graph.LEAVE_PLATFORM || edge.Type.IsWalk():
		return &AtStation{base, transfer}, REASON_VALID
	}
	panic("edge " + edge.Type.String() + " can not be followed from a station")
}

func _StationLike(g *graph.NetworkGraph, base StateBase, transfer _Transfer) TraversalState {
	if g.GetNodeLabel(base.node) == graph.PLATFORM {
		return &AtPlatform{base, transfer}
	}
	return &AtStation{base, transfer}
}
