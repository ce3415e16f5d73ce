package routing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/metrics"
	. "github.com/ttpr0/go-journeys/util"
)

var ErrNoEndpoints = errors.New("search needs at least one start and one destination")

//*******************************************
// path search
//*******************************************

// PathSearch is a best-first traversal of the network from a set of starts
// to a set of destinations at a fixed query time and date.
type PathSearch struct {
	graph     *graph.NetworkGraph
	ctx       *_SearchContext
	evaluator _Evaluator
	request   SearchRequest

	expansions atomic.Int64
	emitted    atomic.Int64
	lock       sync.Mutex
	reasons    ReasonCounts
	cancelled  bool
}

// Creates a search. visited must not be shared with searches of another
// date, destination set or query time basis.
func NewPathSearch(g *graph.NetworkGraph, heuristics *ServiceHeuristics, visited *VisitedCache, request SearchRequest, options SearchOptions) (*PathSearch, error) {
	if len(request.Starts) == 0 || len(request.Destinations) == 0 {
		return nil, ErrNoEndpoints
	}
	for _, endpoint := range append(append([]Endpoint{}, request.Starts...), request.Destinations...) {
		if err := g.CheckNode(endpoint.Node, graph.STATION); err != nil {
			return nil, err
		}
		if endpoint.WalkCost < 0 {
			return nil, fmt.Errorf("negative walking cost %v to node %v", endpoint.WalkCost, endpoint.Node)
		}
	}
	return &PathSearch{
		graph: g,
		ctx:   _NewSearchContext(g, heuristics, request.Destinations),
		evaluator: _Evaluator{
			heuristics: heuristics,
			visited:    visited,
			limits:     options.Limits,
			keep_equal: options.KeepEqualCost,
		},
		request: request,
	}, nil
}

// Returns the accepted journeys cheapest first. Stopping the iteration or
// cancelling ctx ends the traversal, no work is done after that.
// A search runs once: its visited cache keeps the pairs of the first run, so
// ranging again yields nothing. Create a new search with a fresh cache instead.
func (self *PathSearch) Journeys(ctx context.Context) func(yield func(Journey) bool) {
	return func(yield func(Journey) bool) {
		prev := self.Stats()
		defer self._FlushMetrics(prev)

		best := int32(math.MaxInt32)
		heap := NewPriorityQueue[TraversalState, int32](100)
		heap.Enqueue(_NewNotStarted(self.request.Starts, self.request.QueryTime), 0)
		for {
			if ctx.Err() != nil {
				self.lock.Lock()
				self.cancelled = true
				self.lock.Unlock()
				return
			}
			state, ok := heap.Dequeue()
			if !ok {
				return
			}
			// everything left is worse than the best arrival
			if state.Cost() > best {
				return
			}
			if _, ok := state.(*Destination); ok {
				self.emitted.Add(1)
				if !yield(_BuildJourney(state, self.request.QueryTime)) {
					return
				}
				continue
			}

			self.expansions.Add(1)
			for edge := range Expand(state, self.ctx) {
				child, reason := NextState(state, edge, self.ctx)
				if !reason.IsValid() {
					self._Count(reason)
					continue
				}
				outcome, reason := self.evaluator.Evaluate(child, best)
				self._Count(reason)
				switch outcome {
				case INCLUDE_AND_CONTINUE:
					heap.Enqueue(child, child.Cost())
				case INCLUDE_AND_PRUNE:
					best = Min(best, child.Cost())
					heap.Enqueue(child, child.Cost())
				}
			}
		}
	}
}

func (self *PathSearch) _Count(reason ServiceReason) {
	self.lock.Lock()
	self.reasons.Inc(reason)
	self.lock.Unlock()
}

// Adds what happened since prev to the process metrics.
func (self *PathSearch) _FlushMetrics(prev SearchStats) {
	stats := self.Stats()
	metrics.SearchExpansions.Add(float64(stats.Expansions - prev.Expansions))
	for i, count := range stats.Reasons {
		if delta := count - prev.Reasons[i]; delta > 0 {
			metrics.SearchReasons.WithLabelValues(ServiceReason(i).String()).Add(float64(delta))
		}
	}
}

//*******************************************
// search stats
//*******************************************

type SearchStats struct {
	Expansions int64
	Emitted    int64
	Reasons    ReasonCounts
	Cancelled  bool
}

func (self *PathSearch) Stats() SearchStats {
	self.lock.Lock()
	defer self.lock.Unlock()
	return SearchStats{
		Expansions: self.expansions.Load(),
		Emitted:    self.emitted.Load(),
		Reasons:    self.reasons,
		Cancelled:  self.cancelled,
	}
}
