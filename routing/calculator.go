package routing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/btree"
	"github.com/ttpr0/go-journeys/algorithm"
	"github.com/ttpr0/go-journeys/comps"
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/metrics"
	"github.com/ttpr0/go-journeys/structs"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

var ErrSameStartAndDestination = errors.New("start and destination are the same station")

//*******************************************
// route calculator
//*******************************************

type CalculatorOptions struct {
	Limits        Limits
	KeepEqualCost bool
	QueryTimes    QueryTimeOptions
	// journeys handed out per request
	MaxResults int
}

func DefaultCalculatorOptions() CalculatorOptions {
	return CalculatorOptions{
		Limits:        DefaultLimits(structs.BUS),
		KeepEqualCost: true,
		QueryTimes:    DefaultQueryTimeOptions(),
		MaxResults:    5,
	}
}

// Request between two stations given by their ids.
type JourneyRequest struct {
	Start       string
	Destination string
	Date        structs.Date
	Time        structs.Clock
	// Time is the latest arrival instead of the earliest departure.
	ArriveBy bool
}

// RouteCalculator answers journey requests on one network. It runs one
// search per generated query time in parallel and merges their results.
type RouteCalculator struct {
	graph        *graph.NetworkGraph
	reachability *comps.Reachability
	running      *comps.RunningServicesCache
	options      CalculatorOptions
}

func NewRouteCalculator(g *graph.NetworkGraph, reachability *comps.Reachability, running *comps.RunningServicesCache, options CalculatorOptions) *RouteCalculator {
	return &RouteCalculator{
		graph:        g,
		reachability: reachability,
		running:      running,
		options:      options,
	}
}

func (self *RouteCalculator) CalculateRoute(ctx context.Context, request JourneyRequest) (List[Journey], error) {
	start, err := self.graph.GetStationNode(request.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	dest, err := self.graph.GetStationNode(request.Destination)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	if start == dest {
		return nil, fmt.Errorf("%w: %q", ErrSameStartAndDestination, request.Start)
	}
	return self.CalculateEndpoints(ctx, []Endpoint{{Node: start}}, []Endpoint{{Node: dest}}, request.Date, request.Time, request.ArriveBy)
}

// Plans between resolved endpoints, e.g. the stations around a location.
func (self *RouteCalculator) CalculateEndpoints(ctx context.Context, starts, destinations []Endpoint, date structs.Date, clock structs.Clock, arrive_by bool) (List[Journey], error) {
	kind := metrics.KIND_QUERY
	if arrive_by {
		kind = metrics.KIND_ARRIVE_BY
	}
	search_id := uuid.NewString()
	begin := time.Now()
	journeys, err := self._Calculate(ctx, search_id, starts, destinations, date, clock, arrive_by)
	metrics.SearchDuration.WithLabelValues(kind).Observe(time.Since(begin).Seconds())

	outcome := metrics.OUTCOME_FOUND
	switch {
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		outcome = metrics.OUTCOME_CANCELLED
	case err != nil:
		outcome = metrics.OUTCOME_ERROR
	case journeys.Length() == 0:
		outcome = metrics.OUTCOME_EMPTY
	}
	metrics.Searches.WithLabelValues(kind, outcome).Inc()
	if err != nil {
		slog.Debug("journey search failed", "id", search_id, "error", err)
		return nil, err
	}
	slog.Info("journey search finished", "id", search_id, "date", date.String(), "time", clock.String(), "arrive-by", arrive_by, "journeys", journeys.Length(), "took", time.Since(begin))
	return journeys, nil
}

func (self *RouteCalculator) _Calculate(ctx context.Context, search_id string, starts, destinations []Endpoint, date structs.Date, clock structs.Clock, arrive_by bool) (List[Journey], error) {
	limits := self.options.Limits
	running := self.running.Get(date)
	heuristics := NewServiceHeuristics(self.graph, running, self.reachability, destinations, limits.MaxWait)

	departure := clock
	if arrive_by {
		estimate, ok := algorithm.CalcCostEstimate(self.graph, _EndpointTuples(starts), _EndpointTuples(destinations), limits.MaxDuration)
		if !ok {
			slog.Debug("no cost estimate, destination unreachable", "id", search_id)
			return NewList[Journey](0), nil
		}
		departure = clock.Add(-estimate)
		slog.Debug("estimated departure", "id", search_id, "estimate", estimate, "departure", departure.String())
	}
	query_times := QueryTimes(departure, arrive_by, self.options.QueryTimes)

	options := SearchOptions{
		Limits:        limits,
		KeepEqualCost: self.options.KeepEqualCost,
	}
	results := NewArray[List[Journey]](query_times.Length())
	group, group_ctx := errgroup.WithContext(ctx)
	for i, query_time := range query_times {
		group.Go(func() error {
			request := SearchRequest{
				Starts:       starts,
				Destinations: destinations,
				QueryTime:    query_time,
			}
			search, err := NewPathSearch(self.graph, heuristics, NewVisitedCache(), request, options)
			if err != nil {
				return err
			}
			found := NewList[Journey](4)
			for journey := range search.Journeys(group_ctx) {
				found.Add(journey)
			}
			stats := search.Stats()
			slog.Debug("sub-search finished", "id", search_id, "query-time", query_time.String(), "journeys", found.Length(), "expansions", stats.Expansions)
			results[i] = found
			return group_ctx.Err()
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := MergeJourneys(results...)
	journeys := NewList[Journey](merged.Length())
	for _, journey := range merged {
		if arrive_by && journey.Arrival > clock {
			continue
		}
		journeys.Add(journey)
	}
	if arrive_by {
		// latest departures are the most useful ones for an arrival deadline
		for i, j := 0, journeys.Length()-1; i < j; i, j = i+1, j-1 {
			journeys[i], journeys[j] = journeys[j], journeys[i]
		}
	}
	if self.options.MaxResults > 0 && journeys.Length() > self.options.MaxResults {
		journeys = journeys[:self.options.MaxResults]
	}
	return journeys, nil
}

func _EndpointTuples(endpoints []Endpoint) Array[Tuple[int32, int32]] {
	tuples := NewArray[Tuple[int32, int32]](len(endpoints))
	for i, e := range endpoints {
		tuples[i] = MakeTuple(e.Node, e.WalkCost)
	}
	return tuples
}

//*******************************************
// merge journeys
//*******************************************

// Merges the results of several searches ordered by arrival. Journeys taking
// the same path are kept once, with the shortest duration.
func MergeJourneys(results ...List[Journey]) List[Journey] {
	type _Item struct {
		journey   Journey
		signature string
	}
	tree := btree.NewBTreeG(func(a, b _Item) bool {
		if a.journey.Arrival != b.journey.Arrival {
			return a.journey.Arrival < b.journey.Arrival
		}
		return a.signature < b.signature
	})
	for _, result := range results {
		for _, journey := range result {
			item := _Item{journey, journey.Signature()}
			if prev, ok := tree.Get(item); ok && prev.journey.Duration <= journey.Duration {
				continue
			}
			tree.Set(item)
		}
	}
	merged := NewList[Journey](tree.Len())
	tree.Scan(func(item _Item) bool {
		merged.Add(item.journey)
		return true
	})
	return merged
}
