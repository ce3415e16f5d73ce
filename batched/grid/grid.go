package grid

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ttpr0/go-journeys/comps"
	"github.com/ttpr0/go-journeys/geo"
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/metrics"
	"github.com/ttpr0/go-journeys/routing"
	"github.com/ttpr0/go-journeys/structs"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Cost reported for cells that have stations but no feasible journey.
const NO_ROUTE int32 = -1

//*******************************************
// options
//*******************************************

// Which searches share one visited cache.
type VisitedScope byte

const (
	// every cell gets its own cache, the default
	PER_CELL VisitedScope = iota
	// all cells of a batch share one cache. A (node, clock) pair recorded by
	// one cell prunes it in every other cell, so cells that only reach the
	// destination through such pairs can report NO_ROUTE or a higher cost.
	PER_BATCH
)

func (self VisitedScope) String() string {
	switch self {
	case PER_CELL:
		return "cell"
	case PER_BATCH:
		return "batch"
	}
	panic("unknown visited scope")
}

func (self *VisitedScope) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	scope, err := VisitedScopeFromString(s)
	if err != nil {
		return err
	}
	*self = scope
	return nil
}

func VisitedScopeFromString(s string) (VisitedScope, error) {
	switch strings.ToLower(s) {
	case "cell", "":
		return PER_CELL, nil
	case "batch":
		return PER_BATCH, nil
	}
	return 0, errors.New("unknown visited scope: " + s)
}

type GridOptions struct {
	// cell edge length in metres
	CellSize float64 `yaml:"cell-size" validate:"gt=0"`
	// parallel cell searches, 0 means one per cell
	Workers int `yaml:"workers" validate:"gte=0"`
	// journeys looked at per cell
	MaxResults   int          `yaml:"max-results" validate:"gte=0"`
	VisitedScope VisitedScope `yaml:"visited-scope"`
}

func DefaultGridOptions() GridOptions {
	return GridOptions{
		CellSize:     1000,
		Workers:      4,
		MaxResults:   1,
		VisitedScope: PER_CELL,
	}
}

//*******************************************
// grid planner
//*******************************************

type CellResult struct {
	Key      string
	Row      int32
	Col      int32
	Center   geo.Coord
	Stations int
	// minutes from the query time to the arrival, NO_ROUTE if unreachable
	Cost int32
}

// GridPlanner computes the cheapest journey from every grid cell of the
// network to one destination.
type GridPlanner struct {
	graph        *graph.NetworkGraph
	reachability *comps.Reachability
	running      *comps.RunningServicesCache
	search       routing.SearchOptions
	options      GridOptions
}

func NewGridPlanner(g *graph.NetworkGraph, reachability *comps.Reachability, running *comps.RunningServicesCache, search routing.SearchOptions, options GridOptions) *GridPlanner {
	return &GridPlanner{
		graph:        g,
		reachability: reachability,
		running:      running,
		search:       search,
		options:      options,
	}
}

// Searches from all cells to destination. Results are ordered by row and column.
func (self *GridPlanner) SearchAllBoxes(ctx context.Context, destination string, date structs.Date, clock structs.Clock) (List[CellResult], error) {
	dest_node, err := self.graph.GetStationNode(destination)
	if err != nil {
		return nil, err
	}
	if self.options.CellSize <= 0 {
		return nil, fmt.Errorf("invalid cell size %v", self.options.CellSize)
	}
	batch_id := uuid.NewString()
	begin := time.Now()
	dest_station := self.graph.NodeStation(dest_node)
	dests := []routing.Endpoint{{Node: dest_node}}

	cells := BuildCells(self.graph, self.options.CellSize)
	running := self.running.Get(date)
	heuristics := routing.NewServiceHeuristics(self.graph, running, self.reachability, dests, self.search.Limits.MaxWait)
	var shared *routing.VisitedCache
	if self.options.VisitedScope == PER_BATCH {
		shared = routing.NewVisitedCache()
	}
	slog.Debug("starting grid batch", "id", batch_id, "cells", cells.Length(), "scope", self.options.VisitedScope.String())

	results := NewArray[CellResult](cells.Length())
	group, group_ctx := errgroup.WithContext(ctx)
	if self.options.Workers > 0 {
		group.SetLimit(self.options.Workers)
	}
	for i, cell := range cells {
		group.Go(func() error {
			result := CellResult{
				Key:      cell.Key,
				Row:      cell.Row,
				Col:      cell.Col,
				Center:   cell.Center,
				Stations: cell.Stations.Length(),
				Cost:     NO_ROUTE,
			}
			if slices.Contains(cell.Stations, dest_station) {
				result.Cost = 0
				results[i] = result
				return nil
			}
			visited := shared
			if visited == nil {
				visited = routing.NewVisitedCache()
			}
			cost, err := self._SearchCell(group_ctx, cell, heuristics, visited, dests, clock)
			if err != nil {
				return err
			}
			result.Cost = cost
			results[i] = result
			return group_ctx.Err()
		})
	}
	err = group.Wait()
	metrics.SearchDuration.WithLabelValues(metrics.KIND_GRID).Observe(time.Since(begin).Seconds())
	if err != nil {
		outcome := metrics.OUTCOME_ERROR
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			outcome = metrics.OUTCOME_CANCELLED
		}
		metrics.Searches.WithLabelValues(metrics.KIND_GRID, outcome).Inc()
		return nil, err
	}

	reached := 0
	for _, result := range results {
		if result.Cost == NO_ROUTE {
			metrics.GridCells.WithLabelValues("no_route").Inc()
		} else {
			reached += 1
			metrics.GridCells.WithLabelValues("reached").Inc()
		}
	}
	metrics.Searches.WithLabelValues(metrics.KIND_GRID, metrics.OUTCOME_FOUND).Inc()
	slog.Info("grid batch finished", "id", batch_id, "destination", destination, "cells", results.Length(), "reached", reached, "took", time.Since(begin))
	return List[CellResult](results), nil
}

// Cheapest cost from any station of the cell, NO_ROUTE if none arrives.
func (self *GridPlanner) _SearchCell(ctx context.Context, cell Cell, heuristics *routing.ServiceHeuristics, visited *routing.VisitedCache, dests []routing.Endpoint, clock structs.Clock) (int32, error) {
	starts := make([]routing.Endpoint, 0, cell.Stations.Length())
	for _, station := range cell.Stations {
		starts = append(starts, routing.Endpoint{Node: self.graph.StationNode(station)})
	}
	request := routing.SearchRequest{
		Starts:       starts,
		Destinations: dests,
		QueryTime:    clock,
	}
	search, err := routing.NewPathSearch(self.graph, heuristics, visited, request, self.search)
	if err != nil {
		return NO_ROUTE, err
	}
	cost := NO_ROUTE
	count := 0
	for journey := range search.Journeys(ctx) {
		if cost == NO_ROUTE || journey.Duration < cost {
			cost = journey.Duration
		}
		count += 1
		if self.options.MaxResults > 0 && count >= self.options.MaxResults {
			break
		}
	}
	return cost, nil
}
