package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/ttpr0/go-journeys/batched/grid"
	"github.com/ttpr0/go-journeys/comps"
	"github.com/ttpr0/go-journeys/geo"
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/parser"
	"github.com/ttpr0/go-journeys/preproc"
	"github.com/ttpr0/go-journeys/routing"
	"github.com/ttpr0/go-journeys/structs"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slog"
)

var ErrNoStationNearby = errors.New("no station within walking distance")

// Loads the network and its components, building missing ones.
func NewPlannerManager(config Config) (*PlannerManager, error) {
	g, err := parser.LoadNetwork(config.Source, config.Build)
	if err != nil {
		return nil, err
	}
	reachability, err := _LoadOrBuildReachability(g, config)
	if err != nil {
		return nil, err
	}

	limits := routing.NetworkLimits(g, config.Search.ModeLimits())
	slog.Debug(fmt.Sprintf("search limits: wait %v, length %v, duration %v", limits.MaxWait, limits.MaxLength, limits.MaxDuration))
	running := comps.NewRunningServicesCache(g, config.Cache.Size, config.Cache.Expiration)
	calculator := routing.NewRouteCalculator(g, reachability, running, routing.CalculatorOptions{
		Limits:        limits,
		KeepEqualCost: config.Search.KeepEqualCost,
		QueryTimes:    config.Search.QueryTimes,
		MaxResults:    config.Search.MaxResults,
	})
	grid_search := routing.SearchOptions{
		Limits:        limits,
		KeepEqualCost: config.Search.KeepEqualCost,
	}

	return &PlannerManager{
		config:       config,
		graph:        g,
		reachability: reachability,
		stations:     comps.NewStationIndex(g),
		calculator:   calculator,
		grid:         grid.NewGridPlanner(g, reachability, running, grid_search, config.Grid),
	}, nil
}

type PlannerManagerMeta struct {
	Stations      int `json:"stations"`
	RouteStations int `json:"route-stations"`
	Nodes         int `json:"nodes"`
}

func _NetworkMeta(g *graph.NetworkGraph) PlannerManagerMeta {
	return PlannerManagerMeta{
		Stations:      g.StationCount(),
		RouteStations: g.RouteStationCount(),
		Nodes:         g.NodeCount(),
	}
}

// Stored components are reused as long as they were built for a network of the same shape.
func _LoadOrBuildReachability(g *graph.NetworkGraph, config Config) (*comps.Reachability, error) {
	data_path := config.Data + "/"
	meta := _NetworkMeta(g)
	build := config.Rebuild || IsDirectoryEmpty(config.Data)
	if !build {
		stored, err := ReadJSONFromFile[PlannerManagerMeta](data_path + "meta")
		if err != nil || stored != meta {
			slog.Info("stored components do not match the network, rebuilding")
			build = true
		}
	}
	if !build {
		reachability, err := comps.Load[*comps.Reachability](data_path + "reachability")
		if err == nil && reachability.RouteStationCount() == g.RouteStationCount() {
			slog.Info("loaded reachability from " + data_path)
			return reachability, nil
		}
		slog.Warn("failed to load reachability, rebuilding", "error", err)
	}

	reachability := preproc.PrepareReachability(g)
	if err := os.MkdirAll(config.Data, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := comps.Store(reachability, data_path+"reachability"); err != nil {
		return nil, err
	}
	if err := WriteJSONToFile(meta, data_path+"meta"); err != nil {
		return nil, err
	}
	slog.Info("stored reachability in " + data_path)
	return reachability, nil
}

type PlannerManager struct {
	config       Config
	graph        *graph.NetworkGraph
	reachability *comps.Reachability
	stations     *comps.StationIndex
	calculator   *routing.RouteCalculator
	grid         *grid.GridPlanner
}

func (self *PlannerManager) Graph() *graph.NetworkGraph {
	return self.graph
}

func (self *PlannerManager) Plan(ctx context.Context, request routing.JourneyRequest) (List[routing.Journey], error) {
	return self.calculator.CalculateRoute(ctx, request)
}

// Plans between two locations, walking to and from the closest stations.
func (self *PlannerManager) PlanLocations(ctx context.Context, from, to geo.Coord, date structs.Date, clock structs.Clock, arrive_by bool) (List[routing.Journey], error) {
	starts, err := self.LocationEndpoints(from)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	dests, err := self.LocationEndpoints(to)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	return self.calculator.CalculateEndpoints(ctx, starts, dests, date, clock, arrive_by)
}

func (self *PlannerManager) Grid(ctx context.Context, destination string, date structs.Date, clock structs.Clock) (List[grid.CellResult], error) {
	return self.grid.SearchAllBoxes(ctx, destination, date, clock)
}

// Stations around a location with their walking time in minutes.
func (self *PlannerManager) LocationEndpoints(coord geo.Coord) ([]routing.Endpoint, error) {
	walk := self.config.Search.Walk
	found := self.stations.GetStationsInRange(coord, walk.MaxDistance, walk.MaxStations)
	if found.Length() == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoStationNearby, coord)
	}
	endpoints := make([]routing.Endpoint, 0, found.Length())
	for _, item := range found {
		endpoints = append(endpoints, routing.Endpoint{
			Node:     self.graph.StationNode(item.A),
			WalkCost: int32(math.Ceil(item.B / walk.Speed)),
		})
	}
	return endpoints, nil
}
