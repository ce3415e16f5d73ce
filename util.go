package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ttpr0/go-journeys/geo"
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/routing"
	"github.com/ttpr0/go-journeys/structs"
)

// Missing directories count as empty.
func IsDirectoryEmpty(path string) bool {
	files, err := os.ReadDir(path)
	if err != nil {
		return true
	}
	return len(files) == 0
}

// Parses "lon,lat".
func ParseCoord(s string) (geo.Coord, error) {
	tokens := strings.Split(s, ",")
	if len(tokens) != 2 {
		return geo.Coord{}, fmt.Errorf("invalid coordinate %q, expected lon,lat", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(tokens[0]), 32)
	if err != nil {
		return geo.Coord{}, fmt.Errorf("invalid longitude in %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(tokens[1]), 32)
	if err != nil {
		return geo.Coord{}, fmt.Errorf("invalid latitude in %q", s)
	}
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return geo.Coord{}, fmt.Errorf("coordinate %q out of range", s)
	}
	return geo.Coord{float32(lon), float32(lat)}, nil
}

// One line per leg: boardings, rides and walks.
func FormatJourney(g *graph.NetworkGraph, journey routing.Journey) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v -> %v (%v min, %v boardings)\n", journey.Departure, journey.Arrival, journey.Duration, journey.Boardings())
	for i, edge := range journey.Edges {
		clock := journey.Clocks[i]
		switch {
		case edge.Type == graph.RIDE:
			trip := g.GetTrip(edge.Trip)
			route := g.GetRoute(g.GetService(trip.Service).Route)
			fmt.Fprintf(&b, "  %v %v %v to %v\n", clock, route.Mode, _RouteName(route), _StationName(g, edge.To))
		case edge.Type.IsWalk() && edge.From == -1:
			if edge.Cost > 0 {
				fmt.Fprintf(&b, "  %v walk %v min to %v\n", clock, edge.Cost, _StationName(g, edge.To))
			}
		case edge.Type.IsWalk() && edge.To == -1:
			fmt.Fprintf(&b, "  %v walk %v min to destination\n", clock, edge.Cost)
		case edge.Type.IsWalk():
			fmt.Fprintf(&b, "  %v walk to %v\n", clock, _StationName(g, edge.To))
		case edge.Type == graph.INTERCHANGE_DEPART:
			fmt.Fprintf(&b, "  %v change at %v\n", clock, _StationName(g, edge.To))
		}
	}
	return b.String()
}

func _RouteName(route structs.Route) string {
	if route.Name != "" {
		return route.Name
	}
	return route.ID
}

func _StationName(g *graph.NetworkGraph, node int32) string {
	station := g.NodeStation(node)
	if station == -1 {
		return "?"
	}
	s := g.GetStation(station)
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}
