package parser

import (
	"fmt"
	"os"

	"github.com/ttpr0/go-journeys/geo"
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/structs"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//*******************************************
// network loader
//*******************************************

type NetworkSource struct {
	Network       string `yaml:"network" validate:"required"`
	CalendarDates string `yaml:"calendar-dates"`
	OSM           string `yaml:"osm"`
}

// Loads a network and its optional calendar exceptions and OSM station positions.
func LoadNetwork(source NetworkSource, options graph.BuildOptions) (*graph.NetworkGraph, error) {
	file, err := ReadNetworkFile(source.Network)
	if err != nil {
		return nil, err
	}
	if source.OSM != "" {
		stops, err := ReadOSMStops(source.OSM)
		if err != nil {
			return nil, err
		}
		ApplyStopPositions(&file, stops)
	}
	builder, err := NewBuilderFromFile(file, options)
	if err != nil {
		return nil, err
	}
	if source.CalendarDates != "" {
		dates, err := ReadCalendarDates(source.CalendarDates)
		if err != nil {
			return nil, err
		}
		if err := ApplyCalendarDates(builder, dates); err != nil {
			return nil, err
		}
	}
	g := builder.Build()
	slog.Info(fmt.Sprintf("loaded network with %v stations, %v nodes and %v edges", g.StationCount(), g.NodeCount(), g.EdgeCount()))
	return g, nil
}

func ReadNetworkFile(path string) (NetworkFile, error) {
	var file NetworkFile
	data, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("failed to read network file: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("failed to parse network file %v: %w", path, err)
	}
	return file, nil
}

func NewBuilderFromFile(file NetworkFile, options graph.BuildOptions) (*graph.NetworkBuilder, error) {
	builder := graph.NewNetworkBuilder(options)
	for _, s := range file.Stations {
		station := structs.Station{
			ID:          s.ID,
			Name:        s.Name,
			Loc:         geo.Coord{s.Lon, s.Lat},
			Interchange: s.Interchange,
		}
		if _, err := builder.AddStation(station); err != nil {
			return nil, err
		}
	}
	for _, r := range file.Routes {
		if _, err := builder.AddRoute(structs.Route{ID: r.ID, Name: r.Name, Mode: r.Mode}); err != nil {
			return nil, err
		}
	}
	for _, c := range file.Calendars {
		cal, err := _ParseCalendar(c)
		if err != nil {
			return nil, fmt.Errorf("calendar %q: %w", c.ID, err)
		}
		if _, err := builder.AddCalendar(cal); err != nil {
			return nil, err
		}
	}
	for _, s := range file.Services {
		if _, err := builder.AddService(s.ID, s.Route, s.Calendar); err != nil {
			return nil, err
		}
		for _, t := range s.Trips {
			calls := NewList[graph.StopCall](len(t.Calls))
			for _, c := range t.Calls {
				arr, dep, err := _ParseCall(c)
				if err != nil {
					return nil, fmt.Errorf("trip %q: %w", t.ID, err)
				}
				calls.Add(graph.StopCall{Station: c.Station, Platform: c.Platform, Arrival: arr, Departure: dep})
			}
			if _, err := builder.AddTrip(t.ID, s.ID, calls); err != nil {
				return nil, err
			}
		}
	}
	for _, l := range file.Links {
		var err error
		switch l.Type {
		case "walk", "":
			err = builder.AddWalk(l.From, l.To, l.Cost)
		case "neighbour":
			err = builder.AddNeighbour(l.From, l.To, l.Cost)
		default:
			err = fmt.Errorf("unknown link type %q", l.Type)
		}
		if err != nil {
			return nil, err
		}
	}
	return builder, nil
}
