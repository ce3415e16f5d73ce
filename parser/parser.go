package parser

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/ttpr0/go-journeys/geo"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// osm stops
//*******************************************

// Reads all public transport stops from an OSM file (.pbf or .osm xml).
func ReadOSMStops(filename string) (List[OSMStop], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var scanner osm.Scanner
	if strings.HasSuffix(filename, ".pbf") {
		pbf := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
		pbf.SkipWays = true
		pbf.SkipRelations = true
		scanner = pbf
	} else {
		scanner = osmxml.New(context.Background(), file)
	}
	defer scanner.Close()

	stops := NewList[OSMStop](100)
	_NodeHandler(scanner, &StopDecoder{}, &stops)
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read osm file %v: %w", filename, err)
	}
	slog.Debug(fmt.Sprintf("read %v stops from %v", stops.Length(), filename))
	return stops, nil
}

func _NodeHandler(scanner osm.Scanner, decoder IOSMDecoder, stops *List[OSMStop]) {
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsStop(tags) {
				continue
			}
			stops.Add(OSMStop{
				ID:   object.FeatureID().Ref(),
				Name: tags.Get("name"),
				Ref:  tags.Get("ref"),
				Loc:  geo.Coord{float32(object.Lon), float32(object.Lat)},
			})
		default:
			continue
		}
	}
}

// Sets the position of every station referencing an osm node.
// Stations without a reference are matched by name if they have no position yet.
func ApplyStopPositions(file *NetworkFile, stops List[OSMStop]) {
	by_id := NewDict[int64, OSMStop](stops.Length())
	by_name := NewDict[string, OSMStop](stops.Length())
	for _, stop := range stops {
		by_id[stop.ID] = stop
		if stop.Name != "" && !by_name.ContainsKey(stop.Name) {
			by_name[stop.Name] = stop
		}
	}
	for i := range file.Stations {
		station := &file.Stations[i]
		var stop OSMStop
		var ok bool
		if station.OSMNode != 0 {
			stop, ok = by_id[station.OSMNode]
		} else if station.Lon == 0 && station.Lat == 0 {
			stop, ok = by_name[station.Name]
		}
		if !ok {
			continue
		}
		station.Lon = stop.Loc[0]
		station.Lat = stop.Loc[1]
	}
}

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsStop(tags Dict[string, string]) bool
}
