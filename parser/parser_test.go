package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/structs"
)

func TestLoadNetwork(t *testing.T) {
	g, err := LoadNetwork(NetworkSource{Network: "../testdata/line.yaml"}, graph.DefaultBuildOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, g.StationCount())
	assert.Equal(t, 1, g.TripCount())
	a, err := g.GetStationNode("A")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", g.GetStation(g.NodeStation(a)).Name)

	cal := g.GetCalendar(0)
	assert.True(t, cal.RunsOn(20240506))
	assert.False(t, cal.RunsOn(20250106))
}

func TestLoadNetworkWithCalendarDates(t *testing.T) {
	source := NetworkSource{
		Network:       "../testdata/line.yaml",
		CalendarDates: "../testdata/calendar_dates.txt",
	}
	g, err := LoadNetwork(source, graph.DefaultBuildOptions())
	require.NoError(t, err)

	cal := g.GetCalendar(0)
	assert.True(t, cal.RunsOn(20240506))
	assert.False(t, cal.RunsOn(20240507), "removed by calendar_dates")
	assert.True(t, cal.RunsOn(20250102), "added by calendar_dates")
}

func TestLoadNetworkMissingFile(t *testing.T) {
	_, err := LoadNetwork(NetworkSource{Network: "../testdata/missing.yaml"}, graph.DefaultBuildOptions())
	assert.Error(t, err)
}

func TestReadOSMStops(t *testing.T) {
	stops, err := ReadOSMStops("../testdata/stops.osm")
	require.NoError(t, err)
	require.Equal(t, 2, stops.Length())
	assert.Equal(t, int64(101), stops[0].ID)
	assert.Equal(t, "Bravo", stops[1].Name)
}

func TestApplyStopPositions(t *testing.T) {
	file := NetworkFile{
		Stations: []StationEntry{
			{ID: "A", Name: "Alpha", OSMNode: 101},
			{ID: "B", Name: "Bravo"},
			{ID: "C", Name: "Charlie", Lon: 1, Lat: 2},
		},
	}
	stops := []OSMStop{
		{ID: 101, Name: "Other", Loc: [2]float32{8.5, 49.5}},
		{ID: 102, Name: "Bravo", Loc: [2]float32{8.6, 49.6}},
		{ID: 103, Name: "Charlie", Loc: [2]float32{8.7, 49.7}},
	}
	ApplyStopPositions(&file, stops)

	assert.Equal(t, float32(8.5), file.Stations[0].Lon)
	assert.Equal(t, float32(49.6), file.Stations[1].Lat)
	assert.Equal(t, float32(1), file.Stations[2].Lon, "stations with a position keep it")
}

func TestParseCalendar(t *testing.T) {
	cal, err := _ParseCalendar(CalendarEntry{ID: "c", Start: "20240101", End: "2024-01-31", Days: []string{"mon", "Friday"}})
	require.NoError(t, err)
	assert.Equal(t, structs.Date(20240101), cal.StartDate)
	assert.True(t, cal.RunsOn(20240105))
	assert.False(t, cal.RunsOn(20240106))

	_, err = _ParseCalendar(CalendarEntry{ID: "c", Days: []string{"someday"}})
	assert.Error(t, err)
}
