package parser

import (
	"github.com/ttpr0/go-journeys/geo"
	"github.com/ttpr0/go-journeys/structs"
)

//*******************************************
// network file structs
//*******************************************

type NetworkFile struct {
	Stations  []StationEntry  `yaml:"stations"`
	Routes    []RouteEntry    `yaml:"routes"`
	Calendars []CalendarEntry `yaml:"calendars"`
	Services  []ServiceEntry  `yaml:"services"`
	Links     []LinkEntry     `yaml:"links"`
}

type StationEntry struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Lon         float32 `yaml:"lon"`
	Lat         float32 `yaml:"lat"`
	Interchange bool    `yaml:"interchange"`
	OSMNode     int64   `yaml:"osm-node"`
}

type RouteEntry struct {
	ID   string                `yaml:"id"`
	Name string                `yaml:"name"`
	Mode structs.TransportMode `yaml:"mode"`
}

type CalendarEntry struct {
	ID      string   `yaml:"id"`
	Start   string   `yaml:"start"`
	End     string   `yaml:"end"`
	Days    []string `yaml:"days"`
	Added   []string `yaml:"added"`
	Removed []string `yaml:"removed"`
}

type ServiceEntry struct {
	ID       string      `yaml:"id"`
	Route    string      `yaml:"route"`
	Calendar string      `yaml:"calendar"`
	Trips    []TripEntry `yaml:"trips"`
}

type TripEntry struct {
	ID    string      `yaml:"id"`
	Calls []CallEntry `yaml:"calls"`
}

// A call either sets time (arrival = departure) or arr and dep.
type CallEntry struct {
	Station  string `yaml:"station"`
	Platform string `yaml:"platform"`
	Time     string `yaml:"time"`
	Arr      string `yaml:"arr"`
	Dep      string `yaml:"dep"`
}

type LinkEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Type string `yaml:"type"`
	Cost int32  `yaml:"cost"`
}

//*******************************************
// osm structs
//*******************************************

type OSMStop struct {
	ID   int64
	Name string
	Ref  string
	Loc  geo.Coord
}

//*******************************************
// gtfs structs
//*******************************************

type CalendarDate struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int    `csv:"exception_type"`
}
