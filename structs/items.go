package structs

import (
	"github.com/ttpr0/go-journeys/geo"
)

//*******************************************
// network items
//*******************************************

type Station struct {
	ID          string
	Name        string
	Loc         geo.Coord
	Interchange bool
}

type Platform struct {
	Station int32
	Code    string
}

type Route struct {
	ID   string
	Name string
	Mode TransportMode
}

// RouteStation is a station as served by one route.
type RouteStation struct {
	Station  int32
	Route    int32
	Platform int32
}

type Service struct {
	ID       string
	Route    int32
	Calendar int32
}

type Trip struct {
	ID      string
	Service int32
}

//*******************************************
// timetable nodes
//*******************************************

// ServiceNode groups the departures of one service at one route-station.
// Next is the route-station node of the following call, -1 at the terminus.
type ServiceNode struct {
	RouteStation int32
	Service      int32
	Next         int32
}

type HourNode struct {
	Service int32
	Hour    int32
}

type MinuteNode struct {
	Service int32
	Time    Clock
}
