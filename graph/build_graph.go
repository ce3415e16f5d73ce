package graph

import (
	"errors"
	"fmt"

	"github.com/ttpr0/go-journeys/structs"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slices"
)

//*******************************************
// network builder
//*******************************************

type BuildOptions struct {
	BoardCost    int32 `yaml:"board-cost" validate:"gte=0"`
	DepartCost   int32 `yaml:"depart-cost" validate:"gte=0"`
	PlatformCost int32 `yaml:"platform-cost" validate:"gte=0"`
}

func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		BoardCost:    2,
		DepartCost:   0,
		PlatformCost: 1,
	}
}

// One call of a trip at a station. Platform is only used by platform-bearing modes.
type StopCall struct {
	Station   string
	Platform  string
	Arrival   structs.Clock
	Departure structs.Clock
}

type _Link struct {
	from int32
	to   int32
	typ  EdgeType
	cost int32
}

type NetworkBuilder struct {
	options BuildOptions

	stations     List[structs.Station]
	station_ids  Dict[string, int32]
	platforms    List[structs.Platform]
	platform_ids Dict[Tuple[int32, string], int32]
	routes       List[structs.Route]
	route_ids    Dict[string, int32]
	calendars    List[structs.Calendar]
	calendar_ids Dict[string, int32]
	services     List[structs.Service]
	service_ids  Dict[string, int32]
	trips        List[structs.Trip]
	trip_ids     Dict[string, int32]
	trip_calls   List[[]StopCall]
	links        List[_Link]
}

func NewNetworkBuilder(options BuildOptions) *NetworkBuilder {
	return &NetworkBuilder{
		options:      options,
		stations:     NewList[structs.Station](100),
		station_ids:  NewDict[string, int32](100),
		platforms:    NewList[structs.Platform](100),
		platform_ids: NewDict[Tuple[int32, string], int32](100),
		routes:       NewList[structs.Route](10),
		route_ids:    NewDict[string, int32](10),
		calendars:    NewList[structs.Calendar](10),
		calendar_ids: NewDict[string, int32](10),
		services:     NewList[structs.Service](10),
		service_ids:  NewDict[string, int32](10),
		trips:        NewList[structs.Trip](100),
		trip_ids:     NewDict[string, int32](100),
		trip_calls:   NewList[[]StopCall](100),
		links:        NewList[_Link](100),
	}
}

func (self *NetworkBuilder) AddStation(station structs.Station) (int32, error) {
	if station.ID == "" {
		return -1, errors.New("station id must not be empty")
	}
	if self.station_ids.ContainsKey(station.ID) {
		return -1, fmt.Errorf("duplicate station %q", station.ID)
	}
	id := int32(self.stations.Length())
	self.stations.Add(station)
	self.station_ids.Set(station.ID, id)
	return id, nil
}

func (self *NetworkBuilder) AddPlatform(station_id string, code string) (int32, error) {
	station, ok := self.station_ids[station_id]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownStation, station_id)
	}
	return self._GetOrAddPlatform(station, code), nil
}

func (self *NetworkBuilder) _GetOrAddPlatform(station int32, code string) int32 {
	key := MakeTuple(station, code)
	if id, ok := self.platform_ids[key]; ok {
		return id
	}
	id := int32(self.platforms.Length())
	self.platforms.Add(structs.Platform{Station: station, Code: code})
	self.platform_ids.Set(key, id)
	return id
}

func (self *NetworkBuilder) AddRoute(route structs.Route) (int32, error) {
	if self.route_ids.ContainsKey(route.ID) {
		return -1, fmt.Errorf("duplicate route %q", route.ID)
	}
	id := int32(self.routes.Length())
	self.routes.Add(route)
	self.route_ids.Set(route.ID, id)
	return id, nil
}

func (self *NetworkBuilder) AddCalendar(calendar structs.Calendar) (int32, error) {
	if self.calendar_ids.ContainsKey(calendar.ID) {
		return -1, fmt.Errorf("duplicate calendar %q", calendar.ID)
	}
	id := int32(self.calendars.Length())
	self.calendars.Add(calendar)
	self.calendar_ids.Set(calendar.ID, id)
	return id, nil
}

// Adds an exceptional date to a calendar, added=false removes the date.
func (self *NetworkBuilder) AddCalendarException(calendar_id string, date structs.Date, added bool) error {
	id, ok := self.calendar_ids[calendar_id]
	if !ok {
		return fmt.Errorf("unknown calendar %q", calendar_id)
	}
	cal := self.calendars.Get(int(id))
	if added {
		cal.Added = append(cal.Added, date)
	} else {
		cal.Removed = append(cal.Removed, date)
	}
	self.calendars.Set(int(id), cal)
	return nil
}

func (self *NetworkBuilder) AddService(id string, route_id string, calendar_id string) (int32, error) {
	if self.service_ids.ContainsKey(id) {
		return -1, fmt.Errorf("duplicate service %q", id)
	}
	route, ok := self.route_ids[route_id]
	if !ok {
		return -1, fmt.Errorf("unknown route %q", route_id)
	}
	calendar, ok := self.calendar_ids[calendar_id]
	if !ok {
		return -1, fmt.Errorf("unknown calendar %q", calendar_id)
	}
	service := int32(self.services.Length())
	self.services.Add(structs.Service{ID: id, Route: route, Calendar: calendar})
	self.service_ids.Set(id, service)
	return service, nil
}

func (self *NetworkBuilder) AddTrip(id string, service_id string, calls []StopCall) (int32, error) {
	if self.trip_ids.ContainsKey(id) {
		return -1, fmt.Errorf("duplicate trip %q", id)
	}
	service, ok := self.service_ids[service_id]
	if !ok {
		return -1, fmt.Errorf("unknown service %q", service_id)
	}
	if len(calls) < 2 {
		return -1, fmt.Errorf("trip %q needs at least two calls", id)
	}
	for i, call := range calls {
		if !self.station_ids.ContainsKey(call.Station) {
			return -1, fmt.Errorf("trip %q: %w: %q", id, ErrUnknownStation, call.Station)
		}
		if call.Departure < call.Arrival {
			return -1, fmt.Errorf("trip %q departs %v before arriving at %q", id, call.Departure, call.Station)
		}
		if i > 0 && call.Arrival < calls[i-1].Departure {
			return -1, fmt.Errorf("trip %q arrives at %q before leaving the previous stop", id, call.Station)
		}
	}
	trip := int32(self.trips.Length())
	self.trips.Add(structs.Trip{ID: id, Service: service})
	self.trip_ids.Set(id, trip)
	self.trip_calls.Add(calls)
	return trip, nil
}

// Adds a neighbour link in both directions.
func (self *NetworkBuilder) AddNeighbour(station_a, station_b string, cost int32) error {
	return self._AddLink(station_a, station_b, NEIGHBOUR, cost)
}

// Adds a walking connection in both directions.
func (self *NetworkBuilder) AddWalk(station_a, station_b string, cost int32) error {
	return self._AddLink(station_a, station_b, WALK, cost)
}

func (self *NetworkBuilder) _AddLink(station_a, station_b string, typ EdgeType, cost int32) error {
	a, ok := self.station_ids[station_a]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStation, station_a)
	}
	b, ok := self.station_ids[station_b]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStation, station_b)
	}
	if a == b {
		return fmt.Errorf("station %q can not be linked to itself", station_a)
	}
	if cost < 0 {
		return fmt.Errorf("negative link cost %v", cost)
	}
	self.links.Add(_Link{from: a, to: b, typ: typ, cost: cost})
	self.links.Add(_Link{from: b, to: a, typ: typ, cost: cost})
	return nil
}

//*******************************************
// build graph
//*******************************************

func (self *NetworkBuilder) Build() *NetworkGraph {
	// resolve route-stations (and the platforms they are boarded from)
	rs_ids := NewDict[Tuple[int32, int32], int32](100)
	route_stations := NewList[structs.RouteStation](100)
	call_rs := NewList[[]int32](self.trips.Length())
	for t, trip := range self.trips {
		route := self.services[trip.Service].Route
		mode := self.routes[route].Mode
		calls := self.trip_calls[t]
		ids := make([]int32, len(calls))
		for i, call := range calls {
			station := self.station_ids[call.Station]
			key := MakeTuple(station, route)
			rs, ok := rs_ids[key]
			if !ok {
				platform := int32(-1)
				if mode.HasPlatforms() {
					platform = self._GetOrAddPlatform(station, call.Platform)
				}
				rs = int32(route_stations.Length())
				route_stations.Add(structs.RouteStation{Station: station, Route: route, Platform: platform})
				rs_ids.Set(key, rs)
			}
			ids[i] = rs
		}
		call_rs.Add(ids)
	}

	nodes := NewList[Node](self.stations.Length() * 4)
	station_nodes := NewArray[int32](self.stations.Length())
	for i := range self.stations {
		station_nodes[i] = int32(nodes.Length())
		nodes.Add(Node{Label: STATION, Ref: int32(i)})
	}
	platform_nodes := NewArray[int32](self.platforms.Length())
	for i := range self.platforms {
		platform_nodes[i] = int32(nodes.Length())
		nodes.Add(Node{Label: PLATFORM, Ref: int32(i)})
	}
	rs_nodes := NewArray[int32](route_stations.Length())
	for i := range route_stations {
		rs_nodes[i] = int32(nodes.Length())
		nodes.Add(Node{Label: ROUTE_STATION, Ref: int32(i)})
	}

	// timetable nodes
	service_nodes := NewList[structs.ServiceNode](100)
	service_ids := NewDict[Tuple[int32, int32], int32](100)
	hour_nodes := NewList[structs.HourNode](100)
	hour_ids := NewDict[Tuple[int32, int32], int32](100)
	minute_nodes := NewList[structs.MinuteNode](100)
	minute_ids := NewDict[Tuple[int32, structs.Clock], int32](100)
	edges := NewList[Edge](100)
	for t, trip := range self.trips {
		calls := self.trip_calls[t]
		ids := call_rs[t]
		for i := 0; i < len(calls)-1; i++ {
			rs_node := rs_nodes[ids[i]]
			next_node := rs_nodes[ids[i+1]]

			svc_key := MakeTuple(rs_node, trip.Service)
			svc_node, ok := service_ids[svc_key]
			if !ok {
				svc_node = int32(nodes.Length())
				nodes.Add(Node{Label: SERVICE, Ref: int32(service_nodes.Length())})
				service_nodes.Add(structs.ServiceNode{RouteStation: rs_node, Service: trip.Service, Next: next_node})
				service_ids.Set(svc_key, svc_node)
				edges.Add(_TimetableEdge(rs_node, svc_node, TO_SERVICE, trip.Service))
			}

			departure := calls[i].Departure
			hour_key := MakeTuple(svc_node, departure.Hour())
			hour_node, ok := hour_ids[hour_key]
			if !ok {
				hour_node = int32(nodes.Length())
				nodes.Add(Node{Label: HOUR, Ref: int32(hour_nodes.Length())})
				hour_nodes.Add(structs.HourNode{Service: trip.Service, Hour: departure.Hour()})
				hour_ids.Set(hour_key, hour_node)
				edges.Add(_TimetableEdge(svc_node, hour_node, TO_HOUR, trip.Service))
			}

			minute_key := MakeTuple(svc_node, departure)
			minute_node, ok := minute_ids[minute_key]
			if !ok {
				minute_node = int32(nodes.Length())
				nodes.Add(Node{Label: MINUTE, Ref: int32(minute_nodes.Length())})
				minute_nodes.Add(structs.MinuteNode{Service: trip.Service, Time: departure})
				minute_ids.Set(minute_key, minute_node)
				edges.Add(_TimetableEdge(hour_node, minute_node, TO_MINUTE, trip.Service))
			}

			edges.Add(Edge{
				From:       minute_node,
				To:         next_node,
				Type:       RIDE,
				Cost:       calls[i+1].Arrival.Sub(departure),
				Trip:       int32(t),
				Service:    trip.Service,
				Towards:    -1,
				Terminates: i+1 == len(calls)-1,
			})
		}
	}

	// boarding and alighting
	for i, rs := range route_stations {
		rs_node := rs_nodes[i]
		from := station_nodes[rs.Station]
		if rs.Platform != -1 {
			from = platform_nodes[rs.Platform]
		}
		board, depart := BOARD, DEPART
		if self.stations[rs.Station].Interchange {
			board, depart = INTERCHANGE_BOARD, INTERCHANGE_DEPART
		}
		edges.Add(Edge{From: from, To: rs_node, Type: board, Cost: self.options.BoardCost, Trip: -1, Service: -1, Towards: -1})
		edges.Add(Edge{From: rs_node, To: from, Type: depart, Cost: self.options.DepartCost, Trip: -1, Service: -1, Towards: rs.Station})
	}
	for i, platform := range self.platforms {
		station_node := station_nodes[platform.Station]
		platform_node := platform_nodes[i]
		edges.Add(Edge{From: station_node, To: platform_node, Type: ENTER_PLATFORM, Cost: self.options.PlatformCost, Trip: -1, Service: -1, Towards: -1})
		edges.Add(Edge{From: platform_node, To: station_node, Type: LEAVE_PLATFORM, Cost: self.options.PlatformCost, Trip: -1, Service: -1, Towards: -1})
	}
	for _, link := range self.links {
		edges.Add(Edge{From: station_nodes[link.from], To: station_nodes[link.to], Type: link.typ, Cost: link.cost, Trip: -1, Service: -1, Towards: link.to})
	}

	slices.SortStableFunc(edges, func(a, b Edge) int {
		return int(a.From) - int(b.From)
	})
	fwd_offsets, bwd_offsets, bwd_edges := _BuildTopology(nodes.Length(), Array[Edge](edges))

	return &NetworkGraph{
		nodes:       Array[Node](nodes),
		edges:       Array[Edge](edges),
		fwd_offsets: fwd_offsets,
		bwd_offsets: bwd_offsets,
		bwd_edges:   bwd_edges,

		stations:       Array[structs.Station](self.stations),
		station_nodes:  station_nodes,
		platforms:      Array[structs.Platform](self.platforms),
		routes:         Array[structs.Route](self.routes),
		route_stations: Array[structs.RouteStation](route_stations),
		rs_nodes:       rs_nodes,
		services:       Array[structs.Service](self.services),
		trips:          Array[structs.Trip](self.trips),
		calendars:      Array[structs.Calendar](self.calendars),
		service_nodes:  Array[structs.ServiceNode](service_nodes),
		hour_nodes:     Array[structs.HourNode](hour_nodes),
		minute_nodes:   Array[structs.MinuteNode](minute_nodes),

		station_ids: self.station_ids,
	}
}

func _TimetableEdge(from, to int32, typ EdgeType, service int32) Edge {
	return Edge{From: from, To: to, Type: typ, Cost: 0, Trip: -1, Service: service, Towards: -1}
}

// Builds forward and backward offset arrays, edges must be sorted by From.
func _BuildTopology(node_count int, edges Array[Edge]) (Array[int32], Array[int32], Array[int32]) {
	fwd_offsets := NewArray[int32](node_count + 1)
	bwd_offsets := NewArray[int32](node_count + 1)
	for _, edge := range edges {
		fwd_offsets[edge.From+1] += 1
		bwd_offsets[edge.To+1] += 1
	}
	for i := 1; i <= node_count; i++ {
		fwd_offsets[i] += fwd_offsets[i-1]
		bwd_offsets[i] += bwd_offsets[i-1]
	}
	bwd_edges := NewArray[int32](edges.Length())
	fill := NewArray[int32](node_count)
	for id, edge := range edges {
		pos := bwd_offsets[edge.To] + fill[edge.To]
		bwd_edges[pos] = int32(id)
		fill[edge.To] += 1
	}
	return fwd_offsets, bwd_offsets, bwd_edges
}
