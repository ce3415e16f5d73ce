package graph

import (
	"errors"
	"fmt"

	"github.com/ttpr0/go-journeys/geo"
	"github.com/ttpr0/go-journeys/structs"
	. "github.com/ttpr0/go-journeys/util"
)

var ErrUnknownStation = errors.New("unknown station")
var ErrUnknownNode = errors.New("unknown node")

//*******************************************
// network graph
//******************************************

// NetworkGraph is read-only after it has been built.
// Concurrent readers need no locking.
type NetworkGraph struct {
	nodes       Array[Node]
	edges       Array[Edge]
	fwd_offsets Array[int32]
	bwd_offsets Array[int32]
	bwd_edges   Array[int32]

	stations       Array[structs.Station]
	station_nodes  Array[int32]
	platforms      Array[structs.Platform]
	routes         Array[structs.Route]
	route_stations Array[structs.RouteStation]
	rs_nodes       Array[int32]
	services       Array[structs.Service]
	trips          Array[structs.Trip]
	calendars      Array[structs.Calendar]
	service_nodes  Array[structs.ServiceNode]
	hour_nodes     Array[structs.HourNode]
	minute_nodes   Array[structs.MinuteNode]

	station_ids Dict[string, int32]
}

func (self *NetworkGraph) NodeCount() int {
	return self.nodes.Length()
}
func (self *NetworkGraph) EdgeCount() int {
	return self.edges.Length()
}
func (self *NetworkGraph) IsNode(node int32) bool {
	return node >= 0 && node < int32(self.nodes.Length())
}
func (self *NetworkGraph) GetNode(node int32) Node {
	return self.nodes[node]
}
func (self *NetworkGraph) GetNodeLabel(node int32) NodeLabel {
	return self.nodes[node].Label
}
func (self *NetworkGraph) GetEdge(edge int32) Edge {
	return self.edges[edge]
}

// Returns the edges leaving node in build order.
// The sequence can be restarted as often as needed.
func (self *NetworkGraph) OutEdges(node int32) func(yield func(int32, Edge) bool) {
	return func(yield func(int32, Edge) bool) {
		start := self.fwd_offsets[node]
		end := self.fwd_offsets[node+1]
		for i := start; i < end; i++ {
			if !yield(i, self.edges[i]) {
				return
			}
		}
	}
}

func (self *NetworkGraph) OutDegree(node int32) int {
	return int(self.fwd_offsets[node+1] - self.fwd_offsets[node])
}

func (self *NetworkGraph) GetGraphExplorer() *GraphExplorer {
	return &GraphExplorer{
		graph: self,
	}
}

// Checks that node exists and carries the given label.
func (self *NetworkGraph) CheckNode(node int32, label NodeLabel) error {
	if !self.IsNode(node) {
		return fmt.Errorf("%w: %v", ErrUnknownNode, node)
	}
	if self.nodes[node].Label != label {
		return fmt.Errorf("%w: node %v is a %v, not a %v", ErrUnknownNode, node, self.nodes[node].Label, label)
	}
	return nil
}

//*******************************************
// stations and platforms
//*******************************************

func (self *NetworkGraph) StationCount() int {
	return self.stations.Length()
}
func (self *NetworkGraph) GetStation(station int32) structs.Station {
	return self.stations[station]
}
func (self *NetworkGraph) StationNode(station int32) int32 {
	return self.station_nodes[station]
}

// Resolves an external station id to its graph node.
func (self *NetworkGraph) GetStationNode(id string) (int32, error) {
	station, ok := self.station_ids[id]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownStation, id)
	}
	return self.station_nodes[station], nil
}

// Station index a node belongs to, -1 for timetable nodes.
func (self *NetworkGraph) NodeStation(node int32) int32 {
	n := self.nodes[node]
	switch n.Label {
	case STATION:
		return n.Ref
	case PLATFORM:
		return self.platforms[n.Ref].Station
	case ROUTE_STATION:
		return self.route_stations[n.Ref].Station
	default:
		return -1
	}
}

func (self *NetworkGraph) GetNodeGeom(node int32) geo.Coord {
	station := self.NodeStation(node)
	if station == -1 {
		return geo.Coord{}
	}
	return self.stations[station].Loc
}

func (self *NetworkGraph) GetPlatform(node int32) structs.Platform {
	return self.platforms[self.nodes[node].Ref]
}

//*******************************************
// routes and route-stations
//*******************************************

func (self *NetworkGraph) RouteCount() int {
	return self.routes.Length()
}
func (self *NetworkGraph) GetRoute(route int32) structs.Route {
	return self.routes[route]
}
func (self *NetworkGraph) RouteStationCount() int {
	return self.route_stations.Length()
}
func (self *NetworkGraph) RouteStationNode(rs int32) int32 {
	return self.rs_nodes[rs]
}
func (self *NetworkGraph) GetRouteStation(node int32) structs.RouteStation {
	return self.route_stations[self.nodes[node].Ref]
}
func (self *NetworkGraph) GetRouteStationMode(node int32) structs.TransportMode {
	rs := self.route_stations[self.nodes[node].Ref]
	return self.routes[rs.Route].Mode
}

//*******************************************
// timetable
//*******************************************

func (self *NetworkGraph) ServiceCount() int {
	return self.services.Length()
}
func (self *NetworkGraph) GetService(service int32) structs.Service {
	return self.services[service]
}
func (self *NetworkGraph) TripCount() int {
	return self.trips.Length()
}
func (self *NetworkGraph) GetTrip(trip int32) structs.Trip {
	return self.trips[trip]
}
func (self *NetworkGraph) CalendarCount() int {
	return self.calendars.Length()
}
func (self *NetworkGraph) GetCalendar(calendar int32) structs.Calendar {
	return self.calendars[calendar]
}
func (self *NetworkGraph) GetServiceNode(node int32) structs.ServiceNode {
	return self.service_nodes[self.nodes[node].Ref]
}
func (self *NetworkGraph) GetHour(node int32) structs.HourNode {
	return self.hour_nodes[self.nodes[node].Ref]
}
func (self *NetworkGraph) GetMinute(node int32) structs.MinuteNode {
	return self.minute_nodes[self.nodes[node].Ref]
}

//*******************************************
// graph explorer
//******************************************

type GraphExplorer struct {
	graph *NetworkGraph
}

func (self *GraphExplorer) ForAdjacentEdges(node int32, direction Direction, callback func(EdgeRef)) {
	g := self.graph
	if direction == FORWARD {
		for i := g.fwd_offsets[node]; i < g.fwd_offsets[node+1]; i++ {
			edge := g.edges[i]
			callback(EdgeRef{
				EdgeID:  i,
				OtherID: edge.To,
				Type:    edge.Type,
			})
		}
	} else {
		for i := g.bwd_offsets[node]; i < g.bwd_offsets[node+1]; i++ {
			edge_id := g.bwd_edges[i]
			edge := g.edges[edge_id]
			callback(EdgeRef{
				EdgeID:  edge_id,
				OtherID: edge.From,
				Type:    edge.Type,
			})
		}
	}
}
func (self *GraphExplorer) GetEdgeWeight(edge EdgeRef) int32 {
	return self.graph.edges[edge.EdgeID].Cost
}
func (self *GraphExplorer) GetOtherNode(edge EdgeRef, node int32) int32 {
	e := self.graph.edges[edge.EdgeID]
	if node == e.From {
		return e.To
	}
	if node == e.To {
		return e.From
	}
	return -1
}
