package preproc

import (
	"testing"

	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/parser"
	"github.com/ttpr0/go-journeys/structs"
)

func _RouteStation(t *testing.T, g *graph.NetworkGraph, station string, route string) int32 {
	for i := 0; i < g.RouteStationCount(); i++ {
		rs := g.GetRouteStation(g.RouteStationNode(int32(i)))
		if g.GetStation(rs.Station).ID == station && g.GetRoute(rs.Route).ID == route {
			return int32(i)
		}
	}
	t.Fatalf("no route-station for %v on route %v", station, route)
	return -1
}

func _Station(g *graph.NetworkGraph, id string) int32 {
	node, _ := g.GetStationNode(id)
	return g.NodeStation(node)
}

func TestReachabilityOnlyChangesAtInterchanges(t *testing.T) {
	g, err := parser.LoadNetwork(parser.NetworkSource{Network: "../testdata/tram.yaml"}, graph.DefaultBuildOptions())
	if err != nil {
		t.Fatal(err)
	}
	reach := PrepareReachability(g)
	if reach.RouteStationCount() != g.RouteStationCount() {
		t.Fatalf("one set per route-station expected")
	}

	w1 := _RouteStation(t, g, "W", "1")
	for _, id := range []string{"W", "X", "Y", "V", "Z"} {
		if !reach.IsReachable(w1, _Station(g, id)) {
			t.Errorf("%v should be reachable from W on route 1", id)
		}
	}
	// Y is no interchange, the only way on from there is to the terminus V
	y1 := _RouteStation(t, g, "Y", "1")
	if reach.IsReachable(y1, _Station(g, "Z")) {
		t.Errorf("Z should not be reachable from Y on route 1")
	}
	if !reach.IsReachable(y1, _Station(g, "V")) {
		t.Errorf("V should be reachable from Y on route 1")
	}
	z2 := _RouteStation(t, g, "Z", "2")
	if reach.ReachableCount(z2) != 1 {
		t.Errorf("terminus route-station should only reach its own station")
	}
}

func TestReachabilityFollowsNeighbourLinks(t *testing.T) {
	b := graph.NewNetworkBuilder(graph.DefaultBuildOptions())
	for _, id := range []string{"A", "B", "N", "C"} {
		b.AddStation(structs.Station{ID: id})
	}
	b.AddRoute(structs.Route{ID: "1", Mode: structs.BUS})
	b.AddRoute(structs.Route{ID: "2", Mode: structs.BUS})
	b.AddCalendar(structs.Calendar{ID: "c"})
	b.AddService("S1", "1", "c")
	b.AddService("S2", "2", "c")
	b.AddTrip("T1", "S1", []graph.StopCall{{Station: "A", Arrival: 480, Departure: 480}, {Station: "B", Arrival: 490, Departure: 490}})
	b.AddTrip("T2", "S2", []graph.StopCall{{Station: "N", Arrival: 500, Departure: 500}, {Station: "C", Arrival: 510, Departure: 510}})
	if err := b.AddNeighbour("B", "N", 3); err != nil {
		t.Fatal(err)
	}
	g := b.Build()
	reach := PrepareReachability(g)

	a1 := _RouteStation(t, g, "A", "1")
	if !reach.IsReachable(a1, _Station(g, "N")) || !reach.IsReachable(a1, _Station(g, "C")) {
		t.Errorf("neighbour of a terminus and its lines should be reachable")
	}
	n2 := _RouteStation(t, g, "N", "2")
	if reach.IsReachable(n2, _Station(g, "A")) {
		t.Errorf("A should not be reachable from N")
	}
}
