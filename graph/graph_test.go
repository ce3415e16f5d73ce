package graph

import (
	"errors"
	"testing"

	"github.com/ttpr0/go-journeys/structs"
)

func _BuildLine(t *testing.T, mode structs.TransportMode, interchange bool) *NetworkGraph {
	b := NewNetworkBuilder(DefaultBuildOptions())
	for _, id := range []string{"A", "B", "C"} {
		if _, err := b.AddStation(structs.Station{ID: id, Interchange: interchange && id == "B"}); err != nil {
			t.Fatal(err)
		}
	}
	b.AddRoute(structs.Route{ID: "1", Mode: mode})
	b.AddCalendar(structs.Calendar{ID: "daily", StartDate: 20240101, EndDate: 20241231, Weekdays: [7]bool{true, true, true, true, true, true, true}})
	b.AddService("S1", "1", "daily")
	_, err := b.AddTrip("T1", "S1", []StopCall{
		{Station: "A", Arrival: 480, Departure: 480},
		{Station: "B", Arrival: 490, Departure: 490},
		{Station: "C", Arrival: 500, Departure: 500},
	})
	if err != nil {
		t.Fatal(err)
	}
	return b.Build()
}

func TestBuildBusLine(t *testing.T) {
	g := _BuildLine(t, structs.BUS, false)

	labels := map[NodeLabel]int{}
	for i := 0; i < g.NodeCount(); i++ {
		labels[g.GetNodeLabel(int32(i))] += 1
	}
	if labels[STATION] != 3 || labels[ROUTE_STATION] != 3 || labels[PLATFORM] != 0 {
		t.Errorf("unexpected node labels %v", labels)
	}
	// one service/hour/minute chain per departing call
	if labels[SERVICE] != 2 || labels[HOUR] != 2 || labels[MINUTE] != 2 {
		t.Errorf("unexpected timetable nodes %v", labels)
	}

	rides := 0
	terminating := 0
	for i := 0; i < g.EdgeCount(); i++ {
		edge := g.GetEdge(int32(i))
		if edge.Type == RIDE {
			rides += 1
			if edge.Cost != 10 {
				t.Errorf("ride cost = %v; want 10", edge.Cost)
			}
			if edge.Terminates {
				terminating += 1
				if g.NodeStation(edge.To) != 2 {
					t.Errorf("terminating ride should end at C")
				}
			}
		}
		if edge.Type == DEPART && edge.Towards != g.NodeStation(edge.From) {
			t.Errorf("depart edge should point towards its own station")
		}
	}
	if rides != 2 || terminating != 1 {
		t.Errorf("rides = %v, terminating = %v; want 2, 1", rides, terminating)
	}
}

func TestOutEdgesSorted(t *testing.T) {
	g := _BuildLine(t, structs.BUS, false)
	total := 0
	for i := 0; i < g.NodeCount(); i++ {
		for id, edge := range g.OutEdges(int32(i)) {
			if edge.From != int32(i) {
				t.Errorf("edge %v leaves %v, not %v", id, edge.From, i)
			}
			total += 1
		}
	}
	if total != g.EdgeCount() {
		t.Errorf("visited %v edges; want %v", total, g.EdgeCount())
	}
}

func TestBackwardExplorer(t *testing.T) {
	g := _BuildLine(t, structs.BUS, false)
	explorer := g.GetGraphExplorer()
	c, _ := g.GetStationNode("C")
	incoming := 0
	explorer.ForAdjacentEdges(c, BACKWARD, func(ref EdgeRef) {
		if ref.Type != DEPART {
			t.Errorf("unexpected incoming edge type %v", ref.Type)
		}
		if explorer.GetOtherNode(ref, c) != ref.OtherID {
			t.Errorf("other node mismatch")
		}
		incoming += 1
	})
	if incoming != 1 {
		t.Errorf("incoming = %v; want 1", incoming)
	}
}

func TestTramPlatformsAndInterchange(t *testing.T) {
	g := _BuildLine(t, structs.TRAM, true)
	b, _ := g.GetStationNode("B")
	platforms := 0
	for _, edge := range g.OutEdges(b) {
		if edge.Type == ENTER_PLATFORM {
			platforms += 1
			for _, e := range g.OutEdges(edge.To) {
				if e.Type == BOARD {
					t.Errorf("interchange station should only have interchange boards")
				}
			}
		}
		if edge.Type.IsBoard() {
			t.Errorf("tram stations are boarded from platforms")
		}
	}
	if platforms != 1 {
		t.Errorf("platforms = %v; want 1", platforms)
	}
}

func TestUnknownStation(t *testing.T) {
	g := _BuildLine(t, structs.BUS, false)
	_, err := g.GetStationNode("X")
	if !errors.Is(err, ErrUnknownStation) {
		t.Errorf("err = %v; want ErrUnknownStation", err)
	}
	if err := g.CheckNode(int32(g.NodeCount()), STATION); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("err = %v; want ErrUnknownNode", err)
	}
}

func TestBuilderRejectsInvalidTrips(t *testing.T) {
	b := NewNetworkBuilder(DefaultBuildOptions())
	b.AddStation(structs.Station{ID: "A"})
	b.AddStation(structs.Station{ID: "B"})
	b.AddRoute(structs.Route{ID: "1", Mode: structs.BUS})
	b.AddCalendar(structs.Calendar{ID: "c"})
	b.AddService("S", "1", "c")

	if _, err := b.AddStation(structs.Station{ID: "A"}); err == nil {
		t.Errorf("expected duplicate station error")
	}
	if _, err := b.AddTrip("T", "S", []StopCall{{Station: "A", Arrival: 10, Departure: 10}}); err == nil {
		t.Errorf("expected error for single call trip")
	}
	if _, err := b.AddTrip("T", "S", []StopCall{{Station: "A", Arrival: 10, Departure: 10}, {Station: "B", Arrival: 5, Departure: 5}}); err == nil {
		t.Errorf("expected error for trip going back in time")
	}
	if _, err := b.AddTrip("T", "S", []StopCall{{Station: "A", Arrival: 10, Departure: 10}, {Station: "Z", Arrival: 15, Departure: 15}}); !errors.Is(err, ErrUnknownStation) {
		t.Errorf("err = %v; want ErrUnknownStation", err)
	}
	if err := b.AddWalk("A", "A", 3); err == nil {
		t.Errorf("expected error for self link")
	}
}
