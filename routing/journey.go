package routing

import (
	"strconv"
	"strings"

	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/structs"
)

//*******************************************
// journey
//*******************************************

// Journey is one accepted path, handed to whoever turns it into travel stages.
type Journey struct {
	QueryTime structs.Clock
	// clock at which the first vehicle leaves, the query time if none is used
	Departure structs.Clock
	Arrival   structs.Clock
	Duration  int32
	Edges     []graph.Edge
	// clock after each edge
	Clocks []structs.Clock
}

func _BuildJourney(state TraversalState, query_time structs.Clock) Journey {
	count := int(state.Depth())
	edges := make([]graph.Edge, count)
	clocks := make([]structs.Clock, count)
	departure := structs.Clock(-1)
	curr := state
	for i := count - 1; i >= 0; i-- {
		edges[i] = curr.Via()
		clocks[i] = curr.Clock()
		if _, ok := curr.(*AtMinute); ok {
			departure = curr.Clock()
		}
		curr = curr.Parent()
	}
	if departure == -1 {
		departure = query_time
	}
	return Journey{
		QueryTime: query_time,
		Departure: departure,
		Arrival:   state.Clock(),
		Duration:  state.Cost(),
		Edges:     edges,
		Clocks:    clocks,
	}
}

// Number of vehicles boarded.
func (self Journey) Boardings() int {
	count := 0
	for _, edge := range self.Edges {
		if edge.Type.IsBoard() {
			count += 1
		}
	}
	return count
}

// Trips ridden in order, a trip continued over several stops is listed once.
func (self Journey) Trips() []int32 {
	trips := make([]int32, 0, 2)
	for _, edge := range self.Edges {
		if edge.Type != graph.RIDE {
			continue
		}
		if len(trips) > 0 && trips[len(trips)-1] == edge.Trip {
			continue
		}
		trips = append(trips, edge.Trip)
	}
	return trips
}

// Identifies the path independently of the query time it was found for.
func (self Journey) Signature() string {
	var b strings.Builder
	for i, edge := range self.Edges {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.Itoa(int(edge.From)))
		b.WriteByte('>')
		b.WriteString(strconv.Itoa(int(edge.To)))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(edge.Type)))
		if edge.Trip != -1 {
			b.WriteByte('@')
			b.WriteString(strconv.Itoa(int(edge.Trip)))
		}
	}
	return b.String()
}
