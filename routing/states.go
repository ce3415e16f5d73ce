package routing

import (
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/structs"
)

//*******************************************
// traversal state
//*******************************************

// TraversalState is one step of a branch. States are immutable once created,
// children only point back to their parent so siblings can share a prefix.
type TraversalState interface {
	Node() int32
	Clock() structs.Clock
	Cost() int32
	Depth() int32
	Via() graph.Edge
	Parent() TraversalState
	_Base() *StateBase
}

type StateBase struct {
	node   int32
	clock  structs.Clock
	cost   int32
	depth  int32
	via    graph.Edge
	parent TraversalState
}

func (self *StateBase) Node() int32 {
	return self.node
}
func (self *StateBase) Clock() structs.Clock {
	return self.clock
}

// Minutes elapsed since the query time.
func (self *StateBase) Cost() int32 {
	return self.cost
}

// Number of edges taken.
func (self *StateBase) Depth() int32 {
	return self.depth
}
func (self *StateBase) Via() graph.Edge {
	return self.via
}
func (self *StateBase) Parent() TraversalState {
	return self.parent
}
func (self *StateBase) _Base() *StateBase {
	return self
}

func _ChildBase(parent TraversalState, edge graph.Edge) StateBase {
	return StateBase{
		node:   edge.To,
		clock:  parent.Clock().Add(edge.Cost),
		cost:   parent.Cost() + edge.Cost,
		depth:  parent.Depth() + 1,
		via:    edge,
		parent: parent,
	}
}

// What is known about the last vehicle left on this branch.
type _Transfer struct {
	last_trip       int32
	via_interchange bool
}

var _NO_TRANSFER = _Transfer{last_trip: -1}

//*******************************************
// state variants
//*******************************************

type NotStarted struct {
	StateBase
	starts []Endpoint
}

func _NewNotStarted(starts []Endpoint, query_time structs.Clock) *NotStarted {
	return &NotStarted{
		StateBase: StateBase{
			node:  -1,
			clock: query_time,
			via:   graph.NewLocationWalk(-1, -1, 0),
		},
		starts: starts,
	}
}

// Walking from a location onto the network.
type Walking struct {
	StateBase
	_Transfer
}

type AtStation struct {
	StateBase
	_Transfer
}

type AtPlatform struct {
	StateBase
	_Transfer
}

// At a route-station after boarding, no trip chosen yet.
type JustBoarded struct {
	StateBase
	_Transfer
	mode structs.TransportMode
}

func (self *JustBoarded) Mode() structs.TransportMode {
	return self.mode
}

// Timetable states carry the trip being continued, -1 if free to choose.

type AtService struct {
	StateBase
	_Transfer
	trip int32
}

type AtHour struct {
	StateBase
	_Transfer
	trip int32
}

type AtMinute struct {
	StateBase
	_Transfer
	trip int32
}

// At a route-station on board of trip.
type OnTrip struct {
	StateBase
	trip int32
}

func (self *OnTrip) Trip() int32 {
	return self.trip
}

// At the last route-station of trip.
type EndOfTrip struct {
	StateBase
	trip int32
}

func (self *EndOfTrip) Trip() int32 {
	return self.trip
}

type Destination struct {
	StateBase
}
