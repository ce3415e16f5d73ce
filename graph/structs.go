package graph

//*******************************************
// graph structs
//*******************************************

// Node points into the typed table of its label.
type Node struct {
	Label NodeLabel
	Ref   int32
}

// Edge is a typed move between two nodes.
// Trip, Service and Towards are -1 if not set.
type Edge struct {
	From       int32
	To         int32
	Type       EdgeType
	Cost       int32
	Trip       int32
	Service    int32
	Towards    int32
	Terminates bool
}

// Synthetic walk onto (or off) the network, used for location starts and ends.
func NewLocationWalk(from, to int32, cost int32) Edge {
	return Edge{
		From:    from,
		To:      to,
		Type:    WALK,
		Cost:    cost,
		Trip:    -1,
		Service: -1,
		Towards: -1,
	}
}

//*******************************************
// edgeref struct
//*******************************************

type EdgeRef struct {
	EdgeID  int32
	OtherID int32
	Type    EdgeType
}
