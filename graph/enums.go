package graph

//*******************************************
// enums
//*******************************************

type Direction byte

const (
	BACKWARD Direction = 0
	FORWARD  Direction = 1
)

type NodeLabel byte

const (
	STATION       NodeLabel = 0
	PLATFORM      NodeLabel = 1
	ROUTE_STATION NodeLabel = 2
	SERVICE       NodeLabel = 3
	HOUR          NodeLabel = 4
	MINUTE        NodeLabel = 5
)

func (self NodeLabel) String() string {
	switch self {
	case STATION:
		return "station"
	case PLATFORM:
		return "platform"
	case ROUTE_STATION:
		return "route-station"
	case SERVICE:
		return "service"
	case HOUR:
		return "hour"
	case MINUTE:
		return "minute"
	default:
		panic("unknown node label")
	}
}

type EdgeType byte

const (
	BOARD              EdgeType = 0
	DEPART             EdgeType = 1
	INTERCHANGE_BOARD  EdgeType = 2
	INTERCHANGE_DEPART EdgeType = 3
	RIDE               EdgeType = 4
	WALK               EdgeType = 5
	ENTER_PLATFORM     EdgeType = 6
	LEAVE_PLATFORM     EdgeType = 7
	TO_SERVICE         EdgeType = 8
	TO_HOUR            EdgeType = 9
	TO_MINUTE          EdgeType = 10
	NEIGHBOUR          EdgeType = 11
)

func (self EdgeType) IsBoard() bool {
	return self == BOARD || self == INTERCHANGE_BOARD
}
func (self EdgeType) IsDepart() bool {
	return self == DEPART || self == INTERCHANGE_DEPART
}
func (self EdgeType) IsWalk() bool {
	return self == WALK || self == NEIGHBOUR
}

func (self EdgeType) String() string {
	switch self {
	case BOARD:
		return "board"
	case DEPART:
		return "depart"
	case INTERCHANGE_BOARD:
		return "interchange-board"
	case INTERCHANGE_DEPART:
		return "interchange-depart"
	case RIDE:
		return "ride"
	case WALK:
		return "walk"
	case ENTER_PLATFORM:
		return "enter-platform"
	case LEAVE_PLATFORM:
		return "leave-platform"
	case TO_SERVICE:
		return "to-service"
	case TO_HOUR:
		return "to-hour"
	case TO_MINUTE:
		return "to-minute"
	case NEIGHBOUR:
		return "neighbour"
	default:
		panic("unknown edge type")
	}
}
