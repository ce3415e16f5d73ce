package routing

//*******************************************
// service reasons
//*******************************************

// ServiceReason tells why a branch was kept or dropped.
type ServiceReason byte

const (
	REASON_VALID ServiceReason = iota
	REASON_NOT_ON_QUERY_DATE
	REASON_HOUR_OUT_OF_RANGE
	REASON_ALREADY_DEPARTED
	REASON_WAIT_TOO_LONG
	REASON_STATION_UNREACHABLE
	REASON_RETURNED_TO_SAME_TRIP
	REASON_DEPART_AFTER_BOARD
	REASON_ALREADY_VISITED
	REASON_PATH_TOO_LONG
	REASON_TOOK_TOO_LONG
	REASON_LONGER_THAN_BEST
	REASON_ARRIVED
)

const REASON_COUNT = int(REASON_ARRIVED) + 1

func (self ServiceReason) IsValid() bool {
	return self == REASON_VALID
}

func (self ServiceReason) String() string {
	switch self {
	case REASON_VALID:
		return "valid"
	case REASON_NOT_ON_QUERY_DATE:
		return "not_on_query_date"
	case REASON_HOUR_OUT_OF_RANGE:
		return "hour_out_of_range"
	case REASON_ALREADY_DEPARTED:
		return "already_departed"
	case REASON_WAIT_TOO_LONG:
		return "wait_too_long"
	case REASON_STATION_UNREACHABLE:
		return "station_unreachable"
	case REASON_RETURNED_TO_SAME_TRIP:
		return "returned_to_same_trip"
	case REASON_DEPART_AFTER_BOARD:
		return "depart_after_board"
	case REASON_ALREADY_VISITED:
		return "already_visited"
	case REASON_PATH_TOO_LONG:
		return "path_too_long"
	case REASON_TOOK_TOO_LONG:
		return "took_too_long"
	case REASON_LONGER_THAN_BEST:
		return "longer_than_best"
	case REASON_ARRIVED:
		return "arrived"
	}
	panic("unknown service reason")
}

//*******************************************
// evaluation outcome
//*******************************************

type Outcome byte

const (
	INCLUDE_AND_CONTINUE Outcome = iota
	INCLUDE_AND_PRUNE
	EXCLUDE_AND_PRUNE
	PRUNE
)

func (self Outcome) String() string {
	switch self {
	case INCLUDE_AND_CONTINUE:
		return "include_and_continue"
	case INCLUDE_AND_PRUNE:
		return "include_and_prune"
	case EXCLUDE_AND_PRUNE:
		return "exclude_and_prune"
	case PRUNE:
		return "prune"
	}
	panic("unknown outcome")
}

// Reason counts collected by one search.
type ReasonCounts [REASON_COUNT]int64

func (self *ReasonCounts) Inc(reason ServiceReason) {
	self[reason] += 1
}

func (self ReasonCounts) Get(reason ServiceReason) int64 {
	return self[reason]
}

func (self ReasonCounts) ToMap() map[string]int64 {
	m := make(map[string]int64, REASON_COUNT)
	for i, c := range self {
		if c > 0 {
			m[ServiceReason(i).String()] = c
		}
	}
	return m
}
