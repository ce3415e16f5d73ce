package routing

//*******************************************
// evaluator
//*******************************************

type _Evaluator struct {
	heuristics *ServiceHeuristics
	visited    *VisitedCache
	limits     Limits
	keep_equal bool
}

// Decides what happens to a freshly created state given the best cost found so far.
// Admissibility is checked before the visited cache so that a rejected state
// never blocks its (node, clock) pair.
func (self *_Evaluator) Evaluate(state TraversalState, best int32) (Outcome, ServiceReason) {
	cost := state.Cost()
	if _, ok := state.(*Destination); ok {
		// the last walk or depart may still break the limits
		if reason := self._CheckLimits(state); !reason.IsValid() {
			return EXCLUDE_AND_PRUNE, reason
		}
		if cost > best || (cost == best && !self.keep_equal) {
			return EXCLUDE_AND_PRUNE, REASON_LONGER_THAN_BEST
		}
		return INCLUDE_AND_PRUNE, REASON_ARRIVED
	}
	if cost > best || (cost == best && !self.keep_equal) {
		return PRUNE, REASON_LONGER_THAN_BEST
	}
	if reason := self._CheckLimits(state); !reason.IsValid() {
		return PRUNE, reason
	}

	var reason ServiceReason
	switch s := state.(type) {
	case *JustBoarded, *OnTrip, *EndOfTrip:
		reason = self.heuristics.CheckReachable(s.Node())
	case *AtService:
		reason = self.heuristics.CheckCalendar(s.node)
	case *AtHour:
		reason = self.heuristics.CheckHour(s.node, s.parent.Clock())
	}
	if !reason.IsValid() {
		return EXCLUDE_AND_PRUNE, reason
	}

	if !self.visited.TryRecord(state.Node(), state.Clock()) {
		return PRUNE, REASON_ALREADY_VISITED
	}
	return INCLUDE_AND_CONTINUE, REASON_VALID
}

func (self *_Evaluator) _CheckLimits(state TraversalState) ServiceReason {
	if reason := self.heuristics.CheckPathLength(state.Depth(), self.limits); !reason.IsValid() {
		return reason
	}
	return self.heuristics.CheckDuration(state.Cost(), self.limits)
}
