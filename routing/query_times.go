package routing

import (
	"github.com/ttpr0/go-journeys/structs"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slices"
)

//*******************************************
// query times
//*******************************************

// Minute offsets around the requested time, searched one by one.
type QueryTimeOptions struct {
	Offsets         []int32 `yaml:"offsets" validate:"required,min=1"`
	ArriveByOffsets []int32 `yaml:"arrive-by-offsets" validate:"required,min=1"`
}

func DefaultQueryTimeOptions() QueryTimeOptions {
	return QueryTimeOptions{
		Offsets:         []int32{0, 10},
		ArriveByOffsets: []int32{-30, -15, 0},
	}
}

// Returns the distinct query times to search for, earliest first.
// For arrive-by queries time is the estimated departure.
func QueryTimes(time structs.Clock, arrive_by bool, options QueryTimeOptions) List[structs.Clock] {
	offsets := options.Offsets
	if arrive_by {
		offsets = options.ArriveByOffsets
	}
	times := NewList[structs.Clock](len(offsets) + 1)
	if len(offsets) == 0 {
		times.Add(time)
		return times
	}
	for _, offset := range offsets {
		t := time.Add(offset)
		if t < 0 {
			t = 0
		}
		if slices.Contains(times, t) {
			continue
		}
		times.Add(t)
	}
	slices.Sort(times)
	return times
}
