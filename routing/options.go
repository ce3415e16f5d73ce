package routing

import (
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/structs"
)

//*******************************************
// search options
//*******************************************

// Hard limits of a search, all in minutes except MaxLength (edges).
type Limits struct {
	MaxWait     int32 `yaml:"max-wait" validate:"gt=0"`
	MaxLength   int32 `yaml:"max-length" validate:"gt=0"`
	MaxDuration int32 `yaml:"max-duration" validate:"gt=0"`
}

// Limits for networks served by mode, tram networks are smaller.
func DefaultLimits(mode structs.TransportMode) Limits {
	switch mode {
	case structs.TRAM:
		return Limits{MaxWait: 30, MaxLength: 300, MaxDuration: 150}
	case structs.METRO:
		return Limits{MaxWait: 30, MaxLength: 400, MaxDuration: 180}
	case structs.TRAIN:
		return Limits{MaxWait: 60, MaxLength: 600, MaxDuration: 720}
	default:
		return Limits{MaxWait: 30, MaxLength: 600, MaxDuration: 240}
	}
}

// Combines the limits of several modes into the loosest of them.
func MergeLimits(limits ...Limits) Limits {
	merged := Limits{}
	for _, l := range limits {
		if l.MaxWait > merged.MaxWait {
			merged.MaxWait = l.MaxWait
		}
		if l.MaxLength > merged.MaxLength {
			merged.MaxLength = l.MaxLength
		}
		if l.MaxDuration > merged.MaxDuration {
			merged.MaxDuration = l.MaxDuration
		}
	}
	return merged
}

// Limits for a network, the loosest limits of the modes it serves.
// Modes missing in per_mode use their defaults.
func NetworkLimits(g *graph.NetworkGraph, per_mode map[structs.TransportMode]Limits) Limits {
	seen := map[structs.TransportMode]bool{}
	limits := make([]Limits, 0, 4)
	for i := 0; i < g.RouteCount(); i++ {
		mode := g.GetRoute(int32(i)).Mode
		if seen[mode] {
			continue
		}
		seen[mode] = true
		if l, ok := per_mode[mode]; ok {
			limits = append(limits, l)
		} else {
			limits = append(limits, DefaultLimits(mode))
		}
	}
	if len(limits) == 0 {
		return DefaultLimits(structs.BUS)
	}
	return MergeLimits(limits...)
}

type SearchOptions struct {
	Limits Limits
	// emit every journey matching the best cost, not only the first one
	KeepEqualCost bool
}

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Limits:        DefaultLimits(structs.BUS),
		KeepEqualCost: true,
	}
}

//*******************************************
// search request
//*******************************************

// Endpoint is a station node plus the walk between it and the actual location.
type Endpoint struct {
	Node     int32
	WalkCost int32
}

type SearchRequest struct {
	Starts       []Endpoint
	Destinations []Endpoint
	QueryTime    structs.Clock
}
