package comps

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/quadtree"
	"github.com/ttpr0/go-journeys/graph"
	gogeo "github.com/ttpr0/go-journeys/geo"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slices"
)

// *******************************************
// station index
// *******************************************

type _StationPoint struct {
	station int32
	point   orb.Point
}

func (self _StationPoint) Point() orb.Point {
	return self.point
}

// StationIndex answers nearest-station queries on station positions.
type StationIndex struct {
	tree  *quadtree.Quadtree
	count int
}

func NewStationIndex(g *graph.NetworkGraph) *StationIndex {
	coords := NewList[gogeo.Coord](g.StationCount())
	for i := 0; i < g.StationCount(); i++ {
		coords.Add(g.GetStation(int32(i)).Loc)
	}
	bound := gogeo.BoundOf(gogeo.CoordArray(coords)).Pad(0.01)
	tree := quadtree.New(bound)
	for i, c := range coords {
		tree.Add(_StationPoint{station: int32(i), point: c.Point()})
	}
	return &StationIndex{
		tree:  tree,
		count: coords.Length(),
	}
}

func (self *StationIndex) GetClosestStation(coord gogeo.Coord) (int32, bool) {
	p := self.tree.Find(coord.Point())
	if p == nil {
		return -1, false
	}
	return p.(_StationPoint).station, true
}

// Returns up to k stations within max_dist metres, closest first.
func (self *StationIndex) GetStationsInRange(coord gogeo.Coord, max_dist float64, k int) List[Tuple[int32, float64]] {
	point := coord.Point()
	// planar search radius in degrees, widened for the longitude scale
	scale := math.Max(math.Cos(coord.Lat()*math.Pi/180), 0.01)
	deg := max_dist / (orb.EarthRadius * math.Pi / 180) / scale
	found := self.tree.KNearest(nil, point, k, deg)
	result := NewList[Tuple[int32, float64]](len(found))
	for _, p := range found {
		sp := p.(_StationPoint)
		dist := geo.DistanceHaversine(point, sp.point)
		if dist > max_dist {
			continue
		}
		result.Add(MakeTuple(sp.station, dist))
	}
	slices.SortStableFunc(result, func(a, b Tuple[int32, float64]) int {
		switch {
		case a.B < b.B:
			return -1
		case a.B > b.B:
			return 1
		default:
			return 0
		}
	})
	return result
}
