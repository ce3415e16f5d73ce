package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

//*******************************************
// coordinates
//*******************************************

// Coord is a (lon, lat) pair.
type Coord [2]float32

func (self Coord) Lon() float64 {
	return float64(self[0])
}
func (self Coord) Lat() float64 {
	return float64(self[1])
}
func (self Coord) Point() orb.Point {
	return orb.Point{float64(self[0]), float64(self[1])}
}

func CoordFromPoint(point orb.Point) Coord {
	return Coord{float32(point[0]), float32(point[1])}
}

type CoordArray []Coord

// Haversine distance in metres.
func HaversineDistance(a, b Coord) float64 {
	return geo.DistanceHaversine(a.Point(), b.Point())
}

//*******************************************
// bounds
//*******************************************

func BoundOf(coords CoordArray) orb.Bound {
	if len(coords) == 0 {
		return orb.Bound{}
	}
	bound := orb.Bound{Min: coords[0].Point(), Max: coords[0].Point()}
	for _, c := range coords[1:] {
		bound = bound.Extend(c.Point())
	}
	return bound
}

// Metric offset (east, north) of a coordinate from an origin.
func MetricOffset(origin Coord, c Coord) (float64, float64) {
	dx := geo.Distance(origin.Point(), orb.Point{c.Lon(), origin.Lat()})
	if c.Lon() < origin.Lon() {
		dx = -dx
	}
	dy := geo.Distance(origin.Point(), orb.Point{origin.Lon(), c.Lat()})
	if c.Lat() < origin.Lat() {
		dy = -dy
	}
	return dx, dy
}

// Coordinate lying dx metres east and dy metres north of origin.
func OffsetCoord(origin Coord, dx, dy float64) Coord {
	lat := origin.Lat() + dy/EARTH_RADIUS*180/math.Pi
	lon := origin.Lon() + dx/(EARTH_RADIUS*math.Cos(origin.Lat()*math.Pi/180))*180/math.Pi
	return Coord{float32(lon), float32(lat)}
}

const EARTH_RADIUS = orb.EarthRadius
