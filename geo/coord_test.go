package geo

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	a := Coord{8.68, 49.41}
	b := Coord{8.69, 49.41}
	dist := HaversineDistance(a, b)
	if dist < 700 || dist > 750 {
		t.Errorf("dist = %v; want about 725", dist)
	}
	if HaversineDistance(a, a) != 0 {
		t.Errorf("distance to self should be 0")
	}
}

func TestMetricOffsetRoundTrip(t *testing.T) {
	origin := Coord{8.68, 49.41}
	c := OffsetCoord(origin, 1500, -800)
	dx, dy := MetricOffset(origin, c)
	if math.Abs(dx-1500) > 5 {
		t.Errorf("dx = %v; want 1500", dx)
	}
	if math.Abs(dy+800) > 5 {
		t.Errorf("dy = %v; want -800", dy)
	}
}

func TestBoundOf(t *testing.T) {
	bound := BoundOf(CoordArray{{1, 2}, {3, 0}, {2, 5}})
	if bound.Min[0] != 1 || bound.Min[1] != 0 || bound.Max[0] != 3 || bound.Max[1] != 5 {
		t.Errorf("unexpected bound %v", bound)
	}
}
