package grid

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/ttpr0/go-journeys/geo"
	"github.com/ttpr0/go-journeys/graph"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slices"
)

//*******************************************
// grid cells
//*******************************************

const _KEY_PRECISION = 9

// Cell is a square of the grid holding at least one station.
type Cell struct {
	Key      string
	Row      int32
	Col      int32
	Center   geo.Coord
	Stations List[int32]
}

// Partitions all stations into square cells of cell_size metres, measured from
// the south-west corner of the network. Cells without stations are not created.
func BuildCells(g *graph.NetworkGraph, cell_size float64) List[Cell] {
	count := g.StationCount()
	if count == 0 || cell_size <= 0 {
		return NewList[Cell](0)
	}
	coords := make(geo.CoordArray, count)
	for i := 0; i < count; i++ {
		coords[i] = g.GetStation(int32(i)).Loc
	}
	origin := geo.CoordFromPoint(geo.BoundOf(coords).Min)

	index := NewDict[Tuple[int32, int32], int](10)
	cells := NewList[Cell](10)
	for i, coord := range coords {
		dx, dy := geo.MetricOffset(origin, coord)
		col := int32(math.Floor(dx / cell_size))
		row := int32(math.Floor(dy / cell_size))
		key := MakeTuple(row, col)
		pos, ok := index[key]
		if !ok {
			center := geo.OffsetCoord(origin, (float64(col)+0.5)*cell_size, (float64(row)+0.5)*cell_size)
			pos = cells.Length()
			index[key] = pos
			cells.Add(Cell{
				Key:      geohash.EncodeWithPrecision(center.Lat(), center.Lon(), _KEY_PRECISION),
				Row:      row,
				Col:      col,
				Center:   center,
				Stations: NewList[int32](4),
			})
		}
		cells[pos].Stations.Add(int32(i))
	}
	slices.SortFunc(cells, func(a, b Cell) int {
		if a.Row != b.Row {
			return int(a.Row - b.Row)
		}
		return int(a.Col - b.Col)
	})
	return cells
}
