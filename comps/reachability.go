package comps

import (
	"fmt"
	"os"

	. "github.com/ttpr0/go-journeys/util"
)

//*******************************************
// reachability oracle
//*******************************************

// Reachability stores, per route-station, the set of stations that can be
// reached from it at all, ignoring time.
type Reachability struct {
	sets Array[BitSet]
}

func NewReachability(sets Array[BitSet]) *Reachability {
	return &Reachability{
		sets: sets,
	}
}

func (self *Reachability) RouteStationCount() int {
	return self.sets.Length()
}

func (self *Reachability) IsReachable(rs int32, station int32) bool {
	return self.sets[rs].Has(station)
}

func (self *Reachability) AnyReachable(rs int32, stations BitSet) bool {
	return self.sets[rs].Intersects(stations)
}

func (self *Reachability) ReachableCount(rs int32) int {
	return self.sets[rs].Count()
}

func (self *Reachability) _New() *Reachability {
	return &Reachability{}
}
func (self *Reachability) _Load(path string) error {
	sizes, err := ReadArrayFromFile[int32](path + "-reach_sizes")
	if err != nil {
		return err
	}
	buckets, err := ReadArrayFromFile[uint64](path + "-reach_sets")
	if err != nil {
		return err
	}
	sets := NewArray[BitSet](sizes.Length())
	offset := 0
	for i, size := range sizes {
		end := offset + int(size)
		if end > buckets.Length() {
			return fmt.Errorf("corrupt reachability data at route-station %v", i)
		}
		sets[i] = BitSetFromBuckets(buckets[offset:end])
		offset = end
	}
	*self = Reachability{
		sets: sets,
	}
	return nil
}
func (self *Reachability) _Store(path string) error {
	sizes := NewArray[int32](self.sets.Length())
	buckets := NewList[uint64](self.sets.Length())
	for i, set := range self.sets {
		b := set.Buckets()
		sizes[i] = int32(len(b))
		buckets = append(buckets, b...)
	}
	if err := WriteArrayToFile(sizes, path+"-reach_sizes"); err != nil {
		return err
	}
	return WriteArrayToFile(Array[uint64](buckets), path+"-reach_sets")
}
func (self *Reachability) _Remove(path string) {
	os.Remove(path + "-reach_sizes")
	os.Remove(path + "-reach_sets")
}
