package util

import (
	"math/bits"
)

//*******************************************
// bitset
//*******************************************

type BitSet struct {
	buckets []uint64
}

func NewBitSet(capacity int) BitSet {
	return BitSet{
		buckets: make([]uint64, (capacity>>6)+1),
	}
}

func BitSetFromBuckets(buckets []uint64) BitSet {
	return BitSet{buckets: buckets}
}

func (self *BitSet) Add(n int32) {
	bucket := int(n >> 6)
	if bucket >= len(self.buckets) {
		grown := make([]uint64, bucket+1)
		copy(grown, self.buckets)
		self.buckets = grown
	}
	self.buckets[bucket] |= 1 << (uint(n) & 63)
}

func (self BitSet) Has(n int32) bool {
	bucket := int(n >> 6)
	if n < 0 || bucket >= len(self.buckets) {
		return false
	}
	return self.buckets[bucket]&(1<<(uint(n)&63)) != 0
}

// Adds all members of other, returns true if the set changed.
func (self *BitSet) Union(other BitSet) bool {
	if len(other.buckets) > len(self.buckets) {
		grown := make([]uint64, len(other.buckets))
		copy(grown, self.buckets)
		self.buckets = grown
	}
	changed := false
	for i, b := range other.buckets {
		merged := self.buckets[i] | b
		if merged != self.buckets[i] {
			self.buckets[i] = merged
			changed = true
		}
	}
	return changed
}

func (self BitSet) Intersects(other BitSet) bool {
	n := Min(len(self.buckets), len(other.buckets))
	for i := 0; i < n; i++ {
		if self.buckets[i]&other.buckets[i] != 0 {
			return true
		}
	}
	return false
}

func (self BitSet) Count() int {
	count := 0
	for _, b := range self.buckets {
		count += bits.OnesCount64(b)
	}
	return count
}

func (self BitSet) Buckets() []uint64 {
	return self.buckets
}
