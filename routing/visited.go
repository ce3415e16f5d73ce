package routing

import (
	"sync"

	"github.com/ttpr0/go-journeys/structs"
)

//*******************************************
// previously visited cache
//*******************************************

const _VISITED_SHARDS = 32

// VisitedCache remembers the (node, clock) pairs seen by one logical search.
// It is safe for concurrent use by the workers of a batch.
type VisitedCache struct {
	shards [_VISITED_SHARDS]_VisitedShard
}

type _VisitedShard struct {
	lock  sync.Mutex
	seen  map[int32]map[structs.Clock]struct{}
	count int
}

func NewVisitedCache() *VisitedCache {
	cache := &VisitedCache{}
	for i := range cache.shards {
		cache.shards[i].seen = make(map[int32]map[structs.Clock]struct{})
	}
	return cache
}

// Records the pair and returns true the first time it is seen, false afterwards.
func (self *VisitedCache) TryRecord(node int32, clock structs.Clock) bool {
	shard := &self.shards[uint32(node)%_VISITED_SHARDS]
	shard.lock.Lock()
	defer shard.lock.Unlock()
	clocks, ok := shard.seen[node]
	if !ok {
		clocks = make(map[structs.Clock]struct{}, 2)
		shard.seen[node] = clocks
	}
	if _, ok := clocks[clock]; ok {
		return false
	}
	clocks[clock] = struct{}{}
	shard.count += 1
	return true
}

func (self *VisitedCache) Contains(node int32, clock structs.Clock) bool {
	shard := &self.shards[uint32(node)%_VISITED_SHARDS]
	shard.lock.Lock()
	defer shard.lock.Unlock()
	_, ok := shard.seen[node][clock]
	return ok
}

// Number of recorded pairs.
func (self *VisitedCache) Len() int {
	count := 0
	for i := range self.shards {
		shard := &self.shards[i]
		shard.lock.Lock()
		count += shard.count
		shard.lock.Unlock()
	}
	return count
}
