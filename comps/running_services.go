package comps

import (
	"time"

	"github.com/bluele/gcache"
	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/structs"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// running services
//*******************************************

// RunningServices is the set of services operating on one date.
type RunningServices struct {
	date    structs.Date
	running BitSet
	count   int
}

func NewRunningServices(g *graph.NetworkGraph, date structs.Date) *RunningServices {
	running := NewBitSet(g.ServiceCount())
	count := 0
	calendar_cache := NewDict[int32, bool](g.CalendarCount())
	for i := 0; i < g.ServiceCount(); i++ {
		service := g.GetService(int32(i))
		runs, ok := calendar_cache[service.Calendar]
		if !ok {
			calendar := g.GetCalendar(service.Calendar)
			runs = calendar.RunsOn(date)
			calendar_cache[service.Calendar] = runs
		}
		if runs {
			running.Add(int32(i))
			count += 1
		}
	}
	return &RunningServices{
		date:    date,
		running: running,
		count:   count,
	}
}

func (self *RunningServices) Date() structs.Date {
	return self.date
}
func (self *RunningServices) IsRunning(service int32) bool {
	return self.running.Has(service)
}
func (self *RunningServices) Count() int {
	return self.count
}

//*******************************************
// running services cache
//*******************************************

// Keeps the running services of recently queried dates.
type RunningServicesCache struct {
	cache gcache.Cache
}

func NewRunningServicesCache(g *graph.NetworkGraph, size int, expiration time.Duration) *RunningServicesCache {
	builder := gcache.New(size).LRU().LoaderFunc(func(key interface{}) (interface{}, error) {
		date := key.(structs.Date)
		running := NewRunningServices(g, date)
		slog.Debug("computed running services", "date", date.String(), "count", running.Count())
		return running, nil
	})
	if expiration > 0 {
		builder = builder.Expiration(expiration)
	}
	return &RunningServicesCache{
		cache: builder.Build(),
	}
}

func (self *RunningServicesCache) Get(date structs.Date) *RunningServices {
	value, err := self.cache.Get(date)
	if err != nil {
		panic(err)
	}
	return value.(*RunningServices)
}
