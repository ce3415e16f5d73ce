package algorithm

import (
	"math"

	"github.com/ttpr0/go-journeys/graph"
	. "github.com/ttpr0/go-journeys/util"
)

type PQItem struct {
	item int32
	dist int32
}

// Time independent lower bound of the travel time between starts and
// destinations. Waiting is ignored, every scheduled ride counts with its
// running time only. Starts and destinations carry the walk onto and off
// the network. Returns false if no destination can be reached within max_range.
func CalcCostEstimate(g *graph.NetworkGraph, starts Array[Tuple[int32, int32]], destinations Array[Tuple[int32, int32]], max_range int32) (int32, bool) {
	dists := NewArray[int32](g.NodeCount())
	for i := range dists {
		dists[i] = math.MaxInt32
	}
	targets := NewDict[int32, int32](destinations.Length())
	for _, item := range destinations {
		if walk, ok := targets[item.A]; ok && walk <= item.B {
			continue
		}
		targets[item.A] = item.B
	}

	heap := NewPriorityQueue[PQItem, int32](100)
	explorer := g.GetGraphExplorer()
	for _, item := range starts {
		start := item.A
		dist := item.B
		if dist < dists[start] {
			dists[start] = dist
			heap.Enqueue(PQItem{start, dist}, dist)
		}
	}

	best := int32(math.MaxInt32)
	for {
		curr_item, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_id := curr_item.item
		curr_dist := curr_item.dist
		if dists[curr_id] < curr_dist {
			continue
		}
		if curr_dist >= best {
			break
		}
		if walk, ok := targets[curr_id]; ok {
			best = Min(best, curr_dist+walk)
		}
		explorer.ForAdjacentEdges(curr_id, graph.FORWARD, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			new_length := curr_dist + explorer.GetEdgeWeight(ref)
			if new_length > max_range {
				return
			}
			if dists[other_id] > new_length {
				dists[other_id] = new_length
				heap.Enqueue(PQItem{other_id, new_length}, new_length)
			}
		})
	}
	if best > max_range {
		return 0, false
	}
	return best, true
}
