package util

import (
	"testing"
)

func TestPriorityQueueOrder(t *testing.T) {
	pq := NewPriorityQueue[string, int32](4)
	pq.Enqueue("c", 3)
	pq.Enqueue("a", 1)
	pq.Enqueue("b1", 2)
	pq.Enqueue("b2", 2)
	pq.Enqueue("b3", 2)

	expected := []string{"a", "b1", "b2", "b3", "c"}
	for _, want := range expected {
		got, ok := pq.Dequeue()
		if !ok || got != want {
			t.Errorf("dequeued %v; want %v", got, want)
		}
	}
	if _, ok := pq.Dequeue(); ok {
		t.Errorf("queue should be empty")
	}
}

func TestPriorityQueueInterleaved(t *testing.T) {
	pq := NewPriorityQueue[int, int](4)
	for i := 10; i > 0; i-- {
		pq.Enqueue(i, i)
	}
	last := 0
	for pq.Length() > 0 {
		v, _ := pq.Dequeue()
		if v < last {
			t.Errorf("dequeued %v after %v", v, last)
		}
		if v == 5 {
			pq.Enqueue(7, 7)
		}
		last = v
	}
}

func TestBitSet(t *testing.T) {
	a := NewBitSet(10)
	a.Add(3)
	a.Add(200)
	if !a.Has(3) || !a.Has(200) || a.Has(4) || a.Has(-1) || a.Has(1000) {
		t.Errorf("unexpected membership")
	}
	b := NewBitSet(10)
	b.Add(4)
	if a.Intersects(b) {
		t.Errorf("sets should not intersect")
	}
	if !b.Union(a) {
		t.Errorf("union should change b")
	}
	if b.Union(a) {
		t.Errorf("second union should not change b")
	}
	if b.Count() != 3 || !b.Intersects(a) {
		t.Errorf("count = %v; want 3", b.Count())
	}
}
