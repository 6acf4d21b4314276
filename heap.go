package torisat

import (
	"fmt"
)

//activityHeap is a binary max-heap of variables keyed by activity.
//Equal activities order by the smaller variable index so that selection is
//reproducible run to run.
type activityHeap struct {
	data     []Var
	indices  []int
	activity []float64
}

func newActivityHeap(numVars int) *activityHeap {
	h := &activityHeap{
		data:     make([]Var, 0, numVars),
		indices:  make([]int, numVars),
		activity: make([]float64, numVars),
	}
	for v := 0; v < numVars; v++ {
		h.indices[v] = -1
	}
	return h
}

//less orders x before y when x has the higher activity, breaking ties on
//the smaller variable index
func (h *activityHeap) less(x, y Var) bool {
	if h.activity[x] != h.activity[y] {
		return h.activity[x] > h.activity[y]
	}
	return x < y
}

func (h *activityHeap) Size() int {
	return len(h.data)
}

func (h *activityHeap) Empty() bool {
	return len(h.data) == 0
}

func (h *activityHeap) InHeap(x Var) bool {
	return h.indices[x] >= 0
}

func (h *activityHeap) Activity(x Var) float64 {
	return h.activity[x]
}

//Decrease restores the heap order after x's activity grew
func (h *activityHeap) Decrease(x Var) {
	if !h.InHeap(x) {
		panic(fmt.Errorf("variable is not in heap: %d", x))
	}
	h.percolateUp(h.indices[x])
}

//RemoveMin pops the highest-priority variable
func (h *activityHeap) RemoveMin() Var {
	x := h.data[0]
	h.data[0] = h.data[h.Size()-1]
	h.indices[h.data[0]] = 0
	h.indices[x] = -1
	h.data = h.data[:h.Size()-1]
	if h.Size() > 1 {
		h.percolateDown(0)
	}
	return x
}

func (h *activityHeap) PushBack(x Var) {
	if h.InHeap(x) {
		panic(fmt.Errorf("variable is already inserted: %v", x))
	}
	h.data = append(h.data, x)
	h.indices[x] = len(h.data) - 1
	h.percolateUp(h.indices[x])
}

func (h *activityHeap) percolateUp(i int) {
	x := h.data[i]
	p := parentIndex(i)
	for i != 0 && h.less(x, h.data[p]) {
		h.data[i] = h.data[p]
		h.indices[h.data[p]] = i
		i = p
		p = parentIndex(i)
	}
	h.data[i] = x
	h.indices[x] = i
}

func (h *activityHeap) percolateDown(i int) {
	x := h.data[i]
	for leftIndex(i) < len(h.data) {
		childIndex := leftIndex(i)
		if rightIndex(i) < len(h.data) && h.less(h.data[rightIndex(i)], h.data[leftIndex(i)]) {
			childIndex = rightIndex(i)
		}
		if !h.less(h.data[childIndex], x) {
			break
		}
		h.data[i] = h.data[childIndex]
		h.indices[h.data[childIndex]] = i
		i = childIndex
	}
	h.data[i] = x
	h.indices[x] = i
}

func leftIndex(i int) int {
	return 2*i + 1
}

func rightIndex(i int) int {
	return 2*i + 2
}

func parentIndex(i int) int {
	return (i - 1) >> 1
}
