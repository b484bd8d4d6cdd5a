package ch

// heapItem is one entry of the witness search's tentative-weight heap.
type heapItem struct {
	weight Weight
	node   NodeId
}

// nodeHeap is a concrete binary min-heap ordered by weight. It is hand-rolled
// rather than built on container/heap to avoid boxing heapItem behind an
// interface on this hot path, the same trade-off the teacher makes for its
// witness and query heaps.
type nodeHeap struct {
	items []heapItem
}

func (h *nodeHeap) Len() int {
	return len(h.items)
}

func (h *nodeHeap) Reset() {
	h.items = h.items[:0]
}

func (h *nodeHeap) Push(weight Weight, node NodeId) {
	h.items = append(h.items, heapItem{weight: weight, node: node})
	h.siftUp(len(h.items) - 1)
}

func (h *nodeHeap) Peek() (heapItem, bool) {
	if len(h.items) == 0 {
		return heapItem{}, false
	}
	return h.items[0], true
}

func (h *nodeHeap) Pop() (heapItem, bool) {
	if len(h.items) == 0 {
		return heapItem{}, false
	}
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return top, true
}

func (h *nodeHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[parent].weight <= h.items[i].weight {
			break
		}
		h.items[parent], h.items[i] = h.items[i], h.items[parent]
		i = parent
	}
}

func (h *nodeHeap) siftDown(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		right := 2*i + 2
		smallest := i
		if left < n && h.items[left].weight < h.items[smallest].weight {
			smallest = left
		}
		if right < n && h.items[right].weight < h.items[smallest].weight {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
