package routing

// heapItem is one entry of a query direction's tentative-weight heap.
type heapItem struct {
	weight Weight
	node   NodeId
}

// nodeHeap is a concrete binary min-heap ordered by weight, the same
// hand-rolled shape pkg/ch uses for its witness-search heap: the query loop
// pops from it on every step of every search, so avoiding container/heap's
// interface boxing matters here too.
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
