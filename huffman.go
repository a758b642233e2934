package prefixcode

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// BuildHuffman builds a Huffman coding tree for the given distribution.
//
// The two lightest nodes are merged repeatedly.  Of each merged pair, the
// heavier node becomes the "0" (left) child and the lighter one the "1"
// (right) child; nodes of exactly equal weight are ordered by creation, the
// earlier one going left.  Leaves are created in the order of d, so the
// order of d decides every tie.
//
// An empty distribution yields a nil tree and a nil error.  A distribution
// with one symbol yields a single leaf.
//
func BuildHuffman(d Distribution) (*Node, error) {
	if len(d) == 0 {
		return nil, nil
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	// Step 1: build a minheap of leaves.

	var seq sequencer
	h := nodeHeap{make([]*Node, 0, len(d))}
	for _, e := range d {
		h.list = append(h.list, seq.newLeaf(e.Symbol, e.Probability))
	}
	h.Init()

	// Step 2: pop the two lightest nodes, join them under a new parent,
	// and push the parent back.  Each round removes one node.

	for h.Len() > 1 {
		a := heap.Pop(&h).(*Node)
		b := heap.Pop(&h).(*Node)
		assert.Assertf(!Less(b, a), "heap order violated: popped %v before %v", a, b)

		hi, lo := heavier(a, b)
		parent := seq.newInternal(hi, lo)
		heap.Push(&h, parent)
	}

	root := heap.Pop(&h).(*Node)
	assert.Assertf(root.seq == uint64(2*len(d)-1), "expected %d nodes, built %d", 2*len(d)-1, root.seq)
	return root, nil
}

// type nodeHeap {{{

type nodeHeap struct {
	list []*Node
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	return Less(h.list[i], h.list[j])
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(*Node))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = nil
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
