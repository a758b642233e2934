package prefixcode

import (
	"math"

	"github.com/chronos-tachyon/assert"
	"golang.org/x/exp/slices"
)

// BuildShannonFano builds a Shannon-Fano coding tree for the given
// distribution.
//
// The symbols are sorted by probability, highest first, with equal
// probabilities kept in the order of d.  The sorted list is then split in
// two by SplitIndex; the first group becomes the "0" (left) subtree and the
// second group the "1" (right) subtree, and each group is split again until
// only single symbols remain.
//
// An empty distribution yields a nil tree and a nil error.  A distribution
// with one symbol yields a single leaf.
//
func BuildShannonFano(d Distribution) (*Node, error) {
	if len(d) == 0 {
		return nil, nil
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	// Step 1: sort by probability descending, stable.

	sorted := slices.Clone(d)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		switch {
		case a.Probability > b.Probability:
			return -1
		case a.Probability < b.Probability:
			return 1
		default:
			return 0
		}
	})

	weights := make([]float64, len(sorted))
	for index, e := range sorted {
		weights[index] = e.Probability
	}

	// Step 2: use a stack to bisect the sorted list.
	//
	// Each stackItem covers sorted[lo:hi].  We use stackItem.x to keep
	// track of where we are:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already pushed the left group
	//   x=2 → Both groups are built and waiting on the results stack
	//
	// Groups are visited left before right, so nodes are created in the
	// same post-order as a recursive build would create them.

	type stackItem struct {
		lo    int
		hi    int
		split int
		x     byte
	}

	var seq sequencer
	stack := make([]stackItem, 0, 2*log2int(len(sorted)))
	results := make([]*Node, 0, log2int(len(sorted))+1)

	popResult := func() *Node {
		last := len(results) - 1
		assert.Assertf(last >= 0, "results stack underflow")
		node := results[last]
		results[last] = nil
		results = results[:last]
		return node
	}

	stack = append(stack, stackItem{lo: 0, hi: len(sorted)})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]

		if top.hi-top.lo == 1 {
			e := sorted[top.lo]
			results = append(results, seq.newLeaf(e.Symbol, e.Probability))
			stack = stack[:len(stack)-1]
			continue
		}

		switch top.x {
		case 0:
			top.split = top.lo + SplitIndex(weights[top.lo:top.hi])
			top.x = 1
			lo, split := top.lo, top.split
			stack = append(stack, stackItem{lo: lo, hi: split})
		case 1:
			top.x = 2
			split, hi := top.split, top.hi
			stack = append(stack, stackItem{lo: split, hi: hi})
		case 2:
			right := popResult()
			left := popResult()
			results = append(results, seq.newInternal(left, right))
			stack = stack[:len(stack)-1]
		}
	}

	assert.Assertf(len(results) == 1, "expected 1 root, got %d", len(results))
	return results[0], nil
}

// SplitIndex returns where Shannon-Fano bisection splits a list of weights
// that is already sorted in descending order: the first group is
// weights[:i] and the second is weights[i:].
//
// The split points i = 1, 2, ... are scanned from the left, tracking the
// imbalance |sum(weights[:i]) - sum(weights[i:])|.  The scan stops at the
// first point where the imbalance stops strictly decreasing and returns
// the last point that improved it.  This is a greedy first local minimum,
// not a search for the global minimum.  The result is always at least 1.
//
// SplitIndex panics if len(weights) < 2.
//
func SplitIndex(weights []float64) int {
	assert.Assertf(len(weights) >= 2, "cannot split %d weights", len(weights))

	var total float64
	for _, w := range weights {
		total += w
	}

	best := 0
	minDiff := math.Inf(1)
	var leftSum float64
	for i := 0; i < len(weights)-1; i++ {
		leftSum += weights[i]
		diff := math.Abs(leftSum - (total - leftSum))
		if !(diff < minDiff) {
			break
		}
		minDiff = diff
		best = i + 1
	}
	if best == 0 {
		return 1
	}
	return best
}
