package prefixcode

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Node is one node of a binary coding tree.  A Node is either a leaf, which
// carries a Symbol and no children, or an internal node, which carries two
// children and no Symbol.  Nodes are read-only once a builder returns them.
type Node struct {
	weight float64
	symbol Symbol
	left   *Node
	right  *Node
	name   string
	seq    uint64
	leaf   bool
}

// Weight returns the total probability mass under this node.
func (n *Node) Weight() float64 {
	return n.weight
}

// Symbol returns the symbol of a leaf.  The second result is false for
// internal nodes.
func (n *Node) Symbol() (Symbol, bool) {
	if !n.leaf {
		return InvalidSymbol, false
	}
	return n.symbol, true
}

// IsLeaf reports whether this node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Left returns the child on the "0" branch, or nil for a leaf.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the child on the "1" branch, or nil for a leaf.
func (n *Node) Right() *Node {
	return n.right
}

// Name returns the concatenation of the leaf symbols under this node, from
// left to right.  It exists for display and tracing.
func (n *Node) Name() string {
	return n.name
}

// Seq returns the creation sequence number of this node.  Sequence numbers
// are unique within one build and increase in creation order.
func (n *Node) Seq() uint64 {
	return n.seq
}

// String returns a short description of this node.
func (n *Node) String() string {
	if n.leaf {
		return fmt.Sprintf("leaf(%q, %v)", n.symbol, n.weight)
	}
	return fmt.Sprintf("node(%q, %v)", n.name, n.weight)
}

var _ fmt.Stringer = (*Node)(nil)

// Less is the ordering used by the Huffman priority queue: weight
// ascending, then sequence number ascending.  It is a strict total order
// over the nodes of one build.
func Less(a, b *Node) bool {
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.seq < b.seq
}

// heavier splits a pair of nodes into the one that belongs on the "0"
// branch and the one that belongs on the "1" branch.  The strictly heavier
// node goes left; on exactly equal weights the node created first goes
// left.
func heavier(a, b *Node) (hi *Node, lo *Node) {
	switch {
	case a.weight > b.weight:
		return a, b
	case a.weight < b.weight:
		return b, a
	case a.seq < b.seq:
		return a, b
	default:
		return b, a
	}
}

// sequencer hands out node sequence numbers.  Each build owns its own
// sequencer, so concurrent and repeated builds never share state.
type sequencer struct {
	next uint64
}

func (s *sequencer) newLeaf(sym Symbol, weight float64) *Node {
	s.next++
	return &Node{
		weight: weight,
		symbol: sym,
		name:   string(sym),
		seq:    s.next,
		leaf:   true,
	}
}

func (s *sequencer) newInternal(left, right *Node) *Node {
	s.next++
	return &Node{
		weight: left.weight + right.weight,
		left:   left,
		right:  right,
		name:   left.name + right.name,
		seq:    s.next,
	}
}

// Walk visits every node of the tree rooted at n in depth-first order, left
// before right, passing each node and its path from the root.  Returning
// false from fn skips the children of that node.  Missing children are
// skipped silently; use GenerateCodes to detect malformed trees.
func (n *Node) Walk(fn func(node *Node, path Codeword) bool) {
	if n == nil {
		return
	}

	type stackItem struct {
		node *Node
		path Codeword
	}

	stack := make([]stackItem, 0, 2*log2int(int(n.seq)))
	stack = append(stack, stackItem{n, ""})
	for len(stack) != 0 {
		last := len(stack) - 1
		item := stack[last]
		stack[last] = stackItem{}
		stack = stack[:last]

		if !fn(item.node, item.path) {
			continue
		}

		// Push right first so that left is visited first.
		if right := item.node.right; right != nil {
			stack = append(stack, stackItem{right, item.path.Append(1)})
		}
		if left := item.node.left; left != nil {
			stack = append(stack, stackItem{left, item.path.Append(0)})
		}
	}
}

// Leaves returns the leaves of the tree rooted at n, from left to right.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(node *Node, _ Codeword) bool {
		if node.leaf {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Dump writes a programmer-readable debugging dump of the tree rooted at n
// to the given writer.
func (n *Node) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	n.Walk(func(node *Node, path Codeword) bool {
		indent := strings.Repeat("\t", path.Len()+1)
		branch := "root"
		if path.Len() != 0 {
			branch = string(path[path.Len()-1:])
		}
		if node.leaf {
			fmt.Fprintf(&buf, "%s%s: %q %v #%d code=%s\n", indent, branch, node.symbol, node.weight, node.seq, codeFor(path))
		} else {
			fmt.Fprintf(&buf, "%s%s: [%s] %v #%d\n", indent, branch, node.name, node.weight, node.seq)
		}
		return true
	})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
