package prefixcode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/exp/slices"
)

// DOTStyle selects the layout of WriteDOT.
type DOTStyle byte

const (
	// DOTClassic draws the root at the top and lets Graphviz place the
	// leaves.
	DOTClassic DOTStyle = iota

	// DOTScheme draws the root at the bottom and lines the leaves up on
	// the top rank, ordered by weight, highest first.
	DOTScheme
)

var dotStyleNames = []string{"classic", "scheme"}

// String returns the string representation of this DOTStyle.
func (style DOTStyle) String() string {
	if int(style) < len(dotStyleNames) {
		return dotStyleNames[style]
	}
	return fmt.Sprintf("DOTStyle(%d)", byte(style))
}

// MarshalText fulfills encoding.TextMarshaler.
func (style DOTStyle) MarshalText() ([]byte, error) {
	return []byte(style.String()), nil
}

// UnmarshalText fulfills encoding.TextUnmarshaler.
func (style *DOTStyle) UnmarshalText(text []byte) error {
	for index, name := range dotStyleNames {
		if string(text) == name {
			*style = DOTStyle(index)
			return nil
		}
	}
	return fmt.Errorf("unknown DOT style %q, expected one of %q: %w", text, dotStyleNames, ErrInvalidInput)
}

// WriteDOT writes the tree rooted at root to w as a Graphviz digraph.
// Edges are labeled with their branch bit; leaves show their symbol and
// weight, internal nodes their combined name and weight.  The tree is
// only read.
func WriteDOT(w io.Writer, root *Node, style DOTStyle) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph prefixcode {\n")
	if style == DOTScheme {
		buf.WriteString("\trankdir=BT;\n")
	} else {
		buf.WriteString("\trankdir=TB;\n")
	}
	buf.WriteString("\tnode [shape=box];\n")

	root.Walk(func(node *Node, _ Codeword) bool {
		label := node.name
		if node.leaf {
			label = string(node.symbol)
		}
		label += "\n(" + strconv.FormatFloat(node.weight, 'f', 3, 64) + ")"
		fmt.Fprintf(&buf, "\t%s [label=%s];\n", dotID(node), strconv.Quote(label))
		if node.left != nil {
			fmt.Fprintf(&buf, "\t%s -> %s [label=\"0\"];\n", dotID(node), dotID(node.left))
		}
		if node.right != nil {
			fmt.Fprintf(&buf, "\t%s -> %s [label=\"1\"];\n", dotID(node), dotID(node.right))
		}
		return true
	})

	if style == DOTScheme {
		leaves := root.Leaves()
		if len(leaves) > 1 {
			slices.SortStableFunc(leaves, func(a, b *Node) int {
				switch {
				case a.weight > b.weight:
					return -1
				case a.weight < b.weight:
					return 1
				default:
					return 0
				}
			})
			buf.WriteString("\t{\n\t\trank=max;\n")
			for index, leaf := range leaves {
				fmt.Fprintf(&buf, "\t\t%s;\n", dotID(leaf))
				if index > 0 {
					fmt.Fprintf(&buf, "\t\t%s -> %s [style=invis];\n", dotID(leaves[index-1]), dotID(leaf))
				}
			}
			buf.WriteString("\t}\n")
		}
	}

	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func dotID(node *Node) string {
	return "n" + strconv.FormatUint(node.seq, 10)
}
