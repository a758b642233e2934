package prefixcode

// GenerateCodes walks a coding tree and assigns each leaf the path from the
// root to it, "0" for every left branch and "1" for every right branch.  It
// works on trees from either builder.
//
// A tree consisting of a single leaf assigns that leaf the codeword "0".  A
// nil tree yields an empty table.
//
// A malformed tree (an internal node missing a child, a leaf without a
// symbol, a node with both, or a symbol that appears twice) is reported as
// a *StructuralError.  Such a tree can only come from a broken builder.
//
func GenerateCodes(root *Node) (CodeTable, error) {
	if root == nil {
		return CodeTable{}, nil
	}

	type stackItem struct {
		node *Node
		path Codeword
	}

	codes := make(CodeTable)
	stack := make([]stackItem, 0, 2*log2int(int(root.seq)))
	stack = append(stack, stackItem{root, ""})
	for len(stack) != 0 {
		last := len(stack) - 1
		item := stack[last]
		stack[last] = stackItem{}
		stack = stack[:last]

		node, path := item.node, item.path
		if node.leaf {
			if node.left != nil || node.right != nil {
				return nil, &StructuralError{node.weight, path, "leaf has children"}
			}
			if node.symbol == InvalidSymbol {
				return nil, &StructuralError{node.weight, path, "leaf has no symbol"}
			}
			if _, found := codes[node.symbol]; found {
				return nil, &StructuralError{node.weight, path, "symbol " + string(node.symbol) + " appears twice"}
			}
			codes[node.symbol] = codeFor(path)
			continue
		}

		if node.symbol != InvalidSymbol {
			return nil, &StructuralError{node.weight, path, "internal node has a symbol"}
		}
		if node.left == nil || node.right == nil {
			return nil, &StructuralError{node.weight, path, "internal node has fewer than two children"}
		}

		// Push right first so that left is visited first.
		stack = append(stack, stackItem{node.right, path.Append(1)})
		stack = append(stack, stackItem{node.left, path.Append(0)})
	}
	return codes, nil
}

// codeFor maps a leaf's path to its codeword.  Only a root leaf has an
// empty path, and it gets "0".
func codeFor(path Codeword) Codeword {
	if path == "" {
		return "0"
	}
	return path
}
