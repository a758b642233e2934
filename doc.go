// Package prefixcode derives binary prefix codes for a finite alphabet from
// symbol probabilities and measures them against information-theoretic
// bounds.  Two tree builders are provided: Huffman (bottom-up weight
// reduction) and Shannon-Fano (top-down balanced bisection).
//
// The usual pipeline is:
//
//     tree, err := prefixcode.BuildHuffman(dist)
//     codes, err := prefixcode.GenerateCodes(tree)
//     report, err := prefixcode.Evaluate(dist, codes)
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
//     <https://en.wikipedia.org/wiki/Shannon%E2%80%93Fano_coding>
//
//     <https://en.wikipedia.org/wiki/Kraft%E2%80%93McMillan_inequality>
//
package prefixcode
