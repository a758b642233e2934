package prefixcode

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for an empty probability set, a
	// probability outside (0,1], or a malformed codeword.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStructural is returned when the code generator meets a malformed
	// tree.  It always indicates a bug in the builder that produced it.
	ErrStructural = errors.New("structural inconsistency in coding tree")

	// ErrMissingCode is returned when a metric needs the codeword of a
	// symbol that the code table does not contain.
	ErrMissingCode = errors.New("missing code")

	// ErrNotPrefixFree is returned when one codeword is a prefix of
	// another.
	ErrNotPrefixFree = errors.New("code is not prefix-free")

	// ErrCorrupt is returned when a persisted code table fails to parse.
	ErrCorrupt = errors.New("corrupt code table")
)

// StructuralError describes a malformed node found while generating codes.
type StructuralError struct {
	// Weight is the weight of the offending node.
	Weight float64

	// Path is the sequence of branches from the root to the offending
	// node.
	Path Codeword

	// Reason says what is wrong with the node.
	Reason string
}

func (err *StructuralError) Error() string {
	return fmt.Sprintf("%v: node at path %s with weight %v: %s", ErrStructural, err.Path, err.Weight, err.Reason)
}

func (err *StructuralError) Unwrap() error {
	return ErrStructural
}

// MissingCodeError names the symbol that had no codeword.
type MissingCodeError struct {
	Symbol Symbol
}

func (err *MissingCodeError) Error() string {
	return fmt.Sprintf("%v: no codeword for symbol %q", ErrMissingCode, err.Symbol)
}

func (err *MissingCodeError) Unwrap() error {
	return ErrMissingCode
}

// WarningKind identifies the kind of a ComputationWarning.
type WarningKind byte

const (
	// WarnKraftExceeded means the Kraft sum of a code is above 1, so the
	// code cannot be prefix-free.
	WarnKraftExceeded WarningKind = iota + 1

	// WarnNegativeRedundancy means the average length came out below the
	// entropy, which no valid prefix code can do.
	WarnNegativeRedundancy
)

// String returns the string representation of this WarningKind.
func (kind WarningKind) String() string {
	switch kind {
	case WarnKraftExceeded:
		return "kraft-exceeded"
	case WarnNegativeRedundancy:
		return "negative-redundancy"
	default:
		return fmt.Sprintf("WarningKind(%d)", byte(kind))
	}
}

var _ fmt.Stringer = WarningKind(0)

// ComputationWarning flags a metric whose value is computable but indicates
// an invalid code.  It is returned next to the value rather than instead of
// it, so callers can decide whether to report or abort.
type ComputationWarning struct {
	Kind  WarningKind
	Value float64
	Limit float64
}

func (w *ComputationWarning) Error() string {
	switch w.Kind {
	case WarnKraftExceeded:
		return fmt.Sprintf("kraft sum %v exceeds %v: code is not uniquely decodable", w.Value, w.Limit)
	case WarnNegativeRedundancy:
		return fmt.Sprintf("redundancy %v is below %v: average length is under the entropy bound", w.Value, w.Limit)
	default:
		return fmt.Sprintf("%v: value %v, limit %v", w.Kind, w.Value, w.Limit)
	}
}

var (
	_ error = (*StructuralError)(nil)
	_ error = (*MissingCodeError)(nil)
	_ error = (*ComputationWarning)(nil)
)
