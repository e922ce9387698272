package ast

// FilterOp is an enum that represents the operations that can appear in a
// matcher expression.
type FilterOp string

// If you add a FilterOp, MAKE SURE TO UPDATE THE COMPILER AND WALKER! Go
// does not enforce exhaustive pattern matching on "enum" types.
const (
	// FilterOpIdent references a named matcher.
	FilterOpIdent FilterOp = "ident"

	// FilterOpVoid is base-depth operator that is used for an empty expression
	FilterOpVoid FilterOp = "void"

	// FilterOpAnd is an operator that succeeds if all parameters succeed.
	FilterOpAnd FilterOp = "and"

	// FilterOpOr is an operator that succeeds if any parameter succeeds
	FilterOpOr FilterOp = "or"

	// FilterOpNot is an operator that contains a single operand
	FilterOpNot FilterOp = "not"
)

// VoidOp is base-depth operator that is used for an empty expression
type VoidOp struct{}

// Op returns the FilterOp enumeration value for the operator.
func (_ *VoidOp) Op() FilterOp {
	return FilterOpVoid
}

// IdentOp is a leaf that refers to a named matcher. Names are resolved during
// compilation.
type IdentOp struct {
	Name string
}

// Op returns the FilterOp enumeration value for the operator.
func (_ *IdentOp) Op() FilterOp {
	return FilterOpIdent
}

// AndOp is an operation that contains a flat list of nodes which should all resolve
// to true in order for the result to be true.
type AndOp struct {
	Operands []FilterNode
}

// Op returns the FilterOp enumeration value for the operator.
func (_ *AndOp) Op() FilterOp {
	return FilterOpAnd
}

// Add appends a node to the flat list of operands within the AND operator. An
// AndOp operand is spliced in place.
func (ao *AndOp) Add(node FilterNode) {
	if inner, ok := node.(*AndOp); ok {
		ao.Operands = append(ao.Operands, inner.Operands...)
		return
	}
	ao.Operands = append(ao.Operands, node)
}

// OrOp is an operation that contains a flat list of nodes which at least one node
// should resolve to true in order for the result to be true.
type OrOp struct {
	Operands []FilterNode
}

// Op returns the FilterOp enumeration value for the operator.
func (_ *OrOp) Op() FilterOp {
	return FilterOpOr
}

// Add appends a node to the flat list of operands within the OR operator. An
// OrOp operand is spliced in place.
func (oo *OrOp) Add(node FilterNode) {
	if inner, ok := node.(*OrOp); ok {
		oo.Operands = append(oo.Operands, inner.Operands...)
		return
	}
	oo.Operands = append(oo.Operands, node)
}

// NotOp is an operation that logically inverts result of the child operand.
type NotOp struct {
	Operand FilterNode
}

// Op returns the FilterOp enumeration value for the operator.
func (_ *NotOp) Op() FilterOp {
	return FilterOpNot
}

// Add sets the not operand to the parameter
func (no *NotOp) Add(node FilterNode) {
	no.Operand = node
}
