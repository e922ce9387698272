package ast

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// used to apply a title to the ops in tree output
var titleCaser cases.Caser = cases.Title(language.Und, cases.NoLower)
var lowerCaser cases.Caser = cases.Lower(language.Und)

// TraversalState represents the state of the current leaf node in a traversal
// of the tree. Any grouping ops will include an Enter on their first
// occurence, and an Exit when leaving the op state.
type TraversalState int

const (
	// TraversalStateNone is used whenever a leaf node is traversed.
	TraversalStateNone TraversalState = iota

	// TraversalStateEnter is used when a group op node is traversed (and, or, not)
	TraversalStateEnter

	// TraversalStateExit is used when a group op node is popped (and, or, not).
	TraversalStateExit
)

// PreOrderTraversal accepts a root `FilterNode` and calls the f callback on
// each node it traverses. When entering "group" nodes (nodes which contain
// other nodes), a TraversalStateEnter/Exit will be included to denote each
// depth. In short, the callback will be executed twice for each "group" op,
// once before entering, and once before exiting.
func PreOrderTraversal(node FilterNode, f func(FilterNode, TraversalState)) {
	if node == nil {
		return
	}

	// For group ops, we need to execute the callback with an Enter,
	// recursively call traverse, then execute the callback with an Exit.
	switch n := node.(type) {
	case *NotOp:
		f(node, TraversalStateEnter)
		PreOrderTraversal(n.Operand, f)
		f(node, TraversalStateExit)

	case *AndOp:
		f(node, TraversalStateEnter)
		for _, o := range n.Operands {
			PreOrderTraversal(o, f)
		}
		f(node, TraversalStateExit)

	case *OrOp:
		f(node, TraversalStateEnter)
		for _, o := range n.Operands {
			PreOrderTraversal(o, f)
		}
		f(node, TraversalStateExit)

	// Otherwise, we just linearly traverse
	default:
		f(node, TraversalStateNone)
	}
}

// ToPreOrderString runs a PreOrderTraversal and generates an indented tree structure string
// format for the provided tree root.
func ToPreOrderString(node FilterNode) string {
	var sb strings.Builder
	indent := 0

	printNode := func(n FilterNode, action TraversalState) {
		if action == TraversalStateEnter {
			sb.WriteString(OpStringFor(n, action, indent))
			indent++
		} else if action == TraversalStateExit {
			indent--
			sb.WriteString(OpStringFor(n, action, indent))
		} else {
			sb.WriteString(OpStringFor(n, action, indent))
		}
	}

	PreOrderTraversal(node, printNode)

	return sb.String()
}

// ToPreOrderShortString runs a PreOrderTraversal and generates a condensed tree structure string
// format for the provided tree root.
func ToPreOrderShortString(node FilterNode) string {
	var sb strings.Builder
	first := true

	PreOrderTraversal(node, func(n FilterNode, action TraversalState) {
		if action != TraversalStateExit && !first {
			sb.WriteString(",")
		}
		first = action == TraversalStateEnter
		sb.WriteString(ShortOpStringFor(n, action))
	})

	return sb.String()
}

// OpStringFor returns a string for the provided node, traversal state, and current
// depth.
func OpStringFor(node FilterNode, traversalState TraversalState, depth int) string {
	prefix := indent(depth)

	if traversalState == TraversalStateExit {
		return prefix + "}\n"
	}

	if traversalState == TraversalStateEnter {
		return prefix + titleCaser.String(string(node.Op())) + " {\n"
	}

	switch n := node.(type) {
	case *IdentOp:
		return prefix + titleCaser.String(string(n.Op())) + " { " + n.Name + " }\n"
	default:
		return prefix + titleCaser.String(string(node.Op())) + " { }\n"
	}
}

// ShortOpStringFor returns a condensed string for the provided node and traversal state.
func ShortOpStringFor(node FilterNode, traversalState TraversalState) string {
	if traversalState == TraversalStateExit {
		return ")"
	}

	if traversalState == TraversalStateEnter {
		return lowerCaser.String(string(node.Op())) + "("
	}

	switch n := node.(type) {
	case *IdentOp:
		return n.Name
	default:
		return lowerCaser.String(string(node.Op())) + "()"
	}
}

// ToExpression renders the tree back into expression syntax, adding
// parentheses only where precedence requires them. Parsing the result of a
// parsed tree yields the same tree, which makes it usable as a canonical form.
func ToExpression(node FilterNode) string {
	return toExpression(node, 0)
}

// precedence levels, higher binds tighter
func precedenceOf(node FilterNode) int {
	switch node.(type) {
	case *OrOp:
		return 1
	case *AndOp:
		return 2
	case *NotOp:
		return 3
	default:
		return 4
	}
}

func toExpression(node FilterNode, parent int) string {
	var s string

	switch n := node.(type) {
	case nil, *VoidOp:
		return ""
	case *IdentOp:
		return n.Name
	case *NotOp:
		return "not " + toExpression(n.Operand, precedenceOf(n))
	case *AndOp:
		s = joinExpressions(n.Operands, " and ", precedenceOf(n))
	case *OrOp:
		s = joinExpressions(n.Operands, " or ", precedenceOf(n))
	}

	// a group directly inside a group of the same kind keeps its parentheses
	if precedenceOf(node) <= parent {
		return "(" + s + ")"
	}

	return s
}

func joinExpressions(nodes []FilterNode, sep string, prec int) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, toExpression(n, prec))
	}
	return strings.Join(parts, sep)
}

// returns an 2-space indention for each depth
func indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat("  ", depth)
}

// Identifiers returns the sorted, de-duplicated list of matcher names
// referenced by the tree.
func Identifiers(node FilterNode) []string {
	names := map[string]bool{}

	PreOrderTraversal(node, func(fn FilterNode, state TraversalState) {
		if ident, ok := fn.(*IdentOp); ok {
			names[ident.Name] = true
		}
	})

	response := make([]string, 0, len(names))
	for name := range names {
		response = append(response, name)
	}

	sort.Strings(response)

	return response
}
