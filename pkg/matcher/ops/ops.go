// The ops package provides a set of functions that can be used to
// combine matchers programatically, in the way the logical operators
// !, && and || combine booleans:
//
//	ops.Or(ops.And(a, b), ops.Not(c))  // a && b || !c
//
// Combining an existing conjunction (or disjunction) with another matcher
// extends the same group instead of nesting a new one, preserving left to
// right order of the operands.
package ops

import (
	"github.com/opencost/matchkit/pkg/matcher"
)

// Not negates m.
func Not[T any](m matcher.Matcher[T]) matcher.Matcher[T] {
	return matcher.NewNot(m)
}

// And combines the operands into a single conjunction. Operands which are
// already conjunctions are spliced in place.
func And[T any](m, next matcher.Matcher[T], others ...matcher.Matcher[T]) matcher.Matcher[T] {
	operands := append([]matcher.Matcher[T]{m, next}, others...)

	return matcher.NewAnd(operands...)
}

// Or combines the operands into a single disjunction. Operands which are
// already disjunctions are spliced in place.
func Or[T any](m, next matcher.Matcher[T], others ...matcher.Matcher[T]) matcher.Matcher[T] {
	operands := append([]matcher.Matcher[T]{m, next}, others...)

	return matcher.NewOr(operands...)
}

// AllOf is the slice form of And. It accepts any number of operands, including
// none.
func AllOf[T any](ms []matcher.Matcher[T]) matcher.Matcher[T] {
	return matcher.NewAnd(ms...)
}

// AnyOf is the slice form of Or. It accepts any number of operands, including
// none.
func AnyOf[T any](ms []matcher.Matcher[T]) matcher.Matcher[T] {
	return matcher.NewOr(ms...)
}

// NoneOf matches when no operand matches.
func NoneOf[T any](ms []matcher.Matcher[T]) matcher.Matcher[T] {
	return matcher.NewNot[T](matcher.NewOr(ms...))
}

// Is wraps a plain function as a leaf matcher.
func Is[T any](description string, fn func(T) bool) matcher.Matcher[T] {
	return matcher.NewFunc(description, fn)
}
