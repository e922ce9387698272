// Package matcher provides composable boolean tests over arbitrary values.
//
// A Matcher[T] tests a T and describes itself in words. Matchers are combined
// into trees with And, Or and Not; the combinators evaluate their children with
// short-circuit semantics and build a description that reads in the same order
// the tree was built:
//
//	m := matcher.NewAnd[int](isPositive, isEven)
//	m.Matches(4)  // true
//	m.String()    // "( is positive and is even )"
//
// Same-kind groups are kept flat, so a conjunction built from another
// conjunction extends it rather than nesting it. See the ops package for the
// binary combinator helpers, and the ast and compiler packages for the textual
// expression language.
package matcher
