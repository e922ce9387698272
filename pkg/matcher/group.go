package matcher

import "strings"

// Group is implemented by the n-ary combinators (And, Or).
type Group[T any] interface {
	Matcher[T]

	// Matchers returns a copy of the ordered child matchers.
	Matchers() []Matcher[T]

	// Len returns the number of child matchers.
	Len() int
}

// flattenInto appends ms to dst, splicing the children of any matcher that is
// the same group kind (as reported by same) in place of the matcher itself. Nil
// matchers are dropped.
func flattenInto[T any](dst []Matcher[T], ms []Matcher[T], same func(Matcher[T]) ([]Matcher[T], bool)) []Matcher[T] {
	for _, m := range ms {
		if m == nil {
			continue
		}

		if children, ok := same(m); ok {
			dst = append(dst, children...)
			continue
		}

		dst = append(dst, m)
	}

	return dst
}

// describeGroup joins the child descriptions with the provided connective:
// "( a and b and c )". An empty group describes as "(  )".
func describeGroup[T any](ms []Matcher[T], connective string) string {
	var sb strings.Builder
	sb.Grow(4 + len(ms)*32)

	sb.WriteString("( ")
	for i, m := range ms {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(connective)
			sb.WriteString(" ")
		}
		sb.WriteString(m.Describe())
	}
	sb.WriteString(" )")

	return sb.String()
}
