package matcher

// And is a set of matchers that should be evaluated as a logical
// AND.
type And[T any] struct {
	matchers []Matcher[T]
	desc     Description
}

// NewAnd creates a conjunction of ms, in order. Any operand which is already an
// *And[T] has its children spliced in place, so NewAnd(NewAnd(p, q), r) and
// NewAnd(p, q, r) are the same conjunction. Calling NewAnd with no operands is
// allowed: the result matches everything and describes as "(  )".
func NewAnd[T any](ms ...Matcher[T]) *And[T] {
	return &And[T]{
		matchers: flattenInto(make([]Matcher[T], 0, len(ms)), ms, andChildren[T]),
	}
}

func andChildren[T any](m Matcher[T]) ([]Matcher[T], bool) {
	a, ok := m.(*And[T])
	if !ok || a == nil {
		return nil, false
	}
	return a.matchers, true
}

// Matchers returns a copy of the ordered child matchers.
func (a *And[T]) Matchers() []Matcher[T] {
	ms := make([]Matcher[T], len(a.matchers))
	copy(ms, a.matchers)
	return ms
}

// Len returns the number of child matchers.
func (a *And[T]) Len() int {
	return len(a.matchers)
}

func (a *And[T]) Describe() string {
	return describeGroup(a.matchers, "and")
}

func (a *And[T]) String() string {
	return a.desc.Load(a.Describe)
}

// Matches is the canonical in-Go function for determining if T
// matches a AND match rules. Children are evaluated in order and evaluation
// stops at the first child that does not match.
func (a *And[T]) Matches(that T) bool {
	for _, m := range a.matchers {
		if !m.Matches(that) {
			return false
		}
	}

	return true
}
