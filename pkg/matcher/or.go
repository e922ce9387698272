package matcher

// Or is a set of matchers that should be evaluated as a logical
// OR.
type Or[T any] struct {
	matchers []Matcher[T]
	desc     Description
}

// NewOr creates a disjunction of ms, in order. Operands which are already an
// *Or[T] are flattened the same way NewAnd flattens conjunctions. An empty
// disjunction matches nothing and describes as "(  )".
func NewOr[T any](ms ...Matcher[T]) *Or[T] {
	return &Or[T]{
		matchers: flattenInto(make([]Matcher[T], 0, len(ms)), ms, orChildren[T]),
	}
}

func orChildren[T any](m Matcher[T]) ([]Matcher[T], bool) {
	o, ok := m.(*Or[T])
	if !ok || o == nil {
		return nil, false
	}
	return o.matchers, true
}

// Matchers returns a copy of the ordered child matchers.
func (o *Or[T]) Matchers() []Matcher[T] {
	ms := make([]Matcher[T], len(o.matchers))
	copy(ms, o.matchers)
	return ms
}

// Len returns the number of child matchers.
func (o *Or[T]) Len() int {
	return len(o.matchers)
}

func (o *Or[T]) Describe() string {
	return describeGroup(o.matchers, "or")
}

func (o *Or[T]) String() string {
	return o.desc.Load(o.Describe)
}

// Matches is the canonical in-Go function for determining if T
// matches OR match rules. Evaluation stops at the first child that matches.
func (o *Or[T]) Matches(that T) bool {
	for _, m := range o.matchers {
		if m.Matches(that) {
			return true
		}
	}

	return false
}
