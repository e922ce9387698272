package matcher

// Not negates the matcher contained within it
type Not[T any] struct {
	matcher Matcher[T]
	desc    Description
}

// NewNot wraps m in a negation.
func NewNot[T any](m Matcher[T]) *Not[T] {
	return &Not[T]{matcher: m}
}

// Matcher returns the negated child.
func (n *Not[T]) Matcher() Matcher[T] {
	return n.matcher
}

func (n *Not[T]) Describe() string {
	return "not " + n.matcher.Describe()
}

func (n *Not[T]) String() string {
	return n.desc.Load(n.Describe)
}

// Matches inverts the result of the child matcher
func (n *Not[T]) Matches(that T) bool {
	return !n.matcher.Matches(that)
}
