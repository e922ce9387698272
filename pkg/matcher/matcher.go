package matcher

// Predicate is the minimal hook a matcher author implements: a test over T and
// a description of that test.
type Predicate[T any] interface {
	// Matches is the canonical in-Go function for determining if T
	// matches a specific implementation's rules. It must not panic: inputs the
	// rule cannot evaluate are reported as a non-match.
	Matches(T) bool

	// Describe builds the human readable text for the rule. It is recomputed on
	// every call and must return the same text for an unchanged matcher.
	Describe() string
}

// Matcher represents anything that can be used to match against given generic type T
// and describe itself.
type Matcher[T any] interface {
	Predicate[T]

	// String returns the memoized result of Describe. The first call computes the
	// description, all later calls return that same text.
	String() string
}

// From adds a cached String to a Predicate. If p is already a Matcher[T], it is
// returned as-is.
func From[T any](p Predicate[T]) Matcher[T] {
	if m, ok := p.(Matcher[T]); ok {
		return m
	}

	return &predicateMatcher[T]{Predicate: p}
}

type predicateMatcher[T any] struct {
	Predicate[T]
	desc Description
}

func (pm *predicateMatcher[T]) String() string {
	return pm.desc.Load(pm.Describe)
}

// Func is a leaf matcher backed by a plain function and a fixed description.
type Func[T any] struct {
	description string
	fn          func(T) bool
	desc        Description
}

// NewFunc creates a leaf matcher from a description and test function. A nil
// test function never matches.
func NewFunc[T any](description string, fn func(T) bool) *Func[T] {
	return &Func[T]{
		description: description,
		fn:          fn,
	}
}

func (f *Func[T]) Describe() string { return f.description }

func (f *Func[T]) String() string { return f.desc.Load(f.Describe) }

// Matches runs the wrapped func.
func (f *Func[T]) Matches(that T) bool {
	if f.fn == nil {
		return false
	}

	return f.fn(that)
}
