package matcher

// AllCut is a matcher that matches nothing. This is useful where a caller must
// reject every value, like a disabled check or a contradiction in an expression.
type AllCut[T any] struct{}

func (ac *AllCut[T]) Describe() string { return "nothing" }

func (ac *AllCut[T]) String() string { return ac.Describe() }

// Matches always returns false.
func (ac *AllCut[T]) Matches(T) bool { return false }
