package stack

// Stack is a LIFO collection of T. The zero value is an empty stack ready to
// use.
type Stack[T any] struct {
	items []T
}

// New creates a new Stack[T]
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push adds a value to the top of the stack.
func (s *Stack[T]) Push(value T) {
	s.items = append(s.items, value)
}

// Pop the top item of the stack and return it. Popping an empty stack returns
// the zero value of T.
func (s *Stack[T]) Pop() T {
	if len(s.items) == 0 {
		return defaultFor[T]()
	}

	last := len(s.items) - 1
	value := s.items[last]

	// release the reference held by the backing array
	s.items[last] = defaultFor[T]()
	s.items = s.items[:last]

	return value
}

// Top returns the item on the top of the stack
func (s *Stack[T]) Top() T {
	if len(s.items) == 0 {
		return defaultFor[T]()
	}

	return s.items[len(s.items)-1]
}

// Length returns the total number of elements on the stack.
func (s *Stack[T]) Length() int {
	return len(s.items)
}

func defaultFor[T any]() T {
	var t T
	return t
}
