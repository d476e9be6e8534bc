package playrho

/// A stack backed by a growable buffer. Used by the tree traversals and
/// the island builder, where the element count is usually small but has
/// no fixed bound.
type GrowableStack[T any] struct {
	elements []T
}

func NewGrowableStack[T any](capacity int) *GrowableStack[T] {
	return &GrowableStack[T]{
		elements: make([]T, 0, capacity),
	}
}

/// Return the stack's length.
func (s *GrowableStack[T]) GetCount() int {
	return len(s.elements)
}

/// Push a new element onto the stack.
func (s *GrowableStack[T]) Push(value T) {
	s.elements = append(s.elements, value)
}

/// Remove the top element from the stack and return its value.
func (s *GrowableStack[T]) Pop() T {
	n := len(s.elements)
	assert(n > 0)
	value := s.elements[n-1]
	s.elements = s.elements[:n-1]
	return value
}
