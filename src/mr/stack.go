package mr

import "sync"

// groupStack is the mutex-guarded pool of shuffle groups drained by the Reduce workers.
// Groups are unordered for Reduce, so claims pop from the back.
type groupStack[T any] struct {
	mu    sync.Mutex
	items []T
}

func newGroupStack[T any](items []T) *groupStack[T] {
	return &groupStack[T]{items: items}
}

// TryPop claims the last item. The second result is false once the stack is drained.
func (s *groupStack[T]) TryPop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.items)
	if n == 0 {
		var zero T
		return zero, false // stack drained
	}

	item := s.items[n-1]
	var zero T
	s.items[n-1] = zero
	s.items = s.items[:n-1]

	return item, true
}

func (s *groupStack[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}
