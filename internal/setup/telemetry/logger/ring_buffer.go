package logger

// ring keeps the most recent values pushed into it.
type ring[T any] struct {
	items []T
	next  int
	full  bool
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{items: make([]T, max(capacity, 1))}
}

func (r *ring[T]) push(v T) {
	r.items[r.next] = v
	r.next = (r.next + 1) % len(r.items)
	if r.next == 0 {
		r.full = true
	}
}

func (r *ring[T]) len() int {
	if r.full {
		return len(r.items)
	}
	return r.next
}

// values returns the kept values, oldest first.
func (r *ring[T]) values() []T {
	if !r.full {
		return append([]T(nil), r.items[:r.next]...)
	}
	return append(append([]T(nil), r.items[r.next:]...), r.items[:r.next]...)
}
