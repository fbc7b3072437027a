package vector

// Discard is a write sink of a fixed logical length. Writes are
// dropped and reads yield the zero element. It stands in for a real
// destination when only the element count of a copy matters.
type Discard[T Element] struct {
	n   int
	sys System
}

// NewDiscard creates a discard vector of logical length n.
func NewDiscard[T Element](n int) *Discard[T] {
	return &Discard[T]{n: n, sys: Seq}
}

func (d *Discard[T]) Len() int { return d.n }

func (d *Discard[T]) At(i int) T {
	var zero T
	return zero
}

func (d *Discard[T]) Set(i int, v T) {}

func (d *Discard[T]) System() System { return d.sys }

// DiscardsWrites marks the vector for IsDiscard.
func (d *Discard[T]) DiscardsWrites() bool { return true }

func (d *Discard[T]) CopyTo(dst []T) error {
	var zero T
	for i := range dst {
		dst[i] = zero
	}
	return nil
}

func (d *Discard[T]) CopyFrom(src []T) error { return nil }
