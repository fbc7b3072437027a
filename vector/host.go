package vector

import "fmt"

// Host is a slice-backed vector. The zero value is empty; use NewHost
// or HostFrom.
type Host[T Element] struct {
	data []T
	sys  System
}

// NewHost creates a zero-initialized host vector of length n.
func NewHost[T Element](n int) *Host[T] {
	return &Host[T]{data: make([]T, n), sys: Par}
}

// HostFrom wraps data as a host vector. The vector aliases the slice;
// mutations are visible both ways.
func HostFrom[T Element](data []T) *Host[T] {
	return &Host[T]{data: data, sys: Par}
}

// OnSystem returns a view of the same storage bound to sys.
func (h *Host[T]) OnSystem(sys System) *Host[T] {
	return &Host[T]{data: h.data, sys: sys}
}

func (h *Host[T]) Len() int { return len(h.data) }

func (h *Host[T]) At(i int) T { return h.data[i] }

func (h *Host[T]) Set(i int, v T) { h.data[i] = v }

// Data returns the backing slice.
func (h *Host[T]) Data() []T { return h.data }

func (h *Host[T]) System() System { return h.sys }

func (h *Host[T]) CopyTo(dst []T) error {
	if len(dst) > len(h.data) {
		return fmt.Errorf("copy of %d elements from host vector of %d: %w",
			len(dst), len(h.data), ErrLengthMismatch)
	}
	copy(dst, h.data)
	return nil
}

func (h *Host[T]) CopyFrom(src []T) error {
	if len(src) > len(h.data) {
		return fmt.Errorf("copy of %d elements into host vector of %d: %w",
			len(src), len(h.data), ErrLengthMismatch)
	}
	copy(h.data, src)
	return nil
}
