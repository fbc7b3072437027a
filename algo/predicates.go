package algo

import (
	"fmt"

	"github.com/notargets/VecKernel/vector"
)

// Predicate decides whether an element gets replaced.
type Predicate[T vector.Element] interface {
	Test(v T) bool
}

// KernelPred is implemented by predicates that can also run on a
// device. KernelExpr returns an OKL boolean expression over the free
// variable x, the element under test. Predicates without it force
// device vectors through the host staging path.
type KernelPred interface {
	KernelExpr() string
}

// LessThan matches elements strictly below Bound.
type LessThan[T vector.Element] struct{ Bound T }

func (p LessThan[T]) Test(v T) bool { return v < p.Bound }

func (p LessThan[T]) KernelExpr() string { return fmt.Sprintf("x < %v", p.Bound) }

// GreaterThan matches elements strictly above Bound.
type GreaterThan[T vector.Element] struct{ Bound T }

func (p GreaterThan[T]) Test(v T) bool { return v > p.Bound }

func (p GreaterThan[T]) KernelExpr() string { return fmt.Sprintf("x > %v", p.Bound) }

// EqualTo matches elements equal to Value.
type EqualTo[T vector.Element] struct{ Value T }

func (p EqualTo[T]) Test(v T) bool { return v == p.Value }

func (p EqualTo[T]) KernelExpr() string { return fmt.Sprintf("x == %v", p.Value) }

// Always matches every element.
type Always[T vector.Element] struct{}

func (Always[T]) Test(T) bool { return true }

func (Always[T]) KernelExpr() string { return "true" }
