package algo

import "github.com/notargets/VecKernel/vector"

// User-defined execution systems take over an operation by
// implementing its dispatcher hook. When a vector's reported System
// satisfies the hook, the hook runs instead of any built-in path. The
// vector arguments are passed as-is, so a hook may assert them back to
// vector.Mutable[T] and touch storage directly. Hooks are untyped
// because Go interfaces cannot carry generic methods.

// ReplaceDispatcher overrides Replace.
type ReplaceDispatcher interface {
	DispatchReplace(data, oldValue, newValue any) error
}

// ReplaceCopyDispatcher overrides ReplaceCopy.
type ReplaceCopyDispatcher interface {
	DispatchReplaceCopy(dst, src, oldValue, newValue any) (int, error)
}

// ReplaceIfDispatcher overrides ReplaceIf and ReplaceIfStencil.
// stencil is nil for the non-stencil form.
type ReplaceIfDispatcher interface {
	DispatchReplaceIf(data, stencil, pred, newValue any) error
}

// ReplaceCopyIfDispatcher overrides ReplaceCopyIf and
// ReplaceCopyIfStencil. stencil is nil for the non-stencil form.
type ReplaceCopyIfDispatcher interface {
	DispatchReplaceCopyIf(dst, src, stencil, pred, newValue any) (int, error)
}

// copySystem infers the dispatch system for a copy operation: the
// destination's system, unless the destination is a write sink, in
// which case the source decides.
func copySystem[T vector.Element](dst vector.Mutable[T], src vector.Reader[T]) vector.System {
	if vector.IsDiscard(dst) {
		return src.System()
	}
	return dst.System()
}
