// Package algo implements the replace family of parallel algorithms
// over vector containers. Each operation dispatches on the execution
// system the vectors report: user hooks first, then generated device
// kernels, then chunked or serial host loops.
package algo

import (
	"unsafe"

	"github.com/notargets/VecKernel/device"
	"github.com/notargets/VecKernel/vector"
	"github.com/notargets/gocca"
)

// Replace overwrites elements of v equal to oldValue with newValue.
func Replace[T vector.Element](v vector.Mutable[T], oldValue, newValue T) error {
	return ReplaceOn(v.System(), v, oldValue, newValue)
}

// ReplaceOn is Replace under an explicit execution system.
func ReplaceOn[T vector.Element](sys vector.System, v vector.Mutable[T], oldValue, newValue T) error {
	if d, ok := sys.(ReplaceDispatcher); ok {
		return d.DispatchReplace(v, oldValue, newValue)
	}
	if eng, mem, dt, ok := deviceTarget[T](sys, v); ok {
		pair := [2]T{oldValue, newValue}
		return eng.RunReplace(dt, mem, v.Len(), unsafe.Pointer(&pair[0]))
	}
	return transformInPlace(sys, v, func(x T) T {
		if x == oldValue {
			return newValue
		}
		return x
	})
}

// ReplaceCopy copies src into dst, substituting elements equal to
// oldValue with newValue. It returns the number of elements written.
// dst may share storage with src.
func ReplaceCopy[T vector.Element](dst vector.Mutable[T], src vector.Reader[T], oldValue, newValue T) (int, error) {
	return ReplaceCopyOn(copySystem(dst, src), dst, src, oldValue, newValue)
}

// ReplaceCopyOn is ReplaceCopy under an explicit execution system.
func ReplaceCopyOn[T vector.Element](sys vector.System, dst vector.Mutable[T], src vector.Reader[T], oldValue, newValue T) (int, error) {
	if d, ok := sys.(ReplaceCopyDispatcher); ok {
		return d.DispatchReplaceCopy(dst, src, oldValue, newValue)
	}
	n := src.Len()
	if err := checkDstLen(dst, n); err != nil {
		return 0, err
	}
	if vector.IsDiscard(dst) {
		return n, nil
	}
	if eng, dstMem, dt, ok := deviceTarget[T](sys, dst); ok {
		if srcMem, sameEngine := deviceSource(eng, src); sameEngine {
			pair := [2]T{oldValue, newValue}
			return n, eng.RunReplaceCopy(dt, dstMem, srcMem, n, unsafe.Pointer(&pair[0]))
		}
	}
	return copyTransform(sys, dst, src, func(x T) T {
		if x == oldValue {
			return newValue
		}
		return x
	})
}

// ReplaceIf overwrites elements of v matching pred with newValue.
func ReplaceIf[T vector.Element](v vector.Mutable[T], pred Predicate[T], newValue T) error {
	return ReplaceIfOn(v.System(), v, pred, newValue)
}

// ReplaceIfOn is ReplaceIf under an explicit execution system.
func ReplaceIfOn[T vector.Element](sys vector.System, v vector.Mutable[T], pred Predicate[T], newValue T) error {
	if d, ok := sys.(ReplaceIfDispatcher); ok {
		return d.DispatchReplaceIf(v, nil, pred, newValue)
	}
	if eng, mem, dt, ok := deviceTarget[T](sys, v); ok {
		if kp, ok := pred.(KernelPred); ok {
			nv := newValue
			return eng.RunReplaceIf(dt, mem, v.Len(), kp.KernelExpr(), unsafe.Pointer(&nv))
		}
	}
	return transformInPlace(sys, v, func(x T) T {
		if pred.Test(x) {
			return newValue
		}
		return x
	})
}

// ReplaceIfStencil overwrites v[i] with newValue where
// pred(stencil[i]) holds. stencil must match v in length.
func ReplaceIfStencil[T vector.Element](v vector.Mutable[T], stencil vector.Reader[T], pred Predicate[T], newValue T) error {
	return ReplaceIfStencilOn(v.System(), v, stencil, pred, newValue)
}

// ReplaceIfStencilOn is ReplaceIfStencil under an explicit execution
// system.
func ReplaceIfStencilOn[T vector.Element](sys vector.System, v vector.Mutable[T], stencil vector.Reader[T], pred Predicate[T], newValue T) error {
	if d, ok := sys.(ReplaceIfDispatcher); ok {
		return d.DispatchReplaceIf(v, stencil, pred, newValue)
	}
	if eng, mem, dt, ok := deviceTarget[T](sys, v); ok {
		if stMem, sameEngine := deviceSource(eng, stencil); sameEngine && stencil.Len() == v.Len() {
			if kp, ok := pred.(KernelPred); ok {
				nv := newValue
				return eng.RunReplaceIfStencil(dt, mem, stMem, v.Len(), kp.KernelExpr(), unsafe.Pointer(&nv))
			}
		}
	}
	return transformStencil(sys, v, stencil, func(x, s T) T {
		if pred.Test(s) {
			return newValue
		}
		return x
	})
}

// ReplaceCopyIf copies src into dst, substituting elements matching
// pred with newValue. It returns the number of elements written.
func ReplaceCopyIf[T vector.Element](dst vector.Mutable[T], src vector.Reader[T], pred Predicate[T], newValue T) (int, error) {
	return ReplaceCopyIfOn(copySystem(dst, src), dst, src, pred, newValue)
}

// ReplaceCopyIfOn is ReplaceCopyIf under an explicit execution system.
func ReplaceCopyIfOn[T vector.Element](sys vector.System, dst vector.Mutable[T], src vector.Reader[T], pred Predicate[T], newValue T) (int, error) {
	if d, ok := sys.(ReplaceCopyIfDispatcher); ok {
		return d.DispatchReplaceCopyIf(dst, src, nil, pred, newValue)
	}
	n := src.Len()
	if err := checkDstLen(dst, n); err != nil {
		return 0, err
	}
	if vector.IsDiscard(dst) {
		return n, nil
	}
	if eng, dstMem, dt, ok := deviceTarget[T](sys, dst); ok {
		if srcMem, sameEngine := deviceSource(eng, src); sameEngine {
			if kp, ok := pred.(KernelPred); ok {
				nv := newValue
				return n, eng.RunReplaceCopyIf(dt, dstMem, srcMem, n, kp.KernelExpr(), unsafe.Pointer(&nv))
			}
		}
	}
	return copyTransform(sys, dst, src, func(x T) T {
		if pred.Test(x) {
			return newValue
		}
		return x
	})
}

// ReplaceCopyIfStencil copies src into dst, substituting src[i] with
// newValue where pred(stencil[i]) holds.
func ReplaceCopyIfStencil[T vector.Element](dst vector.Mutable[T], src, stencil vector.Reader[T], pred Predicate[T], newValue T) (int, error) {
	return ReplaceCopyIfStencilOn(copySystem(dst, src), dst, src, stencil, pred, newValue)
}

// ReplaceCopyIfStencilOn is ReplaceCopyIfStencil under an explicit
// execution system.
func ReplaceCopyIfStencilOn[T vector.Element](sys vector.System, dst vector.Mutable[T], src, stencil vector.Reader[T], pred Predicate[T], newValue T) (int, error) {
	if d, ok := sys.(ReplaceCopyIfDispatcher); ok {
		return d.DispatchReplaceCopyIf(dst, src, stencil, pred, newValue)
	}
	n := src.Len()
	if err := checkDstLen(dst, n); err != nil {
		return 0, err
	}
	if vector.IsDiscard(dst) {
		if stencil.Len() != n {
			return 0, stencilLenError(stencil.Len(), n)
		}
		return n, nil
	}
	if eng, dstMem, dt, ok := deviceTarget[T](sys, dst); ok {
		srcMem, srcOnEngine := deviceSource(eng, src)
		stMem, stOnEngine := deviceSource(eng, stencil)
		if srcOnEngine && stOnEngine && stencil.Len() == n {
			if kp, ok := pred.(KernelPred); ok {
				nv := newValue
				return n, eng.RunReplaceCopyIfStencil(dt, dstMem, srcMem, stMem, n, kp.KernelExpr(), unsafe.Pointer(&nv))
			}
		}
	}
	return copyTransformStencil(sys, dst, src, stencil, func(x, s T) T {
		if pred.Test(s) {
			return newValue
		}
		return x
	})
}

// deviceTarget reports whether sys is a device engine holding v's
// storage, with a supported element type. When it is, the built-in
// device kernel path applies.
func deviceTarget[T vector.Element](sys vector.System, v vector.Reader[T]) (*device.Engine, *gocca.OCCAMemory, device.DataType, bool) {
	eng, ok := sys.(*device.Engine)
	if !ok {
		return nil, nil, 0, false
	}
	db, ok := any(v).(vector.DeviceBacked)
	if !ok || db.DeviceEngine() != eng {
		return nil, nil, 0, false
	}
	dt, ok := device.TypeOf[T]()
	if !ok {
		return nil, nil, 0, false
	}
	return eng, db.DeviceMemory(), dt, true
}

// deviceSource returns v's device memory when it lives on eng.
func deviceSource[T vector.Element](eng *device.Engine, v vector.Reader[T]) (*gocca.OCCAMemory, bool) {
	db, ok := any(v).(vector.DeviceBacked)
	if !ok || db.DeviceEngine() != eng {
		return nil, false
	}
	return db.DeviceMemory(), true
}
