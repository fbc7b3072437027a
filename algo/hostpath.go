package algo

import (
	"fmt"

	"github.com/notargets/VecKernel/vector"
	"golang.org/x/sync/errgroup"
)

// parGrain is the smallest index range worth handing to a goroutine.
// Inputs below it run serially regardless of the system.
const parGrain = 4096

// forEach runs fn over [0, n) in chunks. Systems exposing Workers()
// get one goroutine per chunk on an errgroup; everything else runs on
// the calling goroutine.
func forEach(sys vector.System, n int, fn func(lo, hi int)) {
	workers := 1
	if w, ok := sys.(interface{ Workers() int }); ok {
		workers = w.Workers()
	}
	if workers <= 1 || n < parGrain {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	if chunk < parGrain {
		chunk = parGrain
	}
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait() // chunk workers never fail
}

// readAll returns v's elements as a slice, aliasing the vector's
// storage when it is slice-backed and staging a copy otherwise.
func readAll[T vector.Element](v vector.Reader[T]) (data []T, aliased bool, err error) {
	if s, ok := any(v).(vector.SliceBacked[T]); ok {
		return s.Data(), true, nil
	}
	data = make([]T, v.Len())
	if err := v.CopyTo(data); err != nil {
		return nil, false, err
	}
	return data, false, nil
}

// transformInPlace applies f to every element of v on the host,
// staging through a scratch slice for non-slice-backed vectors.
func transformInPlace[T vector.Element](sys vector.System, v vector.Mutable[T], f func(T) T) error {
	n := v.Len()
	if n == 0 {
		return nil
	}
	data, aliased, err := readAll[T](v)
	if err != nil {
		return err
	}
	forEach(sys, n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			data[i] = f(data[i])
		}
	})
	if aliased {
		return nil
	}
	return v.CopyFrom(data)
}

// transformStencil applies f to pairs of data and stencil elements.
func transformStencil[T vector.Element](sys vector.System, v vector.Mutable[T], stencil vector.Reader[T], f func(x, s T) T) error {
	n := v.Len()
	if stencil.Len() != n {
		return fmt.Errorf("stencil of %d elements against vector of %d: %w",
			stencil.Len(), n, vector.ErrLengthMismatch)
	}
	if n == 0 {
		return nil
	}
	data, aliased, err := readAll[T](v)
	if err != nil {
		return err
	}
	st, _, err := readAll[T](stencil)
	if err != nil {
		return err
	}
	forEach(sys, n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			data[i] = f(data[i], st[i])
		}
	})
	if aliased {
		return nil
	}
	return v.CopyFrom(data)
}

// copyTransform writes f(src[i]) into dst on the host. src and dst may
// share storage.
func copyTransform[T vector.Element](sys vector.System, dst vector.Mutable[T], src vector.Reader[T], f func(T) T) (int, error) {
	n := src.Len()
	if n == 0 {
		return 0, nil
	}
	srcData, _, err := readAll[T](src)
	if err != nil {
		return 0, err
	}

	out, dstAliased, err := writeTarget(dst, n)
	if err != nil {
		return 0, err
	}
	forEach(sys, n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = f(srcData[i])
		}
	})
	if dstAliased {
		return n, nil
	}
	return n, dst.CopyFrom(out)
}

// copyTransformStencil writes f(src[i], stencil[i]) into dst.
func copyTransformStencil[T vector.Element](sys vector.System, dst vector.Mutable[T], src, stencil vector.Reader[T], f func(x, s T) T) (int, error) {
	n := src.Len()
	if stencil.Len() != n {
		return 0, stencilLenError(stencil.Len(), n)
	}
	if n == 0 {
		return 0, nil
	}
	srcData, _, err := readAll[T](src)
	if err != nil {
		return 0, err
	}
	st, _, err := readAll[T](stencil)
	if err != nil {
		return 0, err
	}

	out, dstAliased, err := writeTarget(dst, n)
	if err != nil {
		return 0, err
	}
	forEach(sys, n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = f(srcData[i], st[i])
		}
	})
	if dstAliased {
		return n, nil
	}
	return n, dst.CopyFrom(out)
}

// writeTarget returns the slice copy results are written into: dst's
// own storage when slice-backed, a scratch slice otherwise.
func writeTarget[T vector.Element](dst vector.Mutable[T], n int) ([]T, bool, error) {
	if s, ok := any(dst).(vector.SliceBacked[T]); ok {
		return s.Data()[:n], true, nil
	}
	return make([]T, n), false, nil
}

func stencilLenError(stLen, n int) error {
	return fmt.Errorf("stencil of %d elements against source of %d: %w",
		stLen, n, vector.ErrLengthMismatch)
}

// checkDstLen validates that dst can absorb n elements. Write sinks
// pass regardless of their logical length.
func checkDstLen[T vector.Element](dst vector.Mutable[T], n int) error {
	if vector.IsDiscard(dst) {
		return nil
	}
	if dst.Len() < n {
		return fmt.Errorf("destination of %d elements for %d results: %w",
			dst.Len(), n, vector.ErrLengthMismatch)
	}
	return nil
}
