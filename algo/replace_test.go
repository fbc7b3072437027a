package algo

import (
	"testing"

	"github.com/notargets/VecKernel/device"
	"github.com/notargets/VecKernel/utils"
	"github.com/notargets/VecKernel/vector"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// ============================================================================
// Simple fixed-input tests across the full element-type matrix, on host
// and device vectors
// ============================================================================

func toFloat64[T device.Element](s []T) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

// requireNear compares element-wise: exact for integer types, within a
// small tolerance for float types.
func requireNear[T device.Element](t *testing.T, want, got []T) {
	t.Helper()
	require.Equal(t, len(want), len(got), "length mismatch")
	if len(want) == 0 {
		return
	}
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		require.True(t, floats.EqualApprox(toFloat64(want), toFloat64(got), 1e-6),
			"want %v, got %v", want, got)
	default:
		require.Equal(t, want, got)
	}
}

func cloneSlice[T device.Element](s []T) []T {
	return append([]T(nil), s...)
}

func deviceData[T device.Element](t *testing.T, dv *vector.Device[T]) []T {
	t.Helper()
	out := make([]T, dv.Len())
	require.NoError(t, dv.CopyTo(out))
	return out
}

func checkReplaceSimple[T device.Element](t *testing.T, eng *device.Engine) {
	data := []T{1, 2, 1, 3, 2}
	want := []T{4, 5, 4, 3, 5}

	t.Run("host", func(t *testing.T) {
		v := vector.HostFrom(cloneSlice(data))
		require.NoError(t, Replace[T](v, 1, 4))
		require.NoError(t, Replace[T](v, 2, 5))
		requireNear(t, want, v.Data())
	})

	t.Run("host-seq", func(t *testing.T) {
		v := vector.HostFrom(cloneSlice(data)).OnSystem(vector.Seq)
		require.NoError(t, Replace[T](v, 1, 4))
		require.NoError(t, Replace[T](v, 2, 5))
		requireNear(t, want, v.Data())
	})

	t.Run("device", func(t *testing.T) {
		dv := vector.DeviceFrom(eng, data)
		defer dv.Free()
		require.NoError(t, Replace[T](dv, 1, 4))
		require.NoError(t, Replace[T](dv, 2, 5))
		requireNear(t, want, deviceData(t, dv))
	})
}

func TestReplaceSimple(t *testing.T) {
	eng := utils.CreateTestDevice()
	defer eng.Free()

	t.Run("int16", func(t *testing.T) { checkReplaceSimple[int16](t, eng) })
	t.Run("int32", func(t *testing.T) { checkReplaceSimple[int32](t, eng) })
	t.Run("int64", func(t *testing.T) { checkReplaceSimple[int64](t, eng) })
	t.Run("uint16", func(t *testing.T) { checkReplaceSimple[uint16](t, eng) })
	t.Run("uint32", func(t *testing.T) { checkReplaceSimple[uint32](t, eng) })
	t.Run("uint64", func(t *testing.T) { checkReplaceSimple[uint64](t, eng) })
	t.Run("float32", func(t *testing.T) { checkReplaceSimple[float32](t, eng) })
	t.Run("float64", func(t *testing.T) { checkReplaceSimple[float64](t, eng) })
}

func checkReplaceCopySimple[T device.Element](t *testing.T, eng *device.Engine) {
	data := []T{1, 2, 1, 3, 2}
	want := []T{4, 5, 4, 3, 5}

	t.Run("host", func(t *testing.T) {
		src := vector.HostFrom(cloneSlice(data))
		dest := vector.NewHost[T](len(data))

		n, err := ReplaceCopy[T](dest, src, 1, 4)
		require.NoError(t, err)
		require.Equal(t, len(data), n)

		// Second pass replaces in place: dest is both source and
		// destination.
		n, err = ReplaceCopy[T](dest, dest, 2, 5)
		require.NoError(t, err)
		require.Equal(t, len(data), n)

		requireNear(t, want, dest.Data())
		requireNear(t, data, src.Data())
	})

	t.Run("device", func(t *testing.T) {
		src := vector.DeviceFrom(eng, data)
		defer src.Free()
		dest := vector.NewDevice[T](eng, len(data))
		defer dest.Free()

		n, err := ReplaceCopy[T](dest, src, 1, 4)
		require.NoError(t, err)
		require.Equal(t, len(data), n)

		n, err = ReplaceCopy[T](dest, dest, 2, 5)
		require.NoError(t, err)
		require.Equal(t, len(data), n)

		requireNear(t, want, deviceData(t, dest))
		requireNear(t, data, deviceData(t, src))
	})
}

func TestReplaceCopySimple(t *testing.T) {
	eng := utils.CreateTestDevice()
	defer eng.Free()

	t.Run("int16", func(t *testing.T) { checkReplaceCopySimple[int16](t, eng) })
	t.Run("int32", func(t *testing.T) { checkReplaceCopySimple[int32](t, eng) })
	t.Run("int64", func(t *testing.T) { checkReplaceCopySimple[int64](t, eng) })
	t.Run("uint16", func(t *testing.T) { checkReplaceCopySimple[uint16](t, eng) })
	t.Run("uint32", func(t *testing.T) { checkReplaceCopySimple[uint32](t, eng) })
	t.Run("uint64", func(t *testing.T) { checkReplaceCopySimple[uint64](t, eng) })
	t.Run("float32", func(t *testing.T) { checkReplaceCopySimple[float32](t, eng) })
	t.Run("float64", func(t *testing.T) { checkReplaceCopySimple[float64](t, eng) })
}

func checkReplaceIfSimple[T device.Element](t *testing.T, eng *device.Engine) {
	data := []T{1, 3, 4, 6, 5}
	want := []T{0, 0, 0, 6, 5}

	t.Run("host", func(t *testing.T) {
		v := vector.HostFrom(cloneSlice(data))
		require.NoError(t, ReplaceIf[T](v, LessThan[T]{Bound: 5}, 0))
		requireNear(t, want, v.Data())
	})

	t.Run("device", func(t *testing.T) {
		dv := vector.DeviceFrom(eng, data)
		defer dv.Free()
		require.NoError(t, ReplaceIf[T](dv, LessThan[T]{Bound: 5}, 0))
		requireNear(t, want, deviceData(t, dv))
	})

	// A predicate without a kernel expression forces the host staging
	// path for device vectors; the result must not change.
	t.Run("device-staged", func(t *testing.T) {
		dv := vector.DeviceFrom(eng, data)
		defer dv.Free()
		require.NoError(t, ReplaceIf[T](dv, predFunc[T](func(v T) bool { return v < 5 }), 0))
		requireNear(t, want, deviceData(t, dv))
	})
}

// predFunc adapts a func to Predicate without a kernel expression.
type predFunc[T device.Element] func(T) bool

func (f predFunc[T]) Test(v T) bool { return f(v) }

func TestReplaceIfSimple(t *testing.T) {
	eng := utils.CreateTestDevice()
	defer eng.Free()

	t.Run("int16", func(t *testing.T) { checkReplaceIfSimple[int16](t, eng) })
	t.Run("int32", func(t *testing.T) { checkReplaceIfSimple[int32](t, eng) })
	t.Run("int64", func(t *testing.T) { checkReplaceIfSimple[int64](t, eng) })
	t.Run("uint16", func(t *testing.T) { checkReplaceIfSimple[uint16](t, eng) })
	t.Run("uint32", func(t *testing.T) { checkReplaceIfSimple[uint32](t, eng) })
	t.Run("uint64", func(t *testing.T) { checkReplaceIfSimple[uint64](t, eng) })
	t.Run("float32", func(t *testing.T) { checkReplaceIfSimple[float32](t, eng) })
	t.Run("float64", func(t *testing.T) { checkReplaceIfSimple[float64](t, eng) })
}

func checkReplaceIfStencilSimple[T device.Element](t *testing.T, eng *device.Engine) {
	data := []T{1, 3, 4, 6, 5}
	stencil := []T{5, 4, 6, 3, 7}
	want := []T{1, 0, 4, 0, 5}

	t.Run("host", func(t *testing.T) {
		v := vector.HostFrom(cloneSlice(data))
		st := vector.HostFrom(cloneSlice(stencil))
		require.NoError(t, ReplaceIfStencil[T](v, st, LessThan[T]{Bound: 5}, 0))
		requireNear(t, want, v.Data())
	})

	t.Run("device", func(t *testing.T) {
		dv := vector.DeviceFrom(eng, data)
		defer dv.Free()
		st := vector.DeviceFrom(eng, stencil)
		defer st.Free()
		require.NoError(t, ReplaceIfStencil[T](dv, st, LessThan[T]{Bound: 5}, 0))
		requireNear(t, want, deviceData(t, dv))
	})
}

func TestReplaceIfStencilSimple(t *testing.T) {
	eng := utils.CreateTestDevice()
	defer eng.Free()

	t.Run("int16", func(t *testing.T) { checkReplaceIfStencilSimple[int16](t, eng) })
	t.Run("int32", func(t *testing.T) { checkReplaceIfStencilSimple[int32](t, eng) })
	t.Run("int64", func(t *testing.T) { checkReplaceIfStencilSimple[int64](t, eng) })
	t.Run("uint16", func(t *testing.T) { checkReplaceIfStencilSimple[uint16](t, eng) })
	t.Run("uint32", func(t *testing.T) { checkReplaceIfStencilSimple[uint32](t, eng) })
	t.Run("uint64", func(t *testing.T) { checkReplaceIfStencilSimple[uint64](t, eng) })
	t.Run("float32", func(t *testing.T) { checkReplaceIfStencilSimple[float32](t, eng) })
	t.Run("float64", func(t *testing.T) { checkReplaceIfStencilSimple[float64](t, eng) })
}

func checkReplaceCopyIfSimple[T device.Element](t *testing.T, eng *device.Engine) {
	data := []T{1, 3, 4, 6, 5}
	want := []T{0, 0, 0, 6, 5}

	t.Run("host", func(t *testing.T) {
		src := vector.HostFrom(cloneSlice(data))
		dest := vector.NewHost[T](len(data))
		n, err := ReplaceCopyIf[T](dest, src, LessThan[T]{Bound: 5}, 0)
		require.NoError(t, err)
		require.Equal(t, len(data), n)
		requireNear(t, want, dest.Data())
	})

	t.Run("device", func(t *testing.T) {
		src := vector.DeviceFrom(eng, data)
		defer src.Free()
		dest := vector.NewDevice[T](eng, len(data))
		defer dest.Free()
		n, err := ReplaceCopyIf[T](dest, src, LessThan[T]{Bound: 5}, 0)
		require.NoError(t, err)
		require.Equal(t, len(data), n)
		requireNear(t, want, deviceData(t, dest))
	})
}

func TestReplaceCopyIfSimple(t *testing.T) {
	eng := utils.CreateTestDevice()
	defer eng.Free()

	t.Run("int16", func(t *testing.T) { checkReplaceCopyIfSimple[int16](t, eng) })
	t.Run("int32", func(t *testing.T) { checkReplaceCopyIfSimple[int32](t, eng) })
	t.Run("int64", func(t *testing.T) { checkReplaceCopyIfSimple[int64](t, eng) })
	t.Run("uint16", func(t *testing.T) { checkReplaceCopyIfSimple[uint16](t, eng) })
	t.Run("uint32", func(t *testing.T) { checkReplaceCopyIfSimple[uint32](t, eng) })
	t.Run("uint64", func(t *testing.T) { checkReplaceCopyIfSimple[uint64](t, eng) })
	t.Run("float32", func(t *testing.T) { checkReplaceCopyIfSimple[float32](t, eng) })
	t.Run("float64", func(t *testing.T) { checkReplaceCopyIfSimple[float64](t, eng) })
}

func checkReplaceCopyIfStencilSimple[T device.Element](t *testing.T, eng *device.Engine) {
	data := []T{1, 3, 4, 6, 5}
	stencil := []T{1, 5, 4, 7, 8}
	want := []T{0, 3, 0, 6, 5}

	t.Run("host", func(t *testing.T) {
		src := vector.HostFrom(cloneSlice(data))
		st := vector.HostFrom(cloneSlice(stencil))
		dest := vector.NewHost[T](len(data))
		n, err := ReplaceCopyIfStencil[T](dest, src, st, LessThan[T]{Bound: 5}, 0)
		require.NoError(t, err)
		require.Equal(t, len(data), n)
		requireNear(t, want, dest.Data())
	})

	t.Run("device", func(t *testing.T) {
		src := vector.DeviceFrom(eng, data)
		defer src.Free()
		st := vector.DeviceFrom(eng, stencil)
		defer st.Free()
		dest := vector.NewDevice[T](eng, len(data))
		defer dest.Free()
		n, err := ReplaceCopyIfStencil[T](dest, src, st, LessThan[T]{Bound: 5}, 0)
		require.NoError(t, err)
		require.Equal(t, len(data), n)
		requireNear(t, want, deviceData(t, dest))
	})
}

func TestReplaceCopyIfStencilSimple(t *testing.T) {
	eng := utils.CreateTestDevice()
	defer eng.Free()

	t.Run("int16", func(t *testing.T) { checkReplaceCopyIfStencilSimple[int16](t, eng) })
	t.Run("int32", func(t *testing.T) { checkReplaceCopyIfStencilSimple[int32](t, eng) })
	t.Run("int64", func(t *testing.T) { checkReplaceCopyIfStencilSimple[int64](t, eng) })
	t.Run("uint16", func(t *testing.T) { checkReplaceCopyIfStencilSimple[uint16](t, eng) })
	t.Run("uint32", func(t *testing.T) { checkReplaceCopyIfStencilSimple[uint32](t, eng) })
	t.Run("uint64", func(t *testing.T) { checkReplaceCopyIfStencilSimple[uint64](t, eng) })
	t.Run("float32", func(t *testing.T) { checkReplaceCopyIfStencilSimple[float32](t, eng) })
	t.Run("float64", func(t *testing.T) { checkReplaceCopyIfStencilSimple[float64](t, eng) })
}
