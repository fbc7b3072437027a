package vector

import (
	"fmt"
	"unsafe"

	"github.com/notargets/VecKernel/device"
	"github.com/notargets/gocca"
)

// Device is a vector whose elements live in OCCA device memory. Bulk
// transfers go through CopyTo/CopyFrom; At and Set move single
// elements and are intended for inspection, not hot loops.
type Device[T Element] struct {
	eng *device.Engine
	mem *gocca.OCCAMemory
	n   int
}

// NewDevice allocates a zero-initialized device vector of length n.
func NewDevice[T Element](eng *device.Engine, n int) *Device[T] {
	d := &Device[T]{eng: eng, n: n}
	if n > 0 {
		zeros := make([]T, n)
		d.mem = eng.Malloc(int64(n)*device.SizeOf[T](), unsafe.Pointer(&zeros[0]))
	}
	return d
}

// DeviceFrom allocates a device vector holding a copy of data.
func DeviceFrom[T Element](eng *device.Engine, data []T) *Device[T] {
	d := &Device[T]{eng: eng, n: len(data)}
	if len(data) > 0 {
		d.mem = eng.Malloc(int64(len(data))*device.SizeOf[T](), unsafe.Pointer(&data[0]))
	}
	return d
}

func (d *Device[T]) Len() int { return d.n }

func (d *Device[T]) At(i int) T {
	if i < 0 || i >= d.n {
		panic(fmt.Sprintf("vector: index %d out of range [0:%d]", i, d.n))
	}
	var out T
	size := device.SizeOf[T]()
	d.mem.CopyToWithOffset(unsafe.Pointer(&out), size, int64(i)*size)
	return out
}

func (d *Device[T]) Set(i int, v T) {
	if i < 0 || i >= d.n {
		panic(fmt.Sprintf("vector: index %d out of range [0:%d]", i, d.n))
	}
	size := device.SizeOf[T]()
	d.mem.CopyFromWithOffset(unsafe.Pointer(&v), size, int64(i)*size)
}

func (d *Device[T]) System() System { return d.eng }

// DeviceEngine returns the engine the storage was allocated on.
func (d *Device[T]) DeviceEngine() *device.Engine { return d.eng }

// DeviceMemory returns the raw device allocation.
func (d *Device[T]) DeviceMemory() *gocca.OCCAMemory { return d.mem }

func (d *Device[T]) CopyTo(dst []T) error {
	if len(dst) > d.n {
		return fmt.Errorf("copy of %d elements from device vector of %d: %w",
			len(dst), d.n, ErrLengthMismatch)
	}
	if len(dst) == 0 {
		return nil
	}
	d.mem.CopyTo(unsafe.Pointer(&dst[0]), int64(len(dst))*device.SizeOf[T]())
	return nil
}

func (d *Device[T]) CopyFrom(src []T) error {
	if len(src) > d.n {
		return fmt.Errorf("copy of %d elements into device vector of %d: %w",
			len(src), d.n, ErrLengthMismatch)
	}
	if len(src) == 0 {
		return nil
	}
	d.mem.CopyFrom(unsafe.Pointer(&src[0]), int64(len(src))*device.SizeOf[T]())
	return nil
}

// Free releases the device allocation. The vector must not be used
// afterwards.
func (d *Device[T]) Free() {
	if d.mem != nil {
		d.mem.Free()
		d.mem = nil
	}
}
