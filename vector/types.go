// Package vector provides host- and device-resident containers for the
// algorithm package. Every vector reports an execution System; the
// algorithms dispatch on that tag, so moving a computation between
// backends is a matter of which container (or retag wrapper) holds the
// data.
package vector

import (
	"errors"
	"runtime"

	"github.com/notargets/VecKernel/device"
	"github.com/notargets/gocca"
)

// Element is the set of supported element types.
type Element = device.Element

// ErrLengthMismatch is returned when a bulk copy would read or write
// past the end of a vector.
var ErrLengthMismatch = errors.New("vector length mismatch")

// System tags an execution backend. The built-in systems are Seq, Par
// and *device.Engine; user-defined systems participate in dispatch by
// implementing the hook interfaces in the algo package.
type System interface {
	Name() string
}

type seqSystem struct{}

func (seqSystem) Name() string { return "seq" }

type parSystem struct{}

func (parSystem) Name() string { return "par" }

// Workers reports the chunk-loop width. Systems exposing Workers > 1
// get chunked parallel host execution.
func (parSystem) Workers() int { return runtime.GOMAXPROCS(0) }

var (
	// Seq runs host loops on the calling goroutine.
	Seq System = seqSystem{}

	// Par runs host loops chunked across GOMAXPROCS goroutines.
	Par System = parSystem{}
)

// Reader is the read side of a vector.
type Reader[T Element] interface {
	Len() int
	At(i int) T
	// CopyTo fills dst from the front of the vector. It fails if dst
	// is longer than the vector.
	CopyTo(dst []T) error
	System() System
}

// Mutable is a vector that can be written.
type Mutable[T Element] interface {
	Reader[T]
	Set(i int, v T)
	// CopyFrom overwrites the front of the vector from src. It fails
	// if src is longer than the vector.
	CopyFrom(src []T) error
}

// SliceBacked is implemented by vectors whose storage is a Go slice.
// The algorithms use it to work in place instead of staging a copy.
type SliceBacked[T Element] interface {
	Data() []T
}

// DeviceBacked is implemented by vectors whose storage lives in OCCA
// device memory.
type DeviceBacked interface {
	DeviceEngine() *device.Engine
	DeviceMemory() *gocca.OCCAMemory
}

// WriteDiscarder marks vectors that drop writes, such as Discard.
type WriteDiscarder interface {
	DiscardsWrites() bool
}

// IsDiscard reports whether v drops writes.
func IsDiscard(v any) bool {
	d, ok := v.(WriteDiscarder)
	return ok && d.DiscardsWrites()
}
