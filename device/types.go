// Package device manages OCCA devices and the generated kernels that run
// vector algorithms on them. It wraps gocca with a kernel cache so each
// operation/type combination is compiled once per Engine.
package device

import "unsafe"

// Element is the set of element types the device kernels support.
type Element interface {
	~int16 | ~int32 | ~int64 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// DataType identifies the on-device representation of an element type.
type DataType int

const (
	Int16 DataType = iota + 1
	Int32
	Int64
	Uint16
	Uint32
	Uint64
	Float32
	Float64
)

// String returns the Go-style name, used to suffix generated kernel names.
func (dt DataType) String() string {
	switch dt {
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// CTypeName returns the scalar type name used in generated OKL source.
func (dt DataType) CTypeName() string {
	switch dt {
	case Int16:
		return "short"
	case Int32:
		return "int"
	case Int64:
		return "long long"
	case Uint16:
		return "unsigned short"
	case Uint32:
		return "unsigned int"
	case Uint64:
		return "unsigned long long"
	case Float32:
		return "float"
	case Float64:
		return "double"
	default:
		return ""
	}
}

// Size returns the element size in bytes.
func (dt DataType) Size() int64 {
	switch dt {
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// TypeOf maps a Go element type to its DataType. The second result is
// false for named types derived from the primitives; callers fall back
// to host execution for those.
func TypeOf[T Element]() (DataType, bool) {
	var zero T
	switch any(zero).(type) {
	case int16:
		return Int16, true
	case int32:
		return Int32, true
	case int64:
		return Int64, true
	case uint16:
		return Uint16, true
	case uint32:
		return Uint32, true
	case uint64:
		return Uint64, true
	case float32:
		return Float32, true
	case float64:
		return Float64, true
	}
	return 0, false
}

// SizeOf returns the in-memory size of an element in bytes.
func SizeOf[T Element]() int64 {
	var zero T
	return int64(unsafe.Sizeof(zero))
}
