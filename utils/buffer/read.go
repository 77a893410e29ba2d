package buffer

import (
	"encoding/binary"
	"fmt"
)

// ReadUint8 reads a single byte from r.
func ReadUint8(r Reader, v *uint8) (int64, error) {
	var b [1]byte
	n, err := r.Read(b[:])
	if err := requireN(n, 1, err); err != nil {
		return int64(n), err
	}
	*v = b[0]
	return int64(n), nil
}

// ReadUint16 reads a little-endian uint16 from r.
func ReadUint16(r Reader, v *uint16) (int64, error) {
	var b [2]byte
	n, err := r.Read(b[:])
	if err := requireN(n, 2, err); err != nil {
		return int64(n), err
	}
	*v = binary.LittleEndian.Uint16(b[:])
	return int64(n), nil
}

// ReadUint32 reads a little-endian uint32 from r.
func ReadUint32(r Reader, v *uint32) (int64, error) {
	var b [4]byte
	n, err := r.Read(b[:])
	if err := requireN(n, 4, err); err != nil {
		return int64(n), err
	}
	*v = binary.LittleEndian.Uint32(b[:])
	return int64(n), nil
}

// ReadUint64 reads a little-endian uint64 from r.
func ReadUint64(r Reader, v *uint64) (int64, error) {
	var b [8]byte
	n, err := r.Read(b[:])
	if err := requireN(n, 8, err); err != nil {
		return int64(n), err
	}
	*v = binary.LittleEndian.Uint64(b[:])
	return int64(n), nil
}

func fromU64[T any](u uint64) T {
	var zero T
	switch any(zero).(type) {
	case uint:
		return any(uint(u)).(T)
	case uint64:
		return any(u).(T)
	case int:
		return any(int(u)).(T)
	case int64:
		return any(int64(u)).(T)
	case uint32:
		return any(uint32(u)).(T)
	case int32:
		return any(int32(u)).(T)
	case uint16:
		return any(uint16(u)).(T)
	case int16:
		return any(int16(u)).(T)
	case uint8:
		return any(uint8(u)).(T)
	case int8:
		return any(int8(u)).(T)
	case float64:
		return any(mathFloat64frombits(u)).(T)
	case float32:
		return any(mathFloat32frombits(uint32(u))).(T)
	default:
		panic(fmt.Sprintf("buffer: unsupported numeric type %T", zero))
	}
}

// ReadAsUint8 reads a uint8 from r into v, of any 8-bit-wide numeric type.
func ReadAsUint8[T ~uint8 | ~int8](r Reader, v *T) (int64, error) {
	var u uint8
	n, err := ReadUint8(r, &u)
	if err != nil {
		return n, err
	}
	*v = fromU64[T](uint64(u))
	return n, nil
}

// ReadAsUint16 reads a little-endian uint16 from r into v.
func ReadAsUint16[T ~uint16 | ~int16](r Reader, v *T) (int64, error) {
	var u uint16
	n, err := ReadUint16(r, &u)
	if err != nil {
		return n, err
	}
	*v = fromU64[T](uint64(u))
	return n, nil
}

// ReadAsUint32 reads a little-endian uint32 from r into v.
func ReadAsUint32[T ~uint32 | ~int32 | ~float32](r Reader, v *T) (int64, error) {
	var u uint32
	n, err := ReadUint32(r, &u)
	if err != nil {
		return n, err
	}
	*v = fromU64[T](uint64(u))
	return n, nil
}

// ReadAsUint64 reads a little-endian uint64 from r into v, of any numeric
// type up to 64 bits wide.
func ReadAsUint64[T ~uint | ~uint64 | ~int | ~int64 | ~float64](r Reader, v *T) (int64, error) {
	var u uint64
	n, err := ReadUint64(r, &u)
	if err != nil {
		return n, err
	}
	*v = fromU64[T](u)
	return n, nil
}

// ReadAsUint8Slice reads len(v) bytes from r into v.
func ReadAsUint8Slice[T ~uint8 | ~int8](r Reader, v []T) (n int64, err error) {
	for i := range v {
		var inc int64
		if inc, err = ReadAsUint8(r, &v[i]); err != nil {
			return n + inc, fmt.Errorf("ReadAsUint8Slice: %w", err)
		}
		n += inc
	}
	return
}

// ReadAsUint16Slice reads len(v) little-endian uint16s from r into v.
func ReadAsUint16Slice[T ~uint16 | ~int16](r Reader, v []T) (n int64, err error) {
	for i := range v {
		var inc int64
		if inc, err = ReadAsUint16(r, &v[i]); err != nil {
			return n + inc, fmt.Errorf("ReadAsUint16Slice: %w", err)
		}
		n += inc
	}
	return
}

// ReadAsUint32Slice reads len(v) little-endian uint32s from r into v.
func ReadAsUint32Slice[T ~uint32 | ~int32 | ~float32](r Reader, v []T) (n int64, err error) {
	for i := range v {
		var inc int64
		if inc, err = ReadAsUint32(r, &v[i]); err != nil {
			return n + inc, fmt.Errorf("ReadAsUint32Slice: %w", err)
		}
		n += inc
	}
	return
}

// ReadAsUint64Slice reads len(v) little-endian uint64s from r into v.
func ReadAsUint64Slice[T ~uint | ~uint64 | ~int | ~int64 | ~float64](r Reader, v []T) (n int64, err error) {
	for i := range v {
		var inc int64
		if inc, err = ReadAsUint64(r, &v[i]); err != nil {
			return n + inc, fmt.Errorf("ReadAsUint64Slice: %w", err)
		}
		n += inc
	}
	return
}

// EqualAsUint8Slice reports whether a and b are element-wise equal.
func EqualAsUint8Slice[T ~uint8 | ~int8](a, b []T) bool {
	return equalSlice(a, b)
}

// EqualAsUint16Slice reports whether a and b are element-wise equal.
func EqualAsUint16Slice[T ~uint16 | ~int16](a, b []T) bool {
	return equalSlice(a, b)
}

// EqualAsUint32Slice reports whether a and b are element-wise equal.
func EqualAsUint32Slice[T ~uint32 | ~int32 | ~float32](a, b []T) bool {
	return equalSlice(a, b)
}

// EqualAsUint64Slice reports whether a and b are element-wise equal.
func EqualAsUint64Slice[T ~uint | ~uint64 | ~int | ~int64 | ~float64](a, b []T) bool {
	return equalSlice(a, b)
}

func equalSlice[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
