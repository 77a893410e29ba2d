package buffer

import (
	"encoding/binary"
	"fmt"
)

// WriteUint8 writes a single byte to w.
func WriteUint8(w Writer, v uint8) (int64, error) {
	n, err := w.Write([]byte{v})
	return int64(n), requireN(n, 1, err)
}

// WriteUint16 writes v to w in little-endian order.
func WriteUint16(w Writer, v uint16) (int64, error) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	n, err := w.Write(b[:])
	return int64(n), requireN(n, 2, err)
}

// WriteUint32 writes v to w in little-endian order.
func WriteUint32(w Writer, v uint32) (int64, error) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	n, err := w.Write(b[:])
	return int64(n), requireN(n, 4, err)
}

// WriteUint64 writes v to w in little-endian order.
func WriteUint64(w Writer, v uint64) (int64, error) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	n, err := w.Write(b[:])
	return int64(n), requireN(n, 8, err)
}

// toU64 widens any of the numeric kinds accepted by the WriteAsX/ReadAsX
// family to a uint64, preserving bit pattern for floats.
func toU64(v any) uint64 {
	switch x := v.(type) {
	case uint:
		return uint64(x)
	case uint64:
		return x
	case int:
		return uint64(x)
	case int64:
		return uint64(x)
	case uint32:
		return uint64(x)
	case int32:
		return uint64(x)
	case uint16:
		return uint64(x)
	case int16:
		return uint64(x)
	case uint8:
		return uint64(x)
	case int8:
		return uint64(x)
	case float64:
		return mathFloat64bits(x)
	case float32:
		return uint64(mathFloat32bits(x))
	default:
		panic(fmt.Sprintf("buffer: unsupported numeric type %T", v))
	}
}

// WriteAsUint8 writes v, of any 8-bit-wide numeric type, as a uint8.
func WriteAsUint8[T ~uint8 | ~int8](w Writer, v T) (int64, error) {
	return WriteUint8(w, uint8(toU64(any(v))))
}

// WriteAsUint16 writes v, of any 16-bit-wide numeric type, as a little-endian uint16.
func WriteAsUint16[T ~uint16 | ~int16](w Writer, v T) (int64, error) {
	return WriteUint16(w, uint16(toU64(any(v))))
}

// WriteAsUint32 writes v, of any numeric type up to 32 bits wide, as a little-endian uint32.
func WriteAsUint32[T ~uint32 | ~int32 | ~float32](w Writer, v T) (int64, error) {
	return WriteUint32(w, uint32(toU64(any(v))))
}

// WriteAsUint64 writes v, of any numeric type up to 64 bits wide, as a little-endian
// uint64. It is primarily used to write lengths (e.g. slice sizes) portably.
func WriteAsUint64[T ~uint | ~uint64 | ~int | ~int64 | ~float64](w Writer, v T) (int64, error) {
	return WriteUint64(w, toU64(any(v)))
}

// WriteAsUint8Slice writes each element of v as a byte.
func WriteAsUint8Slice[T ~uint8 | ~int8](w Writer, v []T) (n int64, err error) {
	for i := range v {
		var inc int64
		if inc, err = WriteAsUint8(w, v[i]); err != nil {
			return n + inc, fmt.Errorf("WriteAsUint8Slice: %w", err)
		}
		n += inc
	}
	return
}

// WriteAsUint16Slice writes each element of v as a little-endian uint16.
func WriteAsUint16Slice[T ~uint16 | ~int16](w Writer, v []T) (n int64, err error) {
	for i := range v {
		var inc int64
		if inc, err = WriteAsUint16(w, v[i]); err != nil {
			return n + inc, fmt.Errorf("WriteAsUint16Slice: %w", err)
		}
		n += inc
	}
	return
}

// WriteAsUint32Slice writes each element of v as a little-endian uint32.
func WriteAsUint32Slice[T ~uint32 | ~int32 | ~float32](w Writer, v []T) (n int64, err error) {
	for i := range v {
		var inc int64
		if inc, err = WriteAsUint32(w, v[i]); err != nil {
			return n + inc, fmt.Errorf("WriteAsUint32Slice: %w", err)
		}
		n += inc
	}
	return
}

// WriteAsUint64Slice writes each element of v as a little-endian uint64.
func WriteAsUint64Slice[T ~uint | ~uint64 | ~int | ~int64 | ~float64](w Writer, v []T) (n int64, err error) {
	for i := range v {
		var inc int64
		if inc, err = WriteAsUint64(w, v[i]); err != nil {
			return n + inc, fmt.Errorf("WriteAsUint64Slice: %w", err)
		}
		n += inc
	}
	return
}
