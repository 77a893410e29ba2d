package ix

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dendisuhubdy/circ-obfuscation/utils/buffer"
)

// BinarySize returns the serialized size of ix in bytes.
func (ix *Set) BinarySize() int {
	return 8 + len(ix.m)*(1+8+8+8)
}

// WriteTo serializes ix as a length-prefixed, lexicographically sorted list
// of (kind, k, s, value) tuples, giving a byte-exact, deterministic encoding
// as required by the index-set "lex-deterministic serialization" invariant.
func (ix *Set) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		slots := ix.slots()

		var inc int64
		if inc, err = buffer.WriteAsUint64[int](w, len(slots)); err != nil {
			return n + inc, fmt.Errorf("ix.Set.WriteTo: %w", err)
		}
		n += inc

		for _, slot := range slots {
			if inc, err = buffer.WriteUint8(w, uint8(slot.Kind)); err != nil {
				return n + inc, fmt.Errorf("ix.Set.WriteTo: %w", err)
			}
			n += inc

			if inc, err = buffer.WriteAsUint64[int](w, slot.K); err != nil {
				return n + inc, fmt.Errorf("ix.Set.WriteTo: %w", err)
			}
			n += inc

			if inc, err = buffer.WriteAsUint64[int](w, slot.S); err != nil {
				return n + inc, fmt.Errorf("ix.Set.WriteTo: %w", err)
			}
			n += inc

			if inc, err = buffer.WriteUint64(w, ix.Get(slot)); err != nil {
				return n + inc, fmt.Errorf("ix.Set.WriteTo: %w", err)
			}
			n += inc
		}

		return n, w.Flush()

	default:
		return ix.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom deserializes ix from the format written by WriteTo.
func (ix *Set) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		ix.m = make(map[Slot]uint64)

		var size int
		var inc int64
		if inc, err = buffer.ReadAsUint64[int](r, &size); err != nil {
			return n + inc, fmt.Errorf("ix.Set.ReadFrom: %w", err)
		}
		n += inc

		for i := 0; i < size; i++ {
			var kind uint8
			if inc, err = buffer.ReadUint8(r, &kind); err != nil {
				return n + inc, fmt.Errorf("ix.Set.ReadFrom: %w", err)
			}
			n += inc

			var k, s int
			if inc, err = buffer.ReadAsUint64[int](r, &k); err != nil {
				return n + inc, fmt.Errorf("ix.Set.ReadFrom: %w", err)
			}
			n += inc

			if inc, err = buffer.ReadAsUint64[int](r, &s); err != nil {
				return n + inc, fmt.Errorf("ix.Set.ReadFrom: %w", err)
			}
			n += inc

			var v uint64
			if inc, err = buffer.ReadUint64(r, &v); err != nil {
				return n + inc, fmt.Errorf("ix.Set.ReadFrom: %w", err)
			}
			n += inc

			ix.Set(Slot{Kind: Kind(kind), K: k, S: s}, v)
		}

		return n, nil

	default:
		return ix.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (ix *Set) MarshalBinary() ([]byte, error) {
	buf := buffer.NewBufferSize(ix.BinarySize())
	_, err := ix.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (ix *Set) UnmarshalBinary(p []byte) error {
	_, err := ix.ReadFrom(buffer.NewBuffer(p))
	return err
}
