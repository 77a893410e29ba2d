package ix

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dendisuhubdy/circ-obfuscation/utils/buffer"
)

// BinarySize returns the serialized size of l in bytes.
func (l *Level) BinarySize() int {
	return 8 + len(l.m)*(1+8+8+8+8)
}

// WriteTo serializes l as a length-prefixed, lexicographically sorted list
// of (kind, k, s, o, value) tuples, mirroring ix.Set.WriteTo.
func (l *Level) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		slots := l.slots()

		var inc int64
		if inc, err = buffer.WriteAsUint64[int](w, len(slots)); err != nil {
			return n + inc, fmt.Errorf("ix.Level.WriteTo: %w", err)
		}
		n += inc

		for _, slot := range slots {
			if inc, err = buffer.WriteUint8(w, uint8(slot.Kind)); err != nil {
				return n + inc, fmt.Errorf("ix.Level.WriteTo: %w", err)
			}
			n += inc

			if inc, err = buffer.WriteAsUint64[int](w, slot.K); err != nil {
				return n + inc, fmt.Errorf("ix.Level.WriteTo: %w", err)
			}
			n += inc

			if inc, err = buffer.WriteAsUint64[int](w, slot.S); err != nil {
				return n + inc, fmt.Errorf("ix.Level.WriteTo: %w", err)
			}
			n += inc

			if inc, err = buffer.WriteAsUint64[int](w, slot.O); err != nil {
				return n + inc, fmt.Errorf("ix.Level.WriteTo: %w", err)
			}
			n += inc

			if inc, err = buffer.WriteUint64(w, l.Get(slot)); err != nil {
				return n + inc, fmt.Errorf("ix.Level.WriteTo: %w", err)
			}
			n += inc
		}

		return n, w.Flush()

	default:
		return l.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom deserializes l from the format written by WriteTo.
func (l *Level) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		l.m = make(map[LevelSlot]uint64)

		var size int
		var inc int64
		if inc, err = buffer.ReadAsUint64[int](r, &size); err != nil {
			return n + inc, fmt.Errorf("ix.Level.ReadFrom: %w", err)
		}
		n += inc

		for i := 0; i < size; i++ {
			var kind uint8
			if inc, err = buffer.ReadUint8(r, &kind); err != nil {
				return n + inc, fmt.Errorf("ix.Level.ReadFrom: %w", err)
			}
			n += inc

			var k, s, o int
			if inc, err = buffer.ReadAsUint64[int](r, &k); err != nil {
				return n + inc, fmt.Errorf("ix.Level.ReadFrom: %w", err)
			}
			n += inc

			if inc, err = buffer.ReadAsUint64[int](r, &s); err != nil {
				return n + inc, fmt.Errorf("ix.Level.ReadFrom: %w", err)
			}
			n += inc

			if inc, err = buffer.ReadAsUint64[int](r, &o); err != nil {
				return n + inc, fmt.Errorf("ix.Level.ReadFrom: %w", err)
			}
			n += inc

			var v uint64
			if inc, err = buffer.ReadUint64(r, &v); err != nil {
				return n + inc, fmt.Errorf("ix.Level.ReadFrom: %w", err)
			}
			n += inc

			l.Set(LevelSlot{Kind: LevelKind(kind), K: k, S: s, O: o}, v)
		}

		return n, nil

	default:
		return l.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (l *Level) MarshalBinary() ([]byte, error) {
	buf := buffer.NewBufferSize(l.BinarySize())
	_, err := l.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (l *Level) UnmarshalBinary(p []byte) error {
	_, err := l.ReadFrom(buffer.NewBuffer(p))
	return err
}
