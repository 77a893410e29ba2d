package mmap

import (
	"bufio"
	"fmt"
	"io"
	"math/big"

	"github.com/dendisuhubdy/circ-obfuscation/utils/buffer"
)

// Decoder is implemented by backends whose ciphertexts can be parsed back
// from bytes written by WriteTo, independent of any particular index-set
// scheme. spec.md §6: "Encodings delegate to the backend" for framing.
type Decoder interface {
	DecodeCiphertext(r io.Reader) (Ciphertext, error)
}

// WriteTo serializes a dummy ciphertext as a length-prefixed list of
// residues followed by the accumulated degree.
func (c *dummyCiphertext) WriteTo(w io.Writer) (n int64, err error) {
	switch bw := w.(type) {
	case buffer.Writer:
		var inc int64
		if inc, err = buffer.WriteAsUint64[int](bw, len(c.vals)); err != nil {
			return n + inc, fmt.Errorf("mmap.dummyCiphertext.WriteTo: %w", err)
		}
		n += inc

		for _, v := range c.vals {
			b := v.Bytes()
			if inc, err = buffer.WriteAsUint64[int](bw, len(b)); err != nil {
				return n + inc, fmt.Errorf("mmap.dummyCiphertext.WriteTo: %w", err)
			}
			n += inc
			m, werr := bw.Write(b)
			n += int64(m)
			if werr != nil {
				return n, fmt.Errorf("mmap.dummyCiphertext.WriteTo: %w", werr)
			}
		}

		if inc, err = buffer.WriteAsUint64[int](bw, int(c.degree)); err != nil {
			return n + inc, fmt.Errorf("mmap.dummyCiphertext.WriteTo: %w", err)
		}
		n += inc

		return n, bw.Flush()

	default:
		return c.WriteTo(bufio.NewWriter(w))
	}
}

// DecodeCiphertext parses bytes written by (*dummyCiphertext).WriteTo.
func (Dummy) DecodeCiphertext(r io.Reader) (Ciphertext, error) {
	br, ok := r.(buffer.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	var count int
	if _, err := buffer.ReadAsUint64[int](br, &count); err != nil {
		return nil, fmt.Errorf("mmap.Dummy.DecodeCiphertext: %w", err)
	}

	vals := make([]*big.Int, count)
	for i := range vals {
		var blen int
		if _, err := buffer.ReadAsUint64[int](br, &blen); err != nil {
			return nil, fmt.Errorf("mmap.Dummy.DecodeCiphertext: %w", err)
		}
		b := make([]byte, blen)
		if _, err := io.ReadFull(br, b); err != nil {
			return nil, fmt.Errorf("mmap.Dummy.DecodeCiphertext: %w", err)
		}
		vals[i] = new(big.Int).SetBytes(b)
	}

	var degree int
	if _, err := buffer.ReadAsUint64[int](br, &degree); err != nil {
		return nil, fmt.Errorf("mmap.Dummy.DecodeCiphertext: %w", err)
	}

	return &dummyCiphertext{vals: vals, degree: uint(degree)}, nil
}
