package lz

import (
	"fmt"
	"io"

	"github.com/dendisuhubdy/circ-obfuscation/ix"
	"github.com/dendisuhubdy/circ-obfuscation/mmap"
)

// WriteTo serializes e as its index set followed by its ciphertext.
func (e Enc) WriteTo(w io.Writer) (n int64, err error) {
	n1, err := e.Set.WriteTo(w)
	if err != nil {
		return n1, fmt.Errorf("lz: encoding index set: %w", err)
	}
	wt, ok := e.CT.(io.WriterTo)
	if !ok {
		return n1, fmt.Errorf("%w: lz: ciphertext type %T does not support serialization", ErrMalformedInput, e.CT)
	}
	n2, err := wt.WriteTo(w)
	if err != nil {
		return n1 + n2, fmt.Errorf("lz: encoding ciphertext: %w", err)
	}
	return n1 + n2, nil
}

// ReadFrom deserializes an Enc written by WriteTo, decoding the ciphertext
// via decode.
func (e *Enc) ReadFrom(r io.Reader, decode mmap.Decoder) (n int64, err error) {
	set := ix.New()
	n1, err := set.ReadFrom(r)
	if err != nil {
		return n1, fmt.Errorf("lz: encoding index set: %w", err)
	}
	ct, err := decode.DecodeCiphertext(r)
	if err != nil {
		return n1, fmt.Errorf("lz: encoding ciphertext: %w", err)
	}
	e.Set = set
	e.CT = ct
	return n1, nil
}

// WriteTo serializes the complete LZ encoding family, in the same field
// order original_source's _fwrite uses (public params are the caller's
// responsibility).
func (o *Obfuscation) WriteTo(w io.Writer) (n int64, err error) {
	write := func(e Enc) error {
		inc, werr := e.WriteTo(w)
		n += inc
		return werr
	}

	op := o.Op
	for k := 0; k < op.C; k++ {
		for s := 0; s < op.Q; s++ {
			for j := 0; j < op.Ell; j++ {
				if err = write(o.Shat[k][s][j]); err != nil {
					return n, err
				}
			}
			for p := 0; p < op.NPowers; p++ {
				if err = write(o.Uhat[k][s][p]); err != nil {
					return n, err
				}
			}
			for out := 0; out < op.Gamma; out++ {
				if err = write(o.Zhat[k][s][out]); err != nil {
					return n, err
				}
				if err = write(o.What[k][s][out]); err != nil {
					return n, err
				}
			}
		}
	}
	for i := 0; i < op.M; i++ {
		if err = write(o.Yhat[i]); err != nil {
			return n, err
		}
	}
	for p := 0; p < op.NPowers; p++ {
		if err = write(o.Vhat[p]); err != nil {
			return n, err
		}
	}
	for out := 0; out < op.Gamma; out++ {
		if err = write(o.Chatstar[out]); err != nil {
			return n, err
		}
	}

	return n, nil
}

// ReadFrom deserializes a LZ encoding family into o, which must already have
// been allocated by New with the same op as the writer used.
func (o *Obfuscation) ReadFrom(r io.Reader, decode mmap.Decoder) (n int64, err error) {
	read := func(e *Enc) error {
		inc, rerr := e.ReadFrom(r, decode)
		n += inc
		return rerr
	}

	op := o.Op
	for k := 0; k < op.C; k++ {
		for s := 0; s < op.Q; s++ {
			for j := 0; j < op.Ell; j++ {
				if err = read(&o.Shat[k][s][j]); err != nil {
					return n, err
				}
			}
			for p := 0; p < op.NPowers; p++ {
				if err = read(&o.Uhat[k][s][p]); err != nil {
					return n, err
				}
			}
			for out := 0; out < op.Gamma; out++ {
				if err = read(&o.Zhat[k][s][out]); err != nil {
					return n, err
				}
				if err = read(&o.What[k][s][out]); err != nil {
					return n, err
				}
			}
		}
	}
	for i := 0; i < op.M; i++ {
		if err = read(&o.Yhat[i]); err != nil {
			return n, err
		}
	}
	for p := 0; p < op.NPowers; p++ {
		if err = read(&o.Vhat[p]); err != nil {
			return n, err
		}
	}
	for out := 0; out < op.Gamma; out++ {
		if err = read(&o.Chatstar[out]); err != nil {
			return n, err
		}
	}

	return n, nil
}
