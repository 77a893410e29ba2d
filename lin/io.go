package lin

import (
	"fmt"
	"io"

	"github.com/dendisuhubdy/circ-obfuscation/ix"
	"github.com/dendisuhubdy/circ-obfuscation/mmap"
)

// WriteTo serializes e as its level followed by its ciphertext. The
// ciphertext must itself implement io.WriterTo — true of the dummy backend,
// and expected of any backend meant to round-trip an obfuscation to disk.
func (e Enc) WriteTo(w io.Writer) (n int64, err error) {
	n1, err := e.Level.WriteTo(w)
	if err != nil {
		return n1, fmt.Errorf("lin: encoding level: %w", err)
	}
	wt, ok := e.CT.(io.WriterTo)
	if !ok {
		return n1, fmt.Errorf("%w: lin: ciphertext type %T does not support serialization", ErrMalformedInput, e.CT)
	}
	n2, err := wt.WriteTo(w)
	if err != nil {
		return n1 + n2, fmt.Errorf("lin: encoding ciphertext: %w", err)
	}
	return n1 + n2, nil
}

// ReadFrom deserializes an Enc written by WriteTo, decoding the ciphertext
// via decode.
func (e *Enc) ReadFrom(r io.Reader, decode mmap.Decoder) (n int64, err error) {
	lvl := ix.NewLevel()
	n1, err := lvl.ReadFrom(r)
	if err != nil {
		return n1, fmt.Errorf("lin: encoding level: %w", err)
	}
	ct, err := decode.DecodeCiphertext(r)
	if err != nil {
		return n1, fmt.Errorf("lin: encoding ciphertext: %w", err)
	}
	e.Level = lvl
	e.CT = ct
	return n1, nil
}

// WriteTo serializes the complete LIN encoding family, in the same field
// order original_source's _obfuscation_fwrite uses (public params are the
// caller's responsibility, mirroring that function leaving sp/pp
// construction to its own vtable call).
func (o *Obfuscation) WriteTo(w io.Writer) (n int64, err error) {
	write := func(e Enc) error {
		inc, werr := e.WriteTo(w)
		n += inc
		return werr
	}

	if err = write(o.Zstar); err != nil {
		return n, err
	}

	op := o.Op
	for k := 0; k < op.C; k++ {
		for s := 0; s < op.Q; s++ {
			if err = write(o.Rks[k][s]); err != nil {
				return n, err
			}
		}
	}
	for k := 0; k < op.C; k++ {
		for s := 0; s < op.Q; s++ {
			for j := 0; j < op.Ell; j++ {
				if err = write(o.Zksj[k][s][j]); err != nil {
					return n, err
				}
			}
		}
	}

	if err = write(o.Rc); err != nil {
		return n, err
	}
	for j := 0; j < op.M; j++ {
		if err = write(o.Zcj[j]); err != nil {
			return n, err
		}
	}

	for k := 0; k < op.C; k++ {
		for s := 0; s < op.Q; s++ {
			for o2 := 0; o2 < op.Gamma; o2++ {
				if err = write(o.Rhatkso[k][s][o2]); err != nil {
					return n, err
				}
				if err = write(o.Zhatkso[k][s][o2]); err != nil {
					return n, err
				}
			}
		}
	}

	for o2 := 0; o2 < op.Gamma; o2++ {
		if err = write(o.Rhato[o2]); err != nil {
			return n, err
		}
		if err = write(o.Zhato[o2]); err != nil {
			return n, err
		}
	}

	for o2 := 0; o2 < op.Gamma; o2++ {
		if err = write(o.Rbaro[o2]); err != nil {
			return n, err
		}
		if err = write(o.Zbaro[o2]); err != nil {
			return n, err
		}
	}

	return n, nil
}

// ReadFrom deserializes a LIN encoding family into o, which must already
// have been allocated by New with the same op as the writer used.
func (o *Obfuscation) ReadFrom(r io.Reader, decode mmap.Decoder) (n int64, err error) {
	read := func(e *Enc) error {
		inc, rerr := e.ReadFrom(r, decode)
		n += inc
		return rerr
	}

	if err = read(&o.Zstar); err != nil {
		return n, err
	}

	op := o.Op
	for k := 0; k < op.C; k++ {
		for s := 0; s < op.Q; s++ {
			if err = read(&o.Rks[k][s]); err != nil {
				return n, err
			}
		}
	}
	for k := 0; k < op.C; k++ {
		for s := 0; s < op.Q; s++ {
			for j := 0; j < op.Ell; j++ {
				if err = read(&o.Zksj[k][s][j]); err != nil {
					return n, err
				}
			}
		}
	}

	if err = read(&o.Rc); err != nil {
		return n, err
	}
	for j := 0; j < op.M; j++ {
		if err = read(&o.Zcj[j]); err != nil {
			return n, err
		}
	}

	for k := 0; k < op.C; k++ {
		for s := 0; s < op.Q; s++ {
			for o2 := 0; o2 < op.Gamma; o2++ {
				if err = read(&o.Rhatkso[k][s][o2]); err != nil {
					return n, err
				}
				if err = read(&o.Zhatkso[k][s][o2]); err != nil {
					return n, err
				}
			}
		}
	}

	for o2 := 0; o2 < op.Gamma; o2++ {
		if err = read(&o.Rhato[o2]); err != nil {
			return n, err
		}
		if err = read(&o.Zhato[o2]); err != nil {
			return n, err
		}
	}

	for o2 := 0; o2 < op.Gamma; o2++ {
		if err = read(&o.Rbaro[o2]); err != nil {
			return n, err
		}
		if err = read(&o.Zbaro[o2]); err != nil {
			return n, err
		}
	}

	return n, nil
}
