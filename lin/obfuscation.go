// Package lin implements the "straddling set / Z*-raising" obfuscation
// scheme (spec.md §4.2 "LIN generator", §4.3 "LIN evaluation"): a generator
// that emits the R/Z-strand encoding family described in spec.md §3's
// "Obfuscation (LIN)" data model, and a parallel evaluator that walks a
// circuit combining those encodings per spec.md §4.3's wire algebra.
// Grounded line-for-line on original_source/src/lin/obfuscator.c.
package lin

import (
	"github.com/dendisuhubdy/circ-obfuscation/mmap"
)

// Obfuscation holds the complete LIN encoding family for one circuit
// (spec.md §3 "Obfuscation (LIN)"). Every field starts as its Go zero value
// ("opaque zero", per spec.md §6's New contract) and is filled in by
// Obfuscate.
type Obfuscation struct {
	Op OpParams
	PP mmap.PublicParams

	Zstar Enc

	Rks  [][]Enc   // [k][s]
	Zksj [][][]Enc // [k][s][j]

	Rc  Enc
	Zcj []Enc // [j], len m

	Rhatkso [][][]Enc // [k][s][o]
	Zhatkso [][][]Enc // [k][s][o]

	Rhato []Enc // [o]
	Zhato []Enc // [o]

	Rbaro []Enc // [o]
	Zbaro []Enc // [o]
}

// New allocates the encoding family's shape for op, with every table cell
// at its opaque (Go) zero value, per spec.md §6's "new(...) allocates the
// encoding family, initializing each to its opaque zero".
func New(op OpParams, pp mmap.PublicParams) *Obfuscation {
	c, q, ell, m, gamma := op.C, op.Q, op.Ell, op.M, op.Gamma

	o := &Obfuscation{Op: op, PP: pp}

	o.Rks = make([][]Enc, c)
	o.Zksj = make([][][]Enc, c)
	for k := 0; k < c; k++ {
		o.Rks[k] = make([]Enc, q)
		o.Zksj[k] = make([][]Enc, q)
		for s := 0; s < q; s++ {
			o.Zksj[k][s] = make([]Enc, ell)
		}
	}

	o.Zcj = make([]Enc, m)

	o.Rhatkso = make([][][]Enc, c)
	o.Zhatkso = make([][][]Enc, c)
	for k := 0; k < c; k++ {
		o.Rhatkso[k] = make([][]Enc, q)
		o.Zhatkso[k] = make([][]Enc, q)
		for s := 0; s < q; s++ {
			o.Rhatkso[k][s] = make([]Enc, gamma)
			o.Zhatkso[k][s] = make([]Enc, gamma)
		}
	}

	o.Rhato = make([]Enc, gamma)
	o.Zhato = make([]Enc, gamma)
	o.Rbaro = make([]Enc, gamma)
	o.Zbaro = make([]Enc, gamma)

	return o
}

// NumEncodings returns the total number of individual mmap ciphertexts this
// obfuscation holds, matching original_source's num_encodings(op).
func (op OpParams) NumEncodings() int {
	c, q, ell, m, gamma := op.C, op.Q, op.Ell, op.M, op.Gamma
	return 1 +
		c*q +
		c*q*ell +
		1 +
		m +
		c*q*gamma +
		c*q*gamma +
		gamma +
		gamma +
		gamma +
		gamma
}
