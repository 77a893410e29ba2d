package lz

import "github.com/dendisuhubdy/circ-obfuscation/mmap"

// Obfuscation holds every encoding table the LZ scheme emits (spec.md
// §3's "Obfuscation (LZ)"), shaped exactly like
// original_source/src/lz/obfuscator.c's obfuscation struct: Shat[k][s][j],
// Uhat[k][s][p], Zhat[k][s][o], What[k][s][o], Yhat[i], Vhat[p],
// Chatstar[o].
type Obfuscation struct {
	PP mmap.PublicParams
	Op OpParams

	Shat     [][][]Enc // [k][s][j]
	Uhat     [][][]Enc // [k][s][p]
	Zhat     [][][]Enc // [k][s][o]
	What     [][][]Enc // [k][s][o]
	Yhat     []Enc     // [i], len = M
	Vhat     []Enc     // [p], len = NPowers
	Chatstar []Enc     // [o], len = Gamma
}

// New allocates an Obfuscation's table shape for op, grounded on
// _alloc. The leaf Enc values are zero until Obfuscate (or ReadFrom) fills
// them in.
func New(op OpParams, pp mmap.PublicParams) *Obfuscation {
	obf := &Obfuscation{PP: pp, Op: op}

	obf.Shat = make([][][]Enc, op.C)
	obf.Uhat = make([][][]Enc, op.C)
	obf.Zhat = make([][][]Enc, op.C)
	obf.What = make([][][]Enc, op.C)
	for k := 0; k < op.C; k++ {
		obf.Shat[k] = make([][]Enc, op.Q)
		obf.Uhat[k] = make([][]Enc, op.Q)
		obf.Zhat[k] = make([][]Enc, op.Q)
		obf.What[k] = make([][]Enc, op.Q)
		for s := 0; s < op.Q; s++ {
			obf.Shat[k][s] = make([]Enc, op.Ell)
			obf.Uhat[k][s] = make([]Enc, op.NPowers)
			obf.Zhat[k][s] = make([]Enc, op.Gamma)
			obf.What[k][s] = make([]Enc, op.Gamma)
		}
	}
	obf.Yhat = make([]Enc, op.M)
	obf.Vhat = make([]Enc, op.NPowers)
	obf.Chatstar = make([]Enc, op.Gamma)

	return obf
}
