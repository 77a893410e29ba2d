package lin

import (
	"fmt"
	"io"
	"math/big"

	"github.com/dendisuhubdy/circ-obfuscation/acirc"
	"github.com/dendisuhubdy/circ-obfuscation/ix"
	"github.com/dendisuhubdy/circ-obfuscation/mmap"
	"github.com/dendisuhubdy/circ-obfuscation/telemetry"
	"github.com/dendisuhubdy/circ-obfuscation/utils/bignum"
)

// Obfuscate fills the encoding family of o for circuit c, drawing all
// randomness from rng, per spec.md §4.2's "LIN generator" steps 1-7
// (grounded line-for-line on original_source/src/lin/obfuscator.c's
// _obfuscate).
func Obfuscate(o *Obfuscation, sk mmap.SecretParams, c *acirc.Circuit, rng io.Reader, sink telemetry.Sink) error {
	op := o.Op
	moduli := sk.PlaintextFields()
	if len(moduli) != op.NSlots() {
		return fmt.Errorf("%w: lin obfuscate: backend produced %d plaintext fields, want %d", ErrBackendKeygen, len(moduli), op.NSlots())
	}

	// Step 1: per-(k,j) ykj, per-j ykjc, whatk[k], what.
	ykj := make([][]*big.Int, op.C)
	for k := range ykj {
		ykj[k] = make([]*big.Int, op.Ell)
		for j := range ykj[k] {
			ykj[k][j] = bignum.RandInt(rng, moduli[0])
		}
	}
	ykjc := make([]*big.Int, op.M)
	for j := range ykjc {
		ykjc[j] = bignum.RandInt(rng, moduli[0])
	}

	whatk := make([][]*big.Int, op.C)
	for k := range whatk {
		whatk[k] = sampleNonzeroVect(rng, moduli)
		whatk[k][k+2] = big.NewInt(0)
	}
	what := sampleNonzeroVect(rng, moduli)
	what[op.C+2] = big.NewInt(0)

	sink.Event("lin-obfuscate-start", map[string]any{"encodings": op.NumEncodings()})

	// Step 2.
	zstarIn := make([]*big.Int, op.NSlots())
	zstarIn[0] = big.NewInt(1)
	zstarIn[1] = big.NewInt(1)
	for i := 2; i < op.NSlots(); i++ {
		zstarIn[i] = sampleNonzero(rng, moduli[i])
	}
	zstarCT, err := sk.Encode(zstarIn, nil)
	if err != nil {
		return fmt.Errorf("%w: lin obfuscate Zstar: %v", ErrBackendKeygen, err)
	}
	o.Zstar = Enc{Level: ix.VStar(), CT: zstarCT}

	// Step 3.
	for k := 0; k < op.C; k++ {
		for s := 0; s < op.Q; s++ {
			rs := sampleNonzeroVect(rng, moduli)
			rct, err := sk.Encode(rs, nil)
			if err != nil {
				return fmt.Errorf("%w: lin obfuscate Rks[%d][%d]: %v", ErrBackendKeygen, k, s, err)
			}
			o.Rks[k][s] = Enc{Level: ix.VKS(k, s), CT: rct}

			for j := 0; j < op.Ell; j++ {
				w := make([]*big.Int, op.NSlots())
				w[0] = new(big.Int).Set(ykj[k][j])
				w[1] = big.NewInt(int64(indicator(op, s, j)))
				for i := 2; i < op.NSlots(); i++ {
					w[i] = sampleNonzero(rng, moduli[i])
				}
				w = vectorMulMod(w, rs, moduli)

				lvl := ix.AddLevel(ix.VKS(k, s), ix.VStar())
				zct, err := sk.Encode(w, nil)
				if err != nil {
					return fmt.Errorf("%w: lin obfuscate Zksj[%d][%d][%d]: %v", ErrBackendKeygen, k, s, j, err)
				}
				o.Zksj[k][s][j] = Enc{Level: lvl, CT: zct}
			}
		}
	}

	// Step 4.
	rsC := sampleNonzeroVect(rng, moduli)
	rcCT, err := sk.Encode(rsC, nil)
	if err != nil {
		return fmt.Errorf("%w: lin obfuscate Rc: %v", ErrBackendKeygen, err)
	}
	o.Rc = Enc{Level: ix.VC(), CT: rcCT}

	for j := 0; j < op.M; j++ {
		w := make([]*big.Int, op.NSlots())
		w[0] = new(big.Int).Set(ykjc[j])
		w[1] = new(big.Int).Set(c.Consts[j])
		for i := 2; i < op.NSlots(); i++ {
			w[i] = sampleNonzero(rng, moduli[i])
		}
		w = vectorMulMod(w, rsC, moduli)

		lvl := ix.AddLevel(ix.VC(), ix.VStar())
		zct, err := sk.Encode(w, nil)
		if err != nil {
			return fmt.Errorf("%w: lin obfuscate Zcj[%d]: %v", ErrBackendKeygen, j, err)
		}
		o.Zcj[j] = Enc{Level: lvl, CT: zct}
	}

	// Step 5.
	for o2 := 0; o2 < op.Gamma; o2++ {
		for k := 0; k < op.C; k++ {
			for s := 0; s < op.Q; s++ {
				rs := sampleNonzeroVect(rng, moduli)
				rct, err := sk.Encode(rs, nil)
				if err != nil {
					return fmt.Errorf("%w: lin obfuscate Rhatkso[%d][%d][%d]: %v", ErrBackendKeygen, k, s, o2, err)
				}
				lvlR := vhatkso(k, s, o2)
				o.Rhatkso[k][s][o2] = Enc{Level: lvlR, CT: rct}

				w := vectorMulMod(whatk[k], rs, moduli)
				zct, err := sk.Encode(w, nil)
				if err != nil {
					return fmt.Errorf("%w: lin obfuscate Zhatkso[%d][%d][%d]: %v", ErrBackendKeygen, k, s, o2, err)
				}
				o.Zhatkso[k][s][o2] = Enc{Level: ix.AddLevel(lvlR, ix.VStar()), CT: zct}
			}
		}
	}

	// Step 6.
	for o2 := 0; o2 < op.Gamma; o2++ {
		rs := sampleNonzeroVect(rng, moduli)
		rct, err := sk.Encode(rs, nil)
		if err != nil {
			return fmt.Errorf("%w: lin obfuscate Rhato[%d]: %v", ErrBackendKeygen, o2, err)
		}
		o.Rhato[o2] = Enc{Level: ix.VHatO(o2), CT: rct}

		w := vectorMulMod(what, rs, moduli)
		zct, err := sk.Encode(w, nil)
		if err != nil {
			return fmt.Errorf("%w: lin obfuscate Zhato[%d]: %v", ErrBackendKeygen, o2, err)
		}
		o.Zhato[o2] = Enc{Level: ix.AddLevel(ix.VStar(), ix.VHatO(o2)), CT: zct}
	}

	// Step 7: ybaro, tmp, Rbaro/Zbaro.
	tmp := what
	for k := 0; k < op.C; k++ {
		tmp = vectorMulMod(tmp, whatk[k], moduli)
	}

	inFunc := func(id int) *big.Int {
		k, j := op.Chunker(id)
		return ykj[k][j]
	}
	cstFunc := func(idx int) *big.Int { return ykjc[idx] }
	ybaro := acirc.EvalMod(c, inFunc, cstFunc, moduli[0])

	for o2 := 0; o2 < op.Gamma; o2++ {
		rs := sampleNonzeroVect(rng, moduli)
		rct, err := sk.Encode(rs, nil)
		if err != nil {
			return fmt.Errorf("%w: lin obfuscate Rbaro[%d]: %v", ErrBackendKeygen, o2, err)
		}
		lvlR := ix.VBarO(o2, op.D)
		o.Rbaro[o2] = Enc{Level: lvlR, CT: rct}

		// Every slot but the first is zero: after Evaluate subtracts this
		// strand, slot 0 cancels and slot 1 is C(x) times a nonzero factor,
		// so the difference zero-tests exactly when C(x) == 0.
		w := make([]*big.Int, op.NSlots())
		for i := range w {
			w[i] = big.NewInt(0)
		}
		w[0] = new(big.Int).Set(ybaro[o2])
		w = vectorMulMod(w, tmp, moduli)
		w = vectorMulMod(w, rs, moduli)

		zct, err := sk.Encode(w, nil)
		if err != nil {
			return fmt.Errorf("%w: lin obfuscate Zbaro[%d]: %v", ErrBackendKeygen, o2, err)
		}
		o.Zbaro[o2] = Enc{Level: ix.AddLevel(lvlR, ix.ScalarMulLevel(ix.VStar(), op.D)), CT: zct}
	}

	sink.Event("lin-obfuscate-done", nil)
	return nil
}

func vhatkso(k, s, o int) *ix.Level {
	return ix.VHatKSO(k, s, o)
}

// indicator is 1_{s,j}: s==j in sigma mode, bit(s,j) in binary mode.
func indicator(op OpParams, s, j int) int {
	if op.Sigma {
		if s == j {
			return 1
		}
		return 0
	}
	return acirc.Bit(s, j)
}

// sampleNonzero draws a uniform element of [1, modulus), rejecting zero, to
// mirror original_source/src/util.c's mpz_vect_urandomms.
func sampleNonzero(rng io.Reader, modulus *big.Int) *big.Int {
	for {
		x := bignum.RandInt(rng, modulus)
		if x.Sign() != 0 {
			return x
		}
	}
}

func sampleNonzeroVect(rng io.Reader, moduli []*big.Int) []*big.Int {
	out := make([]*big.Int, len(moduli))
	for i := range out {
		out[i] = sampleNonzero(rng, moduli[i])
	}
	return out
}

// vectorMulMod returns the component-wise product of a and b, each residue
// reduced modulo its own plaintext field.
func vectorMulMod(a, b []*big.Int, moduli []*big.Int) []*big.Int {
	out := make([]*big.Int, len(a))
	for i := range out {
		out[i] = new(big.Int).Mod(new(big.Int).Mul(a[i], b[i]), moduli[i])
	}
	return out
}
