package lz

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

// Obfuscate fills o's encoding tables for circuit c, grounded line-for-line
// on original_source/src/lz/obfuscator.c's _obfuscate. Randomness is drawn
// from rng only.
func Obfuscate(o *Obfuscation, sk mmap.SecretParams, c *acirc.Circuit, rng io.Reader, sink telemetry.Sink) error {
	if sink == nil {
		sink = telemetry.Discard{}
	}
	op := o.Op
	moduli := sk.PlaintextFields()
	if len(moduli) != op.NSlots() {
		return fmt.Errorf("%w: lz obfuscate: backend has %d plaintext fields, want %d", ErrMalformedInput, len(moduli), op.NSlots())
	}
	msgMod, blindMod := moduli[0], moduli[1]

	nconsts := op.M
	ninputs := c.NInputs

	alpha := make([][]*big.Int, op.C)
	for k := 0; k < op.C; k++ {
		alpha[k] = make([]*big.Int, op.Ell)
		for j := 0; j < op.Ell; j++ {
			alpha[k][j] = bignum.RandInvertibleInt(rng, blindMod)
		}
	}
	beta := make([]*big.Int, nconsts)
	for i := range beta {
		beta[i] = bignum.RandInvertibleInt(rng, blindMod)
	}
	gamma := make([][][]*big.Int, op.C)
	delta := make([][][]*big.Int, op.C)
	for k := 0; k < op.C; k++ {
		gamma[k] = make([][]*big.Int, op.Q)
		delta[k] = make([][]*big.Int, op.Q)
		for s := 0; s < op.Q; s++ {
			gamma[k][s] = make([]*big.Int, op.Gamma)
			delta[k][s] = make([]*big.Int, op.Gamma)
			for out := 0; out < op.Gamma; out++ {
				gamma[k][s][out] = bignum.RandInvertibleInt(rng, blindMod)
				delta[k][s][out] = bignum.RandInvertibleInt(rng, msgMod)
			}
		}
	}

	inFunc := func(id int) *big.Int {
		k, j := op.Chunker(id)
		return alpha[k][j]
	}
	cstFunc := func(idx int) *big.Int { return beta[idx] }
	cstar := acirc.EvalMod(c, inFunc, cstFunc, blindMod)

	constDeg := acirc.ConstDegree(c)
	varDeg := make([][]int, op.C)
	for k := 0; k < op.C; k++ {
		varDeg[k] = acirc.VarDegree(c, k, op.Chunker)
	}

	if ninputs != op.C*op.Ell {
		return fmt.Errorf("%w: lz obfuscate: ninputs=%d is not c*ell", ErrMalformedInput, ninputs)
	}

	total := numEncodings(op)
	count := 0
	report := func() {
		count++
		sink.Event("lz-obfuscate-progress", map[string]any{"count": count, "total": total})
	}

	for k := 0; k < op.C; k++ {
		for s := 0; s < op.Q; s++ {
			for j := 0; j < op.Ell; j++ {
				bit := indicator(op, s, j)
				ct, err := sk.Encode([]*big.Int{big.NewInt(int64(bit)), alpha[k][j]}, nil)
				if err != nil {
					return fmt.Errorf("%w: lz obfuscate: shat[%d][%d][%d]: %v", ErrBackendKeygen, k, s, j, err)
				}
				lvl := ix.New()
				lvl.Set(ix.SlotS(k, s), 1)
				o.Shat[k][s][j] = Enc{Set: lvl, CT: ct}
				report()
			}
			for p := 0; p < op.NPowers; p++ {
				ct, err := sk.Encode([]*big.Int{big.NewInt(1), big.NewInt(1)}, nil)
				if err != nil {
					return fmt.Errorf("%w: lz obfuscate: uhat[%d][%d][%d]: %v", ErrBackendKeygen, k, s, p, err)
				}
				lvl := ix.New()
				lvl.Set(ix.SlotS(k, s), uint64(1)<<uint(p))
				o.Uhat[k][s][p] = Enc{Set: lvl, CT: ct}
				report()
			}
			for out := 0; out < op.Gamma; out++ {
				lvl := ix.New()
				if k == 0 {
					lvl.Set(ix.SlotY(), uint64(op.CDMax-constDeg[out]))
				}
				for r := 0; r < op.Q; r++ {
					if r == s {
						lvl.Set(ix.SlotS(k, r), uint64(op.VDMax[k]-varDeg[k][out]))
					} else {
						lvl.Set(ix.SlotS(k, r), uint64(op.VDMax[k]))
					}
				}
				lvl.Set(ix.SlotZ(k), 1)
				lvl.Set(ix.SlotW(k), 1)

				ct, err := sk.Encode([]*big.Int{delta[k][s][out], gamma[k][s][out]}, nil)
				if err != nil {
					return fmt.Errorf("%w: lz obfuscate: zhat[%d][%d][%d]: %v", ErrBackendKeygen, k, s, out, err)
				}
				o.Zhat[k][s][out] = Enc{Set: lvl, CT: ct}
				report()

				wlvl := ix.New()
				wlvl.Set(ix.SlotW(k), 1)
				wct, err := sk.Encode([]*big.Int{big.NewInt(0), gamma[k][s][out]}, nil)
				if err != nil {
					return fmt.Errorf("%w: lz obfuscate: what[%d][%d][%d]: %v", ErrBackendKeygen, k, s, out, err)
				}
				o.What[k][s][out] = Enc{Set: wlvl, CT: wct}
				report()
			}
		}
	}

	for i := 0; i < nconsts; i++ {
		lvl := ix.New()
		lvl.Set(ix.SlotY(), 1)
		ct, err := sk.Encode([]*big.Int{c.Consts[i], beta[i]}, nil)
		if err != nil {
			return fmt.Errorf("%w: lz obfuscate: yhat[%d]: %v", ErrBackendKeygen, i, err)
		}
		o.Yhat[i] = Enc{Set: lvl, CT: ct}
		report()
	}
	for p := 0; p < op.NPowers; p++ {
		lvl := ix.New()
		lvl.Set(ix.SlotY(), uint64(1)<<uint(p))
		ct, err := sk.Encode([]*big.Int{big.NewInt(1), big.NewInt(1)}, nil)
		if err != nil {
			return fmt.Errorf("%w: lz obfuscate: vhat[%d]: %v", ErrBackendKeygen, p, err)
		}
		o.Vhat[p] = Enc{Set: lvl, CT: ct}
		report()
	}

	chatstarLevel := op.ChatstarLevel()
	for out := 0; out < op.Gamma; out++ {
		ct, err := sk.Encode([]*big.Int{big.NewInt(0), cstar[out]}, nil)
		if err != nil {
			return fmt.Errorf("%w: lz obfuscate: chatstar[%d]: %v", ErrBackendKeygen, out, err)
		}
		o.Chatstar[out] = Enc{Set: chatstarLevel.Copy(), CT: ct}
		report()
	}

	return nil
}

// indicator is the LZ scheme's 1_{s,j}: s==j in sigma mode, bit(s,j) in
// binary mode.
func indicator(op OpParams, s, j int) int {
	if op.Sigma {
		if s == j {
			return 1
		}
		return 0
	}
	return acirc.Bit(s, j)
}

// numEncodings is obf_params_num_encodings: the total encoding count used
// only for progress telemetry.
func numEncodings(op OpParams) int {
	sum := op.M + op.NPowers + op.Gamma
	for k := 0; k < op.C; k++ {
		sum += op.Q * op.Ell
		sum += op.Q * op.NPowers
		sum += op.Q * op.Gamma * 2
	}
	return sum
}
