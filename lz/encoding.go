package lz

import (
	"fmt"
	"sync/atomic"

	"github.com/dendisuhubdy/circ-obfuscation/ix"
	"github.com/dendisuhubdy/circ-obfuscation/mmap"
)

// Enc is the LZ scheme's encoding wrapper (spec.md §4.1): a pair of an
// ix.Set (the index set this ciphertext currently sits at) and the opaque
// mmap.Ciphertext itself. Unlike lin.Enc there is no separate r/z split and
// no abstract degree counter — LZ tracks its position in the index-set
// universe directly and raises it on demand.
type Enc struct {
	Set *ix.Set
	CT  mmap.Ciphertext
}

// mulEnc multiplies two encodings, adding their index sets.
func mulEnc(pp mmap.PublicParams, x, y Enc) (Enc, error) {
	ct, err := pp.Mul(x.CT, y.CT)
	if err != nil {
		return Enc{}, fmt.Errorf("lz: mul: %w", err)
	}
	return Enc{Set: ix.Add(x.Set, y.Set), CT: ct}, nil
}

func addEnc(pp mmap.PublicParams, x, y Enc) (Enc, error) {
	ct, err := pp.Add(x.CT, y.CT)
	if err != nil {
		return Enc{}, fmt.Errorf("lz: add: %w", err)
	}
	return Enc{Set: x.Set, CT: ct}, nil
}

func subEnc(pp mmap.PublicParams, x, y Enc) (Enc, error) {
	ct, err := pp.Sub(x.CT, y.CT)
	if err != nil {
		return Enc{}, fmt.Errorf("lz: sub: %w", err)
	}
	return Enc{Set: x.Set, CT: ct}, nil
}

// largestPower returns the largest p such that 2^p <= diff and p < npowers,
// mirroring original_source/src/lz/obfuscator.c's _raise_encoding inner
// search (`while (1<<(p+1) <= diff && (p+1) < npowers) p++`).
func largestPower(diff uint64, npowers int) int {
	p := 0
	for uint64(1)<<uint(p+1) <= diff && p+1 < npowers {
		p++
	}
	return p
}

// raiseSlot multiplies x by entries of table (indexed by power p, table[p]
// encoding a unit at 2^p of some single slot) until x's exponent at that
// slot has increased by diff, recording the largest power used into
// maxPowers — the monotone-max telemetry spec.md §5 calls out as safe to
// track non-atomically in the original (a single-thread post-pass there);
// here raising can happen from any evaluator goroutine, so a lock-free
// compare-and-swap loop keeps the same "running max across the whole
// evaluation" semantics race-free.
func raiseSlot(pp mmap.PublicParams, x Enc, table []Enc, diff uint64, maxPowers *atomic.Int32) (Enc, error) {
	for diff > 0 {
		p := largestPower(diff, len(table))
		raiseMax(maxPowers, p+1)
		var err error
		if x, err = mulEnc(pp, x, table[p]); err != nil {
			return Enc{}, err
		}
		diff -= uint64(1) << uint(p)
	}
	return x, nil
}

func raiseMax(tracker *atomic.Int32, p int) {
	if tracker == nil {
		return
	}
	for {
		cur := tracker.Load()
		if int32(p) <= cur {
			return
		}
		if tracker.CompareAndSwap(cur, int32(p)) {
			return
		}
	}
}

// raiseEncoding raises x's index set to target by multiplying in the
// pre-published uhat/vhat power tables, mirroring raise_encoding. Raising an
// encoding already at target is a no-op (every per-slot diff is 0).
func raiseEncoding(pp mmap.PublicParams, obf *Obfuscation, x Enc, target *ix.Set, maxPowers *atomic.Int32) (Enc, error) {
	diff := ix.SubSaturating(target, x.Set)
	var err error
	for k := 0; k < obf.Op.C; k++ {
		for s := 0; s < obf.Op.Q; s++ {
			d := diff.Get(ix.SlotS(k, s))
			if d == 0 {
				continue
			}
			if x, err = raiseSlot(pp, x, obf.Uhat[k][s], d, maxPowers); err != nil {
				return Enc{}, err
			}
		}
	}
	if d := diff.Get(ix.SlotY()); d > 0 {
		if x, err = raiseSlot(pp, x, obf.Vhat, d, maxPowers); err != nil {
			return Enc{}, err
		}
	}
	return x, nil
}

// raiseEncodings raises both x and y to the union of their index sets,
// mirroring raise_encodings — the ADD/SUB equalization step.
func raiseEncodings(pp mmap.PublicParams, obf *Obfuscation, x, y Enc, maxPowers *atomic.Int32) (Enc, Enc, error) {
	target := ix.UnionMax(x.Set, y.Set)
	x2, err := raiseEncoding(pp, obf, x, target, maxPowers)
	if err != nil {
		return Enc{}, Enc{}, err
	}
	y2, err := raiseEncoding(pp, obf, y, target, maxPowers)
	if err != nil {
		return Enc{}, Enc{}, err
	}
	return x2, y2, nil
}
