// Package ix implements the index-set and level algebras that label every
// mmap encoding in the obfuscator. An index set (used by the LZ scheme) maps
// a fixed universe of named slots — Y, S(k,s), Z(k), W(k) — to non-negative
// exponents. A level (used by the LIN scheme) is the analogous matrix form.
// Sets support zero, copy, add, saturating difference, union-max, scalar
// multiplication, and equality; levels support zero, copy, add, scalar
// multiplication, and equality only.
package ix

import (
	"fmt"
	"sort"
)

// Kind names which slot family a Slot belongs to.
type Kind uint8

const (
	Y Kind = iota
	S
	Z
	W
)

func (k Kind) String() string {
	switch k {
	case Y:
		return "Y"
	case S:
		return "S"
	case Z:
		return "Z"
	case W:
		return "W"
	default:
		return "?"
	}
}

// Slot identifies a single coordinate of the index-set universe: Y carries
// no indices, S is indexed by (symbol k, alphabet value s), Z and W are
// indexed by symbol k alone.
type Slot struct {
	Kind Kind
	K    int
	S    int
}

func SlotY() Slot            { return Slot{Kind: Y} }
func SlotS(k, s int) Slot    { return Slot{Kind: S, K: k, S: s} }
func SlotZ(k int) Slot       { return Slot{Kind: Z, K: k} }
func SlotW(k int) Slot       { return Slot{Kind: W, K: k} }

func (s Slot) String() string {
	switch s.Kind {
	case Y:
		return "Y"
	case S:
		return fmt.Sprintf("S(%d,%d)", s.K, s.S)
	case Z:
		return fmt.Sprintf("Z(%d)", s.K)
	case W:
		return fmt.Sprintf("W(%d)", s.K)
	default:
		return "?"
	}
}

// Set is a sparse exponent vector over the slot universe. The zero value is
// a valid, empty set. Slots absent from the map have exponent zero.
type Set struct {
	m map[Slot]uint64
}

// New returns an empty (all-zero) index set.
func New() *Set {
	return &Set{m: make(map[Slot]uint64)}
}

// Get returns the exponent at slot.
func (ix *Set) Get(slot Slot) uint64 {
	if ix == nil || ix.m == nil {
		return 0
	}
	return ix.m[slot]
}

// Set assigns the exponent at slot, in place.
func (ix *Set) Set(slot Slot, v uint64) {
	if ix.m == nil {
		ix.m = make(map[Slot]uint64)
	}
	if v == 0 {
		delete(ix.m, slot)
		return
	}
	ix.m[slot] = v
}

// Copy returns a deep copy of ix.
func (ix *Set) Copy() *Set {
	cp := New()
	for k, v := range ix.m {
		cp.m[k] = v
	}
	return cp
}

// Clone is an alias of Copy.
func (ix *Set) Clone() *Set {
	return ix.Copy()
}

func (ix *Set) slots() []Slot {
	out := make([]Slot, 0, len(ix.m))
	for k := range ix.m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.K != b.K {
			return a.K < b.K
		}
		return a.S < b.S
	})
	return out
}

// Add returns a new set whose every slot is the pointwise sum of a and b's.
func Add(a, b *Set) *Set {
	out := a.Copy()
	for _, slot := range b.slots() {
		out.Set(slot, out.Get(slot)+b.Get(slot))
	}
	return out
}

// SubSaturating returns a new set whose every slot is max(a[slot]-b[slot], 0).
// Slot exponents are never negative; this never panics or underflows.
func SubSaturating(a, b *Set) *Set {
	out := a.Copy()
	for _, slot := range b.slots() {
		av, bv := out.Get(slot), b.Get(slot)
		if bv >= av {
			out.Set(slot, 0)
		} else {
			out.Set(slot, av-bv)
		}
	}
	return out
}

// UnionMax returns a new set whose every slot is max(a[slot], b[slot]).
// It is idempotent, commutative, and associative.
func UnionMax(a, b *Set) *Set {
	out := a.Copy()
	for _, slot := range b.slots() {
		if bv := b.Get(slot); bv > out.Get(slot) {
			out.Set(slot, bv)
		}
	}
	return out
}

// ScalarMul returns a new set whose every slot is a[slot]*n.
func ScalarMul(a *Set, n uint64) *Set {
	out := New()
	for _, slot := range a.slots() {
		out.Set(slot, a.Get(slot)*n)
	}
	return out
}

// Equal reports whether ix and other carry the same exponent at every slot.
func (ix *Set) Equal(other *Set) bool {
	if ix == nil || other == nil {
		return ix == other || (ix.IsZero() && other.IsZero())
	}
	for _, slot := range ix.slots() {
		if ix.Get(slot) != other.Get(slot) {
			return false
		}
	}
	for _, slot := range other.slots() {
		if ix.Get(slot) != other.Get(slot) {
			return false
		}
	}
	return true
}

// IsZero reports whether every slot of ix carries exponent zero.
func (ix *Set) IsZero() bool {
	if ix == nil {
		return true
	}
	for _, v := range ix.m {
		if v != 0 {
			return false
		}
	}
	return true
}

// String renders ix as a deterministic, lexicographically ordered listing of
// its non-zero slots, e.g. "Y=2 S(0,1)=1 Z(0)=1".
func (ix *Set) String() string {
	s := ""
	for i, slot := range ix.slots() {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%d", slot, ix.Get(slot))
	}
	return s
}
