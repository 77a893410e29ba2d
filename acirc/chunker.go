package acirc

// Chunker maps an input bit id to the (symbol, bit) pair it belongs to.
// Rchunker is its inverse. spec.md §3 requires the pair to be bijective;
// InOrderChunker below partitions ids into consecutive runs of ℓ bits,
// matching obf_params_new's ds[i]=symlen construction in
// original_source/src/lz/obf_params.c.
type Chunker func(id int) (sym, bit int)

// Rchunker func(sym, bit int) int is the inverse of a Chunker.
type Rchunker func(sym, bit int) int

// InOrderChunker partitions ninputs = c*ell bit ids into c consecutive
// symbols of ell bits each: id -> (id/ell, id%ell).
func InOrderChunker(ell int) Chunker {
	return func(id int) (sym, bit int) {
		return id / ell, id % ell
	}
}

// InOrderRchunker is the inverse of InOrderChunker(ell).
func InOrderRchunker(ell int) Rchunker {
	return func(sym, bit int) int {
		return sym*ell + bit
	}
}

// Bit extracts bit i of x (0 or 1), grounded on original_source/src/util.c's
// bit(x,i) = (x & (1<<i)) > 0 — used by binary-mode alphabet encoding.
func Bit(x, i int) int {
	if x&(1<<uint(i)) != 0 {
		return 1
	}
	return 0
}

// Symbol derives the alphabet value of symbol k from the flattened input bit
// vector, given whether the scheme is in sigma (one-hot) or binary
// (positional) mode. In sigma mode it returns the position of the unique set
// bit among the ell bits of symbol k (ok=false if not exactly one-hot); in
// binary mode it returns the positional binary value of those ell bits.
func Symbol(inputs []int, k, ell int, rchunk Rchunker, sigma bool) (sym int, ok bool) {
	if sigma {
		found := -1
		for j := 0; j < ell; j++ {
			if inputs[rchunk(k, j)] != 0 {
				if found != -1 {
					return 0, false
				}
				found = j
			}
		}
		if found == -1 {
			return 0, false
		}
		return found, true
	}

	v := 0
	for j := 0; j < ell; j++ {
		if inputs[rchunk(k, j)] != 0 {
			v |= 1 << uint(j)
		}
	}
	return v, true
}
