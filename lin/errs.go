package lin

import "errors"

// Sentinel errors per spec.md §7's error-kind taxonomy.
var (
	ErrMalformedInput = errors.New("lin: malformed input")
	ErrBackendKeygen  = errors.New("lin: backend key generation failed")
	ErrRingOp         = errors.New("lin: ring operation failed")
	ErrZeroTest       = errors.New("lin: zero test failed")
)
