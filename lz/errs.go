package lz

import "errors"

var (
	ErrMalformedInput   = errors.New("lz: malformed input")
	ErrBackendKeygen    = errors.New("lz: backend key generation failed")
	ErrRingOp           = errors.New("lz: ring operation failed")
	ErrZeroTest         = errors.New("lz: zero test failed")
	ErrTopLevelMismatch = errors.New("lz: encoding does not reach toplevel")
)
