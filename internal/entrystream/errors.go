package entrystream

import "errors"

var (
	// ErrShortFrame means a frame ended early: the relay closed the
	// connection mid-frame, or a frame's payload is shorter than its
	// own length and count fields declare.
	ErrShortFrame = errors.New("entrystream: short read on frame")
	// ErrFrameTooLarge guards against a corrupt or malicious length
	// prefix causing an unbounded allocation.
	ErrFrameTooLarge = errors.New("entrystream: frame exceeds maximum size")
)
