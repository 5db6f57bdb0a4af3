package graph

import "errors"

// Graph error kinds.
var (
	ErrEdgeNotFound   = errors.New("edge not found")
	ErrMissingField   = errors.New("pool or token record is missing a required field")
	ErrInvalidAddress = errors.New("invalid address")
	ErrNoPriceData    = errors.New("edge has no sqrt_price data yet")
)
