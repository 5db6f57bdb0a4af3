package pooldata

import "errors"

// ErrMissingField is returned when a PoolInfo/TokenInfo lacks a field
// required to participate in the graph.
var ErrMissingField = errors.New("missing field")
