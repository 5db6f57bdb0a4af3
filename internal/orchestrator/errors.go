package orchestrator

import "errors"

// ErrNoCycles is returned by Run when the data directory yields no
// usable pools, so the graph has no nodes to enumerate cycles over.
var ErrNoCycles = errors.New("orchestrator: no arbitrage cycles found")
