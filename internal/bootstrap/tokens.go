package bootstrap

import (
	"fmt"

	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

// tokenSet deduplicates TokenInfo records by value equality, since two
// separately-decoded TokenInfo values for the same mint are never the
// same pointer but should still collapse to one entry.
type tokenSet struct {
	seen map[string]pooldata.TokenInfo
}

func newTokenSet() *tokenSet {
	return &tokenSet{seen: make(map[string]pooldata.TokenInfo)}
}

func (s *tokenSet) Insert(t pooldata.TokenInfo) {
	s.seen[tokenKey(t)] = t
}

func (s *tokenSet) Values() []pooldata.TokenInfo {
	out := make([]pooldata.TokenInfo, 0, len(s.seen))
	for _, t := range s.seen {
		out = append(out, t)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefU8(v *uint8) uint8 {
	if v == nil {
		return 0
	}
	return *v
}

func tokenKey(t pooldata.TokenInfo) string {
	return fmt.Sprintf("%s|%d|%s|%s", deref(t.Address), derefU8(t.Decimals), deref(t.Name), deref(t.Symbol))
}
