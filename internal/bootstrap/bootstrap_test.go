package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func strPtr(s string) *string { return &s }
func u8Ptr(v uint8) *uint8    { return &v }
func u32Ptr(v uint32) *uint32 { return &v }
func u64Ptr(v uint64) *uint64 { return &v }

func readStoredPools(t *testing.T, path string) pooldata.StoredPools {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out pooldata.StoredPools
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestFetchOrcaPools_WritesValidPoolsAndFollowsCursor(t *testing.T) {
	page := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page++
		w.Header().Set("Content-Type", "application/json")
		if page == 1 {
			_ = json.NewEncoder(w).Encode(orcaPoolsResponse{
				Data: []orcaPool{
					{
						Address:     strPtr("Czfq3xZZDmsdGdUyrNLtRhGc47cXcZtLG4crryfu44zE"),
						FeeRate:     u32Ptr(400),
						TickSpacing: u64Ptr(64),
						TokenA: orcaToken{
							Address:  strPtr("So11111111111111111111111111111111111111112"),
							Decimals: u8Ptr(9),
						},
						TokenB: orcaToken{
							Address:  strPtr("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"),
							Decimals: u8Ptr(6),
						},
						TokenVaultA: strPtr("EUuUbDcafPrmVTD5M6qoJAoyyNbihBhugADAxRMn5he9"),
						TokenVaultB: strPtr("2WLWEuKDgkDUccTpbwYp1GToYktiSB1cXvreHUwiSUVP"),
						Config:      strPtr("2LecshUwdy9xi7meFgHtFJQNSKk4KdTrcpvaB56dP2NQ"),
					},
					// missing tick_spacing -> invalid, must be skipped
					{
						Address: strPtr("7eMnzvi48Nbz2yRaQrCWqfQ7awPNPfV3AboaejktyGMD"),
						TokenA:  orcaToken{Address: strPtr("So11111111111111111111111111111111111111112"), Decimals: u8Ptr(9)},
						TokenB:  orcaToken{Address: strPtr("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"), Decimals: u8Ptr(6)},
					},
				},
				Meta: orcaMeta{Cursor: orcaCursor{Next: strPtr("cursor-2")}},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(orcaPoolsResponse{Data: nil, Meta: orcaMeta{}})
	}))
	defer srv.Close()

	origBase := orcaBaseURLOverride
	orcaBaseURLOverride = srv.URL
	defer func() { orcaBaseURLOverride = origBase }()

	dir := t.TempDir()
	cfg := Config{DataDir: dir, PageCap: 2, Logger: testLogger()}

	tokens, err := FetchOrcaPools(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, tokens, 2) // WSOL + USDC, deduplicated across both pool entries

	stored := readStoredPools(t, filepath.Join(dir, "orca_pools.json"))
	require.Len(t, stored.AllPools, 1)
	assert.Equal(t, "Czfq3xZZDmsdGdUyrNLtRhGc47cXcZtLG4crryfu44zE", *stored.AllPools[0].Address)
	assert.Equal(t, 2, page)
}

func TestFetchMeteoraPools_SkipsPoolsMissingDecimals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(meteoraPoolsResponse{
			Status: 200,
			Pages:  1,
			Data: []meteoraPool{
				{
					PoolAddress: strPtr("Czfq3xZZDmsdGdUyrNLtRhGc47cXcZtLG4crryfu44zE"),
					TokenAMint:  strPtr("So11111111111111111111111111111111111111112"),
					TokenBMint:  strPtr("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"),
					TokenAVault: strPtr("EUuUbDcafPrmVTD5M6qoJAoyyNbihBhugADAxRMn5he9"),
					TokenBVault: strPtr("2WLWEuKDgkDUccTpbwYp1GToYktiSB1cXvreHUwiSUVP"),
				},
			},
		})
	}))
	defer srv.Close()

	origBase := meteoraBaseURLOverride
	meteoraBaseURLOverride = srv.URL
	defer func() { meteoraBaseURLOverride = origBase }()

	dir := t.TempDir()
	cfg := Config{DataDir: dir, Logger: testLogger()}

	_, err := FetchMeteoraPools(context.Background(), cfg)
	require.NoError(t, err)

	stored := readStoredPools(t, filepath.Join(dir, "meteora_pools.json"))
	assert.Empty(t, stored.AllPools, "pools without decimals must fail validation and be skipped")
}

func TestTokenSet_DeduplicatesByValue(t *testing.T) {
	set := newTokenSet()
	a := strPtr("So11111111111111111111111111111111111111112")
	d := u8Ptr(9)
	set.Insert(pooldata.TokenInfo{Address: a, Decimals: d})
	set.Insert(pooldata.TokenInfo{Address: a, Decimals: d})
	assert.Len(t, set.Values(), 1)
}

func TestPoolFileWriter_EmptyFileIsValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty_pools.json")
	w, err := newPoolFileWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	stored := readStoredPools(t, path)
	assert.Empty(t, stored.AllPools)
}
