package universe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuescout/backend/pkg/config"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

const indexHTML = `<html><body>
<table class="wikitable">
<tbody>
<tr><th>Symbol</th><th>Security</th><th>GICS Sector</th></tr>
<tr><td>AAPL</td><td>Apple Inc.</td><td>Information Technology</td></tr>
<tr><td>BRK.B</td><td>Berkshire Hathaway</td><td>Financials</td></tr>
<tr><td>MSFT</td><td>Microsoft</td><td>Information Technology</td></tr>
<tr><td>JPM</td><td>JPMorgan Chase</td><td>Financials</td></tr>
</tbody>
</table>
</body></html>`

func newTestProvider(t *testing.T, url string, maxPerSector int) *Provider {
	t.Helper()
	cfg := config.UniverseConfig{
		IndexURL:       url,
		CacheDays:      7,
		MaxPerSector:   maxPerSector,
		RequestsPerSec: 100,
	}
	cachePath := filepath.Join(t.TempDir(), "universe.json")
	return NewProvider(cfg, cachePath, logger.NewNop())
}

func TestMembers_ScrapesAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(indexHTML))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, 0)
	members, err := p.Members(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 4)
	assert.Equal(t, "BRK-B", members[1].Symbol)
	assert.Equal(t, "Financials", members[1].Sector)
}

func TestMembers_DeduplicatesScrapedRows(t *testing.T) {
	// AAPL listed twice, plus BRK.B and BRK-B collapsing to one symbol
	// under normalization. First occurrence wins, order preserved.
	dupHTML := `<html><body>
<table class="wikitable"><tbody>
<tr><th>Symbol</th><th>Security</th><th>GICS Sector</th></tr>
<tr><td>AAPL</td><td>Apple Inc.</td><td>Information Technology</td></tr>
<tr><td>BRK.B</td><td>Berkshire Hathaway</td><td>Financials</td></tr>
<tr><td>AAPL</td><td>Apple Inc. (dup row)</td><td>Information Technology</td></tr>
<tr><td>BRK-B</td><td>Berkshire Hathaway B</td><td>Financials</td></tr>
<tr><td>MSFT</td><td>Microsoft</td><td>Information Technology</td></tr>
</tbody></table>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(dupHTML))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, 0)
	symbols, err := p.Symbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "BRK-B", "MSFT"}, symbols)
}

func TestMembers_SectorCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(indexHTML))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, 1)
	members, err := p.Members(context.Background())
	require.NoError(t, err)
	// One per sector, source order kept: AAPL then BRK-B.
	require.Len(t, members, 2)
	assert.Equal(t, "AAPL", members[0].Symbol)
	assert.Equal(t, "BRK-B", members[1].Symbol)
}

func TestMembers_ServesFreshCacheWithoutFetching(t *testing.T) {
	p := newTestProvider(t, "http://127.0.0.1:0/unreachable", 0)

	doc := cacheDocument{
		FetchedAt: time.Now().Add(-time.Hour),
		Members:   []Member{{Symbol: "KO", Name: "Coca-Cola", Sector: "Consumer Staples"}},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(p.cachePath, data, 0o644))

	members, err := p.Members(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "KO", members[0].Symbol)
}

func TestMembers_ExpiredCacheFallsThrough(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte(indexHTML))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, 0)
	doc := cacheDocument{
		FetchedAt: time.Now().AddDate(0, 0, -30),
		Members:   []Member{{Symbol: "STALE"}},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(p.cachePath, data, 0o644))

	members, err := p.Members(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
	assert.Len(t, members, 4)
}

func TestMembers_CuratedFallbackOnScrapeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, 0)
	members, err := p.Members(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, members)

	symbols, err := p.Symbols(context.Background())
	require.NoError(t, err)
	assert.Contains(t, symbols, "AAPL")
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "BRK-B", normalizeSymbol(" brk.b "))
	assert.Equal(t, "AAPL", normalizeSymbol("AAPL"))
	assert.Equal(t, "", normalizeSymbol("TOOLONGSYM"))
	assert.Equal(t, "", normalizeSymbol("12AB"))
	assert.Equal(t, "", normalizeSymbol(""))
}
