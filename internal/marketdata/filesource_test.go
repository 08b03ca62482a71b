package marketdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuescout/backend/pkg/logger"
)

func writeFixture(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestFileSource_Fundamentals(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "fundamentals.json", `{
		"AAPL": {
			"name": "Apple Inc.",
			"sector": "Technology",
			"market_cap": 3000000000000,
			"metrics": {"pe_ratio": 28.5, "roe": 1.5, "debt_equity": null}
		}
	}`)

	src := NewFileSource(dir, logger.NewNop())
	f, err := src.Fundamentals(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", f.Symbol, "symbol backfilled from map key")
	assert.Equal(t, "Apple Inc.", f.Name)
	require.Contains(t, f.Metrics, "debt_equity")
	assert.Nil(t, f.Metrics["debt_equity"], "null metric loads as present-but-nil")

	_, err = src.Fundamentals(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileSource_Assessment(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "assessments.json", `{
		"KO": {
			"company_name": "Coca-Cola",
			"moat_durability": "strong",
			"conviction": "HIGH",
			"target_entry_price": 55.0
		}
	}`)

	src := NewFileSource(dir, logger.NewNop())
	a, err := src.Assess(context.Background(), "KO")
	require.NoError(t, err)
	assert.Equal(t, "strong", string(a.MoatDurability))
	require.NotNil(t, a.TargetEntryPrice)
	assert.Equal(t, 55.0, *a.TargetEntryPrice)
}

func TestFileSource_FairValueMissingFileIsNotFound(t *testing.T) {
	src := NewFileSource(t.TempDir(), logger.NewNop())
	_, err := src.FairValue(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrNotFound)
}
