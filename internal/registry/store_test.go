package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.json")
	return NewStore(path, logger.NewNop())
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	reg := New()
	reg.MarkScreened([]string{"AAPL", "F"}, []contracts.ScreenResult{
		{Symbol: "AAPL", Score: 8, Confidence: 0.9},
	}, 5.0)
	reg.MarkAnalyzed("AAPL")
	target := 150.0
	reg.AddStudy(&contracts.QualitativeAssessment{
		Symbol: "AAPL", CompanyName: "Apple Inc.", Sector: "Technology",
	}, contracts.TierAssignment{
		Tier: contracts.TierBuyZone, TargetEntryPrice: &target,
	}, 8.0, 0.9)

	require.NoError(t, store.Save(reg))

	loaded := store.Load()
	assert.Equal(t, reg.Campaign.CampaignID, loaded.Campaign.CampaignID)
	assert.Equal(t, reg.Campaign.Screened, loaded.Campaign.Screened)
	assert.Equal(t, reg.Campaign.Passed, loaded.Campaign.Passed)
	assert.Equal(t, reg.Campaign.Analyzed, loaded.Campaign.Analyzed)
	assert.Contains(t, loaded.Campaign.Failed, "F")

	rec, ok := loaded.Study("AAPL")
	require.True(t, ok)
	assert.Equal(t, "Apple Inc.", rec.CompanyName)
	require.NotNil(t, rec.TargetEntryPrice)
	assert.Equal(t, 150.0, *rec.TargetEntryPrice)
}

func TestStore_MissingFileStartsFresh(t *testing.T) {
	store := newTestStore(t)
	reg := store.Load()
	require.NotNil(t, reg)
	assert.Empty(t, reg.Campaign.Screened)
	assert.Empty(t, reg.Studies)
}

func TestStore_CorruptFileStartsFresh(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0o644))

	reg := store.Load()
	require.NotNil(t, reg)
	assert.Empty(t, reg.Studies)
}

func TestStore_VersionMismatchStartsFresh(t *testing.T) {
	store := newTestStore(t)
	doc := map[string]interface{}{
		"version": 99,
		"campaign": map[string]interface{}{
			"campaign_id": "2019-Q1",
			"screened":    []string{"OLD"},
		},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.path, data, 0o644))

	reg := store.Load()
	assert.NotEqual(t, "2019-Q1", reg.Campaign.CampaignID)
	assert.Empty(t, reg.Campaign.Screened)
}

func TestStore_MigratesLegacyFailedList(t *testing.T) {
	store := newTestStore(t)
	started := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	doc := map[string]interface{}{
		"version": CurrentVersion,
		"campaign": map[string]interface{}{
			"campaign_id": "2026-Q1",
			"started_at":  started,
			"screened":    []string{"BAD1", "BAD2"},
			"passed":      []string{},
			"failed":      []string{"BAD1", "BAD2"},
			"analyzed":    []string{},
		},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.path, data, 0o644))

	reg := store.Load()
	require.Len(t, reg.Campaign.Failed, 2)
	// Legacy entries inherit the campaign start as failure time.
	assert.True(t, reg.Campaign.Failed["BAD1"].Equal(started))

	// Saving rewrites in the map form.
	require.NoError(t, store.Save(reg))
	raw, err := os.ReadFile(store.path)
	require.NoError(t, err)
	var saved struct {
		Campaign struct {
			Failed map[string]time.Time `json:"failed"`
		} `json:"campaign"`
	}
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Contains(t, saved.Campaign.Failed, "BAD2")
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(New()))

	entries, err := os.ReadDir(filepath.Dir(store.path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "registry.json", entries[0].Name())
}
