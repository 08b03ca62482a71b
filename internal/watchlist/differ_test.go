package watchlist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

func f(v float64) *float64 { return &v }

func tierAssignment(symbol string, tier int, approaching bool) contracts.TierAssignment {
	return contracts.TierAssignment{
		Symbol:            symbol,
		Tier:              tier,
		ApproachingTarget: approaching,
	}
}

func snapshotWith(entries map[string]contracts.SnapshotEntry) *contracts.WatchlistSnapshot {
	return &contracts.WatchlistSnapshot{Entries: entries}
}

func TestComputeMovements_NewEntries(t *testing.T) {
	current := map[string]contracts.TierAssignment{
		"AAA": tierAssignment("AAA", 1, false),
		"BBB": tierAssignment("BBB", 2, false),
		"CCC": tierAssignment("CCC", 0, false), // excluded, no event
	}

	movements := ComputeMovements(current, snapshotWith(nil))
	require.Len(t, movements, 2)

	assert.Equal(t, "AAA", movements[0].Symbol)
	assert.Equal(t, contracts.ChangeNew, movements[0].ChangeType)
	assert.Equal(t, "BBB", movements[1].Symbol)
	assert.Equal(t, contracts.ChangeNew, movements[1].ChangeType)
}

func TestComputeMovements_TierChanges(t *testing.T) {
	current := map[string]contracts.TierAssignment{
		"UP":   tierAssignment("UP", 1, false),
		"DOWN": tierAssignment("DOWN", 3, false),
		"SAME": tierAssignment("SAME", 2, false),
	}
	previous := snapshotWith(map[string]contracts.SnapshotEntry{
		"UP":   {Tier: 2},
		"DOWN": {Tier: 2},
		"SAME": {Tier: 2},
	})

	movements := ComputeMovements(current, previous)
	require.Len(t, movements, 2)

	byType := map[contracts.ChangeType]contracts.WatchlistMovement{}
	for _, m := range movements {
		byType[m.ChangeType] = m
	}

	up := byType[contracts.ChangeTierUp]
	assert.Equal(t, "UP", up.Symbol)
	require.NotNil(t, up.PreviousTier)
	assert.Equal(t, 2, *up.PreviousTier)
	require.NotNil(t, up.CurrentTier)
	assert.Equal(t, 1, *up.CurrentTier)

	down := byType[contracts.ChangeTierDown]
	assert.Equal(t, "DOWN", down.Symbol)
}

func TestComputeMovements_ApproachingAlongsideTierEvent(t *testing.T) {
	gap := 0.08
	current := map[string]contracts.TierAssignment{
		"XYZ": {
			Symbol:            "XYZ",
			Tier:              2,
			ApproachingTarget: true,
			PriceGapPct:       &gap,
		},
	}
	previous := snapshotWith(map[string]contracts.SnapshotEntry{
		"XYZ": {Tier: 3, ApproachingTarget: false},
	})

	movements := ComputeMovements(current, previous)
	require.Len(t, movements, 2, "tier event plus approaching event")
	assert.Equal(t, contracts.ChangeTierUp, movements[0].ChangeType)
	assert.Equal(t, contracts.ChangeApproaching, movements[1].ChangeType)
}

func TestComputeMovements_ApproachingOnlyWhenNewlyTrue(t *testing.T) {
	current := map[string]contracts.TierAssignment{
		"XYZ": tierAssignment("XYZ", 2, true),
	}
	previous := snapshotWith(map[string]contracts.SnapshotEntry{
		"XYZ": {Tier: 2, ApproachingTarget: true},
	})

	movements := ComputeMovements(current, previous)
	assert.Empty(t, movements, "already-approaching symbol emits nothing")
}

func TestComputeMovements_Removed(t *testing.T) {
	current := map[string]contracts.TierAssignment{
		"GONE_T0": tierAssignment("GONE_T0", 0, false), // demoted to excluded
	}
	previous := snapshotWith(map[string]contracts.SnapshotEntry{
		"GONE":    {Tier: 1},
		"GONE_T0": {Tier: 2},
	})

	movements := ComputeMovements(current, previous)
	require.Len(t, movements, 2)

	assert.Equal(t, "GONE", movements[0].Symbol)
	assert.Equal(t, contracts.ChangeRemoved, movements[0].ChangeType)
	assert.Equal(t, "GONE_T0", movements[1].Symbol)
	assert.Equal(t, contracts.ChangeRemoved, movements[1].ChangeType)
}

func TestComputeMovements_Idempotent(t *testing.T) {
	gap := 0.05
	current := map[string]contracts.TierAssignment{
		"AAA": tierAssignment("AAA", 1, false),
		"BBB": {Symbol: "BBB", Tier: 2, ApproachingTarget: true, PriceGapPct: &gap},
		"CCC": tierAssignment("CCC", 3, false),
	}
	previous := snapshotWith(map[string]contracts.SnapshotEntry{
		"BBB": {Tier: 2},
		"DDD": {Tier: 3},
	})

	first := ComputeMovements(current, previous)
	second := ComputeMovements(current, previous)
	assert.Equal(t, first, second)
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist_history.json")
	store := NewSnapshotStore(path, logger.NewNop())

	current := map[string]contracts.TierAssignment{
		"AAA": {
			Symbol:            "AAA",
			Tier:              1,
			TargetEntryPrice:  f(100),
			CurrentPrice:      f(90),
			ApproachingTarget: false,
		},
		"BAD": tierAssignment("BAD", 0, false),
	}

	require.NoError(t, store.Save(current))

	loaded := store.Load()
	require.Len(t, loaded.Entries, 1, "tier 0 never persisted")

	entry, ok := loaded.Entries["AAA"]
	require.True(t, ok)
	assert.Equal(t, 1, entry.Tier)
	require.NotNil(t, entry.TargetEntryPrice)
	assert.Equal(t, 100.0, *entry.TargetEntryPrice)
}

func TestSnapshotStore_MissingFile(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "nope.json"), logger.NewNop())

	snapshot := store.Load()
	require.NotNil(t, snapshot)
	assert.Empty(t, snapshot.Entries)
}
