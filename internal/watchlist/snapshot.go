package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

// SnapshotStore persists the watchlist snapshot between runs.
// One document, fully replaced each run; it exists only as the movement
// differ's prior-state input.
// ⭐ SSOT: 워치리스트 스냅샷 저장/조회는 여기서만
type SnapshotStore struct {
	path   string
	logger *logger.Logger
}

// NewSnapshotStore creates a snapshot store at the given path.
func NewSnapshotStore(path string, log *logger.Logger) *SnapshotStore {
	return &SnapshotStore{
		path:   path,
		logger: log,
	}
}

// Load reads the previous snapshot. A missing or unreadable file is not
// an error: diffing against an empty snapshot just reports everything
// as new.
func (s *SnapshotStore) Load() *contracts.WatchlistSnapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.WithError(err).Warn("Failed to read previous watchlist snapshot, diffing against empty state")
		}
		return emptySnapshot()
	}

	var snapshot contracts.WatchlistSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.WithError(err).Warn("Corrupt watchlist snapshot, diffing against empty state")
		return emptySnapshot()
	}
	if snapshot.Entries == nil {
		snapshot.Entries = make(map[string]contracts.SnapshotEntry)
	}
	return &snapshot
}

// Save replaces the snapshot with the current assignments. Tier-0
// symbols are never written.
func (s *SnapshotStore) Save(current map[string]contracts.TierAssignment) error {
	snapshot := FromAssignments(current)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal watchlist snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write watchlist snapshot: %w", err)
	}

	s.logger.WithField("entries", len(snapshot.Entries)).Info("Saved watchlist snapshot")
	return nil
}

// FromAssignments builds the persisted snapshot shape from current
// assignments, dropping excluded symbols.
func FromAssignments(current map[string]contracts.TierAssignment) *contracts.WatchlistSnapshot {
	snapshot := &contracts.WatchlistSnapshot{
		AsOf:    time.Now(),
		Entries: make(map[string]contracts.SnapshotEntry, len(current)),
	}
	for symbol, tier := range current {
		if tier.Tier == contracts.TierExcluded {
			continue
		}
		snapshot.Entries[symbol] = contracts.SnapshotEntry{
			Tier:              tier.Tier,
			TargetEntryPrice:  tier.TargetEntryPrice,
			CurrentPrice:      tier.CurrentPrice,
			ApproachingTarget: tier.ApproachingTarget,
		}
	}
	return snapshot
}

func emptySnapshot() *contracts.WatchlistSnapshot {
	return &contracts.WatchlistSnapshot{
		Entries: make(map[string]contracts.SnapshotEntry),
	}
}
