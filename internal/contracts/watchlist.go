package contracts

import "time"

// WatchlistSnapshot is the persisted prior-state input for the movement
// differ. One per run, fully replaced; tier-0 symbols are never written.
type WatchlistSnapshot struct {
	AsOf    time.Time                `json:"as_of"`
	Entries map[string]SnapshotEntry `json:"entries"`
}

// SnapshotEntry is the per-symbol state retained between runs.
type SnapshotEntry struct {
	Tier              int      `json:"tier"`
	TargetEntryPrice  *float64 `json:"target_entry_price,omitempty"`
	CurrentPrice      *float64 `json:"current_price,omitempty"`
	ApproachingTarget bool     `json:"approaching_target"`
}

// ChangeType classifies a watchlist movement.
type ChangeType string

const (
	ChangeNew         ChangeType = "new"
	ChangeRemoved     ChangeType = "removed"
	ChangeTierUp      ChangeType = "tier_up"
	ChangeTierDown    ChangeType = "tier_down"
	ChangeApproaching ChangeType = "approaching"
)

// WatchlistMovement is a discrete change versus the previous snapshot.
// Ephemeral, recomputed each run.
type WatchlistMovement struct {
	Symbol       string     `json:"symbol"`
	ChangeType   ChangeType `json:"change_type"`
	Detail       string     `json:"detail"`
	PreviousTier *int       `json:"previous_tier,omitempty"`
	CurrentTier  *int       `json:"current_tier,omitempty"`
}
