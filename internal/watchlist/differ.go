package watchlist

import (
	"fmt"
	"sort"

	"github.com/wonny/valuescout/backend/internal/contracts"
)

// ComputeMovements compares current tier assignments against the
// previous snapshot and returns the discrete changes.
//
// Emitted per current symbol with tier > 0: "new" when absent before,
// "tier_up"/"tier_down" on tier change (lower number = more favorable),
// plus "approaching" when the approaching-target flag newly turned on —
// a symbol may emit a tier event and an approaching event in the same
// run. Symbols present before but now absent or tier 0 emit "removed".
//
// Symbols are walked in sorted order so identical inputs always yield an
// identical sequence.
func ComputeMovements(current map[string]contracts.TierAssignment, previous *contracts.WatchlistSnapshot) []contracts.WatchlistMovement {
	movements := make([]contracts.WatchlistMovement, 0)

	var prevEntries map[string]contracts.SnapshotEntry
	if previous != nil {
		prevEntries = previous.Entries
	}

	for _, symbol := range sortedKeys(current) {
		tier := current[symbol]
		if tier.Tier == contracts.TierExcluded {
			continue
		}

		prev, existed := prevEntries[symbol]
		if !existed {
			movements = append(movements, contracts.WatchlistMovement{
				Symbol:      symbol,
				ChangeType:  contracts.ChangeNew,
				Detail:      fmt.Sprintf("New Tier %d entry", tier.Tier),
				CurrentTier: intPtr(tier.Tier),
			})
			continue
		}

		if tier.Tier < prev.Tier {
			movements = append(movements, contracts.WatchlistMovement{
				Symbol:       symbol,
				ChangeType:   contracts.ChangeTierUp,
				Detail:       fmt.Sprintf("Upgraded Tier %d -> Tier %d", prev.Tier, tier.Tier),
				PreviousTier: intPtr(prev.Tier),
				CurrentTier:  intPtr(tier.Tier),
			})
		} else if tier.Tier > prev.Tier {
			movements = append(movements, contracts.WatchlistMovement{
				Symbol:       symbol,
				ChangeType:   contracts.ChangeTierDown,
				Detail:       fmt.Sprintf("Downgraded Tier %d -> Tier %d", prev.Tier, tier.Tier),
				PreviousTier: intPtr(prev.Tier),
				CurrentTier:  intPtr(tier.Tier),
			})
		}

		if tier.ApproachingTarget && !prev.ApproachingTarget {
			detail := "Approaching target entry price"
			if tier.PriceGapPct != nil {
				detail = fmt.Sprintf("Approaching target entry (%+.0f%% from target)", *tier.PriceGapPct*100)
			}
			movements = append(movements, contracts.WatchlistMovement{
				Symbol:      symbol,
				ChangeType:  contracts.ChangeApproaching,
				Detail:      detail,
				CurrentTier: intPtr(tier.Tier),
			})
		}
	}

	for _, symbol := range sortedEntryKeys(prevEntries) {
		cur, present := current[symbol]
		if present && cur.Tier != contracts.TierExcluded {
			continue
		}
		prev := prevEntries[symbol]
		movements = append(movements, contracts.WatchlistMovement{
			Symbol:       symbol,
			ChangeType:   contracts.ChangeRemoved,
			Detail:       fmt.Sprintf("Removed (was Tier %d)", prev.Tier),
			PreviousTier: intPtr(prev.Tier),
		})
	}

	return movements
}

func sortedKeys(m map[string]contracts.TierAssignment) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedEntryKeys(m map[string]contracts.SnapshotEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func intPtr(v int) *int { return &v }
