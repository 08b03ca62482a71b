package tiering

import (
	"fmt"
	"math"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/pkg/config"
)

// Classifier assigns watchlist tiers from a qualitative assessment plus
// price-versus-target data.
//
// Tier map:
//
//	1 = high quality at/below target entry (buy zone)
//	2 = high quality above target, or price unconfirmed (watch)
//	3 = moderate quality, monitored on quality alone
//	0 = low quality, excluded
//
// Pure decision logic: missing inputs degrade to the conservative
// branch, never error.
// ⭐ SSOT: 티어 판정은 여기서만
type Classifier struct {
	cfg config.TieringConfig
}

// NewClassifier creates a classifier with the given tiering knobs.
func NewClassifier(cfg config.TieringConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// Assign produces the tier assignment for one assessed symbol.
// fairValue may be nil; it is consulted only when the assessment omits
// price fields.
func (c *Classifier) Assign(assessment *contracts.QualitativeAssessment, fairValue *contracts.FairValue) contracts.TierAssignment {
	quality := qualityLevel(assessment.MoatDurability, assessment.Conviction)

	// Low quality: excluded, no price fields
	if quality == contracts.QualityLow {
		return contracts.TierAssignment{
			Symbol:       assessment.Symbol,
			Tier:         contracts.TierExcluded,
			QualityLevel: quality,
			Reason:       "Low quality: weak moat and low conviction",
			PriceStatus:  contracts.PriceUnavailable,
		}
	}

	// Moderate quality: tier 3, monitored on quality alone. Price
	// fields pass through when available but no gap is computed.
	if quality == contracts.QualityModerate {
		target := assessment.TargetEntryPrice
		current := assessment.CurrentPrice
		if current == nil && fairValue != nil {
			current = fairValue.CurrentPrice
		}
		return contracts.TierAssignment{
			Symbol:           assessment.Symbol,
			Tier:             contracts.TierMonitor,
			QualityLevel:     quality,
			Reason:           fmt.Sprintf("Moderate quality: %s moat, %s conviction", assessment.MoatDurability, assessment.Conviction),
			TargetEntryPrice: target,
			CurrentPrice:     current,
			PriceStatus:      priceStatus(target, current),
		}
	}

	// High quality: tier 1 or 2 depending on price vs target
	target := assessment.TargetEntryPrice
	current := assessment.CurrentPrice

	if target == nil && fairValue != nil && fairValue.AverageFairValue != nil {
		t := *fairValue.AverageFairValue * (1 - c.cfg.MarginOfSafetyPct)
		target = &t
	}
	if current == nil && fairValue != nil {
		current = fairValue.CurrentPrice
	}

	if target != nil && current != nil && *target > 0 {
		gap := (*current - *target) / *target

		if *current <= *target {
			return contracts.TierAssignment{
				Symbol:            assessment.Symbol,
				Tier:              contracts.TierBuyZone,
				QualityLevel:      quality,
				Reason:            fmt.Sprintf("High quality at/below target entry (%.2f <= %.2f)", *current, *target),
				TargetEntryPrice:  target,
				CurrentPrice:      current,
				PriceGapPct:       &gap,
				ApproachingTarget: false,
				PriceStatus:       contracts.PriceResolved,
			}
		}

		return contracts.TierAssignment{
			Symbol:            assessment.Symbol,
			Tier:              contracts.TierWatch,
			QualityLevel:      quality,
			Reason:            fmt.Sprintf("High quality but %+.0f%% above target %.2f", gap*100, *target),
			TargetEntryPrice:  target,
			CurrentPrice:      current,
			PriceGapPct:       &gap,
			ApproachingTarget: gap > 0 && gap <= c.cfg.ProximityPct,
			PriceStatus:       contracts.PriceResolved,
		}
	}

	// Price unresolved: never promote to tier 1 without confirmation
	return contracts.TierAssignment{
		Symbol:           assessment.Symbol,
		Tier:             contracts.TierWatch,
		QualityLevel:     quality,
		Reason:           "High quality, price target unavailable",
		TargetEntryPrice: target,
		CurrentPrice:     current,
		PriceStatus:      contracts.PriceUnavailable,
	}
}

// StagedEntry builds a descending-price entry ladder below the target.
// Deterministic and finite; each tranche gets an equal allocation.
func (c *Classifier) StagedEntry(targetPrice float64) []contracts.EntryTranche {
	return StagedEntry(targetPrice, c.cfg.StagedTranches, c.cfg.StagedStepPct)
}

// StagedEntry builds the ladder with explicit parameters.
func StagedEntry(targetPrice float64, tranches int, stepPct float64) []contracts.EntryTranche {
	if tranches <= 0 {
		tranches = 3
	}
	if stepPct <= 0 {
		stepPct = 0.05
	}

	allocation := 1.0 / float64(tranches)
	ladder := make([]contracts.EntryTranche, 0, tranches)
	for i := 0; i < tranches; i++ {
		price := targetPrice * (1 - stepPct*float64(i))
		ladder = append(ladder, contracts.EntryTranche{
			Tranche:    i + 1,
			Price:      math.Round(price*100) / 100,
			Allocation: allocation,
		})
	}
	return ladder
}

// qualityLevel grades moat durability and conviction into high,
// moderate or low.
func qualityLevel(moat contracts.MoatDurability, conviction contracts.Conviction) contracts.QualityLevel {
	highMoat := moat == contracts.MoatStrong || moat == contracts.MoatModerate
	highConviction := conviction == contracts.ConvictionHigh || conviction == contracts.ConvictionMedium

	switch {
	case highMoat && highConviction:
		return contracts.QualityHigh
	case moat == contracts.MoatNone && conviction == contracts.ConvictionLow:
		return contracts.QualityLow
	default:
		return contracts.QualityModerate
	}
}

// priceStatus reports whether both sides of the price comparison were
// resolved.
func priceStatus(target, current *float64) contracts.PriceStatus {
	if target != nil && current != nil {
		return contracts.PriceResolved
	}
	return contracts.PriceUnavailable
}
