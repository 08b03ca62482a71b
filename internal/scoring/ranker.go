package scoring

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

// Ranker orders scored companies and cuts the top N.
//
// Sort key: effective score (score × confidence) banded to 0.5 steps,
// then market cap descending, then a seeded random jitter. The jitter
// prevents a stable sort from preserving alphabetical source order
// inside a band; the seed is logged so any ordering is reproducible.
// ⭐ SSOT: 최종 랭킹/컷은 여기서만
type Ranker struct {
	seed   int64
	topN   int
	logger *logger.Logger
}

// NewRanker creates a ranker. seed=0 draws a fresh seed per Rank call.
func NewRanker(seed int64, topN int, log *logger.Logger) *Ranker {
	return &Ranker{
		seed:   seed,
		topN:   topN,
		logger: log,
	}
}

// Rank returns a new slice with the top N companies in rank order.
// The input slice is not modified. Identical input and seed always
// produce an identical ordering.
func (r *Ranker) Rank(companies []contracts.ScoredCompany) []contracts.ScoredCompany {
	ranked := make([]contracts.ScoredCompany, len(companies))
	copy(ranked, companies)

	seed := r.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r.logger.WithField("seed", seed).Info("Rank tiebreaker seed (for reproducibility)")

	// Jitter assigned in input order so the same input + seed gives the
	// same jitter per company.
	rng := rand.New(rand.NewSource(seed))
	jitter := make(map[string]float64, len(ranked))
	for _, c := range ranked {
		jitter[c.Symbol] = rng.Float64()
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		bi := scoreBand(ranked[i].EffectiveScore())
		bj := scoreBand(ranked[j].EffectiveScore())
		if bi != bj {
			return bi > bj
		}
		if ranked[i].MarketCap != ranked[j].MarketCap {
			return ranked[i].MarketCap > ranked[j].MarketCap
		}
		return jitter[ranked[i].Symbol] < jitter[ranked[j].Symbol]
	})

	if r.topN > 0 && len(ranked) > r.topN {
		r.logger.WithFields(map[string]interface{}{
			"kept":  r.topN,
			"total": len(ranked),
		}).Info("Keeping top candidates by score")
		ranked = ranked[:r.topN]
	}

	return ranked
}

// scoreBand rounds an effective score to 0.5 precision so that
// near-equal scores compete on market cap instead of float noise.
func scoreBand(score float64) float64 {
	return math.Round(score*2) / 2
}
