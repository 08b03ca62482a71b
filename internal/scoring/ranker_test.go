package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

func company(symbol string, score, confidence, marketCap float64) contracts.ScoredCompany {
	return contracts.ScoredCompany{
		Symbol:     symbol,
		Score:      score,
		Confidence: confidence,
		MarketCap:  marketCap,
	}
}

func TestRanker_OrdersByBandThenMarketCap(t *testing.T) {
	ranker := NewRanker(42, 0, logger.NewNop())

	input := []contracts.ScoredCompany{
		company("SMALL_HI", 5.0, 1.0, 1e9),  // band 5.0
		company("BIG_MID", 3.0, 1.0, 9e9),   // band 3.0
		company("SMALL_MID", 3.1, 1.0, 1e9), // band 3.0, smaller cap
		company("BIG_LO", 1.0, 1.0, 9e9),    // band 1.0
	}

	ranked := ranker.Rank(input)
	require.Len(t, ranked, 4)

	assert.Equal(t, "SMALL_HI", ranked[0].Symbol)
	assert.Equal(t, "BIG_MID", ranked[1].Symbol, "equal band resolves on market cap")
	assert.Equal(t, "SMALL_MID", ranked[2].Symbol)
	assert.Equal(t, "BIG_LO", ranked[3].Symbol)
}

func TestRanker_SameSeedSameOrder(t *testing.T) {
	// identical band and market cap: ordering falls to the seeded jitter
	input := []contracts.ScoredCompany{
		company("AAA", 2.0, 1.0, 5e9),
		company("BBB", 2.0, 1.0, 5e9),
		company("CCC", 2.0, 1.0, 5e9),
		company("DDD", 2.0, 1.0, 5e9),
	}

	first := NewRanker(1234, 0, logger.NewNop()).Rank(input)
	second := NewRanker(1234, 0, logger.NewNop()).Rank(input)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Symbol, second[i].Symbol)
	}
}

func TestRanker_TopNCut(t *testing.T) {
	ranker := NewRanker(7, 2, logger.NewNop())

	input := []contracts.ScoredCompany{
		company("A", 5.0, 1.0, 1e9),
		company("B", 4.0, 1.0, 1e9),
		company("C", 3.0, 1.0, 1e9),
	}

	ranked := ranker.Rank(input)
	require.Len(t, ranked, 2)
	assert.Equal(t, "A", ranked[0].Symbol)
	assert.Equal(t, "B", ranked[1].Symbol)

	// input untouched
	assert.Len(t, input, 3)
}
