package contracts

import "context"

// UniverseProvider supplies the candidate symbols for a run.
// Returned symbols are deduplicated and order-preserving.
// ⭐ SSOT: 유니버스 조회 인터페이스
type UniverseProvider interface {
	Symbols(ctx context.Context) ([]string, error)
}

// MetricProvider supplies raw numeric fundamentals per symbol.
// Metric values may be nil; the scoring engine degrades confidence
// rather than failing.
type MetricProvider interface {
	Fundamentals(ctx context.Context, symbol string) (*CompanyFundamentals, error)
}

// AssessmentProvider supplies the external qualitative analysis for a
// symbol. The result is treated as opaque input; its derivation is not
// validated here.
type AssessmentProvider interface {
	Assess(ctx context.Context, symbol string) (*QualitativeAssessment, error)
}

// FairValueProvider supplies the external valuation fallback used when
// the assessment omits price fields.
type FairValueProvider interface {
	FairValue(ctx context.Context, symbol string) (*FairValue, error)
}
