// Package pipeline orchestrates one research run: universe refresh,
// quantitative screening, deep analysis of the best candidates, tier
// classification and watchlist movement reporting.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/internal/criteria"
	"github.com/wonny/valuescout/backend/internal/registry"
	"github.com/wonny/valuescout/backend/internal/scoring"
	"github.com/wonny/valuescout/backend/internal/tiering"
	"github.com/wonny/valuescout/backend/internal/watchlist"
	"github.com/wonny/valuescout/backend/pkg/config"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

// screenBatch caps fundamentals fetches per run so a large universe is
// worked through incrementally across runs.
const screenBatch = 100

// Runner wires the screening, tiering and registry stages into one
// resumable run.
type Runner struct {
	cfg        *config.Config
	crit       *criteria.Criteria
	universe   contracts.UniverseProvider
	metrics    contracts.MetricProvider
	assessor   contracts.AssessmentProvider
	fairValues contracts.FairValueProvider
	regStore   *registry.Store
	snapshots  *watchlist.SnapshotStore
	archive    *registry.Archive // nil when the study archive is disabled
	logger     *logger.Logger
}

// Deps collects the collaborators for a Runner. Archive may be nil.
type Deps struct {
	Criteria   *criteria.Criteria
	Universe   contracts.UniverseProvider
	Metrics    contracts.MetricProvider
	Assessor   contracts.AssessmentProvider
	FairValues contracts.FairValueProvider
	Registry   *registry.Store
	Snapshots  *watchlist.SnapshotStore
	Archive    *registry.Archive
}

func NewRunner(cfg *config.Config, deps Deps, log *logger.Logger) *Runner {
	return &Runner{
		cfg:        cfg,
		crit:       deps.Criteria,
		universe:   deps.Universe,
		metrics:    deps.Metrics,
		assessor:   deps.Assessor,
		fairValues: deps.FairValues,
		regStore:   deps.Registry,
		snapshots:  deps.Snapshots,
		archive:    deps.Archive,
		logger:     log,
	}
}

// RunResult summarizes one completed run for reporting.
type RunResult struct {
	StartedAt       time.Time
	Duration        time.Duration
	CampaignRotated bool
	UniverseSize    int
	Screened        int
	Passed          int
	Analyzed        int
	Candidates      []contracts.ScoredCompany
	Assignments     map[string]contracts.TierAssignment
	Movements       []contracts.WatchlistMovement
	Progress        contracts.CampaignProgress
}

// Run executes one full pipeline pass. Every stage persists its
// progress, so an interrupted run resumes where it stopped.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	started := time.Now()
	result := &RunResult{StartedAt: started}

	reg := r.regStore.Load()

	symbols, err := r.universe.Symbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("building universe: %w", err)
	}
	result.UniverseSize = len(symbols)

	if reg.ShouldStartNewCampaign(len(symbols)) {
		old := reg.Campaign.CampaignID
		prevFailed := len(reg.Campaign.Failed)
		newID := reg.StartNewCampaign(r.cfg.Campaign.CarryForwardDays)
		carried := len(reg.Campaign.Failed)
		result.CampaignRotated = true
		r.logger.WithFields(map[string]interface{}{
			"old":     old,
			"new":     newID,
			"carried": carried,
			"expired": prevFailed - carried,
		}).Info("Coverage campaign rotated")
	}

	candidates, screenResults, err := r.screen(ctx, reg, symbols)
	if err != nil {
		return nil, err
	}
	result.Screened = len(screenResults)
	result.Candidates = candidates

	reg.MarkScreened(symbolsOf(screenResults), screenResults, r.cfg.Screening.MinScore)
	result.Passed = len(reg.Campaign.Passed)

	assignments, analyzed := r.analyze(ctx, reg, candidates)
	result.Analyzed = analyzed

	previous := r.snapshots.Load()
	current := r.mergeWatchlist(previous, assignments)
	result.Assignments = current
	result.Movements = watchlist.ComputeMovements(current, previous)

	if err := r.snapshots.Save(current); err != nil {
		return nil, fmt.Errorf("saving watchlist snapshot: %w", err)
	}
	if err := r.regStore.Save(reg); err != nil {
		return nil, fmt.Errorf("saving registry: %w", err)
	}
	if r.archive != nil {
		r.archive.MirrorAll(ctx, reg)
	}

	result.Progress = reg.Progress(len(symbols))
	result.Duration = time.Since(started)

	r.logger.WithFields(map[string]interface{}{
		"screened":  result.Screened,
		"analyzed":  result.Analyzed,
		"movements": len(result.Movements),
		"coverage":  fmt.Sprintf("%.1f%%", result.Progress.CoveragePct*100),
		"duration":  result.Duration.Round(time.Millisecond).String(),
	}).Info("Run complete")

	return result, nil
}

// screen fetches fundamentals for a batch of unstudied symbols, applies
// the hard filters and scores the survivors. Fetch failures and hard
// filter rejects still report a zero screening result so the campaign
// marks them screened and moves on.
func (r *Runner) screen(ctx context.Context, reg *registry.Registry, symbols []string) ([]contracts.ScoredCompany, []contracts.ScreenResult, error) {
	unstudied := reg.UnstudiedSymbols(symbols)
	if len(unstudied) > screenBatch {
		unstudied = unstudied[:screenBatch]
	}

	engine := scoring.NewEngine(r.crit, r.logger)
	scored := make([]contracts.ScoredCompany, 0, len(unstudied))
	results := make([]contracts.ScreenResult, 0, len(unstudied))

	for _, symbol := range unstudied {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		fund, err := r.metrics.Fundamentals(ctx, symbol)
		if err != nil {
			r.logger.WithError(err).WithField("symbol", symbol).
				Debug("Fundamentals unavailable")
			results = append(results, contracts.ScreenResult{Symbol: symbol})
			continue
		}
		if !r.passesHardFilters(fund) {
			results = append(results, contracts.ScreenResult{Symbol: symbol})
			continue
		}

		company := engine.ScoreCompany(fund)
		scored = append(scored, *company)
		results = append(results, contracts.ScreenResult{
			Symbol:     symbol,
			Score:      company.Score,
			Confidence: company.Confidence,
		})
	}

	ranker := scoring.NewRanker(r.cfg.Screening.RankSeed, r.cfg.Screening.TopN, r.logger)
	return ranker.Rank(scored), results, nil
}

func (r *Runner) passesHardFilters(fund *contracts.CompanyFundamentals) bool {
	if fund.MarketCap < r.crit.MinMarketCap || fund.MarketCap > r.crit.MaxMarketCap {
		return false
	}
	if fund.Price == nil || *fund.Price < r.crit.MinPrice {
		return false
	}
	return true
}

// analyze runs the deep qualitative pass over the best candidates that
// passed the campaign gate, classifies each into a tier and records the
// study. A failed assessment skips the symbol without consuming its
// analysis slot.
func (r *Runner) analyze(ctx context.Context, reg *registry.Registry, candidates []contracts.ScoredCompany) (map[string]contracts.TierAssignment, int) {
	classifier := tiering.NewClassifier(r.cfg.Tiering)
	assignments := make(map[string]contracts.TierAssignment)

	analyzed := 0
	for _, cand := range candidates {
		if analyzed >= r.cfg.Screening.MaxAnalyses {
			break
		}
		if ctx.Err() != nil {
			break
		}

		res := contracts.ScreenResult{Symbol: cand.Symbol, Score: cand.Score, Confidence: cand.Confidence}
		if res.Combined() < r.cfg.Screening.MinScore {
			continue
		}
		if !reg.NeedsRefresh(cand.Symbol, r.cfg.Campaign.MaxStudyAgeDays) {
			continue
		}

		assessment, err := r.assessor.Assess(ctx, cand.Symbol)
		if err != nil {
			r.logger.WithError(err).WithField("symbol", cand.Symbol).
				Warn("Assessment failed, skipping")
			continue
		}

		var fv *contracts.FairValue
		if assessment.TargetEntryPrice == nil || assessment.CurrentPrice == nil {
			fv, err = r.fairValues.FairValue(ctx, cand.Symbol)
			if err != nil && !errors.Is(err, context.Canceled) {
				r.logger.WithError(err).WithField("symbol", cand.Symbol).
					Debug("Fair value unavailable")
				fv = nil
			}
		}

		assignment := classifier.Assign(assessment, fv)
		assignments[cand.Symbol] = assignment

		reg.AddStudy(assessment, assignment, cand.Score, cand.Confidence)
		reg.MarkAnalyzed(cand.Symbol)
		analyzed++
	}

	return assignments, analyzed
}

// mergeWatchlist overlays this run's assignments onto the previous
// snapshot. Symbols not re-analyzed this run keep their prior entry, so
// "removed" means demoted or dropped, never merely not-looked-at.
func (r *Runner) mergeWatchlist(previous *contracts.WatchlistSnapshot, assignments map[string]contracts.TierAssignment) map[string]contracts.TierAssignment {
	current := make(map[string]contracts.TierAssignment, len(previous.Entries)+len(assignments))
	for symbol, entry := range previous.Entries {
		current[symbol] = contracts.TierAssignment{
			Symbol:            symbol,
			Tier:              entry.Tier,
			TargetEntryPrice:  entry.TargetEntryPrice,
			CurrentPrice:      entry.CurrentPrice,
			ApproachingTarget: entry.ApproachingTarget,
		}
	}
	for symbol, assignment := range assignments {
		current[symbol] = assignment
	}
	return current
}

func symbolsOf(results []contracts.ScreenResult) []string {
	out := make([]string, 0, len(results))
	for _, res := range results {
		out = append(out, res.Symbol)
	}
	return out
}
