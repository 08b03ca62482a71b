package registry

import (
	"context"
	"fmt"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/pkg/database"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

// Archive mirrors study records into Postgres for ad-hoc querying.
// The JSON registry file stays the source of truth; archive failures
// are logged and never fail a run.
type Archive struct {
	db     *database.DB
	logger *logger.Logger
}

func NewArchive(db *database.DB, log *logger.Logger) *Archive {
	return &Archive{db: db, logger: log}
}

// EnsureSchema creates the archive table if it does not exist.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS study_archive (
			symbol            TEXT PRIMARY KEY,
			company_name      TEXT NOT NULL,
			sector            TEXT,
			campaign_id       TEXT NOT NULL,
			tier              INT NOT NULL,
			tier_reason       TEXT,
			target_entry      DOUBLE PRECISION,
			price_at_analysis DOUBLE PRECISION,
			screener_score    DOUBLE PRECISION NOT NULL,
			screener_conf     DOUBLE PRECISION NOT NULL,
			analyzed_at       TIMESTAMPTZ NOT NULL
		)`
	if _, err := a.db.Pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("creating study_archive: %w", err)
	}
	return nil
}

// UpsertStudy writes one study record, replacing any prior row for the
// symbol.
func (a *Archive) UpsertStudy(ctx context.Context, campaignID string, rec contracts.StudyRecord) error {
	query := `
		INSERT INTO study_archive (
			symbol, company_name, sector, campaign_id, tier, tier_reason,
			target_entry, price_at_analysis, screener_score, screener_conf, analyzed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (symbol) DO UPDATE SET
			company_name      = EXCLUDED.company_name,
			sector            = EXCLUDED.sector,
			campaign_id       = EXCLUDED.campaign_id,
			tier              = EXCLUDED.tier,
			tier_reason       = EXCLUDED.tier_reason,
			target_entry      = EXCLUDED.target_entry,
			price_at_analysis = EXCLUDED.price_at_analysis,
			screener_score    = EXCLUDED.screener_score,
			screener_conf     = EXCLUDED.screener_conf,
			analyzed_at       = EXCLUDED.analyzed_at`

	_, err := a.db.Pool.Exec(ctx, query,
		rec.Symbol, rec.CompanyName, rec.Sector, campaignID, rec.Tier,
		rec.TierReason, rec.TargetEntryPrice, rec.PriceAtAnalysis,
		rec.ScreenerScore, rec.ScreenerConfidence, rec.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting study %s: %w", rec.Symbol, err)
	}
	return nil
}

// MirrorAll pushes every study in the registry, logging and skipping
// failures.
func (a *Archive) MirrorAll(ctx context.Context, reg *Registry) {
	mirrored := 0
	for _, rec := range reg.Studies {
		if err := a.UpsertStudy(ctx, reg.Campaign.CampaignID, rec); err != nil {
			a.logger.WithError(err).WithField("symbol", rec.Symbol).
				Warn("Study archive upsert failed")
			continue
		}
		mirrored++
	}
	a.logger.WithField("mirrored", mirrored).Debug("Study archive synced")
}
