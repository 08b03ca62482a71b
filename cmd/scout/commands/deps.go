package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wonny/valuescout/backend/internal/criteria"
	"github.com/wonny/valuescout/backend/internal/marketdata"
	"github.com/wonny/valuescout/backend/internal/pipeline"
	"github.com/wonny/valuescout/backend/internal/registry"
	"github.com/wonny/valuescout/backend/internal/universe"
	"github.com/wonny/valuescout/backend/internal/watchlist"
	"github.com/wonny/valuescout/backend/pkg/config"
	"github.com/wonny/valuescout/backend/pkg/database"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

// app bundles the shared wiring every command starts from.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	regStore  *registry.Store
	snapshots *watchlist.SnapshotStore
	universe  *universe.Provider
	db        *database.DB // nil unless the study archive is enabled
}

// bootstrap loads config, logger and the stores. Callers owning a db
// must defer a.close().
func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	a := &app{
		cfg:       cfg,
		log:       log,
		regStore:  registry.NewStore(cfg.RegistryPath(), log),
		snapshots: watchlist.NewSnapshotStore(cfg.SnapshotPath(), log),
		universe:  universe.NewProvider(cfg.Universe, cfg.UniverseCachePath(), log),
	}

	if cfg.Database.Enabled {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db
	}

	return a, nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

// loadCriteria reads the screening criteria file, falling back to the
// built-in defaults when no file is present.
func (a *app) loadCriteria() (*criteria.Criteria, error) {
	crit, err := criteria.Load(a.cfg.CriteriaPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.log.WithField("path", a.cfg.CriteriaPath).
				Warn("Criteria file not found, using defaults")
			return criteria.Default(), nil
		}
		return nil, fmt.Errorf("load criteria: %w", err)
	}

	if hash, hashErr := criteria.Hash(crit); hashErr == nil {
		a.log.WithField("criteria_hash", hash[:12]).Info("Criteria loaded")
	}
	return crit, nil
}

// newRunner assembles the full pipeline.
func (a *app) newRunner() (*pipeline.Runner, error) {
	crit, err := a.loadCriteria()
	if err != nil {
		return nil, err
	}

	source := marketdata.NewFileSource(filepath.Join(a.cfg.DataDir, "marketdata"), a.log)

	deps := pipeline.Deps{
		Criteria:   crit,
		Universe:   a.universe,
		Metrics:    source,
		Assessor:   source,
		FairValues: source,
		Registry:   a.regStore,
		Snapshots:  a.snapshots,
	}
	if a.db != nil {
		deps.Archive = registry.NewArchive(a.db, a.log)
	}

	return pipeline.NewRunner(a.cfg, deps, a.log), nil
}
