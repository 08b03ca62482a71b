package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

// Store persists a Registry as a JSON document with atomic replace
// semantics: readers of the canonical path always see either the old
// document or the new one, never a partial write.
type Store struct {
	path   string
	logger *logger.Logger
}

func NewStore(path string, log *logger.Logger) *Store {
	return &Store{path: path, logger: log}
}

// document is the on-disk shape. Failed is raw so that legacy documents
// that stored it as a plain symbol list still load.
type document struct {
	Version  int                              `json:"version"`
	Campaign campaignDoc                      `json:"campaign"`
	Studies  map[string]contracts.StudyRecord `json:"studies"`
}

type campaignDoc struct {
	CampaignID string          `json:"campaign_id"`
	StartedAt  time.Time       `json:"started_at"`
	Screened   []string        `json:"screened"`
	Passed     []string        `json:"passed"`
	Failed     json.RawMessage `json:"failed"`
	Analyzed   []string        `json:"analyzed"`
}

// Load reads the registry from disk. A missing file, parse failure or
// version mismatch falls back to a fresh registry; the registry is a
// re-derivable memory layer, so starting over is always safe.
func (s *Store) Load() *Registry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("Registry unreadable, starting fresh")
		}
		return New()
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.WithError(err).WithField("path", s.path).
			Warn("Registry corrupt, starting fresh")
		return New()
	}
	if doc.Version != CurrentVersion {
		s.logger.WithFields(map[string]interface{}{
			"found":    doc.Version,
			"expected": CurrentVersion,
		}).Warn("Registry version mismatch, starting fresh")
		return New()
	}

	reg := &Registry{
		Version: doc.Version,
		Campaign: contracts.CampaignState{
			CampaignID: doc.Campaign.CampaignID,
			StartedAt:  doc.Campaign.StartedAt,
			Screened:   orEmpty(doc.Campaign.Screened),
			Passed:     orEmpty(doc.Campaign.Passed),
			Failed:     s.decodeFailed(doc.Campaign.Failed, doc.Campaign.StartedAt),
			Analyzed:   orEmpty(doc.Campaign.Analyzed),
		},
		Studies: doc.Studies,
	}
	if reg.Studies == nil {
		reg.Studies = make(map[string]contracts.StudyRecord)
	}
	return reg
}

// decodeFailed accepts both the current map form (symbol → failure
// time) and the legacy list form. Legacy entries get the campaign start
// as their failure time, the most conservative stamp still on record.
func (s *Store) decodeFailed(raw json.RawMessage, startedAt time.Time) map[string]time.Time {
	if len(raw) == 0 {
		return map[string]time.Time{}
	}

	var failed map[string]time.Time
	if err := json.Unmarshal(raw, &failed); err == nil {
		if failed == nil {
			failed = map[string]time.Time{}
		}
		return failed
	}

	var legacy []string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		s.logger.WithField("count", len(legacy)).
			Info("Migrating legacy failed list to timestamped form")
		failed = make(map[string]time.Time, len(legacy))
		for _, symbol := range legacy {
			failed[symbol] = startedAt
		}
		return failed
	}

	s.logger.Warn("Registry failed set unparseable, dropping it")
	return map[string]time.Time{}
}

// Save writes the registry atomically: encode to a temp file in the
// same directory, then rename over the canonical path. A failed write
// removes its temp file and returns the error.
func (s *Store) Save(reg *Registry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating registry dir: %w", err)
	}

	doc := document{
		Version: reg.Version,
		Campaign: campaignDoc{
			CampaignID: reg.Campaign.CampaignID,
			StartedAt:  reg.Campaign.StartedAt,
			Screened:   orEmpty(reg.Campaign.Screened),
			Passed:     orEmpty(reg.Campaign.Passed),
			Analyzed:   orEmpty(reg.Campaign.Analyzed),
		},
		Studies: reg.Studies,
	}
	failedJSON, err := json.Marshal(reg.Campaign.Failed)
	if err != nil {
		return fmt.Errorf("encoding failed set: %w", err)
	}
	doc.Campaign.Failed = failedJSON

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".registry-*.json")
	if err != nil {
		return fmt.Errorf("creating temp registry: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp registry: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing registry: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"campaign": reg.Campaign.CampaignID,
		"studies":  len(reg.Studies),
	}).Debug("Registry saved")
	return nil
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
