// Package marketdata provides file-backed implementations of the data
// provider interfaces. Production deployments swap in live API-backed
// providers; the file source keeps the pipeline runnable from exported
// JSON snapshots and in tests.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

// ErrNotFound reports a symbol absent from the loaded snapshot.
var ErrNotFound = fmt.Errorf("symbol not in snapshot")

// FileSource serves fundamentals, assessments and fair values from
// JSON snapshot files in a single directory:
//
//	fundamentals.json  map[symbol]CompanyFundamentals
//	assessments.json   map[symbol]QualitativeAssessment
//	fairvalues.json    map[symbol]FairValue
//
// Files are loaded lazily and cached for the process lifetime.
type FileSource struct {
	dir    string
	logger *logger.Logger

	mu           sync.Mutex
	fundamentals map[string]contracts.CompanyFundamentals
	assessments  map[string]contracts.QualitativeAssessment
	fairValues   map[string]contracts.FairValue
}

func NewFileSource(dir string, log *logger.Logger) *FileSource {
	return &FileSource{dir: dir, logger: log}
}

// Fundamentals implements contracts.MetricProvider.
func (s *FileSource) Fundamentals(_ context.Context, symbol string) (*contracts.CompanyFundamentals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fundamentals == nil {
		if err := loadJSON(filepath.Join(s.dir, "fundamentals.json"), &s.fundamentals); err != nil {
			return nil, err
		}
	}
	f, ok := s.fundamentals[symbol]
	if !ok {
		return nil, fmt.Errorf("fundamentals for %s: %w", symbol, ErrNotFound)
	}
	if f.Symbol == "" {
		f.Symbol = symbol
	}
	return &f, nil
}

// Assess implements contracts.AssessmentProvider.
func (s *FileSource) Assess(_ context.Context, symbol string) (*contracts.QualitativeAssessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.assessments == nil {
		if err := loadJSON(filepath.Join(s.dir, "assessments.json"), &s.assessments); err != nil {
			return nil, err
		}
	}
	a, ok := s.assessments[symbol]
	if !ok {
		return nil, fmt.Errorf("assessment for %s: %w", symbol, ErrNotFound)
	}
	if a.Symbol == "" {
		a.Symbol = symbol
	}
	return &a, nil
}

// FairValue implements contracts.FairValueProvider.
func (s *FileSource) FairValue(_ context.Context, symbol string) (*contracts.FairValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fairValues == nil {
		if err := loadJSON(filepath.Join(s.dir, "fairvalues.json"), &s.fairValues); err != nil {
			// Fair values are a fallback source only; a missing file
			// just means no fallback is available.
			if os.IsNotExist(err) {
				s.fairValues = map[string]contracts.FairValue{}
			} else {
				return nil, err
			}
		}
	}
	fv, ok := s.fairValues[symbol]
	if !ok {
		return nil, fmt.Errorf("fair value for %s: %w", symbol, ErrNotFound)
	}
	if fv.Symbol == "" {
		fv.Symbol = symbol
	}
	return &fv, nil
}

func loadJSON(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
