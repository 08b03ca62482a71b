package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/internal/registry"
	"github.com/wonny/valuescout/backend/internal/watchlist"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

type staticUniverse []string

func (u staticUniverse) Symbols(context.Context) ([]string, error) { return u, nil }

func newTestHandler(t *testing.T) (*ResearchHandler, *registry.Store) {
	t.Helper()
	dir := t.TempDir()
	log := logger.NewNop()
	regStore := registry.NewStore(filepath.Join(dir, "registry.json"), log)
	snapshots := watchlist.NewSnapshotStore(filepath.Join(dir, "watchlist_history.json"), log)
	return NewResearchHandler(regStore, snapshots, staticUniverse{"AAPL", "KO"}, log), regStore
}

func TestGetCampaign(t *testing.T) {
	h, regStore := newTestHandler(t)

	reg := registry.New()
	reg.MarkScreened([]string{"AAPL"}, []contracts.ScreenResult{
		{Symbol: "AAPL", Score: 8, Confidence: 0.9},
	}, 5.0)
	require.NoError(t, regStore.Save(reg))

	rec := httptest.NewRecorder()
	h.GetCampaign(rec, httptest.NewRequest("GET", "/api/campaign", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var progress contracts.CampaignProgress
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.Equal(t, 2, progress.UniverseSize)
	assert.Equal(t, 1, progress.Screened)
	assert.Equal(t, 1, progress.Passed)
}

func TestGetStudy(t *testing.T) {
	h, regStore := newTestHandler(t)

	reg := registry.New()
	reg.AddStudy(&contracts.QualitativeAssessment{
		Symbol: "AAPL", CompanyName: "Apple Inc.",
	}, contracts.TierAssignment{Tier: contracts.TierWatch}, 7.0, 0.8)
	require.NoError(t, regStore.Save(reg))

	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/studies/AAPL", nil),
		map[string]string{"symbol": "AAPL"})
	rec := httptest.NewRecorder()
	h.GetStudy(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var study contracts.StudyRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &study))
	assert.Equal(t, "Apple Inc.", study.CompanyName)

	req = mux.SetURLVars(httptest.NewRequest("GET", "/api/studies/NOPE", nil),
		map[string]string{"symbol": "NOPE"})
	rec = httptest.NewRecorder()
	h.GetStudy(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetWatchlist_EmptyIsValidJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.GetWatchlist(rec, httptest.NewRequest("GET", "/api/watchlist", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var snapshot contracts.WatchlistSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Empty(t, snapshot.Entries)
}
