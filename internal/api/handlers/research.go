// Package handlers implements the read-only API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/valuescout/backend/internal/contracts"
	"github.com/wonny/valuescout/backend/internal/registry"
	"github.com/wonny/valuescout/backend/internal/watchlist"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

// ResearchHandler serves registry and watchlist state. Each request
// reloads from disk so the API always reflects the latest completed
// run without coordinating with it.
// ⭐ SSOT: 리서치 API 핸들러는 이 구조체에서만
type ResearchHandler struct {
	regStore  *registry.Store
	snapshots *watchlist.SnapshotStore
	universe  contracts.UniverseProvider
	logger    *logger.Logger
}

func NewResearchHandler(
	regStore *registry.Store,
	snapshots *watchlist.SnapshotStore,
	universe contracts.UniverseProvider,
	log *logger.Logger,
) *ResearchHandler {
	return &ResearchHandler{
		regStore:  regStore,
		snapshots: snapshots,
		universe:  universe,
		logger:    log,
	}
}

// GetCampaign returns current campaign progress.
// GET /api/campaign
func (h *ResearchHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	reg := h.regStore.Load()

	universeSize := 0
	if symbols, err := h.universe.Symbols(r.Context()); err == nil {
		universeSize = len(symbols)
	} else {
		h.logger.WithError(err).Warn("Universe unavailable for progress")
	}

	writeJSON(w, http.StatusOK, reg.Progress(universeSize))
}

// GetWatchlist returns the latest watchlist snapshot.
// GET /api/watchlist
func (h *ResearchHandler) GetWatchlist(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshots.Load())
}

// GetStudy returns the study record for one symbol.
// GET /api/studies/{symbol}
func (h *ResearchHandler) GetStudy(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	reg := h.regStore.Load()
	rec, ok := reg.Study(symbol)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "symbol not studied",
		})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
