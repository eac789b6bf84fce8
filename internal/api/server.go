// Package api exposes the curation console's HTTP JSON surface.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gestorrestaurants/restaurant-curator/internal/ingest"
	"github.com/gestorrestaurants/restaurant-curator/internal/places"
	"github.com/gestorrestaurants/restaurant-curator/internal/staging"
	"github.com/gestorrestaurants/restaurant-curator/internal/validator"
)

type Server struct {
	store     Store
	staging   *staging.State
	promoter  Promoter
	ingestor  Ingestor
	placeAPI  PlaceFinder
	channels  ChannelResolver
	suggester Suggester
	covers    CoverFetcher
	validate  *validator.Validator
}

func NewServer(store Store, st *staging.State, p Promoter, in Ingestor, pf PlaceFinder, cr ChannelResolver, sg Suggester, cf CoverFetcher) *Server {
	return &Server{
		store:     store,
		staging:   st,
		promoter:  p,
		ingestor:  in,
		placeAPI:  pf,
		channels:  cr,
		suggester: sg,
		covers:    cf,
		validate:  validator.New(),
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /reviewers", s.handleListReviewers)
	mux.HandleFunc("POST /reviewers", s.handleCreateReviewer)
	mux.HandleFunc("GET /reviewers/{id}", s.handleGetReviewer)
	mux.HandleFunc("PUT /reviewers/{id}", s.handleUpdateReviewer)
	mux.HandleFunc("DELETE /reviewers/{id}", s.handleDeleteReviewer)
	mux.HandleFunc("POST /reviewers/{id}/ingest", s.handleIngestReviewer)
	mux.HandleFunc("GET /reviewers/{id}/reviews", s.handleListChannelReviews)

	mux.HandleFunc("GET /videos", s.handleListVideos)
	mux.HandleFunc("GET /videos/{id}", s.handleGetVideo)
	mux.HandleFunc("DELETE /videos/{id}", s.handleDeleteVideo)
	mux.HandleFunc("POST /videos/{id}/promote", s.handlePromoteVideo)
	mux.HandleFunc("GET /videos/{id}/suggestions", s.handleSuggestions)
	mux.HandleFunc("GET /videos/{id}/reviews", s.handleListVideoReviews)

	mux.HandleFunc("POST /videos/{id}/staging", s.handleSeedStaging)
	mux.HandleFunc("GET /videos/{id}/staging", s.handleListStaged)
	mux.HandleFunc("POST /videos/{id}/staging/save", s.handleSaveStaged)
	mux.HandleFunc("DELETE /videos/{id}/staging", s.handleDiscardStaged)
	mux.HandleFunc("POST /videos/{id}/staging/entries", s.handleAddStaged)
	mux.HandleFunc("PATCH /videos/{id}/staging/entries/{entryId}", s.handleUpdateStaged)
	mux.HandleFunc("DELETE /videos/{id}/staging/entries/{entryId}", s.handleRemoveStaged)
	mux.HandleFunc("POST /videos/{id}/staging/entries/{entryId}/details", s.handleFillPlaceDetails)

	mux.HandleFunc("GET /places/search", s.handleSearchPlaces)
	mux.HandleFunc("GET /places/{id}", s.handlePlaceDetails)

	mux.HandleFunc("GET /restaurants", s.handleListRestaurants)
	mux.HandleFunc("GET /restaurants/{id}", s.handleGetRestaurant)

	mux.HandleFunc("GET /reviews/{id}", s.handleGetReview)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// stagingStatus maps staging errors to HTTP statuses.
func stagingStatus(err error) int {
	switch {
	case errors.Is(err, staging.ErrVideoNotStaged), errors.Is(err, staging.ErrStagedReviewNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// remoteStatus maps enrichment/store errors to HTTP statuses.
func remoteStatus(err error) int {
	switch {
	case errors.Is(err, places.ErrPlaceNotFound), errors.Is(err, ingest.ErrReviewerNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
