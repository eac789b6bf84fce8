package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gestorrestaurants/restaurant-curator/internal/models"
	"github.com/gestorrestaurants/restaurant-curator/internal/places"
	"github.com/gestorrestaurants/restaurant-curator/internal/webmeta"
)

// handleSeedStaging loads a video's persisted review entries into the staging
// session, replacing any in-progress edits for that video.
func (s *Server) handleSeedStaging(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	video, err := s.store.GetVideo(r.Context(), id)
	if err != nil {
		slog.Error("Failed to load video for staging", "videoId", id, "error", err)
		writeError(w, http.StatusBadGateway, "failed to load video")
		return
	}
	if video == nil {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}

	s.staging.Seed(id, video.Reviews)
	writeJSON(w, http.StatusOK, s.staging.Entries(id))
}

func (s *Server) handleListStaged(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.staging.Entries(r.PathValue("id")))
}

func (s *Server) handleSaveStaged(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.staging.Persist(r.Context(), id); err != nil {
		slog.Error("Failed to persist staged reviews", "videoId", id, "error", err)
		writeError(w, stagingStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.staging.Entries(id))
}

func (s *Server) handleDiscardStaged(w http.ResponseWriter, r *http.Request) {
	s.staging.Discard(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddStaged(w http.ResponseWriter, r *http.Request) {
	reviewID := s.staging.AddBlank(r.PathValue("id"))
	writeJSON(w, http.StatusCreated, map[string]string{"id": reviewID})
}

// stagedReviewPatch carries partial edits; only fields present in the request
// body are applied.
type stagedReviewPatch struct {
	Start            *string `json:"start"`
	Name             *string `json:"name"`
	Address          *string `json:"address"`
	Phone            *string `json:"phone"`
	PlaceID          *string `json:"placeId"`
	PriceLevel       *string `json:"priceLevel"`
	Rating           *string `json:"rating"`
	UserRatingsTotal *string `json:"userRatingsTotal"`
	Website          *string `json:"website"`
	GoogleMapsURL    *string `json:"googleMapsUrl"`
	TripAdvisorURL   *string `json:"tripAdvisorUrl"`
	CoverImageURL    *string `json:"coverImageUrl"`
	BusinessStatus   *string `json:"businessStatus"`
	Latitude         *string `json:"latitude"`
	Longitude        *string `json:"longitude"`
}

func (p stagedReviewPatch) apply(r *models.StagedReview) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&r.Start, p.Start)
	set(&r.Name, p.Name)
	set(&r.Address, p.Address)
	set(&r.Phone, p.Phone)
	set(&r.PlaceID, p.PlaceID)
	set(&r.PriceLevel, p.PriceLevel)
	set(&r.Rating, p.Rating)
	set(&r.UserRatingsTotal, p.UserRatingsTotal)
	set(&r.Website, p.Website)
	set(&r.GoogleMapsURL, p.GoogleMapsURL)
	set(&r.TripAdvisorURL, p.TripAdvisorURL)
	set(&r.CoverImageURL, p.CoverImageURL)
	set(&r.BusinessStatus, p.BusinessStatus)
	set(&r.Latitude, p.Latitude)
	set(&r.Longitude, p.Longitude)
}

func (s *Server) handleUpdateStaged(w http.ResponseWriter, r *http.Request) {
	var patch stagedReviewPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	videoID, entryID := r.PathValue("id"), r.PathValue("entryId")
	err := s.staging.Update(videoID, entryID, func(sr *models.StagedReview) {
		patch.apply(sr)
	})
	if err != nil {
		writeError(w, stagingStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.staging.Entries(videoID))
}

func (s *Server) handleRemoveStaged(w http.ResponseWriter, r *http.Request) {
	if err := s.staging.Remove(r.PathValue("id"), r.PathValue("entryId")); err != nil {
		writeError(w, stagingStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFillPlaceDetails auto-fills a staged review from a place's detail
// record, then tries to pull a cover image from the place's website. A missing
// cover image never fails the request.
func (s *Server) handleFillPlaceDetails(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlaceID string `json:"placeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlaceID == "" {
		writeError(w, http.StatusBadRequest, "placeId is required")
		return
	}

	details, err := s.placeAPI.GetDetails(r.Context(), req.PlaceID)
	if err != nil {
		if errors.Is(err, places.ErrPlaceNotFound) {
			writeError(w, http.StatusNotFound, "place not found")
			return
		}
		slog.Error("Place details lookup failed", "placeId", req.PlaceID, "error", err)
		writeError(w, http.StatusBadGateway, "place details lookup failed")
		return
	}

	videoID, entryID := r.PathValue("id"), r.PathValue("entryId")
	if err := s.staging.ApplyPlaceDetails(videoID, entryID, *details); err != nil {
		writeError(w, stagingStatus(err), err.Error())
		return
	}

	if details.Website != "" {
		cover, err := s.covers.FetchCoverImage(r.Context(), details.Website)
		switch {
		case errors.Is(err, webmeta.ErrNoImage):
			// Not every restaurant site carries og:image metadata.
		case err != nil:
			slog.Warn("Cover image fetch failed", "website", details.Website, "error", err)
		default:
			_ = s.staging.Update(videoID, entryID, func(sr *models.StagedReview) {
				sr.CoverImageURL = cover
			})
		}
	}

	writeJSON(w, http.StatusOK, s.staging.Entries(videoID))
}
