package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gestorrestaurants/restaurant-curator/internal/ai"
	"github.com/gestorrestaurants/restaurant-curator/internal/promoter"
)

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.store.ListVideos(r.Context())
	if err != nil {
		slog.Error("Failed to list videos", "error", err)
		writeError(w, http.StatusBadGateway, "failed to list videos")
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	video, err := s.store.GetVideo(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("Failed to get video", "error", err)
		writeError(w, http.StatusBadGateway, "failed to get video")
		return
	}
	if video == nil {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}
	writeJSON(w, http.StatusOK, video)
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteVideo(r.Context(), id); err != nil {
		slog.Error("Failed to delete video", "videoId", id, "error", err)
		writeError(w, http.StatusBadGateway, "failed to delete video")
		return
	}
	s.staging.Discard(id)
	w.WriteHeader(http.StatusNoContent)
}

// handlePromoteVideo runs the volcar workflow on the video's persisted review
// entries and reports the per-entry outcome.
func (s *Server) handlePromoteVideo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	video, err := s.store.GetVideo(r.Context(), id)
	if err != nil {
		slog.Error("Failed to load video for promotion", "videoId", id, "error", err)
		writeError(w, http.StatusBadGateway, "failed to load video")
		return
	}
	if video == nil {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}

	result, err := s.promoter.Promote(r.Context(), *video)
	if err != nil {
		if errors.Is(err, promoter.ErrPartialPromotion) {
			// Partial outcome: the per-entry results tell the operator what
			// to retry, so the body carries them alongside the error.
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"result": result,
				"error":  err.Error(),
			})
			return
		}
		slog.Error("Promotion failed", "videoId", id, "error", err)
		writeError(w, http.StatusBadGateway, "promotion failed: "+err.Error())
		return
	}

	if result.VideoDeleted {
		s.staging.Discard(id)
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	video, err := s.store.GetVideo(r.Context(), id)
	if err != nil {
		slog.Error("Failed to load video for suggestions", "videoId", id, "error", err)
		writeError(w, http.StatusBadGateway, "failed to load video")
		return
	}
	if video == nil {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}

	suggestions, err := s.suggester.SuggestMentions(r.Context(), video.Title, "")
	if err != nil {
		slog.Error("Suggestion generation failed", "videoId", id, "error", err)
		writeError(w, http.StatusBadGateway, "suggestion generation failed")
		return
	}
	if suggestions == nil {
		suggestions = []ai.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// handleListVideoReviews lists the review documents already created from this
// staging video's upload, so prior promotions are visible before re-promoting.
func (s *Server) handleListVideoReviews(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	video, err := s.store.GetVideo(r.Context(), id)
	if err != nil {
		slog.Error("Failed to load video for review listing", "videoId", id, "error", err)
		writeError(w, http.StatusBadGateway, "failed to load video")
		return
	}
	if video == nil {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}

	reviews, err := s.store.ListReviewsByVideo(r.Context(), video.VideoID)
	if err != nil {
		slog.Error("Failed to list video reviews", "videoId", id, "error", err)
		writeError(w, http.StatusBadGateway, "failed to list reviews")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	review, err := s.store.GetReview(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("Failed to get review", "error", err)
		writeError(w, http.StatusBadGateway, "failed to get review")
		return
	}
	if review == nil {
		writeError(w, http.StatusNotFound, "review not found")
		return
	}
	writeJSON(w, http.StatusOK, review)
}
