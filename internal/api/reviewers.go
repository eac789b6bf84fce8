package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gestorrestaurants/restaurant-curator/internal/models"
	"github.com/gestorrestaurants/restaurant-curator/internal/youtube"
)

const defaultAvatarURL = "/default-avatar.png"

func (s *Server) handleListReviewers(w http.ResponseWriter, r *http.Request) {
	reviewers, err := s.store.ListReviewers(r.Context())
	if err != nil {
		slog.Error("Failed to list reviewers", "error", err)
		writeError(w, http.StatusBadGateway, "failed to list reviewers")
		return
	}
	writeJSON(w, http.StatusOK, reviewers)
}

func (s *Server) handleGetReviewer(w http.ResponseWriter, r *http.Request) {
	reviewer, err := s.store.GetReviewer(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("Failed to get reviewer", "error", err)
		writeError(w, http.StatusBadGateway, "failed to get reviewer")
		return
	}
	if reviewer == nil {
		writeError(w, http.StatusNotFound, "reviewer not found")
		return
	}
	writeJSON(w, http.StatusOK, reviewer)
}

func (s *Server) handleCreateReviewer(w http.ResponseWriter, r *http.Request) {
	var reviewer models.Reviewer
	if err := json.NewDecoder(r.Body).Decode(&reviewer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// A channel id can be looked up from the web handle, matching the
	// console's "obtain channel id" button.
	if reviewer.ChannelID == "" && strings.Contains(reviewer.Web, "@") {
		channelID, err := s.channels.ResolveChannelID(r.Context(), reviewer.Web)
		if err != nil {
			if errors.Is(err, youtube.ErrChannelNotFound) {
				writeError(w, http.StatusNotFound, "no channel found for that handle")
				return
			}
			slog.Error("Channel lookup failed", "web", reviewer.Web, "error", err)
			writeError(w, http.StatusBadGateway, "channel lookup failed")
			return
		}
		reviewer.ChannelID = channelID
	}

	if reviewer.ChannelID == "" {
		writeError(w, http.StatusBadRequest, "channelId is required (or a web handle to resolve it from)")
		return
	}
	if err := s.validate.ValidateStruct(reviewer); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if reviewer.AvatarURL == "" {
		reviewer.AvatarURL = defaultAvatarURL
	}

	if err := s.store.CreateReviewer(r.Context(), reviewer); err != nil {
		if errors.Is(err, models.ErrReviewerExists) {
			writeError(w, http.StatusConflict, "reviewer already exists")
			return
		}
		slog.Error("Failed to create reviewer", "channelId", reviewer.ChannelID, "error", err)
		writeError(w, http.StatusBadGateway, "failed to create reviewer")
		return
	}
	slog.Info("Reviewer created", "channelId", reviewer.ChannelID, "name", reviewer.Name)
	writeJSON(w, http.StatusCreated, reviewer)
}

func (s *Server) handleUpdateReviewer(w http.ResponseWriter, r *http.Request) {
	var reviewer models.Reviewer
	if err := json.NewDecoder(r.Body).Decode(&reviewer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	reviewer.ChannelID = r.PathValue("id")

	if err := s.validate.ValidateStruct(reviewer); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if reviewer.AvatarURL == "" {
		reviewer.AvatarURL = defaultAvatarURL
	}

	if err := s.store.UpdateReviewer(r.Context(), reviewer); err != nil {
		slog.Error("Failed to update reviewer", "channelId", reviewer.ChannelID, "error", err)
		writeError(w, http.StatusBadGateway, "failed to update reviewer")
		return
	}
	writeJSON(w, http.StatusOK, reviewer)
}

func (s *Server) handleDeleteReviewer(w http.ResponseWriter, r *http.Request) {
	channelID := r.PathValue("id")
	if err := s.store.DeleteReviewer(r.Context(), channelID); err != nil {
		slog.Error("Failed to delete reviewer", "channelId", channelID, "error", err)
		writeError(w, http.StatusBadGateway, "failed to delete reviewer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIngestReviewer(w http.ResponseWriter, r *http.Request) {
	channelID := r.PathValue("id")
	staged, err := s.ingestor.CheckReviewer(r.Context(), channelID)
	if err != nil {
		slog.Error("Ingestion failed", "channelId", channelID, "staged", staged, "error", err)
		writeJSON(w, remoteStatus(err), map[string]any{
			"staged": staged,
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"staged": staged})
}

func (s *Server) handleListChannelReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.store.ListReviewsByChannel(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("Failed to list channel reviews", "error", err)
		writeError(w, http.StatusBadGateway, "failed to list reviews")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
