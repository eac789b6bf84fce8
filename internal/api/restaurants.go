package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gestorrestaurants/restaurant-curator/internal/places"
)

func (s *Server) handleSearchPlaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	results, err := s.placeAPI.SearchText(r.Context(), query)
	if err != nil {
		slog.Error("Place search failed", "query", query, "error", err)
		writeError(w, http.StatusBadGateway, "place search failed")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handlePlaceDetails(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("id")
	details, err := s.placeAPI.GetDetails(r.Context(), placeID)
	if err != nil {
		if errors.Is(err, places.ErrPlaceNotFound) {
			writeError(w, http.StatusNotFound, "place not found")
			return
		}
		slog.Error("Place details lookup failed", "placeId", placeID, "error", err)
		writeError(w, http.StatusBadGateway, "place details lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := s.store.ListRestaurants(r.Context())
	if err != nil {
		slog.Error("Failed to list restaurants", "error", err)
		writeError(w, http.StatusBadGateway, "failed to list restaurants")
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (s *Server) handleGetRestaurant(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("id")
	restaurant, err := s.store.GetRestaurant(r.Context(), placeID)
	if err != nil {
		slog.Error("Failed to get restaurant", "placeId", placeID, "error", err)
		writeError(w, http.StatusBadGateway, "failed to get restaurant")
		return
	}
	if restaurant == nil {
		writeError(w, http.StatusNotFound, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}
