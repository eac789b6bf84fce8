// Package staging holds the mutable, not-yet-persisted candidate reviews of
// each video being edited. It is the explicit session state of the console:
// nothing here touches the store until Persist is called for a video.
package staging

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/gestorrestaurants/restaurant-curator/internal/models"
	"github.com/gestorrestaurants/restaurant-curator/internal/places"
	"github.com/gestorrestaurants/restaurant-curator/internal/util"
)

// ErrVideoNotStaged is returned for operations on a video id that has no staged state.
var ErrVideoNotStaged = errors.New("video has no staged reviews")

// ErrStagedReviewNotFound is returned when a staged review id does not exist
// within its video's list.
var ErrStagedReviewNotFound = errors.New("staged review not found")

// VideoStore is the slice of the storage layer that staging needs.
type VideoStore interface {
	SetVideoReviews(ctx context.Context, videoID string, entries []models.ReviewEntry) error
}

// State tracks staged reviews per video id. Entries carry a generated stable
// id so edits and removals never depend on list position.
type State struct {
	mu      sync.Mutex
	store   VideoStore
	reviews map[string][]models.StagedReview
}

func New(store VideoStore) *State {
	return &State{
		store:   store,
		reviews: make(map[string][]models.StagedReview),
	}
}

// Seed initializes the staged list of a video from its persisted entries,
// replacing any staged edits for that video.
func (s *State) Seed(videoID string, entries []models.ReviewEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make([]models.StagedReview, 0, len(entries))
	for _, e := range entries {
		staged = append(staged, denormalizeEntry(e))
	}
	s.reviews[videoID] = staged
}

// AddBlank appends a zeroed staged review to a video and returns its id.
// A video id not seen before gets an empty staged list implicitly.
func (s *State) AddBlank(videoID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	review := models.StagedReview{
		ID:               uuid.NewString(),
		Start:            "0",
		PriceLevel:       "0",
		Rating:           "0",
		UserRatingsTotal: "0",
		Latitude:         "0",
		Longitude:        "0",
	}
	s.reviews[videoID] = append(s.reviews[videoID], review)
	return review.ID
}

// Update applies mutate to the staged review with the given id. The review's
// id itself cannot be changed.
func (s *State) Update(videoID, reviewID string, mutate func(*models.StagedReview)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged, ok := s.reviews[videoID]
	if !ok {
		return ErrVideoNotStaged
	}
	for i := range staged {
		if staged[i].ID == reviewID {
			mutate(&staged[i])
			staged[i].ID = reviewID
			return nil
		}
	}
	return ErrStagedReviewNotFound
}

// ApplyPlaceDetails merges place details into a staged review, overwriting
// only the fields Google provides and keeping operator-entered values for the
// rest. The place id is set so the entry becomes promotable.
func (s *State) ApplyPlaceDetails(videoID, reviewID string, d places.Details) error {
	return s.Update(videoID, reviewID, func(r *models.StagedReview) {
		r.PlaceID = d.ID
		r.Name = d.Name
		r.Address = d.Address
		r.Phone = d.Phone
		r.Rating = util.FormatFloat(d.Rating)
		r.UserRatingsTotal = strconv.FormatInt(d.UserRatingCount, 10)
		r.PriceLevel = d.PriceLevel
		r.Website = d.Website
		r.GoogleMapsURL = d.GoogleMapsURL
		r.BusinessStatus = d.BusinessStatus
		if d.Location != nil {
			r.Latitude = util.FormatFloat(d.Location.Latitude)
			r.Longitude = util.FormatFloat(d.Location.Longitude)
		}
	})
}

// Remove deletes the staged review with the given id from a video's list.
// Remaining entries keep their ids, so no caller-held handle goes stale.
func (s *State) Remove(videoID, reviewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged, ok := s.reviews[videoID]
	if !ok {
		return ErrVideoNotStaged
	}
	for i := range staged {
		if staged[i].ID == reviewID {
			s.reviews[videoID] = append(staged[:i], staged[i+1:]...)
			return nil
		}
	}
	return ErrStagedReviewNotFound
}

// Entries returns a snapshot copy of a video's staged reviews.
func (s *State) Entries(videoID string) []models.StagedReview {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.reviews[videoID]
	out := make([]models.StagedReview, len(staged))
	copy(out, staged)
	return out
}

// Persist normalizes the staged list of a video and overwrites the video's
// persisted Reviews field with it. No deduplication happens here; that is the
// promotion engine's concern.
func (s *State) Persist(ctx context.Context, videoID string) error {
	s.mu.Lock()
	staged, ok := s.reviews[videoID]
	entries := make([]models.ReviewEntry, 0, len(staged))
	for _, r := range staged {
		entries = append(entries, NormalizeEntry(r))
	}
	s.mu.Unlock()

	if !ok {
		return ErrVideoNotStaged
	}
	return s.store.SetVideoReviews(ctx, videoID, entries)
}

// Discard drops all staged state for a video without persisting anything.
func (s *State) Discard(videoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reviews, videoID)
}

// NormalizeEntry converts an editable staged review to its persisted form.
// Numeric fields parse with a zero default so a persisted record never holds
// NaN or null numbers, and the price level enum collapses to its 0-4 integer.
func NormalizeEntry(r models.StagedReview) models.ReviewEntry {
	return models.ReviewEntry{
		ID:               r.ID,
		Start:            util.ParseInt(r.Start),
		Name:             r.Name,
		Address:          r.Address,
		Phone:            r.Phone,
		PlaceID:          r.PlaceID,
		PriceLevel:       models.ParsePriceLevel(r.PriceLevel),
		Rating:           util.ParseFloat(r.Rating),
		UserRatingsTotal: util.ParseInt(r.UserRatingsTotal),
		Website:          r.Website,
		GoogleMapsURL:    r.GoogleMapsURL,
		TripAdvisorURL:   r.TripAdvisorURL,
		CoverImageURL:    r.CoverImageURL,
		BusinessStatus:   r.BusinessStatus,
		Geopoint: &models.GeoPoint{
			Latitude:  util.ParseFloat(r.Latitude),
			Longitude: util.ParseFloat(r.Longitude),
		},
	}
}

func denormalizeEntry(e models.ReviewEntry) models.StagedReview {
	id := e.ID
	if id == "" {
		// Entries written before stable ids were introduced get one on load.
		id = uuid.NewString()
	}
	r := models.StagedReview{
		ID:               id,
		Start:            strconv.FormatInt(e.Start, 10),
		Name:             e.Name,
		Address:          e.Address,
		Phone:            e.Phone,
		PlaceID:          e.PlaceID,
		PriceLevel:       strconv.Itoa(e.PriceLevel),
		Rating:           util.FormatFloat(e.Rating),
		UserRatingsTotal: strconv.FormatInt(e.UserRatingsTotal, 10),
		Website:          e.Website,
		GoogleMapsURL:    e.GoogleMapsURL,
		TripAdvisorURL:   e.TripAdvisorURL,
		CoverImageURL:    e.CoverImageURL,
		BusinessStatus:   e.BusinessStatus,
		Latitude:         "0",
		Longitude:        "0",
	}
	if e.Geopoint != nil {
		r.Latitude = util.FormatFloat(e.Geopoint.Latitude)
		r.Longitude = util.FormatFloat(e.Geopoint.Longitude)
	}
	return r
}
