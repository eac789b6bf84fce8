// Package promoter implements the "volcar" workflow: promoting a video's
// staged review entries into durable Restaurantes and Reviews records, then
// retiring the staging document.
package promoter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"
	"google.golang.org/genproto/googleapis/type/latlng"

	"github.com/gestorrestaurants/restaurant-curator/internal/models"
)

// ErrPartialPromotion is returned when some entries of a batch failed. The
// per-entry results identify which, so the operator can retry exactly those.
var ErrPartialPromotion = errors.New("some review entries failed to promote")

type EntryStatus string

const (
	StatusPromoted         EntryStatus = "promoted"
	StatusSkippedNoPlaceID EntryStatus = "skipped-no-place-id"
	StatusFailed           EntryStatus = "failed"
)

// EntryResult reports the outcome of one staged review entry.
type EntryResult struct {
	Index    int         `json:"index"`
	EntryID  string      `json:"entryId"`
	PlaceID  string      `json:"placeId,omitempty"`
	ReviewID string      `json:"reviewId,omitempty"`
	Status   EntryStatus `json:"status"`
	Reason   string      `json:"reason,omitempty"`
}

// Result is the outcome of a whole promotion batch.
type Result struct {
	VideoID      string        `json:"videoId"`
	Entries      []EntryResult `json:"entries"`
	VideoDeleted bool          `json:"videoDeleted"`
}

type Engine struct {
	store Store
	// inflight collapses concurrent promotions of the same video id into one
	// run; a double-triggered promote shares the first run's result.
	inflight singleflight.Group
}

func New(store Store) *Engine {
	return &Engine{store: store}
}

// Promote processes every review entry of the video in list order, creating a
// Reviews document and a restaurant review link for each promotable entry,
// and finally deletes the video's staging document. The multi-step writes are
// not transactional: a failure mid-batch can leave a Reviews document without
// a link. Re-running with unchanged Start values is safe because duplicate
// links are suppressed.
func (e *Engine) Promote(ctx context.Context, video models.Video) (*Result, error) {
	v, err, shared := e.inflight.Do(video.ID, func() (interface{}, error) {
		return e.promote(ctx, video)
	})
	if shared {
		slog.Info("Promotion already in flight, sharing result", "videoId", video.ID)
	}
	if v == nil {
		return nil, err
	}
	return v.(*Result), err
}

func (e *Engine) promote(ctx context.Context, video models.Video) (*Result, error) {
	result := &Result{VideoID: video.ID}
	failures := 0

	for i, entry := range video.Reviews {
		res := e.promoteEntry(ctx, video, i, entry)
		if res.Status == StatusFailed {
			failures++
		}
		result.Entries = append(result.Entries, res)
	}

	// The staging document is retired even when entries were skipped for a
	// missing place id, but kept when an entry failed so the operator can
	// retry without re-entering data.
	if failures == 0 {
		if err := e.store.DeleteVideo(ctx, video.ID); err != nil {
			return result, fmt.Errorf("failed to retire staging video %s: %w", video.ID, err)
		}
		result.VideoDeleted = true
	}

	slog.Info("Promotion finished",
		"videoId", video.ID,
		"entries", len(result.Entries),
		"failed", failures,
		"videoDeleted", result.VideoDeleted)

	if failures > 0 {
		return result, fmt.Errorf("%w: %d of %d entries", ErrPartialPromotion, failures, len(result.Entries))
	}
	return result, nil
}

func (e *Engine) promoteEntry(ctx context.Context, video models.Video, index int, entry models.ReviewEntry) EntryResult {
	res := EntryResult{Index: index, EntryID: entry.ID, PlaceID: entry.PlaceID}

	// An entry must be linked to a place before it is promotable.
	if entry.PlaceID == "" {
		res.Status = StatusSkippedNoPlaceID
		return res
	}

	reviewID, err := e.store.CreateReview(ctx, models.ReviewDoc{
		ChannelID:   video.ChannelID,
		VideoID:     video.VideoID,
		Title:       video.Title,
		PublishedAt: video.PublishedAt,
		Type:        video.Type,
	})
	if err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("create review: %v", err)
		return res
	}
	res.ReviewID = reviewID

	link := models.ReviewLink{Start: entry.Start, ReviewID: reviewID}
	if err := e.linkToRestaurant(ctx, entry, link); err != nil {
		// The review document already exists at this point; an orphan is the
		// accepted cost of the non-transactional flow.
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("link restaurant: %v", err)
		return res
	}

	res.Status = StatusPromoted
	return res
}

// linkToRestaurant creates the restaurant on first promotion of its place id,
// or appends the link to the existing one unless a link with the same Start
// already exists.
func (e *Engine) linkToRestaurant(ctx context.Context, entry models.ReviewEntry, link models.ReviewLink) error {
	existing, err := e.store.GetRestaurant(ctx, entry.PlaceID)
	if err != nil {
		return err
	}

	if existing == nil {
		err := e.store.CreateRestaurant(ctx, restaurantFromEntry(entry, link))
		if err == nil {
			return nil
		}
		if !errors.Is(err, models.ErrRestaurantExists) {
			return err
		}
		// Lost a create race; fall through to the append path.
		existing, err = e.store.GetRestaurant(ctx, entry.PlaceID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("restaurant %s claimed to exist but was not found", entry.PlaceID)
		}
	}

	for _, l := range existing.Reviews {
		if l.Start == link.Start {
			slog.Info("Duplicate review link suppressed",
				"placeId", entry.PlaceID, "start", link.Start)
			return nil
		}
	}
	return e.store.SetRestaurantReviews(ctx, entry.PlaceID, append(existing.Reviews, link))
}

func restaurantFromEntry(entry models.ReviewEntry, link models.ReviewLink) models.Restaurant {
	var location *latlng.LatLng
	if entry.Geopoint != nil {
		location = &latlng.LatLng{
			Latitude:  entry.Geopoint.Latitude,
			Longitude: entry.Geopoint.Longitude,
		}
	}
	return models.Restaurant{
		PlaceID:          entry.PlaceID,
		Name:             entry.Name,
		Address:          entry.Address,
		Phone:            entry.Phone,
		PriceLevel:       entry.PriceLevel,
		Rating:           entry.Rating,
		UserRatingsTotal: entry.UserRatingsTotal,
		Website:          entry.Website,
		GoogleMapsURL:    entry.GoogleMapsURL,
		TripAdvisorURL:   entry.TripAdvisorURL,
		CoverImage:       entry.CoverImageURL,
		BusinessStatus:   entry.BusinessStatus,
		Location:         location,
		Reviews:          []models.ReviewLink{link},
	}
}
