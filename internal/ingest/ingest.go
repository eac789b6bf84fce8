// Package ingest discovers a reviewer's new uploads and creates a staging
// document in VideosToEdit for each, advancing the reviewer's last-checked
// video marker.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gestorrestaurants/restaurant-curator/internal/models"
	"github.com/gestorrestaurants/restaurant-curator/internal/youtube"
)

// ErrReviewerNotFound is returned when the channel id is not registered.
var ErrReviewerNotFound = errors.New("reviewer not found")

// VideoLister abstracts the video-platform search.
type VideoLister interface {
	ListVideosSince(ctx context.Context, channelID, sinceVideoID string) ([]youtube.Video, error)
}

// Store is the slice of the storage layer ingestion needs.
type Store interface {
	GetReviewer(ctx context.Context, channelID string) (*models.Reviewer, error)
	CreateVideo(ctx context.Context, video models.Video) (string, error)
	SetLastVideoIDChecked(ctx context.Context, channelID, videoID string) error
}

type Ingestor struct {
	store     Store
	videos    VideoLister
	videoType string
}

func New(store Store, videos VideoLister, videoType string) *Ingestor {
	return &Ingestor{store: store, videos: videos, videoType: videoType}
}

// CheckReviewer creates a staging video for every upload newer than the
// reviewer's marker, oldest first, and advances the marker to the newest
// upload that was staged successfully. The marker never regresses: a failure
// mid-run leaves it at the last staged video so a re-run resumes there.
func (in *Ingestor) CheckReviewer(ctx context.Context, channelID string) (int, error) {
	reviewer, err := in.store.GetReviewer(ctx, channelID)
	if err != nil {
		return 0, fmt.Errorf("failed to load reviewer %s: %w", channelID, err)
	}
	if reviewer == nil {
		return 0, ErrReviewerNotFound
	}

	uploads, err := in.videos.ListVideosSince(ctx, channelID, reviewer.LastVideoIDChecked)
	if err != nil {
		return 0, fmt.Errorf("failed to list uploads for %s: %w", channelID, err)
	}
	if len(uploads) == 0 {
		slog.Info("No new uploads", "channelId", channelID)
		return 0, nil
	}

	created := 0
	lastStaged := ""
	var stageErr error
	// uploads arrive newest first; stage oldest first so a partial run keeps
	// a contiguous history behind the marker.
	for i := len(uploads) - 1; i >= 0; i-- {
		upload := uploads[i]
		_, err := in.store.CreateVideo(ctx, models.Video{
			ChannelID:   channelID,
			VideoID:     upload.VideoID,
			Title:       upload.Title,
			PublishedAt: upload.PublishedAt,
			Type:        in.videoType,
			Reviews:     []models.ReviewEntry{},
		})
		if err != nil {
			stageErr = fmt.Errorf("failed to stage video %s: %w", upload.VideoID, err)
			break
		}
		created++
		lastStaged = upload.VideoID
	}

	if lastStaged != "" {
		if err := in.store.SetLastVideoIDChecked(ctx, channelID, lastStaged); err != nil {
			return created, fmt.Errorf("staged %d videos but failed to advance marker: %w", created, err)
		}
	}

	slog.Info("Ingestion finished", "channelId", channelID, "staged", created, "marker", lastStaged)
	return created, stageErr
}
