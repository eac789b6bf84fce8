package api

import (
	"context"

	"github.com/gestorrestaurants/restaurant-curator/internal/ai"
	"github.com/gestorrestaurants/restaurant-curator/internal/models"
	"github.com/gestorrestaurants/restaurant-curator/internal/places"
	"github.com/gestorrestaurants/restaurant-curator/internal/promoter"
)

// Store abstracts the storage layer for the HTTP handlers.
type Store interface {
	ListReviewers(ctx context.Context) ([]models.Reviewer, error)
	GetReviewer(ctx context.Context, channelID string) (*models.Reviewer, error)
	CreateReviewer(ctx context.Context, reviewer models.Reviewer) error
	UpdateReviewer(ctx context.Context, reviewer models.Reviewer) error
	DeleteReviewer(ctx context.Context, channelID string) error

	ListVideos(ctx context.Context) ([]models.Video, error)
	GetVideo(ctx context.Context, id string) (*models.Video, error)
	DeleteVideo(ctx context.Context, id string) error

	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, placeID string) (*models.Restaurant, error)

	GetReview(ctx context.Context, id string) (*models.ReviewDoc, error)
	ListReviewsByChannel(ctx context.Context, channelID string) ([]models.ReviewDoc, error)
	ListReviewsByVideo(ctx context.Context, videoID string) ([]models.ReviewDoc, error)
}

// PlaceFinder abstracts the place-search API.
type PlaceFinder interface {
	SearchText(ctx context.Context, query string) ([]places.Summary, error)
	GetDetails(ctx context.Context, placeID string) (*places.Details, error)
}

// ChannelResolver resolves a channel handle into a channel id.
type ChannelResolver interface {
	ResolveChannelID(ctx context.Context, handle string) (string, error)
}

// Promoter runs the volcar workflow for one video.
type Promoter interface {
	Promote(ctx context.Context, video models.Video) (*promoter.Result, error)
}

// Ingestor discovers and stages a reviewer's new videos.
type Ingestor interface {
	CheckReviewer(ctx context.Context, channelID string) (int, error)
}

// Suggester proposes restaurant mentions for a video.
type Suggester interface {
	SuggestMentions(ctx context.Context, title, description string) ([]ai.Suggestion, error)
}

// CoverFetcher extracts a cover image URL from a restaurant website.
type CoverFetcher interface {
	FetchCoverImage(ctx context.Context, pageURL string) (string, error)
}
