package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gestorrestaurants/restaurant-curator/internal/models"
)

const (
	reviewersCollection   = "Reviewers"
	videosCollection      = "VideosToEdit"
	restaurantsCollection = "Restaurantes"
	reviewsCollection     = "Reviews"
)

type Client struct {
	client *firestore.Client
}

func New(ctx context.Context, projectID string) (*Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// --- Reviewers ---

// GetReviewer retrieves a reviewer by channel id. Returns (nil, nil) when absent.
func (c *Client) GetReviewer(ctx context.Context, channelID string) (*models.Reviewer, error) {
	doc, err := c.client.Collection(reviewersCollection).Doc(channelID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reviewer %s: %w", channelID, err)
	}
	var reviewer models.Reviewer
	if err := doc.DataTo(&reviewer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reviewer data: %w", err)
	}
	reviewer.ChannelID = doc.Ref.ID
	return &reviewer, nil
}

func (c *Client) ListReviewers(ctx context.Context) ([]models.Reviewer, error) {
	iter := c.client.Collection(reviewersCollection).Documents(ctx)
	defer iter.Stop()

	var reviewers []models.Reviewer
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate reviewers: %w", err)
		}
		var reviewer models.Reviewer
		if err := doc.DataTo(&reviewer); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reviewer %s: %w", doc.Ref.ID, err)
		}
		reviewer.ChannelID = doc.Ref.ID
		reviewers = append(reviewers, reviewer)
	}
	return reviewers, nil
}

// CreateReviewer creates a reviewer keyed by its channel id.
// Returns models.ErrReviewerExists if the channel is already registered.
func (c *Client) CreateReviewer(ctx context.Context, reviewer models.Reviewer) error {
	_, err := c.client.Collection(reviewersCollection).Doc(reviewer.ChannelID).Create(ctx, reviewer)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return models.ErrReviewerExists
		}
		return fmt.Errorf("failed to create reviewer %s: %w", reviewer.ChannelID, err)
	}
	return nil
}

func (c *Client) UpdateReviewer(ctx context.Context, reviewer models.Reviewer) error {
	_, err := c.client.Collection(reviewersCollection).Doc(reviewer.ChannelID).Update(ctx, []firestore.Update{
		{Path: "Name", Value: reviewer.Name},
		{Path: "Web", Value: reviewer.Web},
		{Path: "AvatarURL", Value: reviewer.AvatarURL},
		{Path: "LastVideoIDChecked", Value: reviewer.LastVideoIDChecked},
	})
	if err != nil {
		return fmt.Errorf("failed to update reviewer %s: %w", reviewer.ChannelID, err)
	}
	return nil
}

// SetLastVideoIDChecked advances a reviewer's ingestion marker without touching
// the rest of the document.
func (c *Client) SetLastVideoIDChecked(ctx context.Context, channelID, videoID string) error {
	_, err := c.client.Collection(reviewersCollection).Doc(channelID).Update(ctx, []firestore.Update{
		{Path: "LastVideoIDChecked", Value: videoID},
	})
	if err != nil {
		return fmt.Errorf("failed to advance video marker for %s: %w", channelID, err)
	}
	return nil
}

func (c *Client) DeleteReviewer(ctx context.Context, channelID string) error {
	_, err := c.client.Collection(reviewersCollection).Doc(channelID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete reviewer %s: %w", channelID, err)
	}
	return nil
}

// --- VideosToEdit ---

// GetVideo retrieves a staging video by document id. Returns (nil, nil) when absent.
func (c *Client) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	doc, err := c.client.Collection(videosCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get video %s: %w", id, err)
	}
	var video models.Video
	if err := doc.DataTo(&video); err != nil {
		return nil, fmt.Errorf("failed to unmarshal video data: %w", err)
	}
	video.ID = doc.Ref.ID
	return &video, nil
}

func (c *Client) ListVideos(ctx context.Context) ([]models.Video, error) {
	iter := c.client.Collection(videosCollection).OrderBy("publishedAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var videos []models.Video
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate videos: %w", err)
		}
		var video models.Video
		if err := doc.DataTo(&video); err != nil {
			return nil, fmt.Errorf("failed to unmarshal video %s: %w", doc.Ref.ID, err)
		}
		video.ID = doc.Ref.ID
		videos = append(videos, video)
	}
	return videos, nil
}

// CreateVideo creates a staging document with a generated id and returns it.
func (c *Client) CreateVideo(ctx context.Context, video models.Video) (string, error) {
	ref := c.client.Collection(videosCollection).NewDoc()
	if _, err := ref.Create(ctx, video); err != nil {
		return "", fmt.Errorf("failed to create video %s: %w", video.VideoID, err)
	}
	return ref.ID, nil
}

// SetVideoReviews overwrites the Reviews field of a staging video.
// This is a raw overwrite; deduplication happens at promotion time.
func (c *Client) SetVideoReviews(ctx context.Context, videoID string, entries []models.ReviewEntry) error {
	_, err := c.client.Collection(videosCollection).Doc(videoID).Update(ctx, []firestore.Update{
		{Path: "Reviews", Value: entries},
	})
	if err != nil {
		return fmt.Errorf("failed to save reviews for video %s: %w", videoID, err)
	}
	return nil
}

func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	_, err := c.client.Collection(videosCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete video %s: %w", id, err)
	}
	return nil
}

// --- Restaurantes ---

// GetRestaurant retrieves a restaurant by place id. Returns (nil, nil) when absent.
func (c *Client) GetRestaurant(ctx context.Context, placeID string) (*models.Restaurant, error) {
	doc, err := c.client.Collection(restaurantsCollection).Doc(placeID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get restaurant %s: %w", placeID, err)
	}
	var restaurant models.Restaurant
	if err := doc.DataTo(&restaurant); err != nil {
		return nil, fmt.Errorf("failed to unmarshal restaurant data: %w", err)
	}
	restaurant.PlaceID = doc.Ref.ID
	return &restaurant, nil
}

func (c *Client) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	iter := c.client.Collection(restaurantsCollection).Documents(ctx)
	defer iter.Stop()

	var restaurants []models.Restaurant
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate restaurants: %w", err)
		}
		var restaurant models.Restaurant
		if err := doc.DataTo(&restaurant); err != nil {
			return nil, fmt.Errorf("failed to unmarshal restaurant %s: %w", doc.Ref.ID, err)
		}
		restaurant.PlaceID = doc.Ref.ID
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, nil
}

// CreateRestaurant creates a restaurant keyed by its place id, which enforces
// the at-most-one-restaurant-per-place invariant.
func (c *Client) CreateRestaurant(ctx context.Context, restaurant models.Restaurant) error {
	_, err := c.client.Collection(restaurantsCollection).Doc(restaurant.PlaceID).Create(ctx, restaurant)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return models.ErrRestaurantExists
		}
		return fmt.Errorf("failed to create restaurant %s: %w", restaurant.PlaceID, err)
	}
	return nil
}

// SetRestaurantReviews overwrites a restaurant's review link list.
func (c *Client) SetRestaurantReviews(ctx context.Context, placeID string, links []models.ReviewLink) error {
	_, err := c.client.Collection(restaurantsCollection).Doc(placeID).Update(ctx, []firestore.Update{
		{Path: "Reviews", Value: links},
	})
	if err != nil {
		return fmt.Errorf("failed to update review links for restaurant %s: %w", placeID, err)
	}
	return nil
}

// --- Reviews ---

// CreateReview appends an immutable review document and returns its generated id.
func (c *Client) CreateReview(ctx context.Context, review models.ReviewDoc) (string, error) {
	ref := c.client.Collection(reviewsCollection).NewDoc()
	if _, err := ref.Create(ctx, review); err != nil {
		return "", fmt.Errorf("failed to create review for video %s: %w", review.VideoID, err)
	}
	return ref.ID, nil
}

// GetReview retrieves a review document by id. Returns (nil, nil) when absent.
func (c *Client) GetReview(ctx context.Context, id string) (*models.ReviewDoc, error) {
	doc, err := c.client.Collection(reviewsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review %s: %w", id, err)
	}
	var review models.ReviewDoc
	if err := doc.DataTo(&review); err != nil {
		return nil, fmt.Errorf("failed to unmarshal review data: %w", err)
	}
	review.ID = doc.Ref.ID
	return &review, nil
}

// ListReviewsByVideo returns the review documents created from one YouTube video.
func (c *Client) ListReviewsByVideo(ctx context.Context, videoID string) ([]models.ReviewDoc, error) {
	return c.listReviews(ctx, "videoId", videoID)
}

// ListReviewsByChannel returns the immutable review history of one channel.
func (c *Client) ListReviewsByChannel(ctx context.Context, channelID string) ([]models.ReviewDoc, error) {
	return c.listReviews(ctx, "channelId", channelID)
}

func (c *Client) listReviews(ctx context.Context, field, value string) ([]models.ReviewDoc, error) {
	iter := c.client.Collection(reviewsCollection).Where(field, "==", value).Documents(ctx)
	defer iter.Stop()

	var reviews []models.ReviewDoc
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate reviews with %s %s: %w", field, value, err)
		}
		var review models.ReviewDoc
		if err := doc.DataTo(&review); err != nil {
			return nil, fmt.Errorf("failed to unmarshal review %s: %w", doc.Ref.ID, err)
		}
		review.ID = doc.Ref.ID
		reviews = append(reviews, review)
	}
	return reviews, nil
}
