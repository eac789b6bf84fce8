package promoter

import (
	"context"

	"github.com/gestorrestaurants/restaurant-curator/internal/models"
)

// Store is the slice of the storage layer the promotion engine needs.
type Store interface {
	GetRestaurant(ctx context.Context, placeID string) (*models.Restaurant, error)
	CreateRestaurant(ctx context.Context, restaurant models.Restaurant) error
	SetRestaurantReviews(ctx context.Context, placeID string, links []models.ReviewLink) error
	CreateReview(ctx context.Context, review models.ReviewDoc) (string, error)
	DeleteVideo(ctx context.Context, id string) error
}
