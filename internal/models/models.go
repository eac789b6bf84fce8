package models

import (
	"errors"
	"strconv"
	"strings"

	"google.golang.org/genproto/googleapis/type/latlng"
)

// ErrReviewerExists is returned when creating a reviewer whose channel id is already registered.
var ErrReviewerExists = errors.New("reviewer already exists")

// ErrRestaurantExists is returned when creating a restaurant whose place id is already registered.
var ErrRestaurantExists = errors.New("restaurant already exists")

// Reviewer is a tracked YouTube channel. The Firestore document id is the channel id.
type Reviewer struct {
	ChannelID          string `firestore:"-" json:"channelId"`
	Name               string `firestore:"Name" json:"name" validate:"required"`
	Web                string `firestore:"Web" json:"web" validate:"required,url"`
	AvatarURL          string `firestore:"AvatarURL" json:"avatarURL" validate:"omitempty,url"`
	LastVideoIDChecked string `firestore:"LastVideoIDChecked" json:"lastVideoIDChecked"`
}

// Video is a staging document in VideosToEdit. It exists only until all of its
// review entries have been promoted, at which point it is deleted.
type Video struct {
	ID          string        `firestore:"-" json:"id"`
	ChannelID   string        `firestore:"channelId" json:"channelId"`
	VideoID     string        `firestore:"videoId" json:"videoId"`
	Title       string        `firestore:"title" json:"title"`
	PublishedAt string        `firestore:"publishedAt" json:"publishedAt"`
	Type        string        `firestore:"type" json:"type"`
	Reviews     []ReviewEntry `firestore:"Reviews" json:"reviews"`
}

// GeoPoint is the coordinate pair as stored inside a VideosToEdit review entry.
// Restaurants store the Firestore-native geo type instead, see Restaurant.Location.
type GeoPoint struct {
	Latitude  float64 `firestore:"Latitude" json:"latitude"`
	Longitude float64 `firestore:"Longitude" json:"longitude"`
}

// ReviewEntry is a normalized candidate restaurant review persisted on a Video.
// All numeric fields are already parsed; Id is the stable staging identity
// assigned when the entry was first created.
type ReviewEntry struct {
	ID               string    `firestore:"Id" json:"id"`
	Start            int64     `firestore:"Start" json:"start"`
	Name             string    `firestore:"Name" json:"name"`
	Address          string    `firestore:"Address" json:"address"`
	Phone            string    `firestore:"Phone" json:"phone"`
	PlaceID          string    `firestore:"PlaceId" json:"placeId"`
	PriceLevel       int       `firestore:"PriceLevel" json:"priceLevel"`
	Rating           float64   `firestore:"Rating" json:"rating"`
	UserRatingsTotal int64     `firestore:"UserRatingsTotal" json:"userRatingsTotal"`
	Website          string    `firestore:"Website" json:"website"`
	GoogleMapsURL    string    `firestore:"GoogleMapsUrl" json:"googleMapsUrl"`
	TripAdvisorURL   string    `firestore:"TripAdvisorUrl" json:"tripAdvisorUrl"`
	CoverImageURL    string    `firestore:"CoverImageUrl" json:"coverImageUrl"`
	BusinessStatus   string    `firestore:"BusinessStatus" json:"businessStatus"`
	Geopoint         *GeoPoint `firestore:"Geopoint" json:"geopoint"`
}

// StagedReview is the editable, not-yet-persisted form of a review entry.
// Numeric fields are held as raw strings so partial operator input never fails
// a save; they are normalized (zero default) when the list is persisted.
type StagedReview struct {
	ID               string `json:"id"`
	Start            string `json:"start"`
	Name             string `json:"name"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	PlaceID          string `json:"placeId"`
	PriceLevel       string `json:"priceLevel"`
	Rating           string `json:"rating"`
	UserRatingsTotal string `json:"userRatingsTotal"`
	Website          string `json:"website"`
	GoogleMapsURL    string `json:"googleMapsUrl"`
	TripAdvisorURL   string `json:"tripAdvisorUrl"`
	CoverImageURL    string `json:"coverImageUrl"`
	BusinessStatus   string `json:"businessStatus"`
	Latitude         string `json:"latitude"`
	Longitude        string `json:"longitude"`
}

// ReviewLink points from a restaurant to a review document.
type ReviewLink struct {
	Start    int64  `firestore:"Start" json:"start"`
	ReviewID string `firestore:"ReviewId" json:"reviewId"`
}

// Restaurant is the durable, deduplicated record of a place. The Firestore
// document id is the Google place id, which guarantees at most one restaurant
// per place.
type Restaurant struct {
	PlaceID          string         `firestore:"GooglePlaceID" json:"placeId"`
	Name             string         `firestore:"Name" json:"name"`
	Address          string         `firestore:"Address" json:"address"`
	Phone            string         `firestore:"Phone" json:"phone"`
	PriceLevel       int            `firestore:"PriceLevel" json:"priceLevel"`
	Rating           float64        `firestore:"Rating" json:"rating"`
	UserRatingsTotal int64          `firestore:"UserRatingsTotal" json:"userRatingsTotal"`
	Website          string         `firestore:"Website" json:"website"`
	GoogleMapsURL    string         `firestore:"GoogleMapsUrl" json:"googleMapsUrl"`
	TripAdvisorURL   string         `firestore:"TripAdvisorUrl" json:"tripAdvisorUrl"`
	CoverImage       string         `firestore:"CoverImage" json:"coverImage"`
	BusinessStatus   string         `firestore:"BusinessStatus" json:"businessStatus"`
	Location         *latlng.LatLng `firestore:"Geopoint" json:"location"`
	Reviews          []ReviewLink   `firestore:"Reviews" json:"reviews"`
}

// ReviewDoc is the immutable record that a channel reviewed a place at a given
// timestamp in a given video. Never mutated after creation.
type ReviewDoc struct {
	ID          string `firestore:"-" json:"id"`
	ChannelID   string `firestore:"channelId" json:"channelId"`
	VideoID     string `firestore:"videoId" json:"videoId"`
	Title       string `firestore:"title" json:"title"`
	PublishedAt string `firestore:"publishedAt" json:"publishedAt"`
	Type        string `firestore:"type" json:"type"`
}

// ParsePriceLevel maps a Places price level to its integer form. It accepts
// the PRICE_LEVEL_* enum, the bare enum name, and plain numeric strings.
// Anything unrecognized maps to 0, out-of-range numbers are clamped to 0-4.
func ParsePriceLevel(s string) int {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "PRICE_LEVEL_")
	switch v {
	case "FREE":
		return 0
	case "INEXPENSIVE":
		return 1
	case "MODERATE":
		return 2
	case "EXPENSIVE":
		return 3
	case "VERY_EXPENSIVE":
		return 4
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	if n > 4 {
		return 4
	}
	return n
}
