// Package places is a thin client for the Google Places API (New).
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/gestorrestaurants/restaurant-curator/internal/util"
)

const defaultBaseURL = "https://places.googleapis.com/v1"

// Field masks keep responses down to what the console actually renders.
const (
	searchFieldMask  = "places.id,places.displayName,places.formattedAddress"
	detailsFieldMask = "id,displayName,formattedAddress,internationalPhoneNumber,rating,userRatingCount,priceLevel,websiteUri,googleMapsUri,location,businessStatus"
)

// ErrPlaceNotFound is returned when a place id does not resolve.
var ErrPlaceNotFound = errors.New("place not found")

// Summary is one text-search hit, enough for an operator to disambiguate.
type Summary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Details is the normalized detail record used to auto-fill a staged review.
// PriceLevel stays in its string enum form until staging normalizes it.
type Details struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	Rating          float64   `json:"rating"`
	UserRatingCount int64     `json:"userRatingCount"`
	PriceLevel      string    `json:"priceLevel"`
	Website         string    `json:"website"`
	GoogleMapsURL   string    `json:"googleMapsUrl"`
	Location        *Location `json:"location"`
	BusinessStatus  string    `json:"businessStatus"`
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	limiter    *rate.Limiter
}

func New(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		// Free-tier friendly ceiling; bursts cover an operator clicking around.
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
}

// wire types, kept close to the API's JSON
type placeResult struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress         string    `json:"formattedAddress"`
	InternationalPhoneNumber string    `json:"internationalPhoneNumber"`
	Rating                   float64   `json:"rating"`
	UserRatingCount          int64     `json:"userRatingCount"`
	PriceLevel               string    `json:"priceLevel"`
	WebsiteURI               string    `json:"websiteUri"`
	GoogleMapsURI            string    `json:"googleMapsUri"`
	Location                 *Location `json:"location"`
	BusinessStatus           string    `json:"businessStatus"`
}

type searchTextResponse struct {
	Places []placeResult `json:"places"`
}

// SearchText resolves a free-text restaurant query into candidate places.
func (c *Client) SearchText(ctx context.Context, query string) ([]Summary, error) {
	body, err := json.Marshal(map[string]string{"textQuery": query})
	if err != nil {
		return nil, err
	}

	var resp searchTextResponse
	err = c.doJSON(ctx, http.MethodPost, c.baseURL+"/places:searchText", searchFieldMask, body, &resp)
	if err != nil {
		return nil, fmt.Errorf("places text search %q: %w", query, err)
	}

	summaries := make([]Summary, 0, len(resp.Places))
	for _, p := range resp.Places {
		summaries = append(summaries, Summary{
			ID:      p.ID,
			Name:    p.DisplayName.Text,
			Address: p.FormattedAddress,
		})
	}
	return summaries, nil
}

// GetDetails fetches the detail record for a known place id.
func (c *Client) GetDetails(ctx context.Context, placeID string) (*Details, error) {
	var p placeResult
	endpoint := c.baseURL + "/places/" + url.PathEscape(placeID)
	if err := c.doJSON(ctx, http.MethodGet, endpoint, detailsFieldMask, nil, &p); err != nil {
		if errors.Is(err, ErrPlaceNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("place details %s: %w", placeID, err)
	}

	return &Details{
		ID:              p.ID,
		Name:            p.DisplayName.Text,
		Address:         p.FormattedAddress,
		Phone:           p.InternationalPhoneNumber,
		Rating:          p.Rating,
		UserRatingCount: p.UserRatingCount,
		PriceLevel:      p.PriceLevel,
		Website:         p.WebsiteURI,
		GoogleMapsURL:   p.GoogleMapsURI,
		Location:        p.Location,
		BusinessStatus:  p.BusinessStatus,
	}, nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint, fieldMask string, body []byte, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	return util.RetryWithBackoff(ctx, 2, func(_ int) error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return err
		}
		req.Header.Set("X-Goog-Api-Key", c.apiKey)
		req.Header.Set("X-Goog-FieldMask", fieldMask)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return util.StopRetry(ErrPlaceNotFound)
		}
		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("places api status %s: %s", resp.Status, string(respBody))
		}
		return json.Unmarshal(respBody, out)
	})
}
