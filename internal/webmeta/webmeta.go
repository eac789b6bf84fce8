// Package webmeta extracts Open Graph metadata from restaurant websites,
// used to fill a staged review's cover image.
package webmeta

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoImage is returned when a page carries no usable og:image.
var ErrNoImage = errors.New("no open graph image found")

type Client struct {
	httpClient *http.Client
}

func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchCoverImage fetches pageURL and returns its og:image URL (falling back
// to twitter:image), resolved against the page URL when relative.
func (c *Client) FetchCoverImage(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL %s: %w", pageURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid URL scheme %s: only http and https allowed", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for URL %s: %w", pageURL, err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL %s: status code %d", pageURL, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}

	image := metaContent(doc, `meta[property="og:image"]`)
	if image == "" {
		image = metaContent(doc, `meta[name="twitter:image"]`)
	}
	if image == "" {
		return "", ErrNoImage
	}

	resolved, err := parsed.Parse(image)
	if err != nil {
		return "", fmt.Errorf("failed to resolve image URL %q: %w", image, err)
	}
	return resolved.String(), nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
