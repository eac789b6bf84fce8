// Package youtube wraps the YouTube Data API v3 calls the console needs:
// resolving a channel handle and discovering videos newer than a marker.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// ErrChannelNotFound is returned when a handle resolves to no channel.
var ErrChannelNotFound = errors.New("channel not found")

// Search results older than this are never fetched; a reviewer that far
// behind should be re-seeded manually instead of ingested in one run.
const maxBacklog = 200

// Video is one discovered channel upload.
type Video struct {
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
}

type Client struct {
	svc *yt.Service
}

func New(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := yt.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("youtube.NewService: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ResolveChannelID finds the channel id for a handle. The handle may be a
// full channel URL; everything up to the last "@" is dropped first.
func (c *Client) ResolveChannelID(ctx context.Context, handle string) (string, error) {
	q := handle
	if i := strings.LastIndex(q, "@"); i >= 0 {
		q = q[i+1:]
	}
	q = strings.TrimSuffix(strings.TrimSpace(q), "/")
	if q == "" {
		return "", ErrChannelNotFound
	}

	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(q).
		Type("channel").
		MaxResults(5).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("channel search %q: %w", q, err)
	}
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.ChannelId != "" {
			return item.Id.ChannelId, nil
		}
	}
	return "", ErrChannelNotFound
}

// ListVideosSince returns a channel's uploads newer than sinceVideoID, newest
// first. An empty marker returns up to maxBacklog of the most recent uploads.
func (c *Client) ListVideosSince(ctx context.Context, channelID, sinceVideoID string) ([]Video, error) {
	var out []Video
	pageToken := ""
	for {
		call := c.svc.Search.List([]string{"snippet"}).
			ChannelId(channelID).
			Type("video").
			Order("date").
			MaxResults(50).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("video search for channel %s: %w", channelID, err)
		}

		for _, item := range resp.Items {
			if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
				continue
			}
			if sinceVideoID != "" && item.Id.VideoId == sinceVideoID {
				return out, nil
			}
			out = append(out, Video{
				VideoID: item.Id.VideoId,
				// search.list returns HTML-escaped titles
				Title:       html.UnescapeString(item.Snippet.Title),
				PublishedAt: item.Snippet.PublishedAt,
			})
			if len(out) >= maxBacklog {
				return out, nil
			}
		}

		if resp.NextPageToken == "" {
			return out, nil
		}
		pageToken = resp.NextPageToken
	}
}
