package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(context.Background(), "test-key",
		option.WithEndpoint(server.URL),
		option.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestResolveChannelID(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `{"items":[
			{"id":{"kind":"youtube#channel","channelId":"UC123"}}
		]}`)
	}))

	id, err := client.ResolveChannelID(context.Background(), "https://youtube.com/@foodie")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != "UC123" {
		t.Errorf("Expected UC123, got %q", id)
	}
	if gotQuery != "foodie" {
		t.Errorf("Expected handle stripped to %q, got %q", "foodie", gotQuery)
	}
}

func TestResolveChannelIDNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))

	_, err := client.ResolveChannelID(context.Background(), "@nobody")
	if !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("Expected ErrChannelNotFound, got %v", err)
	}
}

func TestResolveChannelIDEmptyHandle(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Expected no API call for an empty handle")
	}))

	_, err := client.ResolveChannelID(context.Background(), "@")
	if !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("Expected ErrChannelNotFound, got %v", err)
	}
}

func TestListVideosSinceStopsAtMarker(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[
			{"id":{"kind":"youtube#video","videoId":"v3"},"snippet":{"title":"Fish &amp; Chips","publishedAt":"2024-03-03T00:00:00Z"}},
			{"id":{"kind":"youtube#video","videoId":"v2"},"snippet":{"title":"middle","publishedAt":"2024-03-02T00:00:00Z"}},
			{"id":{"kind":"youtube#video","videoId":"v1"},"snippet":{"title":"old","publishedAt":"2024-03-01T00:00:00Z"}}
		]}`)
	}))

	videos, err := client.ListVideosSince(context.Background(), "UC123", "v1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("Expected 2 videos before the marker, got %d", len(videos))
	}
	if videos[0].VideoID != "v3" || videos[1].VideoID != "v2" {
		t.Errorf("Expected newest first, got %+v", videos)
	}
	if videos[0].Title != "Fish & Chips" {
		t.Errorf("Expected HTML-unescaped title, got %q", videos[0].Title)
	}
}

func TestListVideosSincePaginates(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("pageToken") == "" {
			fmt.Fprint(w, `{"nextPageToken":"page2","items":[
				{"id":{"kind":"youtube#video","videoId":"v4"},"snippet":{"title":"d","publishedAt":"2024-03-04T00:00:00Z"}}
			]}`)
			return
		}
		fmt.Fprint(w, `{"items":[
			{"id":{"kind":"youtube#video","videoId":"v3"},"snippet":{"title":"c","publishedAt":"2024-03-03T00:00:00Z"}}
		]}`)
	}))

	videos, err := client.ListVideosSince(context.Background(), "UC123", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 page fetches, got %d", calls)
	}
	if len(videos) != 2 || videos[1].VideoID != "v3" {
		t.Errorf("Expected both pages collected, got %+v", videos)
	}
}
