package webmeta

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, html)
	}))
}

func TestFetchCoverImageOpenGraph(t *testing.T) {
	server := servePage(t, `<html><head>
		<meta property="og:image" content="https://cdn.example/cover.jpg">
	</head><body></body></html>`)
	defer server.Close()

	got, err := New().FetchCoverImage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "https://cdn.example/cover.jpg" {
		t.Errorf("Expected og:image URL, got %q", got)
	}
}

func TestFetchCoverImageTwitterFallback(t *testing.T) {
	server := servePage(t, `<html><head>
		<meta name="twitter:image" content="https://cdn.example/tw.jpg">
	</head><body></body></html>`)
	defer server.Close()

	got, err := New().FetchCoverImage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "https://cdn.example/tw.jpg" {
		t.Errorf("Expected twitter:image URL, got %q", got)
	}
}

func TestFetchCoverImageResolvesRelative(t *testing.T) {
	server := servePage(t, `<html><head>
		<meta property="og:image" content="/img/cover.jpg">
	</head><body></body></html>`)
	defer server.Close()

	got, err := New().FetchCoverImage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != server.URL+"/img/cover.jpg" {
		t.Errorf("Expected image resolved against page URL, got %q", got)
	}
}

func TestFetchCoverImageNoImage(t *testing.T) {
	server := servePage(t, `<html><head><title>no meta</title></head><body></body></html>`)
	defer server.Close()

	_, err := New().FetchCoverImage(context.Background(), server.URL)
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("Expected ErrNoImage, got %v", err)
	}
}

func TestFetchCoverImageRejectsBadScheme(t *testing.T) {
	_, err := New().FetchCoverImage(context.Background(), "ftp://example.com")
	if err == nil {
		t.Fatal("Expected scheme error")
	}
}

func TestFetchCoverImageNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := New().FetchCoverImage(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error on non-200 response")
	}
}
