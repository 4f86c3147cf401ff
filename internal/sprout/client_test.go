package sprout_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bakerapp/baker/internal/sprout"
	"github.com/bakerapp/baker/internal/testutil"
)

func TestExtractVideoID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url    string
		wantID string
		wantOK bool
	}{
		{"https://sproutvideo.com/videos/a098dbe191", "a098dbe191", true},
		{"https://myaccount.vids.io/videos/x", "", false},
		{"https://sproutvideo.com/settings", "", false},
		{"junk", "", false},
	}

	for _, tc := range tests {
		id, ok := sprout.ExtractVideoID(tc.url)
		if id != tc.wantID || ok != tc.wantOK {
			t.Errorf("ExtractVideoID(%q) = %q, %v; want %q, %v", tc.url, id, ok, tc.wantID, tc.wantOK)
		}
	}
}

func TestFetchVideo(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("SproutVideo-Api-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/videos/a098dbe191" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"title": "Final Cut", "created_at": "2024-03-01", "thumbnail_url": "https://cdn.example/thumb.jpg"}`))
	}))
	defer srv.Close()

	client := sprout.NewClient(srv.URL, &testutil.DummyLogger{})
	link, err := client.FetchVideo(context.Background(), "https://sproutvideo.com/videos/a098dbe191", "secret")
	if err != nil {
		t.Fatalf("FetchVideo: %v", err)
	}

	if link.SproutVideoID != "a098dbe191" {
		t.Errorf("video id: got %q", link.SproutVideoID)
	}
	if link.Title != "Final Cut" {
		t.Errorf("title: got %q", link.Title)
	}
	if link.ThumbnailURL != "https://cdn.example/thumb.jpg" {
		t.Errorf("thumbnail: got %q", link.ThumbnailURL)
	}
	if link.UploadDate != "2024-03-01" {
		t.Errorf("upload date: got %q", link.UploadDate)
	}
}

func TestFetchVideo_InvalidURL(t *testing.T) {
	t.Parallel()

	client := sprout.NewClient("http://unused", &testutil.DummyLogger{})
	_, err := client.FetchVideo(context.Background(), "https://example.com/watch?v=1", "k")
	if !errors.Is(err, sprout.ErrInvalidVideoURL) {
		t.Errorf("expected ErrInvalidVideoURL, got %v", err)
	}
}

func TestFetchVideo_Unauthorized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := sprout.NewClient(srv.URL, &testutil.DummyLogger{})
	_, err := client.FetchVideo(context.Background(), "https://sproutvideo.com/videos/abc123", "bad")
	if !errors.Is(err, sprout.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestFetchVideo_UntitledFallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := sprout.NewClient(srv.URL, &testutil.DummyLogger{})
	link, err := client.FetchVideo(context.Background(), "https://sproutvideo.com/videos/abc123", "k")
	if err != nil {
		t.Fatalf("FetchVideo: %v", err)
	}
	if link.Title != "Video abc123" {
		t.Errorf("expected fallback title, got %q", link.Title)
	}
}
