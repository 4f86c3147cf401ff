// Package sprout resolves Sprout Video links into titles and thumbnails for
// breadcrumbs association.
package sprout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/bakerapp/baker/internal/breadcrumbs"
	"github.com/bakerapp/baker/internal/logging"
)

const defaultBaseURL = "https://api.sproutvideo.com/v1"

var (
	ErrInvalidVideoURL = errors.New("invalid Sprout video URL format")
	ErrUnauthorized    = errors.New("unauthorized: invalid API key")
	ErrVideoNotFound   = errors.New("video not found")
)

var videoURLPattern = regexp.MustCompile(`sproutvideo\.com/videos/([a-zA-Z0-9]+)`)

// ExtractVideoID pulls the video id out of a Sprout Video URL.
func ExtractVideoID(url string) (string, bool) {
	m := videoURLPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Client talks to the Sprout Video API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logging.Logger
}

// NewClient returns a Client. baseURL overrides the endpoint for tests; pass
// "" for the real API.
func NewClient(baseURL string, logger logging.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		logger:     logger,
	}
}

// FetchVideo resolves a video URL into a VideoLink with title, thumbnail and
// upload date filled from the API.
func (c *Client) FetchVideo(ctx context.Context, videoURL, apiKey string) (*breadcrumbs.VideoLink, error) {
	videoID, ok := ExtractVideoID(videoURL)
	if !ok {
		return nil, ErrInvalidVideoURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/videos/%s", c.baseURL, videoID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("SproutVideo-Api-Key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrVideoNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("API error: %s", resp.Status)
	}

	var data struct {
		Title      string `json:"title"`
		CreatedAt  string `json:"created_at"`
		Thumbnails []struct {
			URL string `json:"url"`
		} `json:"assets_thumbnails,omitempty"`
		ThumbnailURL string `json:"thumbnail_url,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	link := &breadcrumbs.VideoLink{
		URL:           videoURL,
		SproutVideoID: videoID,
		Title:         data.Title,
		UploadDate:    data.CreatedAt,
		ThumbnailURL:  data.ThumbnailURL,
	}
	if link.ThumbnailURL == "" && len(data.Thumbnails) > 0 {
		link.ThumbnailURL = data.Thumbnails[0].URL
	}
	if link.Title == "" {
		link.Title = "Video " + videoID
	}
	return link, nil
}
