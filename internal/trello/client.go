// Package trello is a minimal client for the Trello REST API: just enough to
// resolve a card URL into a card id, title and board name for breadcrumbs
// association. Credentials are supplied per call; nothing is persisted here.
package trello

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

const defaultBaseURL = "https://api.trello.com/1"

var (
	ErrInvalidCardURL = errors.New("invalid Trello card URL format")
	ErrUnauthorized   = errors.New("unauthorized: invalid API credentials")
	ErrCardNotFound   = errors.New("card not found")
)

var cardURLPattern = regexp.MustCompile(`trello\.com/c/([a-zA-Z0-9]{8,24})`)

// ExtractCardID pulls the card id out of a Trello card URL.
func ExtractCardID(url string) (string, bool) {
	m := cardURLPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Client talks to the Trello API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logging.Logger
}

// NewClient returns a Client. baseURL overrides the Trello endpoint and is
// meant for tests; pass "" for the real API.
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

// FetchCard resolves a card URL into a TrelloCard, including the board name
// when the board is readable with the given credentials.
func (c *Client) FetchCard(ctx context.Context, cardURL, apiKey, apiToken string) (*breadcrumbs.TrelloCard, error) {
	cardID, ok := ExtractCardID(cardURL)
	if !ok {
		return nil, ErrInvalidCardURL
	}

	var cardData struct {
		Name    string `json:"name"`
		IDBoard string `json:"idBoard"`
	}
	url := fmt.Sprintf("%s/cards/%s?key=%s&token=%s", c.baseURL, cardID, apiKey, apiToken)
	if err := c.getJSON(ctx, url, &cardData); err != nil {
		return nil, err
	}

	title := cardData.Name
	if title == "" {
		title = "Unknown"
	}
	card := &breadcrumbs.TrelloCard{
		URL:         cardURL,
		CardID:      cardID,
		Title:       title,
		LastFetched: time.Now().UTC().Format(time.RFC3339),
	}

	if cardData.IDBoard != "" {
		var boardData struct {
			Name string `json:"name"`
		}
		boardURL := fmt.Sprintf("%s/boards/%s?key=%s&token=%s&fields=name", c.baseURL, cardData.IDBoard, apiKey, apiToken)
		if err := c.getJSON(ctx, boardURL, &boardData); err != nil {
			// Board lookup is best-effort; the card alone is still useful.
			c.logger.Warn("fetching board name",
				logging.Field{Key: "board_id", Value: cardData.IDBoard},
				logging.Field{Key: "error", Value: err.Error()})
		} else {
			card.BoardName = boardData.Name
		}
	}
	return card, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrCardNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse API response: %w", err)
	}
	return nil
}
