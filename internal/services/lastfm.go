// Last.fm client for fetching a user's top artists
//
// Rankings feed the favourite-artists sort attribute: the first artist
// returned is the most favoured.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const lastFmAPIBaseURL = "https://ws.audioscrobbler.com/2.0/"

// Valid Last.fm time periods for top artists.
var LastFmPeriods = []string{"overall", "12month", "6month", "3month", "1month", "7day"}

// LastFmService fetches top-artist rankings from the Last.fm API.
type LastFmService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewLastFmService creates a Last.fm client with the given API key.
func NewLastFmService(apiKey, baseURL string) *LastFmService {
	if baseURL == "" {
		baseURL = lastFmAPIBaseURL
	}

	return &LastFmService{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ValidPeriod reports whether period names a supported Last.fm range.
func ValidPeriod(period string) bool {
	for _, p := range LastFmPeriods {
		if p == period {
			return true
		}
	}
	return false
}

// TopArtists fetches a user's top artists for the period, most played
// first. Limit is clamped to the API's 1..1000 range.
func (l *LastFmService) TopArtists(ctx context.Context, username, period string, limit int) ([]string, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("lastfm API key not configured")
	}
	if !ValidPeriod(period) {
		return nil, fmt.Errorf("invalid lastfm period: %s", period)
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 1000 {
		limit = 1000
	}

	params := url.Values{}
	params.Set("method", "user.getTopArtists")
	params.Set("user", username)
	params.Set("api_key", l.apiKey)
	params.Set("format", "json")
	params.Set("period", period)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Error   int    `json:"error"`
		Message string `json:"message"`

		TopArtists struct {
			Artists []struct {
				Name string `json:"name"`
			} `json:"artist"`
		} `json:"topartists"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if body.Error != 0 {
		// Error code 6 is "user not found"
		if body.Error == 6 {
			return nil, fmt.Errorf("lastfm user '%s' not found", username)
		}
		return nil, fmt.Errorf("lastfm API error: %s", body.Message)
	}

	artists := make([]string, len(body.TopArtists.Artists))
	for i, a := range body.TopArtists.Artists {
		artists[i] = a.Name
	}

	return artists, nil
}
