// YouTube Music [Catalog] implementation
//
// Communicates with the FastAPI proxy server running on port 8080.
// The proxy wraps the ytmusicapi Python library for YouTube Music
// operations.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/desertthunder/ytsort/internal/models"
)

const defaultYTBaseURL string = "http://localhost:8080"

// YouTubeArtist represents an artist in YouTube Music responses.
type YouTubeArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type youtubeAlbum struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// YouTubeTrack represents a track/video in YouTube Music responses.
type YouTubeTrack struct {
	VideoID     string          `json:"videoId"`
	SetVideoID  string          `json:"setVideoId,omitempty"` // For playlist operations
	Title       string          `json:"title"`
	Artists     []YouTubeArtist `json:"artists"`
	Album       *youtubeAlbum   `json:"album"`
	Duration    string          `json:"duration"`
	DurationSec int             `json:"duration_seconds"`
}

// YouTubeService implements the Catalog interface for YouTube Music via proxy.
type YouTubeService struct {
	baseURL    string
	authFile   string
	httpClient *http.Client
}

// NewYouTubeService creates a new YouTube Music catalog instance.
func NewYouTubeService(baseURL string, client *http.Client) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &YouTubeService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// Name returns the catalog name.
func (y *YouTubeService) Name() string {
	return "YouTube Music"
}

// Authenticate stores the authentication file path sent with subsequent requests.
//
// The proxy resolves the path to browser.json or oauth.json on its side.
func (y *YouTubeService) Authenticate(authFile string) error {
	if authFile == "" {
		return fmt.Errorf("missing auth file path")
	}

	y.authFile = authFile
	return nil
}

func (y *YouTubeService) doRequest(ctx context.Context, method, endpoint string, payload, result any) error {
	apiURL := y.baseURL + endpoint

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if y.authFile != "" {
		req.Header.Set("X-Auth-File", y.authFile)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("youtube music API error (status %d): %s", resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("youtube music API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// PlaylistTracks retrieves the ordered entries of a playlist.
//
// Calls GET /api/playlists/{id} on the proxy. Every entry keeps its
// setVideoId so the same video appearing twice stays distinguishable.
func (y *YouTubeService) PlaylistTracks(ctx context.Context, playlistID string) ([]models.RawTrack, error) {
	var ytPlaylist struct {
		ID     string         `json:"id"`
		Title  string         `json:"title"`
		Tracks []YouTubeTrack `json:"tracks"`
	}

	endpoint := fmt.Sprintf("/api/playlists/%s", playlistID)
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &ytPlaylist); err != nil {
		return nil, err
	}

	tracks := make([]models.RawTrack, len(ytPlaylist.Tracks))
	for i, ytt := range ytPlaylist.Tracks {
		track := models.RawTrack{
			ItemID:     ytt.VideoID,
			InstanceID: ytt.SetVideoID,
			Title:      ytt.Title,
			Duration:   ytt.DurationSec,
		}

		if len(ytt.Artists) > 0 {
			track.Artist = ytt.Artists[0].Name
		}

		if ytt.Album != nil && ytt.Album.ID != "" {
			track.Album = &models.AlbumRef{ID: ytt.Album.ID, Name: ytt.Album.Name}
		}

		tracks[i] = track
	}

	return tracks, nil
}

// Album retrieves album detail including track listing and release date.
//
// Calls GET /api/albums/{id} on the proxy.
func (y *YouTubeService) Album(ctx context.Context, albumID string) (*AlbumDetail, error) {
	var ytAlbum struct {
		Title       string `json:"title"`
		Year        string `json:"year"`
		ReleaseDate *struct {
			Year  int `json:"year"`
			Month int `json:"month"`
			Day   int `json:"day"`
		} `json:"releaseDate"`
		Tracks []YouTubeTrack `json:"tracks"`
	}

	endpoint := fmt.Sprintf("/api/albums/%s", albumID)
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &ytAlbum); err != nil {
		return nil, err
	}

	detail := &AlbumDetail{
		ID:    albumID,
		Title: ytAlbum.Title,
		Year:  ytAlbum.Year,
	}

	if ytAlbum.ReleaseDate != nil {
		detail.ReleaseDate = &ReleaseDate{
			Year:  ytAlbum.ReleaseDate.Year,
			Month: ytAlbum.ReleaseDate.Month,
			Day:   ytAlbum.ReleaseDate.Day,
		}
	}

	detail.Tracks = make([]AlbumTrack, len(ytAlbum.Tracks))
	for i, ytt := range ytAlbum.Tracks {
		detail.Tracks[i] = AlbumTrack{ItemID: ytt.VideoID, Title: ytt.Title}
	}

	return detail, nil
}

// TrackDetail retrieves per-track detail including the upload date.
//
// Calls GET /api/tracks/{id} on the proxy.
func (y *YouTubeService) TrackDetail(ctx context.Context, itemID string) (*TrackDetail, error) {
	var ytTrack struct {
		VideoID    string `json:"videoId"`
		Title      string `json:"title"`
		UploadDate string `json:"uploadDate"`
	}

	endpoint := fmt.Sprintf("/api/tracks/%s", itemID)
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &ytTrack); err != nil {
		return nil, err
	}

	return &TrackDetail{
		ItemID:     ytTrack.VideoID,
		Title:      ytTrack.Title,
		UploadDate: ytTrack.UploadDate,
	}, nil
}

// AccountIdentity probes the session by fetching account info.
//
// Calls GET /api/account on the proxy. Returns the channel handle on
// success; any failure means the credential is stale.
func (y *YouTubeService) AccountIdentity(ctx context.Context) (string, error) {
	var account struct {
		ChannelHandle string `json:"channelHandle"`
		AccountName   string `json:"accountName"`
	}

	if err := y.doRequest(ctx, http.MethodGet, "/api/account", nil, &account); err != nil {
		return "", err
	}

	if account.ChannelHandle != "" {
		return account.ChannelHandle, nil
	}
	return account.AccountName, nil
}

// RemoveItems issues one bulk removal naming every occurrence by
// (videoId, setVideoId) pair.
//
// Calls POST /api/playlists/{id}/remove-items on the proxy.
func (y *YouTubeService) RemoveItems(ctx context.Context, playlistID string, refs []models.ItemRef) error {
	type removeItem struct {
		VideoID    string `json:"videoId"`
		SetVideoID string `json:"setVideoId"`
	}

	payload := struct {
		Items []removeItem `json:"items"`
	}{Items: make([]removeItem, len(refs))}

	for i, ref := range refs {
		payload.Items[i] = removeItem{VideoID: ref.ItemID, SetVideoID: ref.InstanceID}
	}

	endpoint := fmt.Sprintf("/api/playlists/%s/remove-items", playlistID)
	return y.doRequest(ctx, http.MethodPost, endpoint, payload, nil)
}

// AddItems issues one bulk insertion of the video ids in order,
// permitting duplicates.
//
// Calls POST /api/playlists/{id}/items on the proxy.
func (y *YouTubeService) AddItems(ctx context.Context, playlistID string, itemIDs []string) error {
	payload := struct {
		VideoIDs   []string `json:"video_ids"`
		Duplicates bool     `json:"duplicates"`
	}{VideoIDs: itemIDs, Duplicates: true}

	endpoint := fmt.Sprintf("/api/playlists/%s/items", playlistID)
	return y.doRequest(ctx, http.MethodPost, endpoint, payload, nil)
}

// LibraryPlaylists retrieves the authenticated user's playlists.
//
// Calls GET /api/library/playlists on the proxy.
func (y *YouTubeService) LibraryPlaylists(ctx context.Context, limit int) ([]models.Playlist, error) {
	var ytPlaylists []struct {
		PlaylistID string `json:"playlistId"`
		Title      string `json:"title"`
		Count      int    `json:"count"`
	}

	endpoint := "/api/library/playlists"
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}

	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &ytPlaylists); err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, len(ytPlaylists))
	for i, ytp := range ytPlaylists {
		playlists[i] = models.Playlist{
			ID:         ytp.PlaylistID,
			Title:      ytp.Title,
			TrackCount: ytp.Count,
		}
	}

	return playlists, nil
}
