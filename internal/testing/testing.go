// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"

	"github.com/desertthunder/ytsort/internal/models"
	"github.com/desertthunder/ytsort/internal/services"
)

// MockCatalog is a configurable test double for [services.Catalog].
type MockCatalog struct {
	Tracks    []models.RawTrack
	Albums    map[string]*services.AlbumDetail
	Details   map[string]*services.TrackDetail
	Playlists []models.Playlist
	Identity  string

	TracksErr   error
	AlbumErr    error
	DetailErr   error
	IdentityErr error
	RemoveErr   error
	AddErr      error

	RemoveCalls [][]models.ItemRef
	AddCalls    [][]string
}

func (m *MockCatalog) Name() string { return "mock" }

func (m *MockCatalog) PlaylistTracks(ctx context.Context, playlistID string) ([]models.RawTrack, error) {
	if m.TracksErr != nil {
		return nil, m.TracksErr
	}
	return m.Tracks, nil
}

func (m *MockCatalog) Album(ctx context.Context, albumID string) (*services.AlbumDetail, error) {
	if m.AlbumErr != nil {
		return nil, m.AlbumErr
	}
	if album, ok := m.Albums[albumID]; ok {
		return album, nil
	}
	return nil, errors.New("album not found")
}

func (m *MockCatalog) TrackDetail(ctx context.Context, itemID string) (*services.TrackDetail, error) {
	if m.DetailErr != nil {
		return nil, m.DetailErr
	}
	if detail, ok := m.Details[itemID]; ok {
		return detail, nil
	}
	return nil, errors.New("track not found")
}

func (m *MockCatalog) LibraryPlaylists(ctx context.Context, limit int) ([]models.Playlist, error) {
	return m.Playlists, nil
}

func (m *MockCatalog) AccountIdentity(ctx context.Context) (string, error) {
	if m.IdentityErr != nil {
		return "", m.IdentityErr
	}
	if m.Identity != "" {
		return m.Identity, nil
	}
	return "@mockuser", nil
}

func (m *MockCatalog) RemoveItems(ctx context.Context, playlistID string, refs []models.ItemRef) error {
	m.RemoveCalls = append(m.RemoveCalls, refs)
	return m.RemoveErr
}

func (m *MockCatalog) AddItems(ctx context.Context, playlistID string, itemIDs []string) error {
	m.AddCalls = append(m.AddCalls, itemIDs)
	if m.AddErr != nil {
		err := m.AddErr
		m.AddErr = nil // Subsequent calls (restore) succeed unless reset
		return err
	}
	return nil
}

// FailingCatalog wraps MockCatalog so every AddItems call fails,
// including the restore attempt.
type FailingCatalog struct {
	MockCatalog
	AddFailure error
}

func (f *FailingCatalog) AddItems(ctx context.Context, playlistID string, itemIDs []string) error {
	f.AddCalls = append(f.AddCalls, itemIDs)
	return f.AddFailure
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
