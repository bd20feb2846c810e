package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/ytsort/internal/models"
)

// DefaultCacheTTL is how long cached album metadata stays fresh. Album
// track listings and release dates rarely change, so a long window is
// safe.
const DefaultCacheTTL = 7 * 24 * time.Hour

// AlbumRepository caches album metadata in SQLite so repeat sorts of
// overlapping playlists skip the catalog fan-out.
//
// Implements the enricher's AlbumCache. Position maps are stored as
// JSON text columns.
type AlbumRepository struct {
	db  *sql.DB
	ttl time.Duration
}

// NewAlbumRepository creates an AlbumRepository with the given TTL.
// A non-positive TTL falls back to DefaultCacheTTL.
func NewAlbumRepository(db *sql.DB, ttl time.Duration) *AlbumRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &AlbumRepository{db: db, ttl: ttl}
}

// Get returns cached metadata for the album id, reporting a miss when
// the row is absent, stale, or unreadable.
func (r *AlbumRepository) Get(albumID string) (*models.AlbumMetadata, bool) {
	var (
		releaseDate string
		byIDJSON    string
		byTitleJSON string
		fetchedAt   time.Time
	)

	row := r.db.QueryRow(
		"SELECT release_date, position_by_id, position_by_title, fetched_at FROM album_metadata WHERE album_id = ?",
		albumID,
	)
	if err := row.Scan(&releaseDate, &byIDJSON, &byTitleJSON, &fetchedAt); err != nil {
		return nil, false
	}

	if time.Since(fetchedAt) > r.ttl {
		return nil, false
	}

	meta := &models.AlbumMetadata{
		AlbumID:     albumID,
		ReleaseDate: releaseDate,
	}

	if err := json.Unmarshal([]byte(byIDJSON), &meta.PositionByID); err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(byTitleJSON), &meta.PositionByTitle); err != nil {
		return nil, false
	}

	return meta, true
}

// Put inserts or refreshes the cached metadata for an album.
func (r *AlbumRepository) Put(meta models.AlbumMetadata) error {
	byIDJSON, err := json.Marshal(meta.PositionByID)
	if err != nil {
		return fmt.Errorf("failed to encode position map: %w", err)
	}

	byTitleJSON, err := json.Marshal(meta.PositionByTitle)
	if err != nil {
		return fmt.Errorf("failed to encode title map: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO album_metadata (album_id, release_date, position_by_id, position_by_title, fetched_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(album_id) DO UPDATE SET
			release_date = excluded.release_date,
			position_by_id = excluded.position_by_id,
			position_by_title = excluded.position_by_title,
			fetched_at = CURRENT_TIMESTAMP
	`, meta.AlbumID, meta.ReleaseDate, string(byIDJSON), string(byTitleJSON))
	if err != nil {
		return fmt.Errorf("failed to cache album metadata: %w", err)
	}

	return nil
}

// Prune deletes rows older than the TTL and returns how many were removed.
func (r *AlbumRepository) Prune() (int64, error) {
	cutoff := time.Now().Add(-r.ttl)

	result, err := r.db.Exec("DELETE FROM album_metadata WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune album cache: %w", err)
	}

	return result.RowsAffected()
}

// Count returns the number of cached albums.
func (r *AlbumRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM album_metadata").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cached albums: %w", err)
	}
	return count, nil
}
