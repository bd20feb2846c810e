// Package models defines domain entities shared across the playlist sorting service.
//
// The package contains three categories of types:
//
// 1. Catalog DTOs: Lightweight structs representing external service data
//   - [RawTrack] : Playlist entry before enrichment (item id, instance id, title, album ref)
//   - [Track] : Enriched entry carrying release date and album position
//   - [Playlist] : Basic playlist metadata
//   - [ItemRef] : (item id, instance id) pair for bulk playlist mutations
//
// 2. Enrichment intermediates:
//   - [AlbumMetadata] : Per-album release date and the id/title position maps
//
// 3. Sort configuration:
//   - [SortAttribute], [SortDirection], [SortLevel] : One level of a composite sort key
//   - [SortContext] : Immutable per-request state (favourite-artist rankings)
//
// Track values live for the duration of one sort-and-apply operation and are
// never persisted; only AlbumMetadata is cached (see repositories).
package models
