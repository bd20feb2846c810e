// Package enricher fetches album metadata for playlist entries ahead of sorting.
//
// # Fan-out
//
// Entries are grouped by album id and each distinct album is fetched at
// most once, through a worker pool bounded by MaxConcurrency (default 10)
// and a shared rate limiter. Tasks share no mutable state: each one owns
// a disjoint key in the result collection.
//
// # Fallback chains
//
// Release date, first success wins:
//  1. the catalog's structured releaseDate field
//  2. the upload date of the album's first track (secondary lookup)
//  3. the album's year field, formatted YYYY-01-01
//  4. the sentinel 9999-01-01
//
// Track position: item id lookup in the album's id map, then normalized
// title lookup, then sentinel 9999. The title fallback exists because the
// playlist-browse and album-detail endpoints may return different item ids
// for the same recording.
//
// A failed album fetch is swallowed and logged at debug level; the
// album's tracks simply stay unenriched. [Enricher.Enrich] always returns
// a same-length, same-order slice and never fails as a whole.
package enricher
