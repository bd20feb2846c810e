// Package tasks orchestrates playlist sorting against the catalog with
// real-time progress reporting.
//
// # Core Operations
//
// The [SortEngine] interface defines three operations:
//
//  1. [SortEngine.Run] : Full sort-and-apply
//     - Fetches the playlist's raw entries
//     - Enriches them with album metadata (concurrent, bounded)
//     - Computes the composite-key order
//     - Applies the order via the remove-then-add state machine
//
//  2. [SortEngine.Preview] : Dry run
//     - Same pipeline without the write-back; reports whether a write
//       would occur
//
//  3. [SortEngine.FavouriteArtists] : Ranking context
//     - Fetches a Last.fm user's top artists and builds the
//       [models.SortContext] consulted by the favourite-artists attribute
//
// # Progress Reporting
//
// All operations report through an optional channel of [ProgressUpdate].
// Updates use select with default so reporting never blocks the pipeline.
//
// # Error Handling
//
// Run returns its partial result together with the error whenever the
// apply step was reached: the restored and fatal reorder outcomes carry
// data a caller needs for display and recovery.
package tasks
