// Package services defines the [Catalog] interface for the external music
// catalog and implements it for YouTube Music via the ytmusicapi proxy.
//
// # Catalog Interface
//
// The sorter's engine depends only on [Catalog]; the network protocol is a
// collaborator behind it. The interface exposes the six operations the
// sorting pipeline consumes: playlist browse, album detail, track detail,
// account identity, bulk remove, and bulk add.
//
// # YouTube Music Implementation
//
// [YouTubeService] communicates with the FastAPI proxy server wrapping
// ytmusicapi. The proxy handles YouTube Music authentication complexities;
// the auth_file path is sent via X-Auth-File header on each request. All
// operations are synchronous HTTP calls to the proxy endpoints.
//
// Playlist entries carry both videoId (stable content id) and setVideoId
// (this occurrence within the playlist). Bulk removal names entries by
// the pair because a video may legitimately appear twice.
//
// # Last.fm
//
// [LastFmService] fetches a user's top artists, which become the
// favourite-artist rankings in a sort request's context.
//
// # Error Handling
//
// Services return wrapped errors; callers classify them against the
// sentinel errors in the shared package:
//   - [shared.ErrSessionExpired] : identity probe failed before a reorder
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrPlaylistNotFound] : playlist ID not found
package services
