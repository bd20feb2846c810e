// package repositories provides the persistence layer for cached album metadata.
//
// Only album metadata is persisted: it is expensive to fetch (one catalog
// call per album, sometimes two) and stable over time. Tracks and
// playlists live only for the duration of one sort operation and are
// never written to disk. The schema is managed by shared.RunMigrations.
package repositories
