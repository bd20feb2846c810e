package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed     = fmt.Errorf("authentication failed")
	ErrSessionExpired = fmt.Errorf("session expired, re-upload browser headers")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrAlbumNotFound      = fmt.Errorf("album not found")

	// Reorder errors. ErrRestoreFailed wraps the recoverable case: the
	// add step failed but the original order was put back. ErrReorderFatal
	// wraps the unrecoverable case: both the add and the restore failed
	// and the playlist requires manual inspection.
	ErrRestoreFailed = fmt.Errorf("reorder failed, original order restored")
	ErrReorderFatal  = fmt.Errorf("reorder failed and restore failed, playlist state indeterminate")

	// Input validation errors
	ErrInvalidSortLevels = fmt.Errorf("invalid sort levels")
	ErrMissingArgument   = fmt.Errorf("missing required argument")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
)
