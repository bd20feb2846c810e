package reorder

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsort/internal/models"
	"github.com/desertthunder/ytsort/internal/services"
	"github.com/desertthunder/ytsort/internal/shared"
)

// Status tags the outcome of one apply attempt. The write-back is a
// compensating-transaction over bulk remove and bulk add, since the
// catalog offers no atomic reorder; all four outcomes are first-class
// values rather than nested error handling.
type Status int

const (
	// StatusNoOp: current order already matches the target, nothing sent.
	StatusNoOp Status = iota
	// StatusApplied: remove and add both succeeded.
	StatusApplied
	// StatusRestored: add failed after remove, the original order was
	// put back. The playlist is intact but the sort did not happen.
	StatusRestored
	// StatusFatal: add failed and the restore also failed; playlist
	// state is indeterminate and needs manual inspection.
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusNoOp:
		return "no_op"
	case StatusApplied:
		return "applied"
	case StatusRestored:
		return "restored"
	case StatusFatal:
		return "fatal"
	default:
		return ""
	}
}

// Outcome reports what one apply attempt did.
type Outcome struct {
	Status       Status
	ItemsChanged int    // Items placed by the add step, 0 for no-op
	Identity     string // Account identity confirmed before mutating
}

// Applier executes the remove-then-add write-back with validation ahead
// of any destructive call and compensation on partial failure.
type Applier struct {
	catalog services.Catalog
	logger  *log.Logger
}

// NewApplier creates an Applier backed by the given catalog.
func NewApplier(catalog services.Catalog, logger *log.Logger) *Applier {
	if logger == nil {
		logger = log.Default()
	}
	return &Applier{catalog: catalog, logger: logger}
}

// Apply writes the sorted order back to the playlist.
//
// If the current instance-id sequence already equals the target the call
// is a free no-op and nothing is sent. Otherwise the session is probed
// before any destructive call; a stale credential surfaces as
// [shared.ErrSessionExpired] with the playlist untouched. The remove,
// add, and restore calls are strictly sequential; the caller owns
// deadlines, and cancellation between remove and add is not compensated.
//
// The returned error is non-nil for every outcome except no-op and
// applied: [shared.ErrRestoreFailed] when the original order was put
// back, [shared.ErrReorderFatal] when it was not.
func (a *Applier) Apply(ctx context.Context, playlistID string, original, sorted []models.Track) (*Outcome, error) {
	// COMPARE
	if sameOrder(original, sorted) {
		a.logger.Info("playlist already in target order", "playlist", playlistID)
		return &Outcome{Status: StatusNoOp}, nil
	}

	// VALIDATE: cheap identity probe so an expired credential can never
	// cost data.
	identity, err := a.catalog.AccountIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSessionExpired, err)
	}

	// REMOVE: one bulk call naming every occurrence by (item, instance)
	// pair; the same item id may recur within the playlist.
	refs := make([]models.ItemRef, len(original))
	for i, t := range original {
		refs[i] = t.Ref()
	}

	if err := a.catalog.RemoveItems(ctx, playlistID, refs); err != nil {
		return nil, fmt.Errorf("%w: remove failed: %v", shared.ErrAPIRequest, err)
	}

	// ADD
	addErr := a.catalog.AddItems(ctx, playlistID, itemIDs(sorted))
	if addErr == nil {
		a.logger.Info("playlist reordered", "playlist", playlistID, "items", len(sorted), "account", identity)
		return &Outcome{Status: StatusApplied, ItemsChanged: len(sorted), Identity: identity}, nil
	}

	// RESTORE: re-insert the exact original item-id sequence.
	a.logger.Warn("add failed after remove, restoring original order", "playlist", playlistID, "error", addErr)

	if restoreErr := a.catalog.AddItems(ctx, playlistID, itemIDs(original)); restoreErr != nil {
		a.logger.Error("restore failed, playlist state indeterminate",
			"playlist", playlistID,
			"add_error", addErr,
			"restore_error", restoreErr,
			"original_order", itemIDs(original),
			"target_order", itemIDs(sorted),
		)
		return &Outcome{Status: StatusFatal, Identity: identity},
			fmt.Errorf("%w: add: %v, restore: %v", shared.ErrReorderFatal, addErr, restoreErr)
	}

	return &Outcome{Status: StatusRestored, Identity: identity},
		fmt.Errorf("%w: %v", shared.ErrRestoreFailed, addErr)
}

// sameOrder compares the instance-id sequences of the two track lists.
func sameOrder(original, sorted []models.Track) bool {
	if len(original) != len(sorted) {
		return false
	}
	for i := range original {
		if original[i].InstanceID != sorted[i].InstanceID {
			return false
		}
	}
	return true
}

func itemIDs(tracks []models.Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ItemID
	}
	return ids
}
