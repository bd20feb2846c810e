// Package reorder writes a computed order back to a playlist whose catalog
// offers only bulk remove and bulk add, no atomic set-order.
//
// The write is a two-step, non-atomic sequence modeled as an explicit
// state machine:
//
//	COMPARE → {NO_OP, VALIDATE}
//	VALIDATE → {REMOVE, AUTH_FAILED}
//	REMOVE → ADD
//	ADD → {DONE, RESTORE}
//	RESTORE → {DONE_WITH_WARNING, FATAL}
//
// COMPARE makes repeated sorts of an already-sorted playlist free and
// idempotent. VALIDATE probes the session before anything is mutated, so
// an expired credential can never cause data loss. RESTORE is the
// compensating action: if the add fails after the remove succeeded, the
// original item-id sequence is re-inserted, and the operation reports
// "failed, restored" rather than success. A failed restore is fatal and
// logged at error level with both the original and the attempted target
// order preserved for manual recovery.
//
// All external calls are strictly sequential; each call's effect must be
// observed before the next is issued.
package reorder
