// Package reconcile derives the effective payment state of a roster row.
//
// The stored status field and the presence of an uploaded proof image are
// two separate signals; this package is the single place where they are
// combined. Views must never decide editability on their own.
package reconcile

import "github.com/rizalarf/matchday/internal/roster/model"

// Result is the reconciled view of one record.
type Result struct {
	// Status is the effective status after considering proof presence.
	Status model.Status
	// Editable reports whether the stored status may still be changed.
	// A record with an uploaded proof is locked for good.
	Editable bool
}

// Effective reconciles a stored status with proof-file presence.
// Proof wins unconditionally: once an image exists the record reads as
// Transfer and is locked, whatever the stored field says. Cash and
// proof-less Transfer remain correctable.
func Effective(status model.Status, proofExists bool) Result {
	if proofExists {
		return Result{Status: model.StatusTransfer, Editable: false}
	}
	return Result{Status: status, Editable: true}
}

// Paid reports whether a reconciled record counts as fully paid.
func (r Result) Paid() bool {
	return r.Status == model.StatusCash || r.Status == model.StatusTransfer
}

// Locked reports whether edits to the record must be rejected.
func (r Result) Locked() bool {
	return !r.Editable
}
