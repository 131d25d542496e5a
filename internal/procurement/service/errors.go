package service

import (
	"fmt"

	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/repository"
)

// ErrNotFound re-exported so callers can errors.Is against the service
// layer without importing repository.
var ErrNotFound = repository.ErrNotFound

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// InvalidStateError reports an action attempted against a document in the
// wrong status, e.g. receiving against a draft PO.
type InvalidStateError struct {
	EntityType string
	EntityID   string
	Status     string
	Action     string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s is in status %q, cannot %s", e.EntityType, e.EntityID, e.Status, e.Action)
}

// OverReceiptError reports a received quantity exceeding the outstanding
// quantity of a line item. It aborts the whole GRN batch.
type OverReceiptError struct {
	POItemID    string
	Requested   float64
	Outstanding float64
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf("item %s: received quantity %.2f exceeds outstanding %.2f", e.POItemID, e.Requested, e.Outstanding)
}
