package services

import (
	"DreyCare/models"
	"fmt"
)

// RoutingErrorCode identifies why the router rejected a transition.
type RoutingErrorCode string

const (
	RoutingUnknownVisit  RoutingErrorCode = "unknown_visit"
	RoutingRoleMismatch  RoutingErrorCode = "role_mismatch"
	RoutingInvalidTarget RoutingErrorCode = "invalid_target"
	RoutingCompleted     RoutingErrorCode = "visit_completed"
)

// RoutingError is returned when a transition request is rejected. The visit
// is left untouched.
type RoutingError struct {
	Code      RoutingErrorCode
	VisitID   string
	ActorRole string
	Target    models.Location
	Reason    string
}

func (e *RoutingError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("routing rejected (%s): %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("routing rejected (%s): visit %s, actor %s, target %s", e.Code, e.VisitID, e.ActorRole, e.Target)
}

// StockErrorKind identifies why a dispense was refused.
type StockErrorKind string

const (
	StockInvalidQuantity StockErrorKind = "invalid_quantity"
	StockUnknownDrug     StockErrorKind = "unknown_drug"
	StockInsufficient    StockErrorKind = "insufficient_stock"
)

// StockError is returned by the stock ledger. Stock is never changed when a
// StockError is returned.
type StockError struct {
	Kind     StockErrorKind
	DrugID   string
	Quantity int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("dispense refused (%s): drug %s, quantity %d", e.Kind, e.DrugID, e.Quantity)
}

// PersistenceError wraps a store failure and names the sub-operation that
// failed, so callers of multi-write flows can tell how far the flow got
// before deciding on manual reconciliation. The core never retries or
// compensates.
type PersistenceError struct {
	Op  string // sub-operation, e.g. "update_visit", "create_prescription"
	Key string // entity the sub-operation acted on, when known
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s failed for %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
