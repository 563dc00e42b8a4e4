package store

import (
	"context"
	"errors"
	"fmt"
)

// Collection names. Every collection is persisted as one whole document;
// the ledger serializes writers per collection, so a backend only has to
// make a single Save atomic.
const (
	CollectionTopups      = "topup_records"
	CollectionWithdrawals = "withdrawals_records"
	CollectionExchanges   = "exchange_records"
	CollectionUsers       = "users"
)

// Sentinel errors shared across all backend implementations and the ledger.
var (
	ErrNotFound         = errors.New("record not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyFinalized = errors.New("record already finalized")
	ErrStorage          = errors.New("storage failure")
)

// ValidationError reports a missing or malformed required field on a
// submission. The field name is surfaced to the caller verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ObjectStore is the durable whole-document collection contract that every
// backend (JSON files, SQLite, ...) must satisfy. Load decodes the named
// collection into out; an absent collection leaves out at its zero value.
// Save overwrites the entire collection document.
type ObjectStore interface {
	Load(ctx context.Context, collection string, out any) error
	Save(ctx context.Context, collection string, v any) error
	Close() error
}
