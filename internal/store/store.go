package store

import (
	"context"
	"errors"

	"github.com/acmelogistics/inbound-api/internal/models"
)

// Sentinel errors surfaced to handlers via errors.Is.
var (
	// ErrNoMatchingLoads is returned by Search when the filtered result is empty.
	ErrNoMatchingLoads = errors.New("no matching loads found")
	// ErrLoadNotFound is returned by GetByID for an unknown load_id.
	ErrLoadNotFound = errors.New("load not found")
	// ErrDuplicateLoad is returned by Create when the load_id already exists.
	ErrDuplicateLoad = errors.New("load_id already exists")
	// ErrDuplicateRun is returned by InsertCall when the run_id already exists.
	ErrDuplicateRun = errors.New("run_id already exists")
)

// LoadFilter holds the optional search predicates for the load registry.
// Empty fields mean "no filter", not a literal empty-string match.
type LoadFilter struct {
	Origin        string
	Destination   string
	EquipmentType string
}

// LoadStore is the durable registry of shipment loads.
type LoadStore interface {
	// Search applies each non-empty filter as a case-insensitive exact match,
	// composed with AND. No filters set returns every load.
	Search(ctx context.Context, f LoadFilter) ([]models.Load, error)
	GetByID(ctx context.Context, loadID string) (models.Load, error)
	// Create appends the load and returns the new total count.
	Create(ctx context.Context, load models.Load) (int, error)
}

// CallLogStore is the durable append-only log of call outcomes.
type CallLogStore interface {
	InsertCall(ctx context.Context, call *models.CallLog) error
	// BulkInsertCalls inserts all records whose run_id is not already present,
	// in one transaction, and returns the number actually inserted.
	BulkInsertCalls(ctx context.Context, calls []models.CallLog) (int, error)
	ListCalls(ctx context.Context) ([]models.CallLog, error)
	// Ping is used by the readiness endpoint.
	Ping(ctx context.Context) error
}
