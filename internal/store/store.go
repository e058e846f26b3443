// Package store is the persistence boundary of the import flow. The parsers
// never touch it; only the orchestrator crosses it.
package store

import (
	"context"
	"errors"

	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/model"
)

var ErrDuplicateIMEI = errors.New("duplicate imei")

// DeviceStore is what the import orchestrator needs from persistence:
// a duplicate check over candidate IMEIs and an all-or-nothing batch insert.
type DeviceStore interface {
	// ExistingIMEIs reports which of the given IMEIs are already persisted.
	ExistingIMEIs(ctx context.Context, imeis []string) (map[string]bool, error)
	// InsertBatch inserts every item in one transaction and returns the
	// number created. Any failure rolls the whole batch back.
	InsertBatch(ctx context.Context, items []model.ParsedItem) (int, error)
}
