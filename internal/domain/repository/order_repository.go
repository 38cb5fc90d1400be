package repository

import (
	"context"

	"github.com/sangkips/order-notifier/internal/domain/entity"
)

// OrderStore persists order records keyed by order id with merge semantics:
// fields present in the record overwrite, fields absent are left untouched.
type OrderStore interface {
	Upsert(ctx context.Context, rec *entity.OrderRecord) error
	// Get returns nil, nil when no record exists.
	Get(ctx context.Context, orderID string) (*entity.OrderRecord, error)
	// Enabled is false for the no-op store used when persistence is not configured.
	Enabled() bool
	Close(ctx context.Context) error
}
