package repository

import (
	"context"

	"github.com/sangkips/order-notifier/internal/domain/entity"
	domainRepo "github.com/sangkips/order-notifier/internal/domain/repository"
)

type nullOrderRepository struct{}

// NewNullOrderRepository creates a no-op store for deployments without persistence.
func NewNullOrderRepository() domainRepo.OrderStore {
	return nullOrderRepository{}
}

func (nullOrderRepository) Upsert(context.Context, *entity.OrderRecord) error {
	return nil
}

func (nullOrderRepository) Get(context.Context, string) (*entity.OrderRecord, error) {
	return nil, nil
}

func (nullOrderRepository) Enabled() bool {
	return false
}

func (nullOrderRepository) Close(context.Context) error {
	return nil
}
