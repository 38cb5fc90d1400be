package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sangkips/order-notifier/internal/domain/entity"
	domainRepo "github.com/sangkips/order-notifier/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Columns overwritten when an order id already exists. Anything else on the row is kept.
var orderUpsertColumns = []string{
	"items", "total", "cashier", "branch", "channel", "paid_at", "status", "updated_at",
}

type orderRepository struct {
	db        *gorm.DB
	now       func() time.Time
	closeOnce sync.Once
}

// NewOrderRepository creates a PostgreSQL-backed order store
func NewOrderRepository(db *gorm.DB) domainRepo.OrderStore {
	return &orderRepository{db: db, now: time.Now}
}

func (r *orderRepository) Upsert(ctx context.Context, rec *entity.OrderRecord) error {
	row := *rec
	now := r.now().UTC()
	if row.PaidAt == nil {
		row.PaidAt = &now
	}
	row.UpdatedAt = now

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns(orderUpsertColumns),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert order %s: %w", rec.OrderID, err)
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, orderID string) (*entity.OrderRecord, error) {
	var rec entity.OrderRecord
	err := r.db.WithContext(ctx).First(&rec, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	return &rec, nil
}

func (r *orderRepository) Enabled() bool {
	return true
}

func (r *orderRepository) Close(ctx context.Context) error {
	var err error
	r.closeOnce.Do(func() {
		sqlDB, dbErr := r.db.DB()
		if dbErr != nil {
			err = dbErr
			return
		}
		err = sqlDB.Close()
	})
	return err
}
