package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/order-notifier/internal/config"
	"github.com/sangkips/order-notifier/internal/domain/entity"
	"github.com/sangkips/order-notifier/internal/domain/repository"
	"github.com/sangkips/order-notifier/pkg/apperror"
	"github.com/sangkips/order-notifier/pkg/thaifmt"
)

// Dispatcher pushes a rendered order to a destination.
type Dispatcher interface {
	Dispatch(ctx context.Context, to, orderID string, o *entity.Order) error
}

// OrderService runs the order webhook pipeline: validate, persist, dispatch.
type OrderService struct {
	store      repository.OrderStore
	dispatcher Dispatcher
	lineCfg    *config.LineConfig
	location   *time.Location
	logger     *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	store repository.OrderStore,
	dispatcher Dispatcher,
	lineCfg *config.LineConfig,
	loc *time.Location,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		store:      store,
		dispatcher: dispatcher,
		lineCfg:    lineCfg,
		location:   loc,
		logger:     logger,
	}
}

// OrderItemInput represents an item in an order
type OrderItemInput struct {
	Name  string
	Qty   decimal.Decimal
	Price decimal.Decimal
}

// ProcessOrderInput represents the order webhook payload after JSON coercion
type ProcessOrderInput struct {
	OrderID string
	Items   []OrderItemInput
	Total   *decimal.Decimal
	Cashier string
	Branch  string
	Channel string
	PaidAt  string
}

// CheckConfiguration fails when a delivery secret is absent.
func (s *OrderService) CheckConfiguration() error {
	if s.lineCfg.Token == "" {
		return apperror.NewConfigurationError("Missing LINE_TOKEN")
	}
	if s.lineCfg.To == "" {
		return apperror.NewConfigurationError("Missing LINE_TO")
	}
	return nil
}

// BuildOrder validates input and constructs the immutable Order.
func (s *OrderService) BuildOrder(input *ProcessOrderInput) (*entity.Order, error) {
	if input.OrderID == "" {
		return nil, apperror.NewValidationError("Missing orderId")
	}

	order := &entity.Order{
		OrderID: input.OrderID,
		Items:   make([]entity.LineItem, 0, len(input.Items)),
		Cashier: input.Cashier,
		Branch:  input.Branch,
		Channel: input.Channel,
	}

	if input.Total != nil {
		total := *input.Total
		order.Total = &total
	}

	if input.PaidAt != "" {
		paidAt, err := thaifmt.ParseTimestamp(input.PaidAt, s.location)
		if err != nil {
			return nil, apperror.NewValidationError("Invalid paidAt: " + input.PaidAt)
		}
		order.PaidAt = &paidAt
	}

	for _, it := range input.Items {
		qty := it.Qty
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		order.Items = append(order.Items, entity.LineItem{
			Name:  it.Name,
			Qty:   qty,
			Price: it.Price,
		})
	}

	return order, nil
}

// Process persists the order when a store is configured, then dispatches it.
// A persisted record is kept even if dispatch fails.
func (s *OrderService) Process(ctx context.Context, input *ProcessOrderInput) (*entity.Order, error) {
	if err := s.CheckConfiguration(); err != nil {
		return nil, err
	}

	order, err := s.BuildOrder(input)
	if err != nil {
		return nil, err
	}

	if s.store.Enabled() {
		if err := s.store.Upsert(ctx, entity.NewOrderRecord(order)); err != nil {
			return order, apperror.NewPersistenceError(err)
		}
		s.logger.Debug("order persisted", "orderId", order.OrderID)
	}

	if err := s.dispatcher.Dispatch(ctx, s.lineCfg.To, order.OrderID, order); err != nil {
		return order, apperror.Wrap(apperror.KindDispatch, err)
	}
	s.logger.Info("order dispatched",
		"orderId", order.OrderID,
		"items", len(order.Items),
		"total", order.ResolvedTotal().StringFixed(2),
	)

	return order, nil
}
