package service

import (
	"context"
	"fmt"

	"github.com/sangkips/order-notifier/internal/domain/entity"
	"github.com/sangkips/order-notifier/pkg/apperror"
	"github.com/sangkips/order-notifier/pkg/line"
)

// NotificationService delivers rendered receipts to the messaging platform.
type NotificationService struct {
	pusher   line.Pusher
	receipts *ReceiptService
}

// NewNotificationService creates a new notification service
func NewNotificationService(pusher line.Pusher, receipts *ReceiptService) *NotificationService {
	return &NotificationService{
		pusher:   pusher,
		receipts: receipts,
	}
}

// AltText is the plain-text summary shown where flex messages cannot render.
func AltText(orderID string, o *entity.Order) string {
	return fmt.Sprintf("Order %s | %s", orderID, o.ChannelOrDefault())
}

// Dispatch renders the receipt and pushes it to `to` in a single attempt.
func (s *NotificationService) Dispatch(ctx context.Context, to, orderID string, o *entity.Order) error {
	msg := line.PushMessage{
		To: to,
		Messages: []line.Message{
			line.NewFlexMessage(AltText(orderID, o), s.receipts.BuildReceipt(orderID, o)),
		},
	}

	if err := s.pusher.Push(ctx, msg); err != nil {
		return apperror.NewDispatchError(err)
	}
	return nil
}
