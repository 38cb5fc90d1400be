package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/order-notifier/internal/config"
	"github.com/sangkips/order-notifier/internal/domain/entity"
	"github.com/sangkips/order-notifier/internal/domain/enum"
	"github.com/sangkips/order-notifier/pkg/apperror"
	"github.com/sangkips/order-notifier/pkg/logger"
	"github.com/sangkips/order-notifier/pkg/thaifmt"
)

func newTestOrderService(store *storeMock, dispatcher *dispatcherMock, lineCfg *config.LineConfig) *OrderService {
	return NewOrderService(store, dispatcher, lineCfg, thaifmt.LoadZone(thaifmt.DefaultZone), logger.Discard())
}

func validLineConfig() *config.LineConfig {
	return &config.LineConfig{Token: "tok", To: "U123"}
}

func friedChickenInput() *ProcessOrderInput {
	return &ProcessOrderInput{
		OrderID: "A1",
		Items:   []OrderItemInput{{Name: "Fried Chicken", Qty: dec("2"), Price: dec("50")}},
	}
}

func TestOrderService_CheckConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LineConfig
		wantMsg string
	}{
		{name: "missingToken", cfg: config.LineConfig{To: "U1"}, wantMsg: "Missing LINE_TOKEN"},
		{name: "missingDestination", cfg: config.LineConfig{Token: "t"}, wantMsg: "Missing LINE_TO"},
		{name: "missingBothReportsToken", cfg: config.LineConfig{}, wantMsg: "Missing LINE_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestOrderService(newStoreMock(true), &dispatcherMock{}, &tt.cfg)
			err := svc.CheckConfiguration()
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, apperror.IsKind(err, apperror.KindConfiguration))
		})
	}

	svc := newTestOrderService(newStoreMock(true), &dispatcherMock{}, validLineConfig())
	assert.NoError(t, svc.CheckConfiguration())
}

func TestOrderService_BuildOrder(t *testing.T) {
	svc := newTestOrderService(newStoreMock(false), &dispatcherMock{}, validLineConfig())

	t.Run("missingOrderID", func(t *testing.T) {
		_, err := svc.BuildOrder(&ProcessOrderInput{})
		require.Error(t, err)
		assert.Equal(t, "Missing orderId", err.Error())
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("invalidPaidAt", func(t *testing.T) {
		_, err := svc.BuildOrder(&ProcessOrderInput{OrderID: "A1", PaidAt: "not-a-date"})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("negativeQtyClampedToZero", func(t *testing.T) {
		order, err := svc.BuildOrder(&ProcessOrderInput{
			OrderID: "A1",
			Items:   []OrderItemInput{{Name: "Refund?", Qty: dec("-3"), Price: dec("10")}},
		})
		require.NoError(t, err)
		assert.True(t, order.Items[0].Qty.IsZero())
		assert.True(t, order.ResolvedTotal().IsZero())
	})

	t.Run("copiesFields", func(t *testing.T) {
		total := dec("99")
		order, err := svc.BuildOrder(&ProcessOrderInput{
			OrderID: "A1",
			Total:   &total,
			Cashier: "Nok",
			Branch:  "Siam",
			Channel: "POS",
			PaidAt:  "2025-05-01T10:00:00Z",
		})
		require.NoError(t, err)

		total = dec("1")
		assert.True(t, order.ResolvedTotal().Equal(dec("99")))
		assert.Equal(t, "Nok", order.Cashier)
		assert.Equal(t, "Siam", order.Branch)
		assert.Equal(t, "POS", order.Channel)
		require.NotNil(t, order.PaidAt)
		assert.True(t, order.PaidAt.Equal(time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)))
	})
}

func TestOrderService_Process_Success(t *testing.T) {
	store := newStoreMock(true)
	dispatcher := &dispatcherMock{}
	svc := newTestOrderService(store, dispatcher, validLineConfig())

	order, err := svc.Process(context.Background(), friedChickenInput())
	require.NoError(t, err)
	assert.True(t, order.ResolvedTotal().Equal(decimal.NewFromInt(100)))

	require.Len(t, store.upserts, 1)
	rec := store.upserts[0]
	assert.Equal(t, "A1", rec.OrderID)
	assert.Equal(t, 100.0, rec.Total)
	assert.Equal(t, enum.OrderStatusPaid, rec.Status)
	assert.Equal(t, entity.Placeholder, rec.Channel)
	assert.Nil(t, rec.PaidAt)

	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, "U123", dispatcher.calls[0].to)
	assert.Equal(t, "A1", dispatcher.calls[0].orderID)
	assert.Same(t, order, dispatcher.calls[0].order)
}

func TestOrderService_Process_PersistedTotalMatchesOverride(t *testing.T) {
	store := newStoreMock(true)
	svc := newTestOrderService(store, &dispatcherMock{}, validLineConfig())

	input := friedChickenInput()
	override := dec("80")
	input.Total = &override

	order, err := svc.Process(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 80.0, store.upserts[0].Total)
	assert.True(t, order.ResolvedTotal().Equal(override))
}

func TestOrderService_Process_PersistenceDisabled(t *testing.T) {
	store := newStoreMock(false)
	dispatcher := &dispatcherMock{}
	svc := newTestOrderService(store, dispatcher, validLineConfig())

	_, err := svc.Process(context.Background(), friedChickenInput())
	require.NoError(t, err)

	assert.Empty(t, store.upserts)
	assert.Len(t, dispatcher.calls, 1)
}

func TestOrderService_Process_ValidationStopsPipeline(t *testing.T) {
	store := newStoreMock(true)
	dispatcher := &dispatcherMock{}
	svc := newTestOrderService(store, dispatcher, validLineConfig())

	_, err := svc.Process(context.Background(), &ProcessOrderInput{})
	require.Error(t, err)

	assert.Equal(t, "Missing orderId", err.Error())
	assert.Empty(t, store.upserts)
	assert.Empty(t, dispatcher.calls)
}

func TestOrderService_Process_MissingConfiguration(t *testing.T) {
	store := newStoreMock(true)
	dispatcher := &dispatcherMock{}
	svc := newTestOrderService(store, dispatcher, &config.LineConfig{Token: "t"})

	_, err := svc.Process(context.Background(), friedChickenInput())
	require.Error(t, err)

	assert.True(t, apperror.IsKind(err, apperror.KindConfiguration))
	assert.Empty(t, store.upserts)
	assert.Empty(t, dispatcher.calls)
}

func TestOrderService_Process_PersistenceFailure(t *testing.T) {
	store := newStoreMock(true)
	store.err = errors.New("connection refused")
	dispatcher := &dispatcherMock{}
	svc := newTestOrderService(store, dispatcher, validLineConfig())

	_, err := svc.Process(context.Background(), friedChickenInput())
	require.Error(t, err)

	assert.True(t, apperror.IsKind(err, apperror.KindPersistence))
	assert.Equal(t, "connection refused", err.Error())
	assert.ErrorIs(t, err, store.err)
	assert.Empty(t, dispatcher.calls)
}

func TestOrderService_Process_DispatchFailureKeepsRecord(t *testing.T) {
	store := newStoreMock(true)
	dispatcher := &dispatcherMock{err: apperror.NewDispatchError(errors.New(`{"message":"Authentication failed"}`))}
	svc := newTestOrderService(store, dispatcher, validLineConfig())

	_, err := svc.Process(context.Background(), friedChickenInput())
	require.Error(t, err)

	assert.True(t, apperror.IsKind(err, apperror.KindDispatch))
	assert.Contains(t, err.Error(), "Authentication failed")

	rec, getErr := store.Get(context.Background(), "A1")
	require.NoError(t, getErr)
	assert.NotNil(t, rec)
}

func TestOrderService_Process_PlainDispatchErrorIsTagged(t *testing.T) {
	dispatcher := &dispatcherMock{err: errors.New("dial tcp: i/o timeout")}
	svc := newTestOrderService(newStoreMock(false), dispatcher, validLineConfig())

	_, err := svc.Process(context.Background(), friedChickenInput())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindDispatch))
}
