package service

import (
	"context"
	"sync"

	"github.com/sangkips/order-notifier/internal/domain/entity"
	"github.com/sangkips/order-notifier/pkg/line"
)

// --- OrderStore mock ---

type storeMock struct {
	mu      sync.Mutex
	enabled bool
	err     error
	upserts []*entity.OrderRecord
	records map[string]*entity.OrderRecord
}

func newStoreMock(enabled bool) *storeMock {
	return &storeMock{enabled: enabled, records: map[string]*entity.OrderRecord{}}
}

func (m *storeMock) Upsert(_ context.Context, rec *entity.OrderRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts = append(m.upserts, rec)
	if m.err != nil {
		return m.err
	}
	m.records[rec.OrderID] = rec
	return nil
}

func (m *storeMock) Get(_ context.Context, orderID string) (*entity.OrderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[orderID], nil
}

func (m *storeMock) Enabled() bool                 { return m.enabled }
func (m *storeMock) Close(_ context.Context) error { return nil }

// --- Pusher mock ---

type pusherMock struct {
	err      error
	messages []line.PushMessage
}

func (m *pusherMock) Push(_ context.Context, msg line.PushMessage) error {
	m.messages = append(m.messages, msg)
	return m.err
}

// --- Dispatcher mock ---

type dispatcherMock struct {
	err   error
	calls []dispatchCall
}

type dispatchCall struct {
	to      string
	orderID string
	order   *entity.Order
}

func (m *dispatcherMock) Dispatch(_ context.Context, to, orderID string, o *entity.Order) error {
	m.calls = append(m.calls, dispatchCall{to: to, orderID: orderID, order: o})
	return m.err
}
