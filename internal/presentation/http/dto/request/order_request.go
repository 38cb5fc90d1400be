package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sangkips/order-notifier/internal/application/service"
	"github.com/sangkips/order-notifier/pkg/apperror"
	"github.com/sangkips/order-notifier/pkg/thaifmt"
)

// OrderItemRequest is one entry of the items array. Fields stay loosely typed
// because POS clients send numbers and numeric strings interchangeably.
type OrderItemRequest struct {
	Name  any `json:"name"`
	Qty   any `json:"qty"`
	Price any `json:"price"`
}

// OrderWebhookRequest represents the order webhook body
type OrderWebhookRequest struct {
	OrderID any             `json:"orderId"`
	Items   json.RawMessage `json:"items"`
	Total   any             `json:"total"`
	Cashier any             `json:"cashier"`
	Branch  any             `json:"branch"`
	Channel any             `json:"channel"`
	PaidAt  any             `json:"paidAt"`
}

// ParseOrderWebhook decodes body as a JSON object. An empty body is treated as {}.
func ParseOrderWebhook(body []byte) (*OrderWebhookRequest, error) {
	var req OrderWebhookRequest
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &req, nil
	}
	if body[0] != '{' {
		return nil, apperror.NewValidationError("Invalid JSON body: expected an object")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return nil, apperror.NewValidationError("Invalid JSON body: " + err.Error())
	}
	return &req, nil
}

// ToInput coerces the loose JSON values into the service input. Item values
// that cannot be read as amounts become zero; an out-of-range total is rejected.
func (r *OrderWebhookRequest) ToInput() (*service.ProcessOrderInput, error) {
	total, err := totalOverride(r.Total)
	if err != nil {
		return nil, err
	}

	input := &service.ProcessOrderInput{
		OrderID: stringOf(r.OrderID),
		Items:   r.items(),
		Total:   total,
		Cashier: stringOf(r.Cashier),
		Branch:  stringOf(r.Branch),
		Channel: stringOf(r.Channel),
		PaidAt:  stringOf(r.PaidAt),
	}
	return input, nil
}

// items ignores a non-array value and decodes each element independently so
// that one malformed entry renders as a zero row instead of failing the order.
func (r *OrderWebhookRequest) items() []service.OrderItemInput {
	var raw []json.RawMessage
	if len(r.Items) == 0 || json.Unmarshal(r.Items, &raw) != nil {
		return nil
	}

	items := make([]service.OrderItemInput, 0, len(raw))
	for _, elem := range raw {
		var item OrderItemRequest
		dec := json.NewDecoder(bytes.NewReader(elem))
		dec.UseNumber()
		_ = dec.Decode(&item)

		items = append(items, service.OrderItemInput{
			Name:  stringOf(item.Name),
			Qty:   thaifmt.ToDecimal(item.Qty),
			Price: thaifmt.ToDecimal(item.Price),
		})
	}
	return items
}

// totalOverride accepts a JSON number or numeric string; anything else means
// the total is derived from the items.
func totalOverride(v any) (*decimal.Decimal, error) {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = t
	default:
		return nil, nil
	}

	d, err := thaifmt.ParseAmount(s)
	if errors.Is(err, thaifmt.ErrAmountOutOfRange) {
		return nil, apperror.NewValidationError("Invalid total: " + strings.TrimSpace(s))
	}
	if err != nil {
		return nil, nil
	}
	return &d, nil
}

func stringOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}
