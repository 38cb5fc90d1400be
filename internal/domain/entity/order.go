package entity

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/sangkips/order-notifier/internal/domain/enum"
)

// Placeholder is shown and stored for absent free-text fields.
const Placeholder = "-"

// MaxItemNameRunes bounds the item name shown on a receipt row.
const MaxItemNameRunes = 40

// LineItem is one product line of an order.
type LineItem struct {
	Name  string
	Qty   decimal.Decimal
	Price decimal.Decimal
}

// LineTotal returns price * qty.
func (i LineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(i.Qty)
}

// DisplayName truncates the name for a receipt row.
func (i LineItem) DisplayName() string {
	name := i.Name
	if utf8.RuneCountInString(name) > MaxItemNameRunes {
		name = string([]rune(name)[:MaxItemNameRunes])
	}
	if name == "" {
		return Placeholder
	}
	return name
}

// Order is a paid transaction as received from the point of sale.
// It is built once per request and not modified afterwards.
type Order struct {
	OrderID string
	Items   []LineItem
	// Total overrides the item sum when set.
	Total   *decimal.Decimal
	Cashier string
	Branch  string
	Channel string
	PaidAt  *time.Time
}

// ItemsTotal sums LineTotal over all items.
func (o *Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// ResolvedTotal is the amount both rendered and persisted.
func (o *Order) ResolvedTotal() decimal.Decimal {
	if o.Total != nil {
		return *o.Total
	}
	return o.ItemsTotal()
}

func (o *Order) ChannelOrDefault() string { return orDefault(o.Channel) }
func (o *Order) CashierOrDefault() string { return orDefault(o.Cashier) }
func (o *Order) BranchOrDefault() string  { return orDefault(o.Branch) }

func orDefault(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// OrderRecordItem is the stored form of a LineItem.
type OrderRecordItem struct {
	Name  string  `json:"name" bson:"name"`
	Qty   float64 `json:"qty" bson:"qty"`
	Price float64 `json:"price" bson:"price"`
}

// OrderRecord is the document written to the order store, keyed by OrderID.
// A nil PaidAt and a zero UpdatedAt are assigned by the store at write time.
type OrderRecord struct {
	OrderID   string            `gorm:"primaryKey;size:191" json:"orderId" bson:"_id"`
	Items     []OrderRecordItem `gorm:"type:jsonb;serializer:json" json:"items" bson:"items"`
	Total     float64           `gorm:"type:numeric" json:"total" bson:"total"`
	Cashier   string            `gorm:"size:255" json:"cashier" bson:"cashier"`
	Branch    string            `gorm:"size:255" json:"branch" bson:"branch"`
	Channel   string            `gorm:"size:255" json:"channel" bson:"channel"`
	PaidAt    *time.Time        `json:"paidAt" bson:"paidAt"`
	Status    enum.OrderStatus  `gorm:"size:20" json:"status" bson:"status"`
	UpdatedAt time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// TableName returns the table name for the OrderRecord model
func (OrderRecord) TableName() string {
	return "orders"
}

// NewOrderRecord builds the stored view of o with placeholder defaults and the paid status.
func NewOrderRecord(o *Order) *OrderRecord {
	items := make([]OrderRecordItem, 0, len(o.Items))
	for _, it := range o.Items {
		qty, _ := it.Qty.Float64()
		price, _ := it.Price.Float64()
		items = append(items, OrderRecordItem{Name: it.Name, Qty: qty, Price: price})
	}

	total, _ := o.ResolvedTotal().Float64()

	var paidAt *time.Time
	if o.PaidAt != nil {
		t := o.PaidAt.UTC()
		paidAt = &t
	}

	return &OrderRecord{
		OrderID: o.OrderID,
		Items:   items,
		Total:   total,
		Cashier: o.CashierOrDefault(),
		Branch:  o.BranchOrDefault(),
		Channel: o.ChannelOrDefault(),
		PaidAt:  paidAt,
		Status:  enum.OrderStatusPaid,
	}
}
