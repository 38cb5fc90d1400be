package service

import (
	"time"

	"github.com/sangkips/order-notifier/internal/domain/entity"
	"github.com/sangkips/order-notifier/pkg/flex"
	"github.com/sangkips/order-notifier/pkg/thaifmt"
)

const (
	colorTitle = "#b91c1c"
	colorMeta  = "#6b7280"
	colorMuted = "#9ca3af"
)

// ReceiptLabels holds the fixed strings printed on every receipt.
type ReceiptLabels struct {
	ShopName    string
	Channel     string
	OrderID     string
	Branch      string
	ItemHeader  string
	QtyHeader   string
	PriceHeader string
	Total       string
	SoldAt      string
	NoItems     string
}

// DefaultReceiptLabels returns the Thai receipt wording.
func DefaultReceiptLabels() ReceiptLabels {
	return ReceiptLabels{
		ShopName:    "ไก่ทอดสมหวัง",
		Channel:     "ช่องทาง",
		OrderID:     "Order ID",
		Branch:      "สาขา",
		ItemHeader:  "รายการ",
		QtyHeader:   "จำนวน",
		PriceHeader: "ราคา",
		Total:       "รวมทั้งบิล",
		SoldAt:      "เวลาที่ขาย",
		NoItems:     "(ไม่มีรายการสินค้า)",
	}
}

// ReceiptService renders orders into Flex receipt bubbles.
type ReceiptService struct {
	labels   ReceiptLabels
	location *time.Location
	now      func() time.Time
}

// NewReceiptService creates a receipt renderer displaying times in loc.
func NewReceiptService(labels ReceiptLabels, loc *time.Location) *ReceiptService {
	if labels.ShopName == "" {
		labels.ShopName = DefaultReceiptLabels().ShopName
	}
	return &ReceiptService{
		labels:   labels,
		location: loc,
		now:      time.Now,
	}
}

// ComposeReceipt computes the display strings of an order.
func (s *ReceiptService) ComposeReceipt(orderID string, o *entity.Order) *entity.Receipt {
	receipt := &entity.Receipt{
		ShopName: s.labels.ShopName,
		OrderID:  orderID,
		Channel:  o.ChannelOrDefault(),
		Branch:   o.Branch,
		Rows:     make([]entity.ReceiptRow, 0, len(o.Items)),
		Total:    thaifmt.Currency(o.ResolvedTotal()),
		SoldAt:   thaifmt.DateTime(o.PaidAt, s.location, s.now),
	}

	for _, it := range o.Items {
		receipt.Rows = append(receipt.Rows, entity.ReceiptRow{
			Name:   it.DisplayName(),
			Qty:    "x" + it.Qty.String(),
			Amount: thaifmt.Currency(it.LineTotal()),
		})
	}

	return receipt
}

// BuildReceipt renders o as a Flex bubble. It has no side effects.
func (s *ReceiptService) BuildReceipt(orderID string, o *entity.Order) *flex.Bubble {
	return s.FormatReceipt(s.ComposeReceipt(orderID, o))
}

// FormatReceipt converts a Receipt into a Flex bubble.
func (s *ReceiptService) FormatReceipt(r *entity.Receipt) *flex.Bubble {
	l := s.labels

	contents := []flex.Component{
		&flex.Text{Text: r.ShopName, Weight: "bold", Size: "lg", Color: colorTitle},
		metaLine(l.Channel + ": " + r.Channel),
		metaLine(l.OrderID + ": " + r.OrderID),
	}
	if r.Branch != "" {
		contents = append(contents, metaLine(l.Branch+": "+r.Branch))
	}

	header := flex.HBox(
		&flex.Text{Text: l.ItemHeader, Size: "sm", Weight: "bold", Flex: 5},
		&flex.Text{Text: l.QtyHeader, Size: "sm", Weight: "bold", Align: "center", Flex: 2},
		&flex.Text{Text: l.PriceHeader, Size: "sm", Weight: "bold", Align: "end", Flex: 3},
	)

	rows := make([]flex.Component, 0, len(r.Rows))
	for _, row := range r.Rows {
		line := flex.HBox(
			&flex.Text{Text: row.Name, Size: "sm", Flex: 5, Wrap: true},
			&flex.Text{Text: row.Qty, Size: "sm", Flex: 2, Align: "center"},
			&flex.Text{Text: row.Amount, Size: "sm", Flex: 3, Align: "end"},
		)
		line.Spacing = "sm"
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		rows = append(rows, &flex.Text{Text: l.NoItems, Size: "sm", Color: colorMuted})
	}

	table := flex.VBox(rows...)
	table.Margin = "sm"
	table.Spacing = "xs"

	contents = append(contents,
		&flex.Separator{Margin: "md"},
		header,
		table,
		&flex.Separator{Margin: "md"},
		flex.HBox(
			&flex.Text{Text: l.Total, Weight: "bold", Flex: 5},
			&flex.Text{Text: r.Total, Weight: "bold", Align: "end", Flex: 5},
		),
		&flex.Text{Text: l.SoldAt + ": " + r.SoldAt, Size: "xs", Color: colorMeta},
	)

	body := flex.VBox(contents...)
	body.Spacing = "md"

	return &flex.Bubble{Size: "mega", Body: body}
}

func metaLine(text string) *flex.Text {
	return &flex.Text{Text: text, Size: "sm", Color: colorMeta}
}
