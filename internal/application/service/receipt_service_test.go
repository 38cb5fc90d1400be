package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/order-notifier/internal/domain/entity"
	"github.com/sangkips/order-notifier/pkg/flex"
	"github.com/sangkips/order-notifier/pkg/thaifmt"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestReceiptService() *ReceiptService {
	s := NewReceiptService(DefaultReceiptLabels(), thaifmt.LoadZone(thaifmt.DefaultZone))
	s.now = func() time.Time { return time.Date(2026, time.October, 17, 7, 30, 0, 0, time.UTC) }
	return s
}

func textsOf(b *flex.Bubble) []string {
	var out []string
	for _, t := range flex.Texts(b.Body) {
		out = append(out, t.Text)
	}
	return out
}

func TestComposeReceipt_FriedChickenExample(t *testing.T) {
	s := newTestReceiptService()
	order := &entity.Order{
		OrderID: "A1",
		Items:   []entity.LineItem{{Name: "Fried Chicken", Qty: dec("2"), Price: dec("50")}},
	}

	r := s.ComposeReceipt("A1", order)

	assert.Equal(t, "ไก่ทอดสมหวัง", r.ShopName)
	assert.Equal(t, "-", r.Channel)
	assert.Empty(t, r.Branch)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, entity.ReceiptRow{Name: "Fried Chicken", Qty: "x2", Amount: "฿100.00"}, r.Rows[0])
	assert.Equal(t, "฿100.00", r.Total)
	assert.Equal(t, "17 ต.ค. 2569 14:30", r.SoldAt)
}

func TestComposeReceipt_LineAmountIsPriceTimesQty(t *testing.T) {
	s := newTestReceiptService()
	order := &entity.Order{
		Items: []entity.LineItem{
			{Name: "Wings", Qty: dec("3"), Price: dec("25.5")},
			{Name: "Rice", Qty: dec("0"), Price: dec("15")},
			{Name: "Sauce", Qty: dec("1.5"), Price: dec("4")},
		},
	}

	r := s.ComposeReceipt("B2", order)

	require.Len(t, r.Rows, 3)
	assert.Equal(t, "฿76.50", r.Rows[0].Amount)
	assert.Equal(t, "x0", r.Rows[1].Qty)
	assert.Equal(t, "฿0.00", r.Rows[1].Amount)
	assert.Equal(t, "x1.5", r.Rows[2].Qty)
	assert.Equal(t, "฿6.00", r.Rows[2].Amount)
	assert.Equal(t, "฿82.50", r.Total)
}

func TestComposeReceipt_TotalOverrideWins(t *testing.T) {
	s := newTestReceiptService()
	override := dec("80")
	order := &entity.Order{
		Items: []entity.LineItem{{Name: "Fried Chicken", Qty: dec("2"), Price: dec("50")}},
		Total: &override,
	}

	r := s.ComposeReceipt("C3", order)

	assert.Equal(t, "฿100.00", r.Rows[0].Amount)
	assert.Equal(t, "฿80.00", r.Total)
}

func TestComposeReceipt_PaidAtDisplayedInZone(t *testing.T) {
	s := newTestReceiptService()
	paidAt := time.Date(2025, time.February, 14, 12, 5, 0, 0, time.UTC)

	r := s.ComposeReceipt("D4", &entity.Order{PaidAt: &paidAt})

	assert.Equal(t, "14 ก.พ. 2568 19:05", r.SoldAt)
}

func TestBuildReceipt_Layout(t *testing.T) {
	s := newTestReceiptService()
	order := &entity.Order{
		Items:   []entity.LineItem{{Name: "Fried Chicken", Qty: dec("2"), Price: dec("50")}},
		Channel: "GrabFood",
		Branch:  "Siam",
	}

	bubble := s.BuildReceipt("A1", order)

	require.NotNil(t, bubble.Body)
	assert.Equal(t, "mega", bubble.Size)
	assert.Equal(t, flex.LayoutVertical, bubble.Body.Layout)

	assert.Equal(t, []string{
		"ไก่ทอดสมหวัง",
		"ช่องทาง: GrabFood",
		"Order ID: A1",
		"สาขา: Siam",
		"รายการ", "จำนวน", "ราคา",
		"Fried Chicken", "x2", "฿100.00",
		"รวมทั้งบิล", "฿100.00",
		"เวลาที่ขาย: 17 ต.ค. 2569 14:30",
	}, textsOf(bubble))

	separators := 0
	for _, c := range bubble.Body.Contents {
		if _, ok := c.(*flex.Separator); ok {
			separators++
		}
	}
	assert.Equal(t, 2, separators)
}

func TestBuildReceipt_BranchOmittedWhenEmpty(t *testing.T) {
	s := newTestReceiptService()

	texts := textsOf(s.BuildReceipt("A1", &entity.Order{}))

	for _, txt := range texts {
		assert.NotContains(t, txt, "สาขา")
	}
}

func TestBuildReceipt_EmptyItemsPlaceholder(t *testing.T) {
	s := newTestReceiptService()

	bubble := s.BuildReceipt("E5", &entity.Order{})

	var table *flex.Box
	for _, c := range bubble.Body.Contents {
		if box, ok := c.(*flex.Box); ok && box.Layout == flex.LayoutVertical {
			table = box
		}
	}
	require.NotNil(t, table)
	require.Len(t, table.Contents, 1)

	placeholder, ok := table.Contents[0].(*flex.Text)
	require.True(t, ok)
	assert.Equal(t, "(ไม่มีรายการสินค้า)", placeholder.Text)
	assert.Equal(t, colorMuted, placeholder.Color)

	assert.Contains(t, textsOf(bubble), "฿0.00")
}

func TestBuildReceipt_Deterministic(t *testing.T) {
	s := newTestReceiptService()
	order := &entity.Order{
		Items: []entity.LineItem{{Name: "Fried Chicken", Qty: dec("2"), Price: dec("50")}},
	}

	first, err := json.Marshal(s.BuildReceipt("A1", order))
	require.NoError(t, err)
	second, err := json.Marshal(s.BuildReceipt("A1", order))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestBuildReceipt_LongNamesTruncated(t *testing.T) {
	s := newTestReceiptService()
	name := "Extra Crispy Spicy Fried Chicken Family Bucket With Sticky Rice"
	order := &entity.Order{Items: []entity.LineItem{{Name: name, Qty: dec("1"), Price: dec("299")}}}

	r := s.ComposeReceipt("F6", order)

	assert.Equal(t, name[:40], r.Rows[0].Name)
}
