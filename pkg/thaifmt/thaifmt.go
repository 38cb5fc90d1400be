// Package thaifmt renders amounts and timestamps the way Thai point-of-sale
// receipts display them: baht currency text and Buddhist-era dates.
package thaifmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultZone is the display zone used when none is configured.
const DefaultZone = "Asia/Bangkok"

// buddhistEraOffset converts a Gregorian year to the Thai solar calendar.
const buddhistEraOffset = 543

var thaiMonthsShort = [...]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

var numberPrinter = message.NewPrinter(language.Thai)

// ErrInvalidTimestamp is returned by ParseTimestamp for unsupported input.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ErrAmountOutOfRange is returned by ParseAmount for numbers beyond MaxAmount
// or with more than maxExponent digits of scale.
var ErrAmountOutOfRange = errors.New("amount out of range")

// MaxAmount bounds the magnitude of any quantity or price read from a request.
var MaxAmount = decimal.New(1, 15)

// maxExponent bounds the decimal scale accepted from requests.
const maxExponent = 32

// Currency formats amount as Thai baht, e.g. ฿1,250.00.
func Currency(amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	whole, frac, _ := strings.Cut(amount.StringFixed(2), ".")
	return sign + "฿" + groupDigits(whole) + "." + frac
}

func groupDigits(whole string) string {
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		return numberPrinter.Sprintf("%d", n)
	}

	// beyond int64: plain thousands grouping, same separator as the Thai locale
	var b strings.Builder
	lead := len(whole) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(whole[:lead])
	for i := lead; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	return b.String()
}

// Bounded reports whether d is within MaxAmount and the supported scale.
func Bounded(d decimal.Decimal) bool {
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return false
	}
	return d.Abs().LessThanOrEqual(MaxAmount)
}

// ParseAmount parses a numeric string, rejecting values outside Bounded.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, err
	}
	if !Bounded(d) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAmountOutOfRange, strings.TrimSpace(s))
	}
	return d, nil
}

// ToDecimal converts loosely typed JSON values to a decimal, degrading to zero.
// Out-of-range values also degrade to zero.
func ToDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return boundedOrZero(n)
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero
		}
		return boundedOrZero(*n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero
		}
		return boundedOrZero(decimal.NewFromFloat(n))
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return decimal.Zero
		}
		return boundedOrZero(decimal.NewFromFloat32(n))
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		return parseDecimal(n.String())
	case string:
		return parseDecimal(n)
	case bool:
		if n {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

func boundedOrZero(d decimal.Decimal) decimal.Decimal {
	if !Bounded(d) {
		return decimal.Zero
	}
	return d
}

func parseDecimal(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DateTime formats t as "17 ต.ค. 2569 14:30" in loc. A nil t renders now().
func DateTime(t *time.Time, loc *time.Location, now func() time.Time) string {
	var at time.Time
	if t != nil {
		at = *t
	} else {
		at = now()
	}
	if loc != nil {
		at = at.In(loc)
	}
	return fmt.Sprintf("%d %s %d %02d:%02d",
		at.Day(),
		thaiMonthsShort[at.Month()-1],
		at.Year()+buddhistEraOffset,
		at.Hour(),
		at.Minute(),
	)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp accepts ISO-8601 timestamps. Values without an offset are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// LoadZone resolves an IANA zone name, falling back to a fixed UTC+7 zone.
func LoadZone(name string) *time.Location {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}
