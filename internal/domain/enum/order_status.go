package enum

import (
	"database/sql/driver"
	"fmt"
)

// OrderStatus represents the status of a persisted order
type OrderStatus string

const (
	OrderStatusPaid OrderStatus = "PAID"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = ""
	case string:
		*s = OrderStatus(v)
	case []byte:
		*s = OrderStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}
	return nil
}
