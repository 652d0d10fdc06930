package enums

import (
	"fmt"
	"strings"
)

// StockStatus is the availability of one medicine at one store.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

var validStockStatuses = []StockStatus{
	StockStatusInStock,
	StockStatusLowStock,
	StockStatusOutOfStock,
}

var stockStatusLabels = map[StockStatus]string{
	StockStatusInStock:    "In Stock",
	StockStatusLowStock:   "Low Stock",
	StockStatusOutOfStock: "Out of Stock",
}

// StockStatuses returns every known status in display order.
func StockStatuses() []StockStatus {
	return append([]StockStatus(nil), validStockStatuses...)
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// Label returns the user-facing text for the status.
func (s StockStatus) Label() string {
	if label, ok := stockStatusLabels[s]; ok {
		return label
	}
	return "Unknown"
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// UnmarshalText accepts either the canonical code or the display label.
func (s *StockStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseStockStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStockStatus converts raw input into a StockStatus. Codes and display
// labels are both accepted, ignoring case and surrounding whitespace.
func ParseStockStatus(value string) (StockStatus, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validStockStatuses {
		if strings.EqualFold(string(candidate), trimmed) || strings.EqualFold(candidate.Label(), trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}
