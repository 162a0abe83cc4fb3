package common

import (
	"fmt"
)

// FormatPrice renders a price with two decimals for display.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f €", price)
}
