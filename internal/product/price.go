package product

import "strings"

// NotAvailable stands in for a missing per-store price.
const NotAvailable = "N/A"

// FormatPrice renders numeric values with two decimals and passes anything
// else through unchanged.
func FormatPrice(v FlexString) string {
	if d, ok := v.Decimal(); ok {
		return d.StringFixed(2)
	}
	return v.String()
}

// FormatStorePrices joins store listings as "store: price".
func FormatStorePrices(stores []Store) string {
	if len(stores) == 0 {
		return ""
	}
	parts := make([]string, len(stores))
	for i, s := range stores {
		price := s.Price
		if price == "" {
			price = NotAvailable
		}
		parts[i] = s.Name + ": " + price
	}
	return strings.Join(parts, ", ")
}

// FromPrice renders "A partir de R$ <price>".
func FromPrice(price string) string {
	if price == "" {
		price = NotAvailable
	}
	return "A partir de R$ " + price
}
