package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. The catalog is externally supplied and
// immutable for the process lifetime.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Alt         string          `json:"alt"`
}

// LineItem is a cart entry projected with its product's display data for
// summary and checkout views.
type LineItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// FormatPrice renders an amount as a USD display string, e.g. "$30.00".
func FormatPrice(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
