package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuantityUpdate sets the desired quantity for one product in the cart.
// A zero quantity removes the line.
type QuantityUpdate struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Line is one product row in the cart view.
type Line struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// View is the assembled cart with per-line subtotals and the running total.
type View struct {
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
}
