package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akazakov/shoplite-backend/pkg/enums"
)

// Actor identifies who is driving an order operation.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// ItemSummary is one snapshot line returned in order payloads.
type ItemSummary struct {
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// Summary exposes the order header plus its snapshot lines.
type Summary struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Username  string            `json:"username,omitempty"`
	Status    enums.OrderStatus `json:"status"`
	TotalCost decimal.Decimal   `json:"total_cost"`
	OrderDate time.Time         `json:"order_date"`
	Items     []ItemSummary     `json:"items"`
}

// HistoryEntry is one row of the status audit trail.
type HistoryEntry struct {
	Status     enums.OrderStatus `json:"status"`
	ChangeDate time.Time         `json:"change_date"`
}
