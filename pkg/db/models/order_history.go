package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/akazakov/shoplite-backend/pkg/enums"
)

// OrderHistory is one append-only entry in an order's status audit trail.
type OrderHistory struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index"`
	Status     enums.OrderStatus `gorm:"column:status;type:order_status;not null"`
	ChangeDate time.Time         `gorm:"column:change_date;not null;autoCreateTime"`
}

// TableName keeps the singular-noun audit table name.
func (OrderHistory) TableName() string {
	return "order_history"
}
