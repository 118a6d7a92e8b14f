package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akazakov/shoplite-backend/pkg/enums"
)

// Order is the purchase header created at checkout.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Status    enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	TotalCost decimal.Decimal   `gorm:"column:total_cost;type:numeric(12,2);not null"`
	OrderDate time.Time         `gorm:"column:order_date;not null;autoCreateTime"`
	User      *User             `gorm:"foreignKey:UserID"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History   []OrderHistory    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
