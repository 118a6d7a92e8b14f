package models

import (
	"time"

	"github.com/google/uuid"
)

// CartEntry persists one product line inside a user's open cart. The pair
// (user_id, product_id) is the primary key, so a product appears at most once.
type CartEntry struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name.
func (CartEntry) TableName() string {
	return "cart_entries"
}
