package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a buyer's rating and comment on a product.
type Review struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Rating     int       `gorm:"column:rating;not null"`
	Comment    string    `gorm:"column:comment;type:text;not null;default:''"`
	ReviewDate time.Time `gorm:"column:review_date;not null;autoCreateTime"`
	User       *User     `gorm:"foreignKey:UserID"`
}
