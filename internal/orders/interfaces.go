package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akazakov/shoplite-backend/pkg/db/models"
	"github.com/akazakov/shoplite-backend/pkg/enums"
)

// Repository defines persistence operations for order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	AppendHistory(ctx context.Context, entry *models.OrderHistory) error
	FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	ListHistory(ctx context.Context, orderID uuid.UUID) ([]models.OrderHistory, error)
	ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	// DecrementStock conditionally subtracts qty and reports whether the row
	// had enough stock. Safe under concurrent checkouts.
	DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error)
	IncrementStock(ctx context.Context, productID uuid.UUID, qty int) error
}
