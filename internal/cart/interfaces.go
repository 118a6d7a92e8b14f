package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akazakov/shoplite-backend/pkg/db/models"
)

// Repository defines persistence operations for cart entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindEntry(ctx context.Context, userID, productID uuid.UUID) (*models.CartEntry, error)
	ListEntries(ctx context.Context, userID uuid.UUID) ([]models.CartEntry, error)
	UpsertEntry(ctx context.Context, entry *models.CartEntry) error
	DeleteEntry(ctx context.Context, userID, productID uuid.UUID) error
	DeleteAllEntries(ctx context.Context, userID uuid.UUID) error
}
