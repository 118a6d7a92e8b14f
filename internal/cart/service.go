package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/akazakov/shoplite-backend/internal/catalog"
	"github.com/akazakov/shoplite-backend/pkg/db/models"
	pkgerrors "github.com/akazakov/shoplite-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the cart operations exposed to the API layer.
type Service interface {
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error)
	UpdateQuantities(ctx context.Context, userID uuid.UUID, updates []QuantityUpdate) (*View, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (*View, error)
	Get(ctx context.Context, userID uuid.UUID) (*View, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo    Repository
	catalog catalog.Repository
	tx      txRunner
}

// NewService builds a cart service with the required dependencies.
func NewService(repo Repository, catalogRepo catalog.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, catalog: catalogRepo, tx: tx}, nil
}

func (s *service) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.loadProduct(ctx, s.catalog, productID)
	if err != nil {
		return nil, err
	}

	desired := quantity
	if existing, err := s.repo.FindEntry(ctx, userID, productID); err == nil {
		desired += existing.Quantity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart entry")
	}

	if desired > product.Stock {
		return nil, outOfStock(product, desired)
	}

	entry := &models.CartEntry{
		UserID:    userID,
		ProductID: productID,
		Quantity:  desired,
	}
	if err := s.repo.UpsertEntry(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert cart entry")
	}

	return s.Get(ctx, userID)
}

func (s *service) UpdateQuantities(ctx context.Context, userID uuid.UUID, updates []QuantityUpdate) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one quantity update required")
	}

	for _, update := range updates {
		if update.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
		}
		if update.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
	}

	// the whole batch commits or none of it does
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		catalogRepo := s.catalog.WithTx(tx)

		for _, update := range updates {
			if update.Quantity == 0 {
				if err := repo.DeleteEntry(ctx, userID, update.ProductID); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart entry")
				}
				continue
			}

			product, err := s.loadProduct(ctx, catalogRepo, update.ProductID)
			if err != nil {
				return err
			}
			if update.Quantity > product.Stock {
				return outOfStock(product, update.Quantity)
			}

			entry := &models.CartEntry{
				UserID:    userID,
				ProductID: update.ProductID,
				Quantity:  update.Quantity,
			}
			if err := repo.UpsertEntry(ctx, entry); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert cart entry")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID)
}

// Remove deletes the product from the cart. Removing an absent product is a no-op.
func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.repo.DeleteEntry(ctx, userID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart entry")
	}
	return s.Get(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart entries")
	}

	view := &View{Lines: make([]Line, 0, len(entries)), Total: decimal.Zero}
	for _, entry := range entries {
		if entry.Product == nil {
			continue
		}
		subtotal := entry.Product.Price.Mul(decimal.NewFromInt(int64(entry.Quantity)))
		view.Lines = append(view.Lines, Line{
			ProductID:   entry.ProductID,
			ProductName: entry.Product.Name,
			UnitPrice:   entry.Product.Price,
			Quantity:    entry.Quantity,
			Subtotal:    subtotal,
		})
		view.Total = view.Total.Add(subtotal)
	}
	return view, nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := s.repo.DeleteAllEntries(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) loadProduct(ctx context.Context, catalogRepo catalog.Repository, productID uuid.UUID) (*models.Product, error) {
	product, err := catalogRepo.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func outOfStock(product *models.Product, requested int) error {
	return pkgerrors.New(pkgerrors.CodeOutOfStock, "insufficient stock").WithDetails(map[string]any{
		"product_id": product.ID,
		"requested":  requested,
		"available":  product.Stock,
	})
}
