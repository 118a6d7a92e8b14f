package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/akazakov/shoplite-backend/internal/catalog"
	"github.com/akazakov/shoplite-backend/pkg/db/models"
	pkgerrors "github.com/akazakov/shoplite-backend/pkg/errors"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price TEXT NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  manufacturer TEXT NOT NULL DEFAULT '',
  category_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	entries := `
CREATE TABLE IF NOT EXISTS cart_entries (
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  PRIMARY KEY (user_id, product_id)
);`
	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(entries).Error)
	require.NoError(t, db.Exec(categories).Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM cart_entries")
		db.Exec("DELETE FROM products")
	})

	return db
}

func mustCreateCartProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.NewFromFloat(price),
		Stock: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestUpsertEntryReplacesQuantity(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	product := mustCreateCartProduct(t, db, "Walnut Desk", 129.99, 10)

	require.NoError(t, repo.UpsertEntry(ctx, &models.CartEntry{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  2,
	}))
	require.NoError(t, repo.UpsertEntry(ctx, &models.CartEntry{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  5,
	}))

	entry, err := repo.FindEntry(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Quantity)

	entries, err := repo.ListEntries(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Product)
	assert.Equal(t, "Walnut Desk", entries[0].Product.Name)
}

func TestDeleteEntryIsNoopWhenAbsent(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.DeleteEntry(ctx, uuid.New(), uuid.New()))
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func TestUpdateQuantitiesRollsBackBatchOnStockFailure(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, catalog.NewRepository(db), gormTxRunner{db: db})
	require.NoError(t, err)
	ctx := context.Background()

	userID := uuid.New()
	lamp := mustCreateCartProduct(t, db, "Desk Lamp", 39.50, 5)
	desk := mustCreateCartProduct(t, db, "Walnut Desk", 129.99, 2)

	require.NoError(t, repo.UpsertEntry(ctx, &models.CartEntry{UserID: userID, ProductID: lamp.ID, Quantity: 1}))
	require.NoError(t, repo.UpsertEntry(ctx, &models.CartEntry{UserID: userID, ProductID: desk.ID, Quantity: 1}))

	// the first line deletes the lamp, the second exceeds the desk's stock
	_, err = svc.UpdateQuantities(ctx, userID, []QuantityUpdate{
		{ProductID: lamp.ID, Quantity: 0},
		{ProductID: desk.ID, Quantity: 3},
	})
	expectCode(t, err, pkgerrors.CodeOutOfStock)

	entry, err := repo.FindEntry(ctx, userID, lamp.ID)
	require.NoError(t, err, "lamp line must survive the failed batch")
	assert.Equal(t, 1, entry.Quantity)

	entry, err = repo.FindEntry(ctx, userID, desk.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Quantity)
}

func TestDeleteAllEntriesOnlyTouchesOwnCart(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	buyer := uuid.New()
	other := uuid.New()
	product := mustCreateCartProduct(t, db, "Desk Lamp", 39.50, 3)

	require.NoError(t, repo.UpsertEntry(ctx, &models.CartEntry{UserID: buyer, ProductID: product.ID, Quantity: 1}))
	require.NoError(t, repo.UpsertEntry(ctx, &models.CartEntry{UserID: other, ProductID: product.ID, Quantity: 2}))

	require.NoError(t, repo.DeleteAllEntries(ctx, buyer))

	entries, err := repo.ListEntries(ctx, buyer)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = repo.ListEntries(ctx, other)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
