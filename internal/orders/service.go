package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/akazakov/shoplite-backend/internal/cart"
	"github.com/akazakov/shoplite-backend/pkg/db/models"
	"github.com/akazakov/shoplite-backend/pkg/enums"
	pkgerrors "github.com/akazakov/shoplite-backend/pkg/errors"
	"github.com/akazakov/shoplite-backend/pkg/metrics"
)

// RecentOrderLimit caps the "my recent orders" listing.
const RecentOrderLimit = 5

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the order lifecycle operations exposed to the API layer.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*Summary, error)
	Transition(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus, actor Actor) (*Summary, error)
	Get(ctx context.Context, orderID uuid.UUID, actor Actor) (*Summary, error)
	History(ctx context.Context, orderID uuid.UUID, actor Actor) ([]HistoryEntry, error)
	ListRecent(ctx context.Context, userID uuid.UUID) ([]Summary, error)
	ListAll(ctx context.Context) ([]Summary, error)
}

type service struct {
	repo     Repository
	cartRepo cart.Repository
	tx       txRunner
	metrics  *metrics.OrderMetrics
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, cartRepo cart.Repository, tx txRunner, m *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:     repo,
		cartRepo: cartRepo,
		tx:       tx,
		metrics:  m,
	}, nil
}

// Checkout converts the user's cart into a pending order. The whole flow runs
// in one transaction: stock is decremented with a guarded update per line, the
// order and its snapshot items are created, the opening history entry is
// appended, and the cart is cleared. Any failure rolls everything back.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	started := time.Now()
	var summary *Summary

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		entries, err := cartRepo.ListEntries(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart entries")
		}
		if len(entries) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(entries))
		for _, entry := range entries {
			if entry.Product == nil {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product no longer exists")
			}

			ok, err := repo.DecrementStock(ctx, entry.ProductID, entry.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeOutOfStock, "insufficient stock").WithDetails(map[string]any{
					"product_id": entry.ProductID,
					"requested":  entry.Quantity,
					"available":  entry.Product.Stock,
				})
			}

			productID := entry.ProductID
			items = append(items, models.OrderItem{
				ProductID:   &productID,
				ProductName: entry.Product.Name,
				Price:       entry.Product.Price,
				Quantity:    entry.Quantity,
			})
			total = total.Add(entry.Product.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
		}

		order, err := repo.CreateOrder(ctx, &models.Order{
			UserID:    userID,
			Status:    enums.OrderStatusPending,
			TotalCost: total,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}

		if err := repo.AppendHistory(ctx, &models.OrderHistory{
			OrderID: order.ID,
			Status:  enums.OrderStatusPending,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append order history")
		}

		if err := cartRepo.DeleteAllEntries(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}

		order.Items = items
		summary = toSummary(order)
		return nil
	})

	s.metrics.ObserveCheckout(checkoutOutcome(err), time.Since(started))
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Transition moves the order to the target status. Regular users may only
// cancel their own orders; every other transition is reserved for admins.
// Cancelling restores the stock the checkout took.
func (s *service) Transition(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus, actor Actor) (*Summary, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", target))
	}

	var summary *Summary
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		if !actor.IsAdmin {
			if order.UserID != actor.UserID {
				return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to user")
			}
			if target != enums.OrderStatusCancelled {
				return pkgerrors.New(pkgerrors.CodeForbidden, "only cancellation is allowed")
			}
		}

		if !order.Status.CanTransitionTo(target) {
			return pkgerrors.New(pkgerrors.CodeIllegalTransition, "illegal status transition").WithDetails(map[string]any{
				"from": order.Status,
				"to":   target,
			})
		}

		if err := repo.UpdateOrderStatus(ctx, order.ID, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if err := repo.AppendHistory(ctx, &models.OrderHistory{
			OrderID: order.ID,
			Status:  target,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append order history")
		}

		if target == enums.OrderStatusCancelled {
			for _, item := range order.Items {
				if item.ProductID == nil {
					continue
				}
				if err := repo.IncrementStock(ctx, *item.ProductID, item.Quantity); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore stock")
				}
			}
		}

		order.Status = target
		summary = toSummary(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition(target.String())
	return summary, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID, actor Actor) (*Summary, error) {
	order, err := s.loadOwned(ctx, orderID, actor)
	if err != nil {
		return nil, err
	}
	return toSummary(order), nil
}

func (s *service) History(ctx context.Context, orderID uuid.UUID, actor Actor) ([]HistoryEntry, error) {
	if _, err := s.loadOwned(ctx, orderID, actor); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListHistory(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order history")
	}
	entries := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, HistoryEntry{Status: row.Status, ChangeDate: row.ChangeDate})
	}
	return entries, nil
}

func (s *service) ListRecent(ctx context.Context, userID uuid.UUID) ([]Summary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	rows, err := s.repo.ListRecentByUser(ctx, userID, RecentOrderLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent orders")
	}
	return toSummaries(rows), nil
}

func (s *service) ListAll(ctx context.Context) ([]Summary, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return toSummaries(rows), nil
}

func (s *service) loadOwned(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !actor.IsAdmin && order.UserID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to user")
	}
	return order, nil
}

func toSummary(order *models.Order) *Summary {
	items := make([]ItemSummary, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemSummary{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	summary := &Summary{
		ID:        order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		TotalCost: order.TotalCost,
		OrderDate: order.OrderDate,
		Items:     items,
	}
	if order.User != nil {
		summary.Username = order.User.Username
	}
	return summary
}

func toSummaries(orders []models.Order) []Summary {
	out := make([]Summary, 0, len(orders))
	for i := range orders {
		out = append(out, *toSummary(&orders[i]))
	}
	return out
}

func checkoutOutcome(err error) string {
	if err == nil {
		return "success"
	}
	if domainErr := pkgerrors.As(err); domainErr != nil {
		switch domainErr.Code() {
		case pkgerrors.CodeOutOfStock:
			return "out_of_stock"
		case pkgerrors.CodeEmptyCart:
			return "empty_cart"
		}
	}
	return "error"
}
