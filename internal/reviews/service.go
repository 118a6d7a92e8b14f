package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akazakov/shoplite-backend/internal/catalog"
	"github.com/akazakov/shoplite-backend/pkg/db/models"
	pkgerrors "github.com/akazakov/shoplite-backend/pkg/errors"
)

// Input carries the fields required to add a review.
type Input struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string
}

// Entry is one review row returned in the product listing.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewDate time.Time `json:"review_date"`
}

// ProductReviews bundles the reviews with the average rating. AverageRating
// is null when the product has no reviews yet.
type ProductReviews struct {
	Reviews       []Entry  `json:"reviews"`
	AverageRating *float64 `json:"average_rating"`
}

// Service defines the review operations exposed to the API layer.
type Service interface {
	Add(ctx context.Context, input Input) (*Entry, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) (*ProductReviews, error)
}

type service struct {
	repo    Repository
	catalog catalog.Repository
}

// NewService builds a reviews service with the required dependencies.
func NewService(repo Repository, catalogRepo catalog.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, catalog: catalogRepo}, nil
}

func (s *service) Add(ctx context.Context, input Input) (*Entry, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRating, "rating must be between 1 and 5").WithDetails(map[string]any{
			"rating": input.Rating,
		})
	}

	if _, err := s.catalog.FindProduct(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	review, err := s.repo.CreateReview(ctx, &models.Review{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}

	return toEntry(review), nil
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) (*ProductReviews, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	if _, err := s.catalog.FindProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	avg, err := s.repo.AverageRating(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "average rating")
	}

	out := &ProductReviews{Reviews: make([]Entry, 0, len(rows)), AverageRating: avg}
	for i := range rows {
		out.Reviews = append(out.Reviews, *toEntry(&rows[i]))
	}
	return out, nil
}

func toEntry(review *models.Review) *Entry {
	entry := &Entry{
		ID:         review.ID,
		UserID:     review.UserID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		ReviewDate: review.ReviewDate,
	}
	if review.User != nil {
		entry.Username = review.User.Username
	}
	return entry
}
