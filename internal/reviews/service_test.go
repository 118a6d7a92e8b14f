package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akazakov/shoplite-backend/internal/catalog"
	"github.com/akazakov/shoplite-backend/pkg/db/models"
	pkgerrors "github.com/akazakov/shoplite-backend/pkg/errors"
)

type stubReviewsRepo struct {
	reviews map[uuid.UUID][]models.Review
}

func newStubReviewsRepo() *stubReviewsRepo {
	return &stubReviewsRepo{reviews: make(map[uuid.UUID][]models.Review)}
}

func (s *stubReviewsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubReviewsRepo) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	s.reviews[review.ProductID] = append(s.reviews[review.ProductID], *review)
	return review, nil
}

func (s *stubReviewsRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	return s.reviews[productID], nil
}

func (s *stubReviewsRepo) AverageRating(ctx context.Context, productID uuid.UUID) (*float64, error) {
	rows := s.reviews[productID]
	if len(rows) == 0 {
		return nil, nil
	}
	sum := 0
	for _, row := range rows {
		sum += row.Rating
	}
	avg := float64(sum) / float64(len(rows))
	return &avg, nil
}

type stubProductFinder struct {
	catalog.Repository
	products map[uuid.UUID]*models.Product
}

func (s *stubProductFinder) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func reviewsFixture() (Service, *stubReviewsRepo, *models.Product) {
	product := &models.Product{ID: uuid.New(), Name: "Walnut Desk"}
	repo := newStubReviewsRepo()
	finder := &stubProductFinder{products: map[uuid.UUID]*models.Product{product.ID: product}}
	svc, err := NewService(repo, finder)
	if err != nil {
		panic(err)
	}
	return svc, repo, product
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	domainErr := pkgerrors.As(err)
	if domainErr == nil {
		t.Fatalf("expected domain error with code %s, got %v", code, err)
	}
	if domainErr.Code() != code {
		t.Fatalf("expected code %s, got %s", code, domainErr.Code())
	}
}

func TestAddRejectsOutOfRangeRating(t *testing.T) {
	svc, _, product := reviewsFixture()
	ctx := context.Background()
	userID := uuid.New()

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Add(ctx, Input{ProductID: product.ID, UserID: userID, Rating: rating})
		expectCode(t, err, pkgerrors.CodeInvalidRating)
	}
}

func TestAddAcceptsBoundaryRatings(t *testing.T) {
	svc, repo, product := reviewsFixture()
	ctx := context.Background()

	for _, rating := range []int{1, 5} {
		if _, err := svc.Add(ctx, Input{ProductID: product.ID, UserID: uuid.New(), Rating: rating}); err != nil {
			t.Fatalf("add rating %d: %v", rating, err)
		}
	}
	if len(repo.reviews[product.ID]) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(repo.reviews[product.ID]))
	}
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _, _ := reviewsFixture()

	_, err := svc.Add(context.Background(), Input{ProductID: uuid.New(), UserID: uuid.New(), Rating: 3})
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestAddTrimsComment(t *testing.T) {
	svc, repo, product := reviewsFixture()

	entry, err := svc.Add(context.Background(), Input{
		ProductID: product.ID,
		UserID:    uuid.New(),
		Rating:    4,
		Comment:   "  sturdy desk  ",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if entry.Comment != "sturdy desk" {
		t.Fatalf("comment not trimmed: %q", entry.Comment)
	}
	if len(repo.reviews[product.ID]) != 1 {
		t.Fatal("expected review persisted")
	}
}

func TestListByProductAverageNilWithoutReviews(t *testing.T) {
	svc, _, product := reviewsFixture()

	out, err := svc.ListByProduct(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out.AverageRating != nil {
		t.Fatalf("expected nil average, got %v", *out.AverageRating)
	}
	if len(out.Reviews) != 0 {
		t.Fatalf("expected no reviews, got %d", len(out.Reviews))
	}
}

func TestListByProductCarriesReviewerUsername(t *testing.T) {
	svc, repo, product := reviewsFixture()

	reviewer := &models.User{ID: uuid.New(), Username: "desk_fan"}
	repo.reviews[product.ID] = []models.Review{
		{ID: uuid.New(), ProductID: product.ID, UserID: reviewer.ID, Rating: 5, User: reviewer},
		{ID: uuid.New(), ProductID: product.ID, UserID: uuid.New(), Rating: 3},
	}

	out, err := svc.ListByProduct(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(out.Reviews))
	}
	if out.Reviews[0].Username != "desk_fan" {
		t.Fatalf("expected reviewer username, got %q", out.Reviews[0].Username)
	}
	if out.Reviews[1].Username != "" {
		t.Fatalf("expected empty username for unloaded reviewer, got %q", out.Reviews[1].Username)
	}
}

func TestListByProductComputesAverage(t *testing.T) {
	svc, _, product := reviewsFixture()
	ctx := context.Background()

	for _, rating := range []int{3, 4, 5} {
		if _, err := svc.Add(ctx, Input{ProductID: product.ID, UserID: uuid.New(), Rating: rating}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	out, err := svc.ListByProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out.AverageRating == nil || *out.AverageRating != 4 {
		t.Fatalf("expected average 4, got %v", out.AverageRating)
	}
}
