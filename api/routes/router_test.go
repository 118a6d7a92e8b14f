package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/akazakov/shoplite-backend/internal/auth"
	"github.com/akazakov/shoplite-backend/internal/cart"
	"github.com/akazakov/shoplite-backend/internal/catalog"
	"github.com/akazakov/shoplite-backend/internal/orders"
	"github.com/akazakov/shoplite-backend/internal/reviews"
	pkgAuth "github.com/akazakov/shoplite-backend/pkg/auth"
	"github.com/akazakov/shoplite-backend/pkg/auth/session"
	"github.com/akazakov/shoplite-backend/pkg/config"
	"github.com/akazakov/shoplite-backend/pkg/db/models"
	"github.com/akazakov/shoplite-backend/pkg/enums"
	"github.com/akazakov/shoplite-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.AuthResponse, error) {
	return &authsvc.AuthResponse{}, nil
}

func (stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.AuthResponse, error) {
	return &authsvc.AuthResponse{}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req authsvc.RefreshRequest) (*authsvc.TokenPair, error) {
	return &authsvc.TokenPair{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) Search(ctx context.Context, filters catalog.SearchFilters) ([]models.Product, error) {
	return nil, nil
}

func (stubCatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return &models.Product{ID: id}, nil
}

func (stubCatalogService) Create(ctx context.Context, input catalog.ProductInput) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubCatalogService) Update(ctx context.Context, id uuid.UUID, update catalog.ProductUpdate) (*models.Product, error) {
	return &models.Product{ID: id}, nil
}

func (stubCatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubCatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	return &models.Category{Name: name}, nil
}

func (stubCatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*models.Category, error) {
	return &models.Category{ID: id, Name: name}, nil
}

func (stubCatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubCatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return nil, nil
}

func (stubCatalogService) ListManufacturers(ctx context.Context) ([]string, error) {
	return nil, nil
}

type stubCartService struct{}

func (stubCartService) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*cart.View, error) {
	return &cart.View{}, nil
}

func (stubCartService) UpdateQuantities(ctx context.Context, userID uuid.UUID, updates []cart.QuantityUpdate) (*cart.View, error) {
	return &cart.View{}, nil
}

func (stubCartService) Remove(ctx context.Context, userID, productID uuid.UUID) (*cart.View, error) {
	return &cart.View{}, nil
}

func (stubCartService) Get(ctx context.Context, userID uuid.UUID) (*cart.View, error) {
	return &cart.View{}, nil
}

func (stubCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return nil
}

type stubOrdersService struct{}

func (stubOrdersService) Checkout(ctx context.Context, userID uuid.UUID) (*orders.Summary, error) {
	return &orders.Summary{}, nil
}

func (stubOrdersService) Transition(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus, actor orders.Actor) (*orders.Summary, error) {
	return &orders.Summary{}, nil
}

func (stubOrdersService) Get(ctx context.Context, orderID uuid.UUID, actor orders.Actor) (*orders.Summary, error) {
	return &orders.Summary{}, nil
}

func (stubOrdersService) History(ctx context.Context, orderID uuid.UUID, actor orders.Actor) ([]orders.HistoryEntry, error) {
	return nil, nil
}

func (stubOrdersService) ListRecent(ctx context.Context, userID uuid.UUID) ([]orders.Summary, error) {
	return nil, nil
}

func (stubOrdersService) ListAll(ctx context.Context) ([]orders.Summary, error) {
	return nil, nil
}

type stubReviewsService struct{}

func (stubReviewsService) Add(ctx context.Context, input reviews.Input) (*reviews.Entry, error) {
	return &reviews.Entry{}, nil
}

func (stubReviewsService) ListByProduct(ctx context.Context, productID uuid.UUID) (*reviews.ProductReviews, error) {
	return &reviews.ProductReviews{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:   cfg,
		Logger:   logg,
		DB:       stubPinger{},
		Sessions: stubSessionChecker{},
		Auth:     stubAuthService{},
		Catalog:  stubCatalogService{},
		Cart:     stubCartService{},
		Orders:   stubOrdersService{},
		Reviews:  stubReviewsService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.RoleName) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "user@example.com",
		Roles:  []string{role.String()},
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicPingNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/public/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProductBrowsingNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?q=widget", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for private ping got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/ping", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/ping", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestOrdersRequireAuth(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/recent", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
