package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akazakov/shoplite-backend/api/controllers"
	"github.com/akazakov/shoplite-backend/api/middleware"
	authsvc "github.com/akazakov/shoplite-backend/internal/auth"
	"github.com/akazakov/shoplite-backend/internal/cart"
	"github.com/akazakov/shoplite-backend/internal/catalog"
	"github.com/akazakov/shoplite-backend/internal/orders"
	"github.com/akazakov/shoplite-backend/internal/reviews"
	"github.com/akazakov/shoplite-backend/pkg/auth/session"
	"github.com/akazakov/shoplite-backend/pkg/config"
	"github.com/akazakov/shoplite-backend/pkg/db"
	"github.com/akazakov/shoplite-backend/pkg/enums"
	"github.com/akazakov/shoplite-backend/pkg/logger"
	"github.com/akazakov/shoplite-backend/pkg/redis"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Metrics  prometheus.Gatherer

	Auth    authsvc.Service
	Catalog catalog.Service
	Cart    cart.Service
	Orders  orders.Service
	Reviews reviews.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, deps.Redis, logg),
			middleware.Idempotency(deps.Redis, logg),
		).Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
	})

	// browsing the catalog needs no credentials
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductSearch(deps.Catalog, logg))
		r.Get("/{productID}", controllers.ProductGet(deps.Catalog, logg))
		r.Get("/{productID}/reviews", controllers.ReviewList(deps.Reviews, logg))
	})
	r.Get("/api/v1/categories", controllers.CategoryList(deps.Catalog, logg))
	r.Get("/api/v1/manufacturers", controllers.ManufacturerList(deps.Catalog, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Post("/auth/logout", controllers.AuthLogout(deps.Auth, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Cart, logg))
			r.Put("/", controllers.CartReplace(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(deps.Cart, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Orders, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/recent", controllers.OrdersRecent(deps.Orders, logg))
			r.Get("/{orderID}", controllers.OrderGet(deps.Orders, logg))
			r.Get("/{orderID}/history", controllers.OrderHistory(deps.Orders, logg))
			r.Post("/{orderID}/transition", controllers.OrderTransition(deps.Orders, logg))
		})

		r.Post("/products/{productID}/reviews", controllers.ReviewCreate(deps.Reviews, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(enums.RoleAdmin.String(), logg))

		r.Get("/ping", controllers.AdminPing())

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.ProductCreate(deps.Catalog, logg))
			r.Patch("/{productID}", controllers.ProductUpdate(deps.Catalog, logg))
			r.Delete("/{productID}", controllers.ProductDelete(deps.Catalog, logg))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CategoryCreate(deps.Catalog, logg))
			r.Patch("/{categoryID}", controllers.CategoryUpdate(deps.Catalog, logg))
			r.Delete("/{categoryID}", controllers.CategoryDelete(deps.Catalog, logg))
		})
		r.Get("/orders", controllers.AdminOrdersList(deps.Orders, logg))
	})

	return r
}
