package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hamzasiddiqui/bazaarline-backend/api/controllers"
	"github.com/hamzasiddiqui/bazaarline-backend/api/middleware"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/audit"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/auth"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/categories"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/checkout"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/dashboard"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/orders"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/products"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/users"
	pkgauth "github.com/hamzasiddiqui/bazaarline-backend/pkg/auth"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/config"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/metrics"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redis.Client
	Tokens   *pkgauth.TokenManager
	Registry *prometheus.Registry

	AuthService       auth.Service
	CheckoutService   checkout.Service
	ProductsService   products.Service
	CategoriesService categories.Service
	OrdersService     orders.Service
	UsersService      users.Service
	DashboardService  dashboard.Service
	UsersRepo         users.Repository
	AuditRepo         audit.Repository
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.ClientIP(),
	)
	if deps.Registry != nil {
		r.Use(middleware.Metrics(metrics.NewHTTPMetrics(deps.Registry)))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	health := controllers.NewHealthController(deps.DB, deps.Redis)
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", health.Live)
		r.Get("/ready", health.Ready)
	})

	storefront := controllers.NewStorefrontController(deps.ProductsService, deps.CategoriesService, logg)
	checkoutCtl := controllers.NewCheckoutController(deps.CheckoutService, logg)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", storefront.ListProducts)
		r.Get("/categories", storefront.ListCategories)
		r.Post("/checkout", checkoutCtl.Checkout)
	})

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	authCtl := controllers.NewAuthController(deps.AuthService, logg)
	r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
		Post("/api/admin/auth/login", authCtl.Login)

	dashboardCtl := controllers.NewDashboardController(deps.DashboardService, logg)
	ordersCtl := controllers.NewAdminOrdersController(deps.OrdersService, logg)
	usersCtl := controllers.NewAdminUsersController(deps.UsersService, logg)
	productsCtl := controllers.NewAdminProductsController(deps.ProductsService, logg)
	categoriesCtl := controllers.NewAdminCategoriesController(deps.CategoriesService, logg)
	auditCtl := controllers.NewAdminAuditController(deps.AuditRepo, logg)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(middleware.AdminAuthOptions{
			Tokens:           deps.Tokens,
			Users:            deps.UsersRepo,
			Logger:           logg,
			AllowLocalBypass: cfg.App.IsDev(),
		}))

		r.Get("/dashboard/stats", dashboardCtl.Stats)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersCtl.List)
			r.Get("/{id}", ordersCtl.Get)
			r.Put("/{id}", ordersCtl.Update)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", usersCtl.List)
			r.Get("/{id}", usersCtl.Get)
			r.Put("/{id}", usersCtl.Update)
			r.With(middleware.RequireSuperAdmin(logg)).Put("/{id}/role", usersCtl.UpdateRole)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productsCtl.List)
			r.Post("/", productsCtl.Create)
			r.Get("/{id}", productsCtl.Get)
			r.Put("/{id}", productsCtl.Update)
			r.Delete("/{id}", productsCtl.Delete)
			r.Post("/{id}/publish", productsCtl.Publish)
			r.Post("/{id}/unpublish", productsCtl.Unpublish)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoriesCtl.List)
			r.Post("/", categoriesCtl.Create)
			r.Get("/{id}", categoriesCtl.Get)
			r.Put("/{id}", categoriesCtl.Update)
			r.Post("/{id}/publish", categoriesCtl.Publish)
			r.Post("/{id}/unpublish", categoriesCtl.Unpublish)
		})

		r.Get("/audit-logs", auditCtl.List)
	})

	return r
}
