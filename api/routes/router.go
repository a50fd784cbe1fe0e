package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jordanvasquez/threadline-backend/api/controllers"
	"github.com/jordanvasquez/threadline-backend/api/middleware"
	"github.com/jordanvasquez/threadline-backend/internal/auth"
	"github.com/jordanvasquez/threadline-backend/internal/catalog"
	"github.com/jordanvasquez/threadline-backend/internal/wishlist"
	"github.com/jordanvasquez/threadline-backend/pkg/auth/session"
	"github.com/jordanvasquez/threadline-backend/pkg/config"
	"github.com/jordanvasquez/threadline-backend/pkg/logger"
	"github.com/jordanvasquez/threadline-backend/pkg/metrics"
)

// RouterParams carries everything the HTTP surface needs. Health pingers are
// optional; nil entries are skipped by the readiness check.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
	DBPinger       controllers.Pinger
	RedisPinger    controllers.Pinger
	Sessions       session.AccessSessionChecker

	AuthService     auth.Service
	CatalogService  catalog.Service
	WishlistService wishlist.Service
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(params.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, map[string]controllers.Pinger{
			"database": params.DBPinger,
			"redis":    params.RedisPinger,
		}))
	})

	metricsHandler := params.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	// Public and authenticated endpoints share the /api/auth and
	// /api/products prefixes, so routes are registered with full paths on
	// inline groups rather than mounted subrouters.
	r.Group(func(r chi.Router) {
		r.Post("/api/auth/register", controllers.Register(params.AuthService, logg))
		r.Post("/api/auth/login", controllers.Login(params.AuthService, logg))
		r.Get("/api/products/search", controllers.SearchProducts(params.CatalogService, logg))
		r.Get("/api/products/{productId}", controllers.GetProductDetail(params.CatalogService, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, params.Sessions, logg))

		r.Post("/api/auth/logout", controllers.Logout(params.AuthService, logg))
		r.Get("/api/auth/me", controllers.Me(params.AuthService, logg))

		r.Post("/api/products/{productId}/stock", controllers.RecordStockMutation(params.CatalogService, logg))

		r.Get("/api/wishlist", controllers.GetWishlist(params.WishlistService, logg))
		r.Delete("/api/wishlist", controllers.ClearWishlist(params.WishlistService, logg))
		r.Post("/api/wishlist/{productId}", controllers.AddToWishlist(params.WishlistService, logg))
		r.Delete("/api/wishlist/{productId}", controllers.RemoveFromWishlist(params.WishlistService, logg))
	})

	return r
}
