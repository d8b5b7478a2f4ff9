package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sukalov/shitsu/api/controllers"
	"github.com/sukalov/shitsu/api/middleware"
	adminsvc "github.com/sukalov/shitsu/internal/admin"
	"github.com/sukalov/shitsu/internal/cart"
	"github.com/sukalov/shitsu/internal/catalog"
	checkoutsvc "github.com/sukalov/shitsu/internal/checkout"
	"github.com/sukalov/shitsu/internal/media"
	"github.com/sukalov/shitsu/internal/orders"
	"github.com/sukalov/shitsu/pkg/auth/session"
	"github.com/sukalov/shitsu/pkg/config"
	"github.com/sukalov/shitsu/pkg/db"
	"github.com/sukalov/shitsu/pkg/logger"
	"github.com/sukalov/shitsu/pkg/metrics"
	"github.com/sukalov/shitsu/pkg/redis"
)

// Services bundles everything the router wires up.
type Services struct {
	Catalog  catalog.Service
	Cart     cart.Service
	Checkout checkoutsvc.Service
	Orders   orders.Service
	Admin    adminsvc.Service
	Media    media.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	promRegistry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
	)
	setupPolicy := middleware.NewAuthRateLimitPolicy(
		"setup",
		cfg.AuthRateLimit.SetupWindow,
		cfg.AuthRateLimit.SetupIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": dbP,
			"redis":    redisClient,
		}))
	})

	if promRegistry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Get("/getImage", controllers.GetImage(svcs.Media, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Catalog, logg))
			r.Get("/{productID}", controllers.GetProduct(svcs.Catalog, logg))
		})
		r.Get("/series", controllers.ListSeries(svcs.Catalog, logg))
		r.Get("/series/{seriesID}", controllers.GetProductsBySeries(svcs.Catalog, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(svcs.Cart, logg))
			r.Post("/items", controllers.AddCartItem(svcs.Cart, logg))
			r.Delete("/items/{productID}", controllers.RemoveCartItem(svcs.Cart, logg))
			r.Put("/items/{productID}", controllers.SetCartQuantity(svcs.Cart, logg))
			r.Post("/clear", controllers.ClearCart(svcs.Cart, logg))
			r.Put("/open", controllers.SetCartOpen(svcs.Cart, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/compose", controllers.ComposeCheckout(svcs.Checkout, logg))
			r.Post("/custom", controllers.ComposeCustomOrder(svcs.Checkout, logg))
		})

		r.Post("/orders", controllers.CreateOrder(svcs.Orders, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Get("/exists", controllers.AdminExists(svcs.Admin, logg))
			r.Get("/session", controllers.SessionState(svcs.Admin, logg))
			r.With(middleware.AuthRateLimit(setupPolicy, redisClient, logg)).Post("/setup", controllers.SetupAdmin(svcs.Admin, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(svcs.Admin, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(svcs.Catalog, logg))
			r.Patch("/{productID}", controllers.AdminUpdateProduct(svcs.Catalog, logg))
			r.Delete("/{productID}", controllers.AdminDeleteProduct(svcs.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(svcs.Orders, logg))
			r.Get("/counts", controllers.AdminOrderCounts(svcs.Orders, logg))
			r.Get("/{orderID}", controllers.AdminGetOrder(svcs.Orders, logg))
			r.Patch("/{orderID}/status", controllers.AdminUpdateOrderStatus(svcs.Orders, logg))
			r.Delete("/{orderID}", controllers.AdminDeleteOrder(svcs.Orders, logg))
		})

		r.Route("/media", func(r chi.Router) {
			r.Post("/", controllers.AdminUploadMedia(svcs.Media, logg, cfg.Media.MaxUploadMB))
			r.Delete("/{storageID}", controllers.AdminDeleteMedia(svcs.Media, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/change-password", controllers.ChangePassword(svcs.Admin, logg))
			r.Post("/logout", controllers.Logout(svcs.Admin, logg))
		})
	})

	return r
}
