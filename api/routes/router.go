package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/candyland-dev/candyland-backend/api/controllers"
	"github.com/candyland-dev/candyland-backend/api/middleware"
	authsvc "github.com/candyland-dev/candyland-backend/internal/auth"
	catalogsvc "github.com/candyland-dev/candyland-backend/internal/catalog"
	directorysvc "github.com/candyland-dev/candyland-backend/internal/directory"
	ecommercesvc "github.com/candyland-dev/candyland-backend/internal/ecommerce"
	filestore "github.com/candyland-dev/candyland-backend/internal/files"
	"github.com/candyland-dev/candyland-backend/internal/invoices"
	mailsvc "github.com/candyland-dev/candyland-backend/internal/mail"
	ordersvc "github.com/candyland-dev/candyland-backend/internal/orders"
	"github.com/candyland-dev/candyland-backend/pkg/config"
	"github.com/candyland-dev/candyland-backend/pkg/db"
	"github.com/candyland-dev/candyland-backend/pkg/logger"
	"github.com/candyland-dev/candyland-backend/pkg/metrics"
	"github.com/candyland-dev/candyland-backend/pkg/redis"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        db.Pinger
	Redis     *redis.Client
	Registry  *prometheus.Registry
	Auth      authsvc.Service
	Catalog   catalogsvc.Service
	Directory directorysvc.Service
	Orders    ordersvc.Service
	Ecommerce ecommercesvc.Service
	Files     *filestore.Store
	Invoices  *invoices.Renderer
	Mailer    *mailsvc.Mailer
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()

	// A nil *prometheus.Registry must not reach the Registerer interface: the
	// typed nil would slip past the guard inside NewHTTPMetrics.
	var httpMetrics *metrics.HTTPMetrics
	if deps.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(deps.Registry)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App.Origins()),
	)

	staffOnly := middleware.StaffAuth(cfg.JWT, deps.Auth, logg)
	clientOnly := middleware.ClientAuth(cfg.JWT, deps.Auth, logg)
	anyRealm := middleware.EitherAuth(cfg.JWT, deps.Auth, logg)

	var limiter middleware.LimiterStore
	if deps.Redis != nil {
		limiter = deps.Redis
	}
	staffLoginLimit := middleware.LoginRateLimit("staff", cfg.AuthRateLimit, limiter, logg)
	clientLoginLimit := middleware.LoginRateLimit("client", cfg.AuthRateLimit, limiter, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(deps.DB, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	if deps.Files != nil {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.Files.Dir())))
		r.Method(http.MethodGet, "/uploads/*", fileServer)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(staffLoginLimit).Post("/login", controllers.StaffLogin(deps.Auth, logg))
		})
		r.Route("/auth-client", func(r chi.Router) {
			r.With(clientLoginLimit).Post("/login", controllers.ClientLogin(deps.Auth, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(deps.Catalog, logg))
			r.Get("/{id}", controllers.GetCategory(deps.Catalog, logg))
			r.Group(func(r chi.Router) {
				r.Use(staffOnly)
				r.Post("/", controllers.CreateCategory(deps.Catalog, logg))
				r.Patch("/{id}", controllers.UpdateCategory(deps.Catalog, logg))
				r.Delete("/{id}", controllers.DeleteCategory(deps.Catalog, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, logg))
			r.Get("/{id}", controllers.GetProduct(deps.Catalog, logg))
			r.Get("/category/{categoryId}", controllers.ProductsByCategory(deps.Catalog, logg))
			r.Group(func(r chi.Router) {
				r.Use(staffOnly)
				r.Post("/", controllers.CreateProduct(deps.Catalog, logg))
				r.Patch("/{id}", controllers.UpdateProduct(deps.Catalog, logg))
				r.Delete("/{id}", controllers.DeleteProduct(deps.Catalog, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(staffOnly)
			r.Post("/", controllers.CreateOrder(deps.Orders, logg))
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Get("/{id}", controllers.GetOrder(deps.Orders, logg))
			r.Patch("/{id}", controllers.UpdateOrder(deps.Orders, logg))
			r.Delete("/{id}", controllers.DeleteOrder(deps.Orders, logg))
		})

		r.Route("/ecommerce", func(r chi.Router) {
			r.With(clientOnly).Post("/", controllers.CreateEcommerceOrder(deps.Ecommerce, logg))
			r.With(clientOnly).Get("/my-orders", controllers.MyEcommerceOrders(deps.Ecommerce, logg))
			r.With(staffOnly).Get("/", controllers.ListEcommerceOrders(deps.Ecommerce, logg))
			r.With(anyRealm).Get("/{id}", controllers.GetEcommerceOrder(deps.Ecommerce, logg))
			r.With(anyRealm).Patch("/{id}", controllers.UpdateEcommerceOrder(deps.Ecommerce, logg))
			r.With(staffOnly).Delete("/{id}", controllers.DeleteEcommerceOrder(deps.Ecommerce, logg))
		})

		r.Route("/clients", func(r chi.Router) {
			r.Post("/", controllers.RegisterClient(deps.Directory, logg))
			r.Group(func(r chi.Router) {
				r.Use(staffOnly)
				r.Get("/", controllers.ListClients(deps.Directory, logg))
				r.Get("/{id}", controllers.GetClient(deps.Directory, logg))
				r.Patch("/{id}", controllers.UpdateClient(deps.Directory, logg))
				r.Delete("/{id}", controllers.DeleteClient(deps.Directory, logg))
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(staffOnly)
			r.Post("/", controllers.CreateUser(deps.Directory, logg))
			r.Get("/", controllers.ListUsers(deps.Directory, logg))
			r.Get("/{id}", controllers.GetUser(deps.Directory, logg))
			r.Patch("/{id}", controllers.UpdateUser(deps.Directory, logg))
			r.Delete("/{id}", controllers.DeleteUser(deps.Directory, logg))
		})

		r.Route("/roles", func(r chi.Router) {
			r.Use(staffOnly)
			r.Post("/", controllers.CreateRole(deps.Directory, logg))
			r.Get("/", controllers.ListRoles(deps.Directory, logg))
			r.Get("/{id}", controllers.GetRole(deps.Directory, logg))
			r.Patch("/{id}", controllers.UpdateRole(deps.Directory, logg))
			r.Delete("/{id}", controllers.DeleteRole(deps.Directory, logg))
		})

		r.Route("/files", func(r chi.Router) {
			r.Use(staffOnly)
			r.Post("/upload", controllers.UploadFile(deps.Files, logg))
			r.Post("/upload-multiple", controllers.UploadFiles(deps.Files, logg))
		})

		r.With(staffOnly).Get("/report-pdf/factura/{id}",
			controllers.OrderInvoicePDF(deps.Orders, deps.Invoices, logg))
		r.With(staffOnly).Get("/report-ecommerce-pdf/factura/{id}",
			controllers.EcommerceInvoicePDF(deps.Ecommerce, deps.Invoices, logg))

		r.Route("/email", func(r chi.Router) {
			r.Post("/contact", controllers.ContactEmail(deps.Mailer, cfg.SMTP.ContactEmail, logg))
			r.Post("/test", controllers.TestEmail(deps.Mailer, logg))
		})
	})

	return r
}
