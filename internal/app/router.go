package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ramatoys/storefront/internal/admin"
	"github.com/ramatoys/storefront/internal/auth"
	cataloghttp "github.com/ramatoys/storefront/internal/catalog/http"
	"github.com/ramatoys/storefront/internal/observability"
	"github.com/ramatoys/storefront/internal/shared"
	"github.com/ramatoys/storefront/jobs"
	"github.com/ramatoys/storefront/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	CatalogHandler *cataloghttp.Handler
	AuthHandler    *auth.Handler
	AdminHandler   *admin.Handler
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics
	RateLimit      int
}

// NewRouter constructs the storefront chi.Router.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.RequestID, chimw.Recoverer, chimw.Logger)
	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	r.Group(func(r chi.Router) {
		for _, mw := range MiddlewareStack(MiddlewareConfig{
			Logger:         params.Logger,
			Config:         params.Config,
			SessionManager: params.SessionManager,
			CSRFManager:    params.CSRFManager,
			RateLimit:      params.RateLimit,
		}) {
			r.Use(mw)
		}

		params.CatalogHandler.MountRoutes(r)
		r.Route("/admin", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				http.Redirect(w, req, auth.DashboardPath, http.StatusSeeOther)
			})
			params.AuthHandler.MountRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				params.AdminHandler.MountRoutes(r)
			})
		})
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}

// staticCacheHandler caches embedded assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
