package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/ilkin0/mimedemo/internal/api/handlers"
	"github.com/ilkin0/mimedemo/internal/artifact"
	"github.com/ilkin0/mimedemo/internal/config"
	"github.com/ilkin0/mimedemo/internal/logger"
	"github.com/ilkin0/mimedemo/internal/metrics"
	"github.com/ilkin0/mimedemo/internal/middleware"
	"github.com/ilkin0/mimedemo/internal/repository"
	"github.com/ilkin0/mimedemo/internal/service"
	"github.com/ilkin0/mimedemo/internal/storage"
	"github.com/ilkin0/mimedemo/internal/tracing"
	"github.com/ilkin0/mimedemo/internal/utils"
)

// Route is one registered endpoint. The same table feeds the router and the
// endpoint catalog.
type Route struct {
	Method      string
	Path        string
	Category    string
	Description string
	// MimeType is the documented Content-Type of a successful response, if
	// fixed.
	MimeType    string
	Handler     http.HandlerFunc
	Middlewares []func(http.Handler) http.Handler
}

type Dependencies struct {
	Config  *config.Config
	Uploads *service.UploadService
	Storage storage.Storage
	Records repository.UploadRepository
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Table returns every route in catalog order.
func Table(d Dependencies) []Route {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	cfg := d.Config

	uploadHandler := handlers.NewUploadHandler(d.Uploads, cfg.MaxUploadBytes, now)
	uploadsHandler := handlers.NewUploadsHandler(d.Storage, d.Records)
	demoHandler := handlers.NewDemoHandler(cfg.MaxUploadBytes, cfg.MultipartMemory, now)
	uploadLimit := middleware.UploadLimiter(cfg.RateLimit)

	table := make([]Route, 0, len(artifact.Registry)+9)
	for _, e := range artifact.Registry {
		table = append(table, Route{
			Method:      http.MethodGet,
			Path:        e.Path(),
			Category:    e.Category(),
			Description: e.Description,
			MimeType:    e.MediaType,
			Handler:     handlers.Artifact(e, now),
		})
	}

	table = append(table,
		Route{
			Method:      http.MethodPost,
			Path:        "/api/upload/single",
			Category:    "upload",
			Description: "Upload one file (form field \"file\"); type is detected from content",
			MimeType:    "application/json",
			Handler:     uploadHandler.UploadSingle,
			Middlewares: []func(http.Handler) http.Handler{uploadLimit},
		},
		Route{
			Method:      http.MethodPost,
			Path:        "/api/upload/multiple",
			Category:    "upload",
			Description: "Upload several files (form field \"files\") with per-file results",
			MimeType:    "application/json",
			Handler:     uploadHandler.UploadMultiple,
			Middlewares: []func(http.Handler) http.Handler{uploadLimit},
		},
		Route{
			Method:      http.MethodPost,
			Path:        "/api/multipart/form-data",
			Category:    "multipart",
			Description: "Echo form fields and declared versus detected file types",
			MimeType:    "application/json",
			Handler:     demoHandler.FormData,
		},
		Route{
			Method:      http.MethodPost,
			Path:        "/api/multipart/multiple",
			Category:    "multipart",
			Description: "Echo several file parts with declared versus detected types; nothing is stored",
			MimeType:    "application/json",
			Handler:     demoHandler.MultipleFiles,
		},
		Route{
			Method:      http.MethodGet,
			Path:        "/api/headers-demo",
			Category:    "headers",
			Description: "Custom response headers exposed through CORS",
			MimeType:    "application/json",
			Handler:     demoHandler.HeadersDemo,
		},
		Route{
			Method:      http.MethodGet,
			Path:        "/api/uploads",
			Category:    "uploads",
			Description: "Recent uploads, newest first (?limit=N)",
			MimeType:    "application/json",
			Handler:     uploadsHandler.List,
		},
		Route{
			Method:      http.MethodGet,
			Path:        "/uploads/{key}",
			Category:    "uploads",
			Description: "Download a stored upload with its detected Content-Type",
			Handler:     uploadsHandler.Download,
		},
		Route{
			Method:      http.MethodGet,
			Path:        "/health",
			Category:    "utility",
			Description: "Liveness check",
			MimeType:    "application/json",
			Handler:     handlers.Health,
		},
	)

	if d.Metrics != nil {
		table = append(table, Route{
			Method:      http.MethodGet,
			Path:        "/metrics",
			Category:    "utility",
			Description: "Prometheus metrics",
			Handler:     d.Metrics.Handler().ServeHTTP,
		})
	}

	// The catalog describes the finished table, itself included.
	table = append(table, Route{
		Method:      http.MethodGet,
		Path:        "/api/endpoints",
		Category:    "utility",
		Description: "This endpoint catalog",
		MimeType:    "application/json",
	})
	catalog := buildCatalog(table)
	table[len(table)-1].Handler = func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, catalog)
	}

	return table
}

func NewRouter(d Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(logger.RequestID)
	r.Use(tracing.RequestAttributes)
	r.Use(chimw.RealIP)
	r.Use(logger.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(middleware.CORS(d.Config.AllowedOrigins))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusNotFound, "Endpoint not found. See /api/endpoints")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	for _, rt := range Table(d) {
		r.With(rt.Middlewares...).Method(rt.Method, rt.Path, rt.Handler)
	}

	return r
}
