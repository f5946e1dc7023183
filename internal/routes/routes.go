package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/templui/folio/internal/app"
	"github.com/templui/folio/internal/config"
	"github.com/templui/folio/internal/handler"
	"github.com/templui/folio/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.UploadService)
	works := handler.NewWorkHandler(app.WorkService)
	portfolio := handler.NewPortfolioHandler(app.PortfolioService, app.GeneratorService)
	upload := handler.NewUploadHandler(app.UploadService, app.Cfg.MaxFileSize)
	health := handler.NewHealthHandler(app.DB)

	requireAuth := middleware.RequireAuth(app.AuthService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	mux.Handle("GET /generated/", http.StripPrefix("/generated/", staticFiles(app.Cfg.GeneratedDir)))
	if app.Cfg.StorageDriver != config.StorageDriverS3 {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", staticFiles(app.Cfg.UploadDir)))
	}
	mux.Handle("GET /template-assets/{folder}/{dir}/{file...}", templateAssets(app.Cfg.TemplatesDir))

	// Operations
	mux.HandleFunc("GET /api/health", health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Templates
	mux.HandleFunc("GET /api/portfolio/templates", portfolio.Templates)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	// Account
	mux.HandleFunc("GET /api/auth/me", requireAuth(auth.Me))
	mux.HandleFunc("PUT /api/auth/password", requireAuth(auth.ChangePassword))
	mux.HandleFunc("PUT /api/auth/avatar", requireAuth(auth.SetAvatar))

	// Works
	mux.HandleFunc("GET /api/works", requireAuth(works.List))
	mux.HandleFunc("POST /api/works", requireAuth(works.Create))
	mux.HandleFunc("PUT /api/works/order", requireAuth(works.Reorder))
	mux.HandleFunc("PUT /api/works/{id}", requireAuth(works.Update))
	mux.HandleFunc("DELETE /api/works/{id}", requireAuth(works.Delete))

	// Portfolio
	mux.HandleFunc("GET /api/portfolio/config", requireAuth(portfolio.Config))
	mux.HandleFunc("PUT /api/portfolio/config", requireAuth(portfolio.UpdateConfig))
	mux.HandleFunc("POST /api/portfolio/generate", requireAuth(portfolio.Generate))
	mux.HandleFunc("GET /api/portfolio/preview", requireAuth(portfolio.Preview))

	// Uploads
	mux.HandleFunc("POST /api/upload/image", requireAuth(upload.Image))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.CORS(app.Cfg.AllowedOrigins),
		middleware.RequestLogging, // Must wrap the mux so the matched pattern is recorded
	)

	return handler
}
