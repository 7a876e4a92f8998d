package routes

import (
	"net/http"

	"github.com/drivespace/drivespace/internal/app"
	"github.com/drivespace/drivespace/internal/handler"
	"github.com/drivespace/drivespace/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	file := handler.NewFileHandler(app.FileService, app.Cache, app.Cfg.MaxUploadSize)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", health.Healthz)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// Files
	mux.HandleFunc("POST /files", middleware.RequireAuth(file.Upload))
	mux.HandleFunc("GET /files", middleware.RequireAuth(file.List))
	mux.HandleFunc("GET /files/{id}/download", middleware.RequireAuth(file.Download))
	mux.HandleFunc("PATCH /files/{id}/name", middleware.RequireAuth(file.Rename))
	mux.HandleFunc("PUT /files/{id}/users", middleware.RequireAuth(file.UpdateSharing))
	mux.HandleFunc("DELETE /files/{id}", middleware.RequireAuth(file.Delete))

	// Storage usage
	mux.HandleFunc("GET /usage", middleware.RequireAuth(file.Usage))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)
}
