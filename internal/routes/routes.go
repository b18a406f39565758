// internal/routes/routes.go
package routes

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"amora/internal/config"
	appmiddleware "amora/internal/middleware"
)

func SetupRoutes(db *sql.DB, cfg *config.Config, s3Config *config.S3Config) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "db unreachable"
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"service": "amora-api"})
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		RegisterAuthRoutes(r, db, cfg)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.JWTAuth(cfg.JWTSecret))

			RegisterInviteRoutes(r, db)
			RegisterProfileRoutes(r, db)
			RegisterQuizRoutes(r, db)
			RegisterTextRoutes(r, db)
			RegisterStoreRoutes(r, db, cfg)
			RegisterPointsRoutes(r, db)
			RegisterPostRoutes(r, db)
			RegisterUploadRoutes(r, s3Config)
		})
	})

	return r
}
