package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/timetrack/internal/auth"
	"github.com/crucial707/timetrack/internal/config"
	"github.com/crucial707/timetrack/internal/handlers"
	"github.com/crucial707/timetrack/internal/middleware"
	"github.com/crucial707/timetrack/internal/repo"
	"github.com/crucial707/timetrack/internal/service"
)

// newRouter wires repos, services and handlers onto a chi router.
func newRouter(db *sql.DB, cfg config.Config) (http.Handler, error) {
	users := repo.NewUserRepo(db)
	projects := repo.NewProjectRepo(db)
	entries := repo.NewTimeEntryRepo(db)
	audit := repo.NewAuditRepo(db)

	tokens := auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())
	authSvc, err := service.NewAuthService(users, auth.NewBcryptHasher(), tokens)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	authH := &handlers.AuthHandler{Service: authSvc}
	projectH := &handlers.ProjectHandler{Service: service.NewProjectService(projects), Audit: audit}
	entryH := &handlers.TimeEntryHandler{Service: service.NewTimeEntryService(entries, projects), Audit: audit}
	auditH := &handlers.AuditHandler{Repo: audit}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	r.Use(chimw.StripSlashes)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONDetail(w, "Not found.", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONDetail(w, fmt.Sprintf("Method %q not allowed.", r.Method), http.StatusMethodNotAllowed)
	})

	// ==========================
	// Probes
	// ==========================
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			handlers.JSONDetail(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// ==========================
		// Public (rate limited)
		// ==========================
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRateLimiter().Middleware)
			r.Post("/register", authH.Register)
			r.Post("/login", authH.Login)
			r.Post("/token/refresh", authH.Refresh)
		})

		// ==========================
		// Protected
		// ==========================
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTMiddleware(tokens))

			r.Route("/project", func(r chi.Router) {
				r.Get("/", projectH.List)
				r.Post("/", projectH.Create)
				r.Get("/{id}", projectH.Get)
				r.Patch("/{id}", projectH.Update)
				r.Delete("/{id}", projectH.Delete)
			})

			r.Route("/time-tracking", func(r chi.Router) {
				r.Get("/", entryH.List)
				r.Post("/", entryH.Create)
				r.Get("/{id}", entryH.Get)
				r.Patch("/{id}", entryH.Update)
				r.Delete("/{id}", entryH.Delete)
			})

			r.Get("/audit", auditH.ListAudit)
		})
	})

	return r, nil
}
