// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/avenra/website/internal/config"
	"github.com/avenra/website/internal/handler"
	"github.com/avenra/website/internal/handler/api"
	"github.com/avenra/website/internal/i18n"
	"github.com/avenra/website/internal/imaging"
	"github.com/avenra/website/internal/logging"
	"github.com/avenra/website/internal/middleware"
	"github.com/avenra/website/internal/relay"
	"github.com/avenra/website/internal/render"
	"github.com/avenra/website/internal/store"
	"github.com/avenra/website/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerCRUD registers standard CRUD routes for an admin resource.
// Routes: GET /, GET /new, POST /, GET /{id}, PUT /{id}, POST /{id},
// DELETE /{id}, POST /{id}/delete
func registerCRUD(r chi.Router, base, baseID string, h crudHandlers) {
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Get(baseID, h.EditForm)
	r.Put(baseID, h.Update)
	r.Post(baseID, h.Update) // HTML forms can't send PUT
	r.Delete(baseID, h.Delete)
	r.Post(baseID+"/delete", h.Delete) // HTML forms can't send DELETE
}

// registerFrontendRoutes registers the public routes for one language prefix.
func registerFrontendRoutes(r chi.Router, h *handler.FrontendHandler) {
	r.Get(handler.RouteRoot, h.Home)
	r.Get("/about", h.About)
	r.Get("/services", h.Services)
	r.Get(handler.RouteBlog, h.BlogIndex)
	r.Get(handler.RouteBlog+handler.RouteParamSlug, h.BlogPost)
	r.Get(handler.RouteFaq, h.Faq)
	r.Get(handler.RouteContact, h.ContactForm)
	r.Post(handler.RouteContact, h.ContactSubmit)
	r.Get("/privacy", h.Privacy)
	r.Get("/terms", h.Terms)
}

// staticCache wraps a handler with a long-lived Cache-Control header.
func staticCache(maxAgeSeconds int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAgeSeconds))
		next.ServeHTTP(w, r)
	})
}

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	showHelp := flag.Bool("help", false, "print usage and exit")
	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("avenra %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger with per-request context attributes
	logLevel := logging.ParseLevel(cfg.LogLevel)
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logging.NewRequestHandler(textHandler))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	// Ensure data and uploads directories exist
	if cfg.DBDriver == store.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	// Initialize database
	dsn := cfg.DBPath
	if cfg.DBDriver == store.DriverMySQL {
		dsn = cfg.DBDSN
	}
	slog.Info("initializing database", "driver", cfg.DBDriver)
	db, err := store.Open(cfg.DBDriver, dsn)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Seed default data
	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		if err := store.SeedSampleContent(ctx, db); err != nil {
			return fmt.Errorf("seeding sample content: %w", err)
		}
	}

	// Initialize template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		IsDev:       cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Contact form relay
	contactRelay := relay.New(cfg.ContactWebhookURL, logger)
	if contactRelay.Enabled() {
		slog.Info("contact relay enabled")
	}

	// Image processor for team photos
	processor := imaging.NewProcessor(cfg.UploadsDir)

	sessionSecret := []byte(cfg.SessionSecret)

	// CSRF protection; the JSON contact and login endpoints are exempt
	// because they are called without a browser form context.
	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig(sessionSecret, cfg.IsDevelopment()))

	// Login protection: IP rate limiting plus account lockout
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	// Initialize handlers
	frontendHandler := handler.NewFrontendHandler(db, renderer, contactRelay)
	authHandler := handler.NewAuthHandler(db, renderer, sessionSecret, loginProtection, cfg.IsDevelopment())
	adminHandler := handler.NewAdminHandler(db, renderer)
	postsHandler := handler.NewPostsHandler(db, renderer)
	faqsHandler := handler.NewFaqsHandler(db, renderer)
	teamHandler := handler.NewTeamHandler(db, renderer, processor)
	contactsHandler := handler.NewContactsHandler(db, renderer)
	settingsHandler := handler.NewSettingsHandler(db, renderer)
	healthHandler := handler.NewHealthHandler(db)
	seoHandler := handler.NewSEOHandler(db, cfg.SiteURL, cfg.Env == "staging")

	apiHandler := api.NewHandler(db)
	apiAuthHandler := api.NewAuthHandler(db, sessionSecret, loginProtection, cfg.IsDevelopment())
	apiContactHandler := api.NewContactHandler(db, contactRelay)
	apiTeamHandler := api.NewTeamHandler(db, processor)

	// Create router
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.RequestLogContext)
	r.Use(middleware.SkipCSRF("/api/contact", "/api/auth/login"))
	r.Use(csrfMiddleware)

	// Health check
	r.Get("/health", healthHandler.Check)

	// Crawler-facing files
	r.Get("/sitemap.xml", seoHandler.Sitemap)
	r.Get("/robots.txt", seoHandler.Robots)
	r.Get("/.well-known/security.txt", seoHandler.SecurityTxt)

	// Public frontend routes: the bare root redirects to the default
	// language, everything else lives under a two-letter prefix.
	r.Get("/", frontendHandler.RootRedirect)
	r.Route("/{lang:[a-z]{2}}", func(r chi.Router) {
		r.Use(middleware.Locale)
		registerFrontendRoutes(r, frontendHandler)
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
		r.Post(handler.RouteLogout, authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessionSecret, db))

			r.Get(handler.RouteRoot, adminHandler.Dashboard)

			registerCRUD(r, handler.RoutePosts, handler.RoutePostsID, crudHandlers{
				List: postsHandler.List, NewForm: postsHandler.NewForm, Create: postsHandler.Create,
				EditForm: postsHandler.EditForm, Update: postsHandler.Update, Delete: postsHandler.Delete,
			})
			r.Post(handler.RoutePostsID+"/publish", postsHandler.TogglePublish)

			registerCRUD(r, handler.RouteFaqs, handler.RouteFaqsID, crudHandlers{
				List: faqsHandler.List, NewForm: faqsHandler.NewForm, Create: faqsHandler.Create,
				EditForm: faqsHandler.EditForm, Update: faqsHandler.Update, Delete: faqsHandler.Delete,
			})
			r.Post(handler.RouteFaqsID+"/visibility", faqsHandler.ToggleVisibility)

			registerCRUD(r, handler.RouteTeam, handler.RouteTeamID, crudHandlers{
				List: teamHandler.List, NewForm: teamHandler.NewForm, Create: teamHandler.Create,
				EditForm: teamHandler.EditForm, Update: teamHandler.Update, Delete: teamHandler.Delete,
			})
			r.Post(handler.RouteTeamID+"/visibility", teamHandler.ToggleVisibility)
			r.Post(handler.RouteTeamID+handler.RouteSuffixUpload, teamHandler.UploadPhoto)

			r.Get(handler.RouteContacts, contactsHandler.List)
			r.Get(handler.RouteContactsID, contactsHandler.Detail)
			r.Delete(handler.RouteContactsID, contactsHandler.Delete)
			r.Post(handler.RouteContactsID+"/delete", contactsHandler.Delete)

			r.Get(handler.RouteSettings, settingsHandler.Show)
			r.Post(handler.RouteSettings+"/password", settingsHandler.ChangePassword)
		})
	})

	// REST API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", apiHandler.Status)
		r.Post("/contact", apiContactHandler.Submit)

		r.Route("/auth", func(r chi.Router) {
			r.With(loginProtection.Middleware()).Post(handler.RouteLogin, apiAuthHandler.Login)
			r.Get("/session", apiAuthHandler.Session)
			r.Post(handler.RouteLogout, apiAuthHandler.Logout)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireSession(sessionSecret, db))

			r.Route(handler.RoutePosts, func(r chi.Router) {
				r.Get(handler.RouteRoot, apiHandler.ListPosts)
				r.Post(handler.RouteRoot, apiHandler.CreatePost)
				r.Get(handler.RouteParamID, apiHandler.GetPost)
				r.Put(handler.RouteParamID, apiHandler.UpdatePost)
				r.Patch(handler.RouteParamID, apiHandler.PatchPost)
				r.Delete(handler.RouteParamID, apiHandler.DeletePost)
				r.Post(handler.RouteParamID+"/toggle-publish", apiHandler.TogglePostPublish)
			})

			r.Route(handler.RouteFaqs, func(r chi.Router) {
				r.Get(handler.RouteRoot, apiHandler.ListFaqs)
				r.Post(handler.RouteRoot, apiHandler.CreateFaq)
				r.Get(handler.RouteParamID, apiHandler.GetFaq)
				r.Put(handler.RouteParamID, apiHandler.UpdateFaq)
				r.Patch(handler.RouteParamID, apiHandler.PatchFaq)
				r.Delete(handler.RouteParamID, apiHandler.DeleteFaq)
				r.Post(handler.RouteParamID+"/toggle-visibility", apiHandler.ToggleFaqVisibility)
			})

			r.Route(handler.RouteTeam, func(r chi.Router) {
				r.Get(handler.RouteRoot, apiTeamHandler.List)
				r.Post(handler.RouteRoot, apiTeamHandler.Create)
				r.Get(handler.RouteParamID, apiTeamHandler.Get)
				r.Put(handler.RouteParamID, apiTeamHandler.Update)
				r.Patch(handler.RouteParamID, apiTeamHandler.Patch)
				r.Delete(handler.RouteParamID, apiTeamHandler.Delete)
				r.Post(handler.RouteParamID+handler.RouteSuffixUpload, apiTeamHandler.UploadPhoto)
				r.Post(handler.RouteParamID+"/toggle-visibility", apiTeamHandler.ToggleVisibility)
			})

			r.Get(handler.RouteContacts, apiHandler.ListContacts)
			r.Get(handler.RouteContactsID, apiHandler.GetContact)
		})
	})
	slog.Info("REST API mounted at /api")

	// Static files from the embedded filesystem, uploads from disk
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", staticCache(31536000,
		http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))
	r.Handle("/uploads/*", staticCache(604800,
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))))

	// 404 handler renders the localized not-found page
	r.NotFound(frontendHandler.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
