// Package httpapi exposes the bookmark manager's JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/akarneev/shelfmark/internal/config"
	"github.com/akarneev/shelfmark/internal/service"
)

// Pinger reports storage liveness for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http *http.Server
	log  *zap.Logger
}

type handlers struct {
	profiles  service.ProfileService
	bookmarks service.BookmarkService
	log       *zap.Logger
}

// New builds the HTTP server: router, middlewares, route registration.
func New(
	cfg config.ServerConfig,
	authCfg config.AuthConfig,
	log *zap.Logger,
	profiles service.ProfileService,
	bookmarks service.BookmarkService,
	db Pinger,
) *Server {
	h := &handlers{profiles: profiles, bookmarks: bookmarks, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(Log(log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.Ping(req.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "db unreachable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(Auth([]byte(authCfg.JWTSecret), authCfg.Leeway))

		r.Get("/profiles", h.listProfiles)
		r.Get("/profiles/default", h.getDefaultProfile)
		r.Post("/profiles/ensure-default", h.ensureDefaultProfile)
		r.Post("/profiles", h.createProfile)
		r.Patch("/profiles/{profileID}", h.updateProfile)
		r.Post("/profiles/{profileID}/default", h.setDefaultProfile)
		r.Delete("/profiles/{profileID}", h.deleteProfile)
		r.Get("/profiles/{profileID}/bookmarks", h.listBookmarks)

		r.Post("/bookmarks", h.createBookmark)
		r.Post("/bookmarks/fetch", h.addBookmarkWithMetadata)
		r.Patch("/bookmarks/{bookmarkID}", h.updateBookmark)
		r.Delete("/bookmarks/{bookmarkID}", h.deleteBookmark)
	})

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return &Server{http: s, log: log}
}

// Start runs the HTTP server and blocks until error or shutdown.
func (s *Server) Start() error {
	s.log.Info("http server listening", zap.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server within the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("http server shutting down")
	return s.http.Shutdown(ctx)
}
