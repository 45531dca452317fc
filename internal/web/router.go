// Package web exposes the API browser over HTTP.
package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fueldepot/depot"
	"github.com/fueldepot/depot/internal/session"
	"github.com/fueldepot/depot/internal/view"
)

//go:embed static
var staticFS embed.FS

// NewRouter wires the browser routes.
func NewRouter(b *depot.Browser, r *view.Renderer, sessions *session.Store, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{browser: b, renderer: r, logger: logger}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(requestLogger(logger))
	mux.Use(middleware.Recoverer)

	mux.Get("/health", h.health)

	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, depot.LandingPath, http.StatusFound)
	})

	mux.Group(func(api chi.Router) {
		api.Use(sessions.Middleware)
		api.Get(depot.LandingPath, h.browse)
		api.Get(depot.LandingPath+"/*", h.browse)
	})

	return mux
}

// requestLogger logs one line per request once it completes.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
