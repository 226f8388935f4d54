package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/handlers"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/web"
)

// RouterParams are the dependencies for the top-level router
type RouterParams struct {
	fx.In

	Echo  *echo.Echo
	Pages *handlers.Pages
	Log   *slog.Logger
}

// NewRouter builds the chi router that serves pages and static assets and
// forwards /api, the probes and /metrics to echo.
func NewRouter(p RouterParams) (http.Handler, error) {
	log := p.Log.With(logger.Scope("http"))

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(pageLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)

	static, err := web.Static()
	if err != nil {
		return nil, err
	}
	r.With(cacheControl("public, max-age=86400")).
		Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Handle("/api/*", p.Echo)
	for _, path := range []string{"/api", "/health", "/healthz", "/ready", "/metrics"} {
		r.Handle(path, p.Echo)
	}

	p.Pages.Register(r)

	return r, nil
}

func cacheControl(value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}

// pageLogger logs page and asset requests. Echo logs its own routes.
func pageLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isAPI(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Debug("page",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("latency", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func isAPI(path string) bool {
	return path == "/api" || len(path) > 5 && path[:5] == "/api/" || isProbe(path)
}
