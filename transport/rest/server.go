package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// New builds the widget's HTTP server. mount lets the caller attach extra
// routes such as the websocket endpoint.
func New(port string, logger *slog.Logger, gameUseCase gameUseCase, mount func(r chi.Router)) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              ":" + port,
			Handler:           NewRouter(logger, gameUseCase, mount),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger.With("component", "http"),
	}
}

func NewRouter(logger *slog.Logger, gameUseCase gameUseCase, mount func(r chi.Router)) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newStructuredLogger(logger))
	r.Use(middleware.Recoverer)

	h := newHandlers(logger, gameUseCase)

	r.Get("/", h.Page)
	r.Get("/ping", PingHandler)
	r.Handle("/static/*", staticHandler())

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.EndSession)
			r.Post("/moves", h.MakeTurn)
			r.Post("/restart", h.Restart)
			r.Post("/theme", h.ToggleTheme)
		})
	})

	if mount != nil {
		mount(r)
	}

	return r
}

// Start - serves until the server is shut down. Requests, including
// upgraded websocket connections, inherit ctx.
func (that *Server) Start(ctx context.Context) error {
	that.srv.BaseContext = func(net.Listener) context.Context {
		return ctx
	}

	ln, err := net.Listen("tcp", that.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", that.srv.Addr, err)
	}

	that.logger.Info("Starting HTTP server", "addr", ln.Addr().String())

	err = that.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return fmt.Errorf("failed to serve: %w", err)
}

func (that *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func newStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	log := logger.With("component", "http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
