// Package devserver serves a directory over HTTP so a local endpoint such as
// http://localhost:8000/a.json has something to answer it.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/bft-labs/whyql/pkg/log"
)

const shutdownTimeout = 5 * time.Second

// Config holds devserver settings.
type Config struct {
	Addr           string
	Dir            string
	AllowedOrigins []string
}

// DefaultConfig serves the working directory on :8000 to any origin.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8000",
		Dir:            ".",
		AllowedOrigins: []string{"*"},
	}
}

// NewHandler returns the router serving cfg.Dir.
func NewHandler(cfg Config, logger log.Logger) http.Handler {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost},
		AllowedHeaders: []string{"*"},
	}).Handler)

	r.Handle("/*", http.FileServer(http.Dir(cfg.Dir)))
	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, cfg Config, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewHandler(cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("serving", log.String("addr", cfg.Addr), log.String("dir", cfg.Dir))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("stopped")
	return nil
}

func requestLogger(logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("served",
				log.String("method", r.Method),
				log.String("path", r.URL.Path),
				log.Int("status", ww.Status()),
				log.Int("bytes", ww.BytesWritten()),
				log.Duration("duration", time.Since(start)),
			)
		})
	}
}
