// Package server exposes the calculator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ecotrip/co2calc/internal/carbon"
	"github.com/ecotrip/co2calc/internal/config"
	"github.com/ecotrip/co2calc/internal/form"
	"github.com/ecotrip/co2calc/internal/share"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	// maxBodyBytes bounds request bodies; a full form is well under 1 KiB.
	maxBodyBytes = 64 << 10
)

// Server is the HTTP API.
type Server struct {
	addr      string
	estimator *carbon.Estimator
	schema    form.Schema
	sharer    *share.Sharer
	limiter   *RateLimiter
	logger    zerolog.Logger
	engine    *gin.Engine
}

// New creates a Server over estimator. The returned server owns a rate
// limiter goroutine that Run stops on return; call Close when Run is never
// called.
func New(estimator *carbon.Estimator, cfg config.Config, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	factors := estimator.Factors()
	s := &Server{
		addr:      cfg.HTTPAddr,
		estimator: estimator,
		schema:    form.NewSchema(factors.TransportModes(), factors.Diets()),
		sharer:    share.NewSharer(cfg.ShareSite),
		limiter:   NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		logger:    logger.With().Str("component", "http").Logger(),
	}
	s.engine = s.routes(cfg)
	return s
}

func (s *Server) routes(cfg config.Config) *gin.Engine {
	r := gin.New()
	// The rate limiter keys on ClientIP, so forwarding headers count only
	// from configured proxies.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		s.logger.Warn().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), requestID(), requestLogger(s.logger), cors(cfg.CORS))

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1", rateLimit(s.limiter))
	{
		api.POST("/footprint", s.calculate)
		api.POST("/footprint/export", s.export)
		api.GET("/form", s.formSchema)
		api.GET("/factors", s.factors)
		api.GET("/equivalences", s.equivalences)
		api.GET("/share", s.shareLinks)
	}

	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, codeNotFound, "route not found")
	})
	return r
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// Close releases the rate limiter.
func (s *Server) Close() {
	s.limiter.Stop()
}
