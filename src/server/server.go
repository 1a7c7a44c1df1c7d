package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lost-woods/rngaudit/src/api"
	"github.com/lost-woods/rngaudit/src/config"
	"github.com/lost-woods/rngaudit/src/metrics"
	"github.com/lost-woods/rngaudit/src/source"
)

type Server struct {
	port     string
	router   *gin.Engine
	log      *zap.SugaredLogger
	src      api.Options
	interval time.Duration
}

// New wires the API. opts.Source and opts.Health may be nil when no hardware
// RNG is attached; the analysis endpoints still work.
func New(cfg config.Config, opts api.Options, reg *prometheus.Registry, log *zap.SugaredLogger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New(reg)
	}
	if opts.CaptureMax == 0 {
		opts.CaptureMax = cfg.CaptureMax
	}
	if opts.Source != nil {
		opts.Source = source.NewLockedReader(opts.Source)
	}
	opts.Samples = cfg.SampleOptions()

	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"X-API-KEY", "Accept", "Content-Type"},
		AllowAllOrigins:  true,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers := api.NewHandlers(opts, log)
	router.GET("/health", handlers.Health)

	authed := router.Group("/", api.CheckHeader("X-API-KEY", cfg.APIKey))
	authed.POST("/analyze", handlers.Analyze)
	authed.POST("/compare", handlers.Compare)
	authed.POST("/whiten", handlers.Whiten)
	authed.GET("/capture", handlers.Capture)

	return &Server{port: cfg.Port, router: router, log: log, src: opts, interval: cfg.HealthInterval}
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled. When a sample source is attached its
// health is re-checked in the background every configured interval.
func (s *Server) Run(ctx context.Context) error {
	if s.src.Source != nil && s.src.Health != nil && s.interval > 0 {
		go source.PeriodicHealthCheck(ctx, s.src.Source, s.src.Health, s.interval)
	}

	srv := &http.Server{Addr: ":" + s.port, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("listening", "port", s.port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debugw("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}
