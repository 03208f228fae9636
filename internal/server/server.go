// Package server exposes the analytics pipeline over an HTTP API. The server
// owns no mutable state beyond an optional snapshot cache: every request
// works on an independent in-memory snapshot.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/odenysenko/postlens/internal/cache"
	"github.com/odenysenko/postlens/internal/model"
	"github.com/odenysenko/postlens/internal/pipeline"
	"github.com/odenysenko/postlens/internal/worker"
)

// Server is the HTTP front end over the analytics pipeline.
type Server struct {
	cfg       *model.Config
	pipe      *pipeline.Pipeline
	snapshots *cache.Snapshots
	limiter   *worker.Limiter
	log       *logrus.Logger
}

// New creates a server. The snapshot cache and rate limiter are enabled only
// when configured.
func New(cfg *model.Config, pipe *pipeline.Pipeline, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}

	var limiter *worker.Limiter
	if cfg.Server.RateLimit > 0 {
		limiter = worker.NewLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
	}

	return &Server{
		cfg:       cfg,
		pipe:      pipe,
		snapshots: cache.New(cfg.Server.CacheTTL),
		limiter:   limiter,
		log:       log,
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLog())
	router.Use(cors.Default())
	if s.limiter != nil {
		router.Use(s.rateLimit())
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/accounts", s.listAccounts)
		api.GET("/accounts/:account/posts", s.accountPosts)
		api.GET("/accounts/:account/analytics", s.accountAnalytics)
		api.GET("/accounts/:account/export.csv", s.exportFiltered)
		api.GET("/exports/:account/:target", s.exportRaw)
	}

	return router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.WithField("addr", s.cfg.Server.Addr).Info("http server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request")
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
