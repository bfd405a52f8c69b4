package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"costofliving/utils"
)

const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 60 * time.Second
	defaultIdleTimeout  = 120 * time.Second
)

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(handler *Handler, logger *utils.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(RecoveryMiddleware(logger), LoggerMiddleware(logger), CORSMiddleware(allowedOrigins))
	SetupRoutes(router, handler)
	return router
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("", handler.Capabilities)
		api.GET("/health", handler.HealthCheck)
		api.GET("/cost-of-living/:city", handler.CostOfLiving)
	}
}

// Server wraps the HTTP server lifecycle.
type Server struct {
	http   *http.Server
	logger *utils.Logger
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, router http.Handler, logger *utils.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		logger: logger,
	}
}

// Start serves until Shutdown is called. It returns nil on a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("[http] Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
