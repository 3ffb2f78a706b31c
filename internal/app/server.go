// File: internal/app/server.go
package app

import (
	"context"
	"net/http"
	"time"

	"collab_hub_backend/internal/config"
	"collab_hub_backend/internal/firebase"
	"collab_hub_backend/internal/invite"
	"collab_hub_backend/internal/jobs"
	"collab_hub_backend/internal/middleware"
	"collab_hub_backend/internal/project"
	"collab_hub_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WriteGuard is installed in front of every route that creates or changes
// data.
type WriteGuard gin.HandlerFunc

// NewWriteGuard verifies Firebase ID tokens when AUTH_REQUIRED is set and
// lets every request through otherwise. Firebase is only initialised when
// it is needed.
func NewWriteGuard(ctx context.Context, cfg *config.Config, logger *zap.Logger) (WriteGuard, error) {
	if !cfg.AuthRequired {
		logger.Info("AUTH_REQUIRED is false; write routes are open.")
		return WriteGuard(middleware.Passthrough()), nil
	}
	firebaseService, err := firebase.NewFirebaseService(ctx, cfg, logger.Named("Firebase"))
	if err != nil {
		return nil, err
	}
	return WriteGuard(middleware.FirebaseAuth(firebaseService, logger.Named("AuthMiddleware"))), nil
}

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Jobs
	storeHealthJob *jobs.StoreHealthJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	userHandler *user.Handler,
	inviteHandler *invite.Handler,
	projectHandler *project.Handler,
	storeHealthJob *jobs.StoreHealthJob,
	writeGuard WriteGuard,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg)))
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	// --- Setup Routes ---
	router.GET("/health", healthHandler(storeHealthJob))

	api := router.Group("/api")
	userHandler.RegisterRoutes(api, gin.HandlerFunc(writeGuard))
	inviteHandler.RegisterRoutes(api, gin.HandlerFunc(writeGuard))
	projectHandler.RegisterRoutes(api, gin.HandlerFunc(writeGuard))

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:     httpServer,
		router:         router,
		cfg:            cfg,
		logger:         logger,
		storeHealthJob: storeHealthJob,
	}, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	return corsConfig
}

func healthHandler(job *jobs.StoreHealthJob) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := job.Status(c.Request.Context())
		if !status.Healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "database": status})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP", "database": status})
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	if err := s.storeHealthJob.SetupAndStart(); err != nil {
		s.logger.Error("Failed to setup and start store health job", zap.Error(err))
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	s.storeHealthJob.Stop()
	return s.httpServer.Shutdown(ctx)
}
