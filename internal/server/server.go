package server

import (
	"context"
	"net/http"

	"authservice/internal/config"
	"authservice/internal/handler"
	"authservice/internal/middleware"
	"authservice/internal/models"
	"authservice/internal/repository"
	"authservice/internal/service"
	"authservice/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	db      *sqlx.DB
	cfg     *config.Config
	log     *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, log *zap.Logger) *Server {
	router := gin.Default()
	router.Use(middleware.RequestID())

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	userRepo := repository.NewUserRepository(s.db, s.log)
	codec := token.NewCodec([]byte(s.cfg.Auth.Secret), s.cfg.TokenTTL())
	authService := service.NewAuthService(userRepo, codec, s.cfg.Auth.BcryptCost, s.log)
	authHandler := handler.NewAuthHandler(authService, s.log)
	userHandler := handler.NewUserHandler(authService, s.log)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated routes
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.Auth(codec, s.log))
	{
		authRequired.GET("/auth/profile", authHandler.Profile)
		authRequired.PUT("/users/:id", userHandler.UpdateUser)
		authRequired.PUT("/users/:id/password", userHandler.UpdatePassword)

		adminOnly := authRequired.Group("")
		adminOnly.Use(middleware.RequireRole(s.log, models.RoleAdmin))
		{
			adminOnly.GET("/users", userHandler.ListUsers)
			adminOnly.DELETE("/users/:id", userHandler.DeleteUser)
		}
	}
}

func (s *Server) Run(addr string) error {
	s.log.Info("Server starting", zap.String("port", addr))
	s.httpSrv = &http.Server{
		Addr:    ":" + addr,
		Handler: s.router,
	}
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
