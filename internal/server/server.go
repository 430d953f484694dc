package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/wedding-api/internal/config"
	"github.com/gravadigital/wedding-api/internal/handlers"
	"github.com/gravadigital/wedding-api/internal/logger"
	authmw "github.com/gravadigital/wedding-api/internal/middleware/auth"
	"github.com/gravadigital/wedding-api/internal/middleware/events"
	"github.com/gravadigital/wedding-api/internal/response"
	"github.com/gravadigital/wedding-api/internal/services"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	repos      postgres.RepositoryContainer
	services   *services.Services
}

// New creates a new server instance
func New(cfg *config.Config, repos postgres.RepositoryContainer, svc *services.Services) *Server {
	return &Server{
		config:   cfg,
		repos:    repos,
		services: svc,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: s.Router(),

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// Router configures the HTTP router with middleware and routes
func (s *Server) Router() *gin.Engine {
	if s.config.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(events.CreateEvent())
	router.Use(gin.Recovery())
	router.Use(cors.New(s.corsConfig()))

	router.GET("/ping", s.ping)

	s.setupAPIRoutes(router)

	return router
}

func (s *Server) corsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()

	origins := s.config.AllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	if methods := s.config.AllowedMethods(); len(methods) > 0 {
		corsConfig.AllowMethods = methods
	}
	if headers := s.config.AllowedHeaders(); len(headers) > 0 {
		corsConfig.AllowHeaders = headers
	}
	corsConfig.ExposeHeaders = []string{events.RequestIDHeader, "Content-Disposition"}

	return corsConfig
}

func (s *Server) ping(c *gin.Context) {
	if err := s.repos.Health(); err != nil {
		response.ServiceUnavailableError(c, "Database unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wedding API is running",
		"status":  "healthy",
	})
}

// setupAPIRoutes configures all API routes
func (s *Server) setupAPIRoutes(router *gin.Engine) {
	authHandler := handlers.NewAuthHandler(s.services.Auth)
	rsvpHandler := handlers.NewRSVPHandler(s.services.RSVP)
	adminHandler := handlers.NewAdminHandler(s.services.Admin)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.GET("/session", authHandler.Session)
		}

		rsvp := api.Group("/rsvp")
		{
			rsvp.POST("", rsvpHandler.Submit)
			rsvp.POST("/status", rsvpHandler.Status)
		}

		admin := api.Group("/admin", authmw.AdminOnly(s.services.Admin))
		{
			admin.GET("/guests", adminHandler.ListGuests)
			admin.POST("/guests", adminHandler.CreateGuest)
			admin.PUT("/guests", adminHandler.UpdateGuest)
			admin.DELETE("/guests", adminHandler.DeleteGuest)

			admin.GET("/rsvps", adminHandler.ListRSVPs)
			admin.GET("/rsvps/export", adminHandler.ExportRSVPs)
			admin.POST("/rsvps/archive", adminHandler.ArchiveRSVPs)
			admin.GET("/stats", adminHandler.Stats)
		}
	}
}
