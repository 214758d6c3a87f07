package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pet-catalog-api/internal/config"
	"github.com/pet-catalog-api/internal/metrics"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/service"
	"github.com/pet-catalog-api/internal/validation"
	"github.com/pet-catalog-api/pkg/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options carries the router's optional collaborators
type Options struct {
	// Metrics records per-route request counts and latencies; nil disables it
	Metrics *metrics.HTTPMetrics
	// Gatherer backs GET /metrics; nil means prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer
	// UploadDir is served under cfg.Storage.PublicBaseURL when set
	UploadDir string
	// Ready backs GET /ready; nil reports ready unconditionally
	Ready func(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, opts Options, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware(opts.Metrics))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		respondError(c, log, apperrors.NotFound("Route not found"))
	})

	// Handlers
	v := validation.NewValidator()
	petHandler := NewPetHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	tagHandler := NewTagHandler(services, log)
	searchHandler := NewSearchHandler(services, log)
	userHandler := NewUserHandler(services, v, log)
	mediaHandler := NewMediaHandler(services, cfg.Storage.MaxUploadSize, log)
	adminHandler := NewAdminHandler(services, log)

	authn := authRequired(cfg.Auth, log)
	staff := requireRole(log, models.RoleAdmin, models.RoleEditor)
	adminOnly := requireRole(log, models.RoleAdmin)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/ready", readinessCheck(opts.Ready, log))
	router.GET("/metrics", metricsHandler(opts.Gatherer))

	if opts.UploadDir != "" && strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		router.Static(cfg.Storage.PublicBaseURL, opts.UploadDir)
	}

	api := router.Group("/api")
	{
		pets := api.Group("/pets")
		{
			pets.GET("", petHandler.ListPets)
			pets.GET("/:slug", petHandler.GetPet)
			pets.POST("", authn, staff, petHandler.CreatePet)
			pets.PATCH("/:id", authn, staff, petHandler.UpdatePet)
			pets.DELETE("/:id", authn, adminOnly, petHandler.DeletePet)
		}

		comments := api.Group("/comments")
		{
			comments.GET("/pet/:petId", commentHandler.ListForPet)
			comments.POST("", authn, commentHandler.CreateComment)
			comments.POST("/:id/approve", authn, staff, commentHandler.ApproveComment)
			comments.POST("/:id/reject", authn, staff, commentHandler.RejectComment)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.ListTags)
			tags.GET("/:slug", tagHandler.GetTag)
		}

		search := api.Group("/search")
		{
			search.GET("", searchHandler.Search)
			search.GET("/suggestions", searchHandler.Suggestions)
		}

		me := api.Group("/users/me", authn)
		{
			me.GET("", userHandler.GetMe)
			me.POST("/bookmarks", userHandler.AddBookmark)
			me.DELETE("/bookmarks/:petId", userHandler.RemoveBookmark)
		}

		media := api.Group("/media", authn, staff)
		{
			media.POST("", mediaHandler.UploadMedia)
			media.DELETE("/:id", mediaHandler.DeleteMedia)
		}

		admin := api.Group("/admin", authn)
		{
			admin.GET("/stats", staff, adminHandler.GetStats)
			admin.GET("/audit", adminOnly, adminHandler.GetAuditLogs)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "pet-catalog-api",
	})
}

// readinessCheck answers 503 while a dependency is unreachable
func readinessCheck(ready func(ctx context.Context) error, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				respondError(c, log, apperrors.Wrap(apperrors.KindUnavailable, err, "Database unreachable"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// metricsHandler serves the prometheus exposition format
func metricsHandler(gatherer prometheus.Gatherer) gin.HandlerFunc {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
