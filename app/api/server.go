package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/01001010100011/scolamia.it/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler, apiAccessKey)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	// Public content endpoints
	r.GET("/api/home", handler.GetHome)
	r.GET("/api/articles", handler.ListArticles)
	r.GET("/api/articles/:id", handler.GetArticle)
	r.GET("/api/agenda", handler.ListAgenda)
	r.GET("/api/countdowns", handler.ListCountdowns)
	r.GET("/api/countdowns/:slug", handler.GetCountdown)
	r.GET("/api/search", handler.Search)

	// Feed, health and monitoring endpoints
	r.GET("/feed.xml", handler.GetFeed)
	r.GET("/health", handler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Admin endpoints (conditionally enabled with authentication)
	if apiAccessKey != "" {
		admin := r.Group("/api/admin")
		admin.Use(authMiddleware(apiAccessKey))
		{
			admin.POST("/countdowns", handler.AdminCreateCountdown)
			admin.PATCH("/countdowns/:id", handler.AdminUpdateCountdown)
			admin.DELETE("/countdowns/:id", handler.AdminDeleteCountdown)
			admin.POST("/articles", handler.AdminCreateArticle)
			admin.PATCH("/articles/:id", handler.AdminUpdateArticle)
			admin.DELETE("/articles/:id", handler.AdminDeleteArticle)
			admin.POST("/agenda", handler.AdminCreateAgendaEvent)
			admin.PATCH("/agenda/:id", handler.AdminUpdateAgendaEvent)
			admin.DELETE("/agenda/:id", handler.AdminDeleteAgendaEvent)
			admin.PUT("/featured-articles", handler.AdminSetFeaturedArticles)
		}
		log.Printf("Admin endpoints enabled with authentication")
	} else {
		log.Printf("Admin endpoints disabled (API_ACCESS_KEY not set)")
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"home":       "/api/home",
			"articles":   "/api/articles",
			"agenda":     "/api/agenda",
			"countdowns": "/api/countdowns",
			"countdown":  "/api/countdowns/<slug>",
			"search":     "/api/search?q=<query>",
			"feed":       "/feed.xml",
			"health":     "/health",
		}

		c.JSON(200, gin.H{
			"service":     "Scolamia",
			"version":     cfg.Get().Version,
			"description": "School content service with countdown tracking, agenda and article search",
			"endpoints":   endpoints,
			"admin_status": map[string]interface{}{
				"enabled":       apiAccessKey != "",
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for admin endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get API key from X-API-Key header
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
