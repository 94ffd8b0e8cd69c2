package routes

import (
	"net/http"
	"time"

	"outreach/handlers"
	"outreach/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterWebhookRoutes registers the GreenAPI notification endpoint.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/webhooks", middleware.WebhookTokenMiddleware(hb.WebhookToken), hb.WebhookHandler)
}

// RegisterLeadRoutes registers the public lead intake endpoints.
func RegisterLeadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/submit-details", hb.SubmitDetailsHandler)
	r.POST("/schedule-whatsapp-message", hb.ScheduleMessageHandler)
}

// RegisterAdminRoutes sets up admin login and the protected calendar endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/admin/login", hb.AdminLoginHandler)

	calendarGroup := r.Group("/api/calendar")
	{
		calendarGroup.Use(middleware.JWTAuthAdminMiddleware(hb.AdminSecret))
		calendarGroup.GET("/free-slots", hb.FreeSlotsHandler)
		calendarGroup.POST("/book", hb.BookHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, requestsPerMinute int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(requestsPerMinute))

	RegisterWebhookRoutes(r, hb)
	RegisterLeadRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
