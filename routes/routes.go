package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"homigo-backend/controllers"
	"homigo-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ac *controllers.AuthController,
	lc *controllers.ListingController,
	rc *controllers.ReservationController,
	jwtSecret []byte,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "app": "HomiGo"})
	})

	authRequired := middleware.AuthRequired(jwtSecret)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.GET("/me", authRequired, ac.Me)
		}

		listings := api.Group("/listings")
		{
			// Static paths before /:id so "cities" never matches the param route.
			listings.GET("", lc.List)
			listings.GET("/cities", lc.Cities)
			listings.GET("/recommendations", lc.Recommendations)
			listings.GET("/:id", lc.GetByID)

			listings.POST("", authRequired, lc.Create)
			listings.PUT("/:id", authRequired, lc.Update)
			listings.DELETE("/:id", authRequired, lc.Delete)
		}

		reservations := api.Group("/reservations", authRequired)
		{
			reservations.POST("", rc.Create)
			reservations.PUT("/:id/cancel", rc.Cancel)
			reservations.GET("/mine", rc.Mine)
			reservations.GET("/by-listing/:listingId", rc.ByListing)
		}
	}

	return r
}
