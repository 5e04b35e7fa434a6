package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker func(ctx context.Context) error

// NewRouter builds the gin engine with all routes. requireAuth guards the
// player-specific routes; the catalog routes are public.
func NewRouter(h *PlayerHandler, requireAuth gin.HandlerFunc, health HealthChecker, middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware...)

	r.GET("/healthz", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	players := r.Group("/api/v1/players")
	{
		players.GET("/landingpage", h.LandingPage)
		players.GET("/:id/detail", h.DetailPage)
		players.GET("/category", h.Category)

		auth := players.Group("", requireAuth)
		auth.POST("/checkout", h.Checkout)
		auth.GET("/history", h.History)
		auth.GET("/history/export", h.ExportHistory)
		auth.GET("/history/:id/detail", h.HistoryDetail)
		auth.GET("/dashboard", h.Dashboard)
		auth.GET("/profile", h.Profile)
		auth.PUT("/profile", h.EditProfile)
	}

	return r
}
