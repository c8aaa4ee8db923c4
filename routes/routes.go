package routes

import (
	"net/http"
	"time"

	coachRepo "coachflow/database/repository/coach"
	"coachflow/handlers"
	"coachflow/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterOptimizerRoutes registers the schedule optimization endpoints.
// All of them act on behalf of the authenticated coach.
func RegisterOptimizerRoutes(r *gin.Engine, h *handlers.OptimizerHandler, coaches coachRepo.CoachRepository) {
	api := r.Group("/api/optimizer")
	api.Use(middleware.JWTAuthCoachMiddleware(coaches))
	{
		api.GET("/gaps", h.DetectGapsHandler)
		api.GET("/opportunities", h.AnalyzeHandler)
		api.POST("/suggestions", h.CreateSuggestionsHandler)
		api.GET("/suggestions/pending", h.GetPendingHandler)
		api.POST("/suggestions/:id/respond", h.RespondHandler)
		api.POST("/suggestions/:id/apply", h.ApplyHandler)
		api.POST("/suggestions/expire", h.ExpireHandler)
	}
}

// RegisterRoutes applies global middleware and mounts all route groups.
func RegisterRoutes(r *gin.Engine, h *handlers.OptimizerHandler, coaches coachRepo.CoachRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterOptimizerRoutes(r, h, coaches)
}
