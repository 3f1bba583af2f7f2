package controller

import (
	"callpulse/internal/interfaces"
	"callpulse/internal/middleware"
	"callpulse/internal/service/analytics"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, u interfaces.Usecase, analyticsService analytics.AnalyticsService) {
	// Add analytics middleware to track all requests
	r.Use(middleware.AnalyticsMiddleware(analyticsService))

	// Prefix all API routes with /api
	api := r.Group("/api")
	{
		api.GET("/call_metrics", u.CallMetricsHandler)
		api.GET("/analytics", u.GetAnalyticsHandler)
	}
}
