package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/kubealloc/middleware"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Token exchange is the only endpoint reachable without credentials
	router.POST("/auth/token", IssueToken)

	// Everything else requires an API key or a bearer token
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/capacity", GetCapacityReport)
		protected.GET("/capacity/snapshots", ListCapacitySnapshots)
		protected.POST("/capacity/snapshots", CreateCapacitySnapshot)
		protected.GET("/capacity/snapshots/:id", GetCapacitySnapshot)
		protected.GET("/cluster/info", GetClusterInfo)
	}
}
