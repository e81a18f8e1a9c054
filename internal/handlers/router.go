package handlers

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(h.RequestID())

	// Public Routes
	r.GET("/", h.Health)
	r.POST("/api/auth/register", h.RegisterUser)
	r.POST("/api/auth/login", h.LoginUser)
	r.POST("/api/scan/ai-enhanced", h.AIEnhancedScan)

	// Protected Routes
	dashboard := r.Group("/api/dashboard")
	dashboard.Use(h.AuthRequired())
	{
		dashboard.GET("/stats", h.DashboardStats)
		dashboard.GET("/websites", h.ListWebsites)
		dashboard.POST("/websites", h.CreateWebsite)
		dashboard.GET("/scans", h.ListScans)
		dashboard.POST("/scan", h.TriggerScan)
	}

	return r
}
