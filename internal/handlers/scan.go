package handlers

import (
	"errors"
	"net/http"

	"github.com/SentryPrime1/sentryprime-backend-clean/internal/services"

	"github.com/gin-gonic/gin"
)

const serviceVersion = "3.0.0"

// enrichmentCap bounds AI cost and latency on the demonstration path.
const enrichmentCap = 3

type AIEnhancedScanRequest struct {
	URL string `json:"url" binding:"required"`
}

func (h *Handler) Health(c *gin.Context) {
	aiStatus := "Not Configured"
	if h.enricher.Configured() {
		aiStatus = "Ready"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "SentryPrime AI Report Engine",
		"version":   serviceVersion,
		"ai_status": aiStatus,
	})
}

// AIEnhancedScan is the unauthenticated demonstration path: scan a URL
// and enrich the first few violations with AI recommendations.
// Enrichment failures degrade to fallback text per violation and never
// fail the request.
func (h *Handler) AIEnhancedScan(c *gin.Context) {
	var req AIEnhancedScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	result, err := h.scanner.Scan(req.URL)
	if err != nil {
		var fetchErr *services.FetchError
		if errors.As(err, &fetchErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fetchErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	violations := result.Violations
	if len(violations) > enrichmentCap {
		violations = violations[:enrichmentCap]
	}

	enriched := make([]services.Violation, 0, len(violations))
	for _, v := range violations {
		enriched = append(enriched, h.enricher.Enrich(c.Request.Context(), v))
	}

	c.JSON(http.StatusOK, gin.H{
		"url":              req.URL,
		"violations_count": len(enriched),
		"results":          enriched,
		"status":           "completed_ai_analysis",
	})
}
