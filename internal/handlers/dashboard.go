package handlers

import (
	"errors"
	"net/http"

	"github.com/SentryPrime1/sentryprime-backend-clean/internal/repository"
	"github.com/SentryPrime1/sentryprime-backend-clean/internal/services"

	"github.com/gin-gonic/gin"
)

type CreateWebsiteRequest struct {
	URL  string `json:"url" binding:"required"`
	Name string `json:"name"`
}

type TriggerScanRequest struct {
	URL       string `json:"url" binding:"required"`
	WebsiteID uint   `json:"website_id" binding:"required"`
}

func (h *Handler) DashboardStats(c *gin.Context) {
	user := currentUser(c)

	stats, err := h.aggregator.Stats(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) CreateWebsite(c *gin.Context) {
	user := currentUser(c)

	var req CreateWebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	website, err := h.store.CreateWebsite(user.ID, req.URL, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create website"})
		return
	}

	h.auditService.LogAction(&user.ID, "CREATE_WEBSITE", website.URL, nil, c.ClientIP())

	c.JSON(http.StatusCreated, website)
}

func (h *Handler) ListWebsites(c *gin.Context) {
	user := currentUser(c)

	websites, err := h.store.ListWebsites(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list websites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"websites": websites})
}

func (h *Handler) ListScans(c *gin.Context) {
	user := currentUser(c)

	scans, err := h.store.ListRecentScans(user.ID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list scans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scans": scans})
}

// TriggerScan runs the scan pipeline for one of the caller's websites:
// fetch, detect, score, persist, roll up. A fetch failure aborts the
// operation before any Scan record is created.
func (h *Handler) TriggerScan(c *gin.Context) {
	user := currentUser(c)

	var req TriggerScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL and website_id are required"})
		return
	}

	website, err := h.store.FindWebsite(req.WebsiteID, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrWebsiteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Website not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
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

	scan, err := h.aggregator.RecordScan(website, result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record scan"})
		return
	}

	h.auditService.LogAction(&user.ID, "SCAN", website.URL, gin.H{
		"violations": scan.TotalViolations,
	}, c.ClientIP())

	c.JSON(http.StatusCreated, scan)
}
