package services

import (
	"log/slog"
	"time"

	"github.com/SentryPrime1/sentryprime-backend-clean/internal/models"
	"github.com/SentryPrime1/sentryprime-backend-clean/internal/repository"

	"gorm.io/gorm"
)

// Score derives the 0-100 compliance score from a violation count: one
// point per violation, floored at 0.
func Score(violations int) int {
	score := 100 - violations
	if score < 0 {
		return 0
	}
	return score
}

// ClassifyRisk buckets a violation count into a risk level.
func ClassifyRisk(violations int) string {
	switch {
	case violations > 10:
		return models.RiskHigh
	case violations >= 1:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}

// Overview summarizes a user's compliance posture across all sites.
type Overview struct {
	TotalWebsites   int64 `json:"total_websites"`
	TotalViolations int64 `json:"total_violations"`
	// Simplified approximation (100 minus total violations), not a true
	// mean across scans.
	AvgComplianceScore int64 `json:"avg_compliance_score"`
}

type QuickStats struct {
	LastScanDate *time.Time `json:"last_scan_date"`
	TotalScans   int64      `json:"total_scans"`
}

type DashboardStats struct {
	Overview       Overview      `json:"overview"`
	RecentActivity []models.Scan `json:"recent_activity"`
	QuickStats     QuickStats    `json:"quick_stats"`
}

// AggregatorService turns completed scanner results into persisted scan
// records, keeps website rollups in sync, and computes dashboard-wide
// statistics.
type AggregatorService struct {
	db     *gorm.DB
	store  *repository.Store
	logger *slog.Logger
}

func NewAggregatorService(db *gorm.DB, store *repository.Store, logger *slog.Logger) *AggregatorService {
	return &AggregatorService{db: db, store: store, logger: logger}
}

// RecordScan persists a new scan for a website already verified to
// belong to the caller, then overwrites the website's rollup fields to
// match. The missing-alt-text rule is classified serious, so every
// violation counts as serious.
func (a *AggregatorService) RecordScan(website *models.Website, result *ScanResult) (*models.Scan, error) {
	now := time.Now()
	total := len(result.Violations)

	scan := &models.Scan{
		WebsiteID:          website.ID,
		WebsiteName:        website.Name,
		URL:                result.URL,
		ScanDate:           now,
		Status:             models.ScanStatusCompleted,
		TotalViolations:    total,
		SeriousViolations:  total,
		ModerateViolations: 0,
		ComplianceScore:    Score(total),
		RiskLevel:          ClassifyRisk(total),
	}

	if err := a.store.CreateScan(scan); err != nil {
		return nil, err
	}

	if err := a.store.UpdateWebsiteRollup(website.ID, now, scan.ComplianceScore, total, scan.RiskLevel); err != nil {
		return nil, err
	}

	a.logger.Info("Scan recorded",
		"website_id", website.ID,
		"violations", total,
		"score", scan.ComplianceScore,
	)

	return scan, nil
}

// Stats computes the dashboard overview for a user. Only the user's own
// websites and scans are visible.
func (a *AggregatorService) Stats(userID uint) (*DashboardStats, error) {
	var totalWebsites int64
	if err := a.db.Model(&models.Website{}).Where("user_id = ?", userID).Count(&totalWebsites).Error; err != nil {
		return nil, err
	}

	var totalScans int64
	if err := a.db.Model(&models.Scan{}).
		Joins("JOIN websites ON websites.id = scans.website_id").
		Where("websites.user_id = ?", userID).
		Count(&totalScans).Error; err != nil {
		return nil, err
	}

	var totalViolations int64
	if err := a.db.Model(&models.Scan{}).
		Joins("JOIN websites ON websites.id = scans.website_id").
		Where("websites.user_id = ?", userID).
		Select("COALESCE(SUM(scans.total_violations), 0)").
		Scan(&totalViolations).Error; err != nil {
		return nil, err
	}

	avgScore := int64(100)
	if totalScans > 0 {
		avgScore = 100 - totalViolations
		if avgScore < 0 {
			avgScore = 0
		}
	}

	recent, err := a.store.ListRecentScans(userID, 5)
	if err != nil {
		return nil, err
	}

	var lastScanDate *time.Time
	if len(recent) > 0 {
		lastScanDate = &recent[0].ScanDate
	}

	return &DashboardStats{
		Overview: Overview{
			TotalWebsites:      totalWebsites,
			TotalViolations:    totalViolations,
			AvgComplianceScore: avgScore,
		},
		RecentActivity: recent,
		QuickStats: QuickStats{
			LastScanDate: lastScanDate,
			TotalScans:   totalScans,
		},
	}, nil
}
