package models

import (
	"time"
)

const ScanStatusCompleted = "completed"

// Scan is an append-only record of one completed accessibility scan.
type Scan struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	WebsiteID          uint      `gorm:"not null;index" json:"website_id"`
	WebsiteName        string    `gorm:"size:255" json:"website_name"` // Snapshot at scan time
	URL                string    `gorm:"not null;type:text" json:"url"`
	ScanDate           time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"scan_date"`
	Status             string    `gorm:"size:20;default:'completed'" json:"status"`
	TotalViolations    int       `gorm:"default:0" json:"total_violations"`
	SeriousViolations  int       `gorm:"default:0" json:"serious_violations"`
	ModerateViolations int       `gorm:"default:0" json:"moderate_violations"`
	ComplianceScore    int       `gorm:"default:100" json:"compliance_score"`
	RiskLevel          string    `gorm:"size:20;default:'Low'" json:"risk_level"`
}
