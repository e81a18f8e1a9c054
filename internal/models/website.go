package models

import (
	"time"
)

// Risk levels derived from a scan's violation count.
const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
)

type Website struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	URL       string    `gorm:"not null;type:text" json:"url"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Rollup fields, overwritten after every completed scan. History
	// lives in the Scan records, not here.
	LastScanDate    *time.Time `json:"last_scan_date,omitempty"`
	ComplianceScore int        `gorm:"default:100" json:"compliance_score"`
	TotalViolations int        `gorm:"default:0" json:"total_violations"`
	RiskLevel       string     `gorm:"size:20;default:'Low'" json:"risk_level"`

	Scans []Scan `gorm:"foreignKey:WebsiteID" json:"scans,omitempty"`
}
