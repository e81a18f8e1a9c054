package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/SentryPrime1/sentryprime-backend-clean/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail  = errors.New("an account with this email already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrWebsiteNotFound = errors.New("website not found")
)

// Store exposes the per-entity operations the handlers and services go
// through. Every method is a single gorm call (or transaction), so
// per-call atomicity comes from the underlying database. IDs are
// autoincrement primary keys: monotonic per table and never reused,
// since no delete operation exists.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateUser registers a new user. Emails are case-insensitive: they are
// stored lower-cased and looked up lower-cased everywhere.
func (s *Store) CreateUser(firstName, lastName, email, passwordHash string) (*models.User, error) {
	email = strings.ToLower(email)

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateWebsite registers a website under the given owner. Name falls
// back to the URL when unspecified.
func (s *Store) CreateWebsite(userID uint, url, name string) (*models.Website, error) {
	if name == "" {
		name = url
	}
	website := models.Website{
		UserID:          userID,
		URL:             url,
		Name:            name,
		CreatedAt:       time.Now(),
		ComplianceScore: 100,
		RiskLevel:       models.RiskLow,
	}
	if err := s.db.Create(&website).Error; err != nil {
		return nil, err
	}
	return &website, nil
}

func (s *Store) ListWebsites(userID uint) ([]models.Website, error) {
	var websites []models.Website
	err := s.db.Where("user_id = ?", userID).Order("id asc").Find(&websites).Error
	return websites, err
}

// FindWebsite resolves a website by id, enforcing ownership. A website
// that exists but belongs to someone else is reported the same way as a
// missing one.
func (s *Store) FindWebsite(id uint, userID uint) (*models.Website, error) {
	var website models.Website
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&website).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWebsiteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &website, nil
}

func (s *Store) CreateScan(scan *models.Scan) error {
	return s.db.Create(scan).Error
}

// ListScans returns all scans of websites owned by userID, insertion
// order.
func (s *Store) ListScans(userID uint) ([]models.Scan, error) {
	var scans []models.Scan
	err := s.db.
		Joins("JOIN websites ON websites.id = scans.website_id").
		Where("websites.user_id = ?", userID).
		Order("scans.id asc").
		Find(&scans).Error
	return scans, err
}

// ListRecentScans returns the owner's scans most-recent first, capped at
// limit when limit > 0.
func (s *Store) ListRecentScans(userID uint, limit int) ([]models.Scan, error) {
	var scans []models.Scan
	q := s.db.
		Joins("JOIN websites ON websites.id = scans.website_id").
		Where("websites.user_id = ?", userID).
		Order("scans.scan_date desc, scans.id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&scans).Error
	return scans, err
}

// UpdateWebsiteRollup overwrites the four rollup fields on the target
// website so they reflect the given scan. Ownership must already be
// verified by the caller.
func (s *Store) UpdateWebsiteRollup(websiteID uint, scanDate time.Time, score, violations int, riskLevel string) error {
	return s.db.Model(&models.Website{}).Where("id = ?", websiteID).Updates(map[string]interface{}{
		"last_scan_date":   scanDate,
		"compliance_score": score,
		"total_violations": violations,
		"risk_level":       riskLevel,
	}).Error
}
