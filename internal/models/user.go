package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"not null;size:80" json:"firstName"`
	LastName     string    `gorm:"not null;size:80" json:"lastName"`
	Email        string    `gorm:"unique;not null;size:120;index" json:"email"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Websites     []Website `gorm:"foreignKey:UserID" json:"websites,omitempty"`
}
