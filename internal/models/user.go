// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member of the skill exchange.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"unique;not null" json:"username"`
	Email        string         `gorm:"unique;not null" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	FullName     string         `gorm:"not null" json:"full_name"`
	Location     string         `json:"location"`
	ProfilePhoto string         `json:"profile_photo"`
	Availability string         `json:"availability"`
	IsPublic     bool           `gorm:"default:true" json:"is_public"`
	IsBanned     bool           `gorm:"default:false" json:"is_banned"`
	IsAdmin      bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Skills []Skill `gorm:"foreignKey:UserID" json:"skills,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// UserStats aggregates activity counters shown on the profile page.
type UserStats struct {
	TotalSkills   int64 `json:"total_skills"`
	TotalRequests int64 `json:"total_requests"`
	TotalReviews  int64 `json:"total_reviews"`
}
