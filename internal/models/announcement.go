package models

import "time"

// Announcement is an informational broadcast posted by an admin. It has no
// relation to other entities.
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Announcement) TableName() string {
	return "announcements"
}
