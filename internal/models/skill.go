package models

import "time"

// SkillType distinguishes skills a user offers from skills they want.
type SkillType string

const (
	// SkillTypeOffered marks a skill the owner is willing to teach.
	SkillTypeOffered SkillType = "offered"
	// SkillTypeWanted marks a skill the owner wants to learn.
	SkillTypeWanted SkillType = "wanted"
)

// Valid reports whether t is one of the two recognized skill types.
func (t SkillType) Valid() bool {
	return t == SkillTypeOffered || t == SkillTypeWanted
}

// Skill belongs to exactly one user. Skills are immutable once created;
// to change one, the owner adds a replacement.
type Skill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Type        SkillType `gorm:"type:varchar(10);not null;index" json:"type"`
	Description string    `json:"description"`
	IsApproved  bool      `gorm:"default:true" json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`

	Owner User `gorm:"foreignKey:UserID" json:"owner,omitempty"`
}

// TableName specifies the table name for GORM
func (Skill) TableName() string {
	return "skills"
}
