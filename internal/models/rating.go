package models

import "time"

// Rating is one participant's review of the other party of a completed
// swap. The (swap, rater) pair is unique: each participant rates a given
// swap at most once.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SwapID    uint      `gorm:"not null;uniqueIndex:idx_ratings_swap_rater" json:"swap_id"`
	RaterID   uint      `gorm:"not null;uniqueIndex:idx_ratings_swap_rater" json:"rater_id"`
	RatedID   uint      `gorm:"not null;index" json:"rated_id"`
	Score     int       `gorm:"not null" json:"score"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"created_at"`

	Rater User `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	Rated User `gorm:"foreignKey:RatedID" json:"rated,omitempty"`
}

// TableName specifies the table name for GORM
func (Rating) TableName() string {
	return "ratings"
}

const (
	// MinRatingScore and MaxRatingScore bound the accepted score range.
	MinRatingScore = 1
	MaxRatingScore = 5
)
