package models

// DirectoryEntry is a public-facing summary of one user's offered skills,
// used for browsing and discovery.
type DirectoryEntry struct {
	UserID        uint     `json:"user_id"`
	FullName      string   `json:"full_name"`
	Location      string   `json:"location"`
	ProfilePhoto  string   `json:"profile_photo"`
	Availability  string   `json:"availability"`
	OfferedSkills []string `json:"offered_skills"`
	AverageRating float64  `json:"average_rating"`
	RatingCount   int64    `json:"rating_count"`
}
