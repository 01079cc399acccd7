package repository

import (
	"context"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// DirectoryRepository builds the browsable listing of public providers.
type DirectoryRepository interface {
	ListPublicProviders(ctx context.Context, excludeUserID uint, skillFilter string) ([]models.DirectoryEntry, error)
}

type directoryRepository struct {
	db *gorm.DB
}

// NewDirectoryRepository returns a new DirectoryRepository implementation.
func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

type directoryRow struct {
	UserID       uint
	FullName     string
	Location     string
	ProfilePhoto string
	Availability string
	SkillName    string
}

// ListPublicProviders returns one entry per public, non-banned user holding
// at least one approved offered skill, optionally restricted to skills whose
// name contains skillFilter (case-insensitive). The full listing is cached
// per filter; the exclusion of the querying user is applied afterwards so
// every viewer shares the same cache entry.
func (r *directoryRepository) ListPublicProviders(ctx context.Context, excludeUserID uint, skillFilter string) ([]models.DirectoryEntry, error) {
	filter := strings.ToLower(strings.TrimSpace(skillFilter))

	var entries []models.DirectoryEntry
	err := cache.Aside(ctx, cache.DirectoryKey(filter), &entries, cache.DirectoryTTL, func() error {
		rows, err := r.queryRows(ctx, filter)
		if err != nil {
			return err
		}
		entries, err = r.fold(ctx, rows)
		return err
	})
	if err != nil {
		return nil, err
	}

	if excludeUserID == 0 {
		return entries, nil
	}
	filtered := make([]models.DirectoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.UserID != excludeUserID {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (r *directoryRepository) queryRows(ctx context.Context, filter string) ([]directoryRow, error) {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.id AS user_id, users.full_name, users.location, users.profile_photo, users.availability, skills.name AS skill_name").
		Joins("JOIN skills ON skills.user_id = users.id").
		Where("users.is_public = ? AND users.is_banned = ?", true, false).
		Where("skills.type = ? AND skills.is_approved = ?", models.SkillTypeOffered, true)

	if filter != "" {
		q = q.Where("LOWER(skills.name) LIKE ?", "%"+filter+"%")
	}

	var rows []directoryRow
	if err := q.Order("users.id, skills.name").Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

// fold collapses the joined rows into one entry per user and attaches
// rating aggregates.
func (r *directoryRepository) fold(ctx context.Context, rows []directoryRow) ([]models.DirectoryEntry, error) {
	entries := make([]models.DirectoryEntry, 0)
	index := make(map[uint]int)

	for _, row := range rows {
		i, ok := index[row.UserID]
		if !ok {
			entries = append(entries, models.DirectoryEntry{
				UserID:       row.UserID,
				FullName:     row.FullName,
				Location:     row.Location,
				ProfilePhoto: row.ProfilePhoto,
				Availability: row.Availability,
			})
			i = len(entries) - 1
			index[row.UserID] = i
		}
		// Duplicate skill names across re-added skills collapse to one.
		seen := false
		for _, name := range entries[i].OfferedSkills {
			if name == row.SkillName {
				seen = true
				break
			}
		}
		if !seen {
			entries[i].OfferedSkills = append(entries[i].OfferedSkills, row.SkillName)
		}
	}

	if len(entries) == 0 {
		return entries, nil
	}

	userIDs := make([]uint, 0, len(entries))
	for _, e := range entries {
		userIDs = append(userIDs, e.UserID)
	}

	var aggregates []struct {
		RatedID uint
		Avg     float64
		Count   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("rated_id, AVG(score) AS avg, COUNT(*) AS count").
		Where("rated_id IN ?", userIDs).
		Group("rated_id").
		Scan(&aggregates).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, agg := range aggregates {
		if i, ok := index[agg.RatedID]; ok {
			entries[i].AverageRating = agg.Avg
			entries[i].RatingCount = agg.Count
		}
	}

	return entries, nil
}
