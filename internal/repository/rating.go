package repository

import (
	"context"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// RatingRepository defines persistence operations for swap ratings.
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	ExistsForSwapAndRater(ctx context.Context, swapID, raterID uint) (bool, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Rating, error)
	AverageForUser(ctx context.Context, userID uint) (float64, int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository returns a new RatingRepository implementation.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ratingRepository) ExistsForSwapAndRater(ctx context.Context, swapID, raterID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("swap_id = ? AND rater_id = ?", swapID, raterID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *ratingRepository) ListForUser(ctx context.Context, userID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("rated_id = ?", userID).
		Preload("Rater").
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

// AverageForUser returns the mean score and the number of ratings received
// by the user. A user with no ratings averages zero.
func (r *ratingRepository) AverageForUser(ctx context.Context, userID uint) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) AS avg, COUNT(*) AS count").
		Where("rated_id = ?", userID).
		Scan(&result).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return result.Avg, result.Count, nil
}
