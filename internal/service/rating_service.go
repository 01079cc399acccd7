package service

import (
	"context"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// RatingService records reviews of completed swaps.
type RatingService struct {
	ratingRepo repository.RatingRepository
	swapRepo   repository.SwapRepository
}

// NewRatingService returns a new RatingService.
func NewRatingService(ratingRepo repository.RatingRepository, swapRepo repository.SwapRepository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		swapRepo:   swapRepo,
	}
}

// SubmitRating validates and stores one participant's review of a completed
// swap. The rater must be a participant of the referenced swap and the rated
// user the other party; each participant rates a given swap at most once.
func (s *RatingService) SubmitRating(ctx context.Context, swapID, raterID, ratedID uint, score int, feedback string) (*models.Rating, error) {
	if score < models.MinRatingScore || score > models.MaxRatingScore {
		return nil, models.NewValidationError("Score must be between 1 and 5")
	}

	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(raterID) {
		// Same vague error as the engine: outsiders must not learn whether
		// the swap exists.
		return nil, models.NewNotFoundOrForbiddenError("Swap request")
	}
	if swap.Status != models.SwapStatusCompleted {
		return nil, models.NewValidationError("Only completed swaps can be rated")
	}
	if ratedID != swap.OtherParty(raterID) {
		return nil, models.NewValidationError("Rated user must be the other party of the swap")
	}

	exists, err := s.ratingRepo.ExistsForSwapAndRater(ctx, swapID, raterID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("You have already rated this swap")
	}

	rating := &models.Rating{
		SwapID:   swapID,
		RaterID:  raterID,
		RatedID:  ratedID,
		Score:    score,
		Feedback: feedback,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	// Directory entries carry rating averages.
	cache.InvalidateDirectory(ctx)

	return rating, nil
}

// RatingsFor returns the reviews received by the user, newest first.
func (s *RatingService) RatingsFor(ctx context.Context, userID uint) ([]models.Rating, error) {
	return s.ratingRepo.ListForUser(ctx, userID)
}

// ReputationFor returns the user's average score and review count.
func (s *RatingService) ReputationFor(ctx context.Context, userID uint) (float64, int64, error) {
	return s.ratingRepo.AverageForUser(ctx, userID)
}
