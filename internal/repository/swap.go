package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SwapRepository defines persistence operations for swap requests.
//
// Every mutation of an existing request is a single conditional statement:
// the WHERE clause carries both the acting user's role and the expected
// current status, and the caller learns from the affected-row count whether
// it won. Racing actors therefore resolve to exactly one winner without any
// in-process locking.
type SwapRepository interface {
	Create(ctx context.Context, swap *models.SwapRequest) error
	GetByID(ctx context.Context, id uint) (*models.SwapRequest, error)
	ExistsActiveBetween(ctx context.Context, userID1, userID2 uint) (bool, error)
	UpdateStatusAsProvider(ctx context.Context, id, providerID uint, to models.SwapStatus) (bool, error)
	CompleteAsParticipant(ctx context.Context, id, userID uint) (bool, error)
	DeletePendingAsRequester(ctx context.Context, id, requesterID uint) (bool, error)
	ListIncomingPending(ctx context.Context, providerID uint) ([]models.SwapRequest, error)
	ListSent(ctx context.Context, requesterID uint) ([]models.SwapRequest, error)
	ListRecent(ctx context.Context, limit int) ([]models.SwapRequest, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error)
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository returns a new SwapRepository implementation.
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	if err := r.db.WithContext(ctx).Create(swap).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Provider").
		Preload("OfferedSkill").
		Preload("RequestedSkill").
		First(&swap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Swap request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

// ExistsActiveBetween reports whether a pending or accepted request links
// the two users in either direction. Used for double-booking prevention.
func (r *swapRepository) ExistsActiveBetween(ctx context.Context, userID1, userID2 uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("status IN ?", []models.SwapStatus{models.SwapStatusPending, models.SwapStatusAccepted}).
		Where("(requester_id = ? AND provider_id = ?) OR (requester_id = ? AND provider_id = ?)",
			userID1, userID2, userID2, userID1).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// UpdateStatusAsProvider transitions a pending request to the given terminal
// status. The update only matches rows still pending and owned by the given
// provider; false means a concurrent actor won or the caller was not
// entitled to act.
func (r *swapRepository) UpdateStatusAsProvider(ctx context.Context, id, providerID uint, to models.SwapStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ? AND provider_id = ? AND status = ?", id, providerID, models.SwapStatusPending).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CompleteAsParticipant transitions an accepted request to completed. Either
// participant may confirm; the condition pins the accepted status so a
// duplicate confirmation is a no-op failure, not a second transition.
func (r *swapRepository) CompleteAsParticipant(ctx context.Context, id, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ? AND status = ? AND (requester_id = ? OR provider_id = ?)",
			id, models.SwapStatusAccepted, userID, userID).
		Updates(map[string]interface{}{
			"status":     models.SwapStatusCompleted,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeletePendingAsRequester removes a pending request. Cancellation is a hard
// delete: a cancelled request carries no further business meaning.
func (r *swapRepository) DeletePendingAsRequester(ctx context.Context, id, requesterID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND requester_id = ? AND status = ?", id, requesterID, models.SwapStatusPending).
		Delete(&models.SwapRequest{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *swapRepository) ListIncomingPending(ctx context.Context, providerID uint) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND status = ?", providerID, models.SwapStatusPending).
		Preload("Requester").
		Preload("OfferedSkill").
		Preload("RequestedSkill").
		Order("created_at DESC").
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListSent(ctx context.Context, requesterID uint) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Preload("Provider").
		Preload("OfferedSkill").
		Preload("RequestedSkill").
		Order("created_at DESC").
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListRecent(ctx context.Context, limit int) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Provider").
		Order("created_at DESC").
		Limit(limit).
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SwapRequest{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *swapRepository) CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
