// Package service implements the business rules on top of the repositories.
package service

import (
	"context"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// SwapService governs the swap request lifecycle: creation, the provider's
// accept/reject decision, requester cancellation, and completion.
type SwapService struct {
	swapRepo  repository.SwapRepository
	skillRepo repository.SkillRepository
	userRepo  repository.UserRepository
}

// NewSwapService returns a new SwapService.
func NewSwapService(swapRepo repository.SwapRepository, skillRepo repository.SkillRepository, userRepo repository.UserRepository) *SwapService {
	return &SwapService{
		swapRepo:  swapRepo,
		skillRepo: skillRepo,
		userRepo:  userRepo,
	}
}

// CreateSwapInput carries the caller-provided fields of a new swap request.
type CreateSwapInput struct {
	ProviderID       uint   `json:"provider_id"`
	OfferedSkillID   uint   `json:"offered_skill_id"`
	RequestedSkillID uint   `json:"requested_skill_id"`
	Message          string `json:"message"`
}

// CreateSwap validates and inserts a new pending swap request.
//
// Both skill references are checked against their claimed owners: the
// offered skill must be one of the requester's offered skills and the
// requested skill one of the provider's.
func (s *SwapService) CreateSwap(ctx context.Context, requesterID uint, in CreateSwapInput) (*models.SwapRequest, error) {
	if in.ProviderID == 0 || in.OfferedSkillID == 0 || in.RequestedSkillID == 0 {
		return nil, models.NewValidationError("Provider, offered skill, and requested skill are required")
	}
	if requesterID == in.ProviderID {
		return nil, models.NewValidationError("Cannot send a swap request to yourself")
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester.IsBanned {
		return nil, models.NewForbiddenError("Banned accounts cannot create swap requests")
	}

	if _, err := s.userRepo.GetByID(ctx, in.ProviderID); err != nil {
		return nil, err
	}

	offered, err := s.skillRepo.GetByID(ctx, in.OfferedSkillID)
	if err != nil {
		return nil, err
	}
	if offered.UserID != requesterID || offered.Type != models.SkillTypeOffered {
		return nil, models.NewValidationError("Offered skill must be one of your own offered skills")
	}

	requested, err := s.skillRepo.GetByID(ctx, in.RequestedSkillID)
	if err != nil {
		return nil, err
	}
	if requested.UserID != in.ProviderID || requested.Type != models.SkillTypeOffered {
		return nil, models.NewValidationError("Requested skill must be one of the provider's offered skills")
	}

	active, err := s.swapRepo.ExistsActiveBetween(ctx, requesterID, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, models.NewValidationError("A pending or accepted swap with this user already exists")
	}

	swap := &models.SwapRequest{
		RequesterID:      requesterID,
		ProviderID:       in.ProviderID,
		OfferedSkillID:   in.OfferedSkillID,
		RequestedSkillID: in.RequestedSkillID,
		Message:          in.Message,
		Status:           models.SwapStatusPending,
	}
	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}

	return s.swapRepo.GetByID(ctx, swap.ID)
}

// Act applies the provider's accept or reject decision to a pending request.
// The transition is a single conditional write; when it matches no row the
// caller receives the conflated not-found-class error regardless of whether
// the request is missing, already decided, or owned by someone else.
func (s *SwapService) Act(ctx context.Context, requestID, actorID uint, action models.SwapAction) (*models.SwapRequest, error) {
	to, ok := action.Status()
	if !ok {
		return nil, models.NewValidationError("Action must be 'accept' or 'reject'")
	}

	ctx, span := observability.StartSpan(ctx, "swap.act",
		attribute.Int64("swap.id", int64(requestID)),
		attribute.String("swap.action", string(action)))
	defer span.End()

	won, err := s.swapRepo.UpdateStatusAsProvider(ctx, requestID, actorID, to)
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, err
	}
	if !won {
		middleware.SwapActionConflicts.WithLabelValues(string(action)).Inc()
		return nil, models.NewNotFoundOrForbiddenError("Swap request")
	}

	return s.swapRepo.GetByID(ctx, requestID)
}

// Cancel removes a pending request. Only the requester may cancel, and only
// while the request is still pending; the conditional delete enforces both.
func (s *SwapService) Cancel(ctx context.Context, requestID, actorID uint) error {
	ctx, span := observability.StartSpan(ctx, "swap.cancel",
		attribute.Int64("swap.id", int64(requestID)))
	defer span.End()

	won, err := s.swapRepo.DeletePendingAsRequester(ctx, requestID, actorID)
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return err
	}
	if !won {
		middleware.SwapActionConflicts.WithLabelValues("cancel").Inc()
		return models.NewNotFoundOrForbiddenError("Swap request")
	}
	return nil
}

// Complete marks an accepted swap as carried out. Either participant may
// confirm; a swap completes at most once.
func (s *SwapService) Complete(ctx context.Context, requestID, actorID uint) (*models.SwapRequest, error) {
	ctx, span := observability.StartSpan(ctx, "swap.complete",
		attribute.Int64("swap.id", int64(requestID)))
	defer span.End()

	won, err := s.swapRepo.CompleteAsParticipant(ctx, requestID, actorID)
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, err
	}
	if !won {
		middleware.SwapActionConflicts.WithLabelValues("complete").Inc()
		return nil, models.NewNotFoundOrForbiddenError("Swap request")
	}

	return s.swapRepo.GetByID(ctx, requestID)
}

// IncomingRequests returns pending requests addressed to the provider.
func (s *SwapService) IncomingRequests(ctx context.Context, providerID uint) ([]models.SwapRequest, error) {
	return s.swapRepo.ListIncomingPending(ctx, providerID)
}

// SentRequests returns all requests created by the requester.
func (s *SwapService) SentRequests(ctx context.Context, requesterID uint) ([]models.SwapRequest, error) {
	return s.swapRepo.ListSent(ctx, requesterID)
}
