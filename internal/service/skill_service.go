package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// AdminChecker reports whether the given user has admin privileges.
type AdminChecker func(ctx context.Context, userID uint) (bool, error)

// SkillService provides catalog business logic.
type SkillService struct {
	skillRepo repository.SkillRepository
	isAdmin   AdminChecker
}

// NewSkillService returns a new SkillService.
func NewSkillService(skillRepo repository.SkillRepository, isAdmin AdminChecker) *SkillService {
	return &SkillService{
		skillRepo: skillRepo,
		isAdmin:   isAdmin,
	}
}

// AddSkill inserts a new skill for the owner. Skills are approved on insert;
// moderation is reactive, an admin revokes approval after the fact.
func (s *SkillService) AddSkill(ctx context.Context, ownerID uint, name string, skillType models.SkillType, description string) (*models.Skill, error) {
	if err := validation.ValidateSkillName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if !skillType.Valid() {
		return nil, models.NewValidationError("Skill type must be 'offered' or 'wanted'")
	}

	skill := &models.Skill{
		UserID:      ownerID,
		Name:        strings.TrimSpace(name),
		Type:        skillType,
		Description: description,
		IsApproved:  true,
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// ListSkills returns the owner's skills. The owner sees everything including
// unapproved entries; everyone else sees approved skills only.
func (s *SkillService) ListSkills(ctx context.Context, ownerID, viewerID uint) ([]models.Skill, error) {
	approvedOnly := ownerID != viewerID
	return s.skillRepo.ListByOwner(ctx, ownerID, approvedOnly)
}

// SetApproval toggles the moderation flag on a skill. Admin only.
func (s *SkillService) SetApproval(ctx context.Context, adminID, skillID uint, approved bool) error {
	admin, err := s.isAdmin(ctx, adminID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !admin {
		return models.NewForbiddenError("Only admins can change skill approval")
	}
	return s.skillRepo.SetApproval(ctx, skillID, approved)
}
