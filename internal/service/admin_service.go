package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// AdminService implements the moderation layer: bans, skill approval
// queues, dashboard aggregates, and broadcasts. It reads every component
// but never participates in swap transitions.
type AdminService struct {
	userRepo  repository.UserRepository
	swapRepo  repository.SwapRepository
	skillRepo repository.SkillRepository
	annRepo   repository.AnnouncementRepository
}

// NewAdminService returns a new AdminService.
func NewAdminService(userRepo repository.UserRepository, swapRepo repository.SwapRepository, skillRepo repository.SkillRepository, annRepo repository.AnnouncementRepository) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		swapRepo:  swapRepo,
		skillRepo: skillRepo,
		annRepo:   annRepo,
	}
}

// DashboardStats aggregates the read-only overview shown to admins.
type DashboardStats struct {
	TotalUsers       int64                `json:"total_users"`
	TotalSwaps       int64                `json:"total_swaps"`
	PendingSwaps     int64                `json:"pending_swaps"`
	RecentSwaps      []models.SwapRequest `json:"recent_swaps"`
	UnapprovedSkills []models.Skill       `json:"unapproved_skills"`
}

// Stats builds the dashboard aggregates.
func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.CountMembers(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSwaps, err = s.swapRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.PendingSwaps, err = s.swapRepo.CountByStatus(ctx, models.SwapStatusPending); err != nil {
		return nil, err
	}
	if stats.RecentSwaps, err = s.swapRepo.ListRecent(ctx, 10); err != nil {
		return nil, err
	}
	if stats.UnapprovedSkills, err = s.skillRepo.ListUnapproved(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

// SetBanned bans or unbans a member. Admin accounts cannot be banned.
func (s *AdminService) SetBanned(ctx context.Context, targetID uint, banned bool) error {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.IsAdmin {
		return models.NewValidationError("Admin accounts cannot be banned")
	}
	return s.userRepo.SetBanned(ctx, targetID, banned)
}

// Broadcast publishes an announcement to all members.
func (s *AdminService) Broadcast(ctx context.Context, title, message string) (*models.Announcement, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" {
		return nil, models.NewValidationError("Title and message are required")
	}

	announcement := &models.Announcement{
		Title:   title,
		Message: message,
	}
	if err := s.annRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

// Announcements returns the latest broadcasts, newest first.
func (s *AdminService) Announcements(ctx context.Context, limit int) ([]models.Announcement, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.annRepo.List(ctx, limit)
}
