package service

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/models"
)

func adminChecker(adminID uint) AdminChecker {
	return func(_ context.Context, userID uint) (bool, error) {
		return userID == adminID, nil
	}
}

func TestAddSkillRejectsInvalidType(t *testing.T) {
	svc := NewSkillService(noopSkillRepo(), adminChecker(1))

	_, err := svc.AddSkill(context.Background(), 5, "Guitar", models.SkillType("teaching"), "")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error, got %#v", err)
	}
}

func TestAddSkillRejectsEmptyName(t *testing.T) {
	svc := NewSkillService(noopSkillRepo(), adminChecker(1))

	_, err := svc.AddSkill(context.Background(), 5, "   ", models.SkillTypeOffered, "")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error, got %#v", err)
	}
}

func TestAddSkillApprovedOnInsert(t *testing.T) {
	var created *models.Skill
	repo := noopSkillRepo()
	repo.createFn = func(_ context.Context, skill *models.Skill) error {
		created = skill
		return nil
	}
	svc := NewSkillService(repo, adminChecker(1))

	skill, err := svc.AddSkill(context.Background(), 5, " Guitar ", models.SkillTypeOffered, "acoustic")
	if err != nil {
		t.Fatalf("AddSkill: %v", err)
	}
	if created == nil || !created.IsApproved {
		t.Fatalf("expected approved insert, got %#v", created)
	}
	if skill.Name != "Guitar" {
		t.Fatalf("expected trimmed name, got %q", skill.Name)
	}
	if skill.UserID != 5 {
		t.Fatalf("expected owner 5, got %d", skill.UserID)
	}
}

func TestListSkillsOwnerSeesUnapproved(t *testing.T) {
	var gotApprovedOnly bool
	repo := noopSkillRepo()
	repo.listByOwnerFn = func(_ context.Context, _ uint, approvedOnly bool) ([]models.Skill, error) {
		gotApprovedOnly = approvedOnly
		return nil, nil
	}
	svc := NewSkillService(repo, adminChecker(1))

	if _, err := svc.ListSkills(context.Background(), 5, 5); err != nil {
		t.Fatalf("ListSkills: %v", err)
	}
	if gotApprovedOnly {
		t.Fatal("owner should see unapproved skills")
	}

	if _, err := svc.ListSkills(context.Background(), 5, 6); err != nil {
		t.Fatalf("ListSkills: %v", err)
	}
	if !gotApprovedOnly {
		t.Fatal("other viewers should only see approved skills")
	}
}

func TestSetApprovalNonAdminForbidden(t *testing.T) {
	svc := NewSkillService(noopSkillRepo(), adminChecker(1))

	err := svc.SetApproval(context.Background(), 2, 10, false)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden error, got %#v", err)
	}
}

func TestSetApprovalAdminAllowed(t *testing.T) {
	var gotID uint
	var gotApproved bool
	repo := noopSkillRepo()
	repo.setApprovalFn = func(_ context.Context, id uint, approved bool) error {
		gotID = id
		gotApproved = approved
		return nil
	}
	svc := NewSkillService(repo, adminChecker(1))

	if err := svc.SetApproval(context.Background(), 1, 10, false); err != nil {
		t.Fatalf("SetApproval: %v", err)
	}
	if gotID != 10 || gotApproved {
		t.Fatalf("expected revoke on skill 10, got %d/%v", gotID, gotApproved)
	}
}
