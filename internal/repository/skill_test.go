package repository

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/models"
)

func TestSkillListByOwnerApprovalFilter(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "skillowner")
	createTestSkill(t, db, owner.ID, "Guitar", models.SkillTypeOffered)
	hidden := &models.Skill{UserID: owner.ID, Name: "Chess", Type: models.SkillTypeOffered, IsApproved: false}
	if err := db.Create(hidden).Error; err != nil {
		t.Fatalf("create hidden skill: %v", err)
	}

	all, err := repo.ListByOwner(ctx, owner.ID, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 skills for owner view, got %d", len(all))
	}

	approved, err := repo.ListByOwner(ctx, owner.ID, true)
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(approved) != 1 || approved[0].Name != "Guitar" {
		t.Fatalf("expected only approved skill, got %#v", approved)
	}
}

func TestSkillSetApproval(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "modowner")
	skill := createTestSkill(t, db, owner.ID, "Guitar", models.SkillTypeOffered)

	if err := repo.SetApproval(ctx, skill.ID, false); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	var reloaded models.Skill
	if err := db.First(&reloaded, skill.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.IsApproved {
		t.Fatal("expected approval revoked")
	}

	err := repo.SetApproval(ctx, 99999, true)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}
