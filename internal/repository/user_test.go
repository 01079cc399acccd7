package repository

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// setupUserCache backs the package-level cache with miniredis. Tests using it
// must not run in parallel: the client is package-global.
func setupUserCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	return mr
}

func TestUserRepositoryGetByEmailMissReturnsNil(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %#v", user)
	}
}

func TestUserRepositorySetBanned(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "bannable")

	if err := repo.SetBanned(ctx, user.ID, true); err != nil {
		t.Fatalf("ban: %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsBanned {
		t.Fatal("expected user banned")
	}

	// Missing users surface as not-found, not silent success.
	err := repo.SetBanned(ctx, 99999, true)
	var appErr *models.AppError
	if err == nil {
		t.Fatal("expected error for missing user")
	}
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}

func TestGetByIDCachedReadKeepsPasswordHash(t *testing.T) {
	setupUserCache(t)

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "cached")

	first, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	if first.Password != "pw" {
		t.Fatalf("expected hash on first read, got %q", first.Password)
	}

	// Change the row underneath the cache; a second read must come from the
	// cache and still carry the hash, despite json:"-" on the model field.
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("password", "changed").Error; err != nil {
		t.Fatalf("mutate row: %v", err)
	}

	second, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if second.Password != "pw" {
		t.Fatalf("expected cached hash %q, got %q", "pw", second.Password)
	}
}

func TestUpdateProfileAfterCachedReadKeepsCredentialsAndFlags(t *testing.T) {
	setupUserCache(t)

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "editor")

	// Prime the cache, then read through it, the way the profile handler does.
	if _, err := repo.GetByID(ctx, user.ID); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	loaded, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("cached get: %v", err)
	}

	loaded.FullName = "Renamed"
	loaded.Password = "tampered"
	loaded.IsAdmin = true
	if err := repo.UpdateProfile(ctx, loaded); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Password != "pw" {
		t.Fatalf("password column changed by profile update: %q", reloaded.Password)
	}
	if reloaded.IsAdmin {
		t.Fatal("profile update must not touch is_admin")
	}
	if reloaded.FullName != "Renamed" {
		t.Fatalf("expected full name updated, got %q", reloaded.FullName)
	}
}

func TestUpdateProfileInvalidatesDirectoryCache(t *testing.T) {
	setupUserCache(t)

	db := setupTestDB(t)
	users := NewUserRepository(db)
	directory := NewDirectoryRepository(db)
	ctx := context.Background()

	provider := seedDirectoryUser(t, db, "goingprivate", true, false,
		&models.Skill{Name: "Guitar", Type: models.SkillTypeOffered, IsApproved: true})

	entries, err := directory.ListPublicProviders(ctx, 0, "")
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	if len(entries) != 1 || entries[0].UserID != provider.ID {
		t.Fatalf("expected provider listed, got %#v", entries)
	}

	provider.IsPublic = false
	if err := users.UpdateProfile(ctx, provider); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	entries, err = directory.ListPublicProviders(ctx, 0, "")
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("private user still listed: %#v", entries)
	}
}

func TestUpdateProfileMissingUserNotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)

	err := repo.UpdateProfile(context.Background(), &models.User{ID: 99999, FullName: "Ghost"})
	var appErr *models.AppError
	if err == nil || !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}

func TestUserRepositoryCreateDuplicateConflict(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "taken")

	err := repo.Create(ctx, &models.User{
		Username: "taken",
		Email:    "other@example.com",
		Password: "pw",
		FullName: "Other",
	})
	var appErr *models.AppError
	if err == nil || !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict error, got %#v", err)
	}
}

func TestUserRepositoryStats(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "statsuser")
	other := createTestUser(t, db, "statsother")

	createTestSkill(t, db, user.ID, "Guitar", models.SkillTypeOffered)
	createTestSkill(t, db, user.ID, "Chess", models.SkillTypeWanted)
	swap := createTestSwap(t, db, user, other, models.SwapStatusCompleted)

	rating := &models.Rating{SwapID: swap.ID, RaterID: other.ID, RatedID: user.ID, Score: 5}
	if err := db.Create(rating).Error; err != nil {
		t.Fatalf("create rating: %v", err)
	}

	stats, err := repo.Stats(ctx, user.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	// createTestSwap adds one more offered skill for the user.
	if stats.TotalSkills != 3 {
		t.Fatalf("expected 3 skills, got %d", stats.TotalSkills)
	}
	if stats.TotalRequests != 1 {
		t.Fatalf("expected 1 request, got %d", stats.TotalRequests)
	}
	if stats.TotalReviews != 1 {
		t.Fatalf("expected 1 review, got %d", stats.TotalReviews)
	}
}

func TestCountMembersExcludesAdmins(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "member1")
	createTestUser(t, db, "member2")
	admin := createTestUser(t, db, "boss")
	if err := db.Model(&models.User{}).Where("id = ?", admin.ID).Update("is_admin", true).Error; err != nil {
		t.Fatalf("promote: %v", err)
	}

	count, err := repo.CountMembers(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 members, got %d", count)
	}
}
