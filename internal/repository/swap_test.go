package repository

import (
	"context"
	"fmt"
	"testing"

	"skillswap/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.SwapRequest{},
		&models.Rating{},
		&models.Announcement{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Username: name,
		Email:    name + "@example.com",
		Password: "pw",
		FullName: name,
		IsPublic: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func createTestSkill(t *testing.T, db *gorm.DB, userID uint, name string, skillType models.SkillType) *models.Skill {
	t.Helper()
	skill := &models.Skill{
		UserID:     userID,
		Name:       name,
		Type:       skillType,
		IsApproved: true,
	}
	if err := db.Create(skill).Error; err != nil {
		t.Fatalf("create skill %s: %v", name, err)
	}
	return skill
}

func createTestSwap(t *testing.T, db *gorm.DB, requester, provider *models.User, status models.SwapStatus) *models.SwapRequest {
	t.Helper()
	offered := createTestSkill(t, db, requester.ID, "Guitar", models.SkillTypeOffered)
	requested := createTestSkill(t, db, provider.ID, "Piano", models.SkillTypeOffered)
	swap := &models.SwapRequest{
		RequesterID:      requester.ID,
		ProviderID:       provider.ID,
		OfferedSkillID:   offered.ID,
		RequestedSkillID: requested.ID,
		Status:           status,
	}
	if err := db.Create(swap).Error; err != nil {
		t.Fatalf("create swap: %v", err)
	}
	return swap
}

func TestUpdateStatusAsProviderWinnerTakesAll(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	requester := createTestUser(t, db, "alice")
	provider := createTestUser(t, db, "bob")
	swap := createTestSwap(t, db, requester, provider, models.SwapStatusPending)

	won, err := repo.UpdateStatusAsProvider(ctx, swap.ID, provider.ID, models.SwapStatusAccepted)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if !won {
		t.Fatal("expected first transition to win")
	}

	// A second decision on the same request matches no row.
	won, err = repo.UpdateStatusAsProvider(ctx, swap.ID, provider.ID, models.SwapStatusRejected)
	if err != nil {
		t.Fatalf("second transition: %v", err)
	}
	if won {
		t.Fatal("expected second transition to lose")
	}

	var reloaded models.SwapRequest
	if err := db.First(&reloaded, swap.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != models.SwapStatusAccepted {
		t.Fatalf("expected accepted, got %s", reloaded.Status)
	}
}

func TestUpdateStatusAsProviderWrongActorLoses(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	requester := createTestUser(t, db, "carol")
	provider := createTestUser(t, db, "dan")
	swap := createTestSwap(t, db, requester, provider, models.SwapStatusPending)

	// The requester cannot decide their own request.
	won, err := repo.UpdateStatusAsProvider(ctx, swap.ID, requester.ID, models.SwapStatusAccepted)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if won {
		t.Fatal("expected requester's decision to match no row")
	}

	var reloaded models.SwapRequest
	if err := db.First(&reloaded, swap.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != models.SwapStatusPending {
		t.Fatalf("expected still pending, got %s", reloaded.Status)
	}
}

func TestCompleteAsParticipantEitherPartyOnce(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	requester := createTestUser(t, db, "erin")
	provider := createTestUser(t, db, "frank")
	swap := createTestSwap(t, db, requester, provider, models.SwapStatusAccepted)

	won, err := repo.CompleteAsParticipant(ctx, swap.ID, requester.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !won {
		t.Fatal("expected participant completion to win")
	}

	// The other participant confirming again is a lost race.
	won, err = repo.CompleteAsParticipant(ctx, swap.ID, provider.ID)
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if won {
		t.Fatal("expected duplicate completion to lose")
	}
}

func TestCompleteAsParticipantRejectsOutsider(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	requester := createTestUser(t, db, "gail")
	provider := createTestUser(t, db, "hank")
	outsider := createTestUser(t, db, "ivan")
	swap := createTestSwap(t, db, requester, provider, models.SwapStatusAccepted)

	won, err := repo.CompleteAsParticipant(ctx, swap.ID, outsider.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if won {
		t.Fatal("expected outsider completion to match no row")
	}
}

func TestDeletePendingAsRequester(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	requester := createTestUser(t, db, "judy")
	provider := createTestUser(t, db, "kate")
	swap := createTestSwap(t, db, requester, provider, models.SwapStatusPending)

	// The provider cannot cancel.
	won, err := repo.DeletePendingAsRequester(ctx, swap.ID, provider.ID)
	if err != nil {
		t.Fatalf("delete as provider: %v", err)
	}
	if won {
		t.Fatal("expected provider cancel to match no row")
	}

	won, err = repo.DeletePendingAsRequester(ctx, swap.ID, requester.ID)
	if err != nil {
		t.Fatalf("delete as requester: %v", err)
	}
	if !won {
		t.Fatal("expected requester cancel to win")
	}

	var count int64
	if err := db.Model(&models.SwapRequest{}).Where("id = ?", swap.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatal("expected hard delete")
	}
}

func TestDeletePendingAsRequesterAcceptedNotDeletable(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	requester := createTestUser(t, db, "liam")
	provider := createTestUser(t, db, "mona")
	swap := createTestSwap(t, db, requester, provider, models.SwapStatusAccepted)

	won, err := repo.DeletePendingAsRequester(ctx, swap.ID, requester.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if won {
		t.Fatal("expected accepted request to be uncancellable")
	}
}

func TestExistsActiveBetweenBothDirections(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "nina")
	b := createTestUser(t, db, "omar")
	createTestSwap(t, db, a, b, models.SwapStatusPending)

	for _, pair := range [][2]uint{{a.ID, b.ID}, {b.ID, a.ID}} {
		active, err := repo.ExistsActiveBetween(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if !active {
			t.Fatalf("expected active swap between %d and %d", pair[0], pair[1])
		}
	}
}

func TestExistsActiveBetweenIgnoresTerminalStates(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "pete")
	b := createTestUser(t, db, "quinn")
	createTestSwap(t, db, a, b, models.SwapStatusRejected)
	createTestSwap(t, db, a, b, models.SwapStatusCompleted)

	active, err := repo.ExistsActiveBetween(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if active {
		t.Fatal("rejected and completed swaps should not block a new request")
	}
}

func TestListIncomingPendingFiltersStatusAndProvider(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	provider := createTestUser(t, db, "rosa")
	var requesters []*models.User
	for i := 0; i < 3; i++ {
		requesters = append(requesters, createTestUser(t, db, fmt.Sprintf("req%d", i)))
	}
	createTestSwap(t, db, requesters[0], provider, models.SwapStatusPending)
	createTestSwap(t, db, requesters[1], provider, models.SwapStatusAccepted)
	// Request addressed to someone else.
	createTestSwap(t, db, requesters[2], requesters[0], models.SwapStatusPending)

	incoming, err := repo.ListIncomingPending(ctx, provider.ID)
	if err != nil {
		t.Fatalf("list incoming: %v", err)
	}
	if len(incoming) != 1 {
		t.Fatalf("expected 1 incoming pending request, got %d", len(incoming))
	}
	if incoming[0].RequesterID != requesters[0].ID {
		t.Fatalf("unexpected requester %d", incoming[0].RequesterID)
	}
	if incoming[0].Requester.Username == "" {
		t.Fatal("expected preloaded requester")
	}
}

func TestListSentIncludesAllStatuses(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	requester := createTestUser(t, db, "sam")
	p1 := createTestUser(t, db, "tara")
	p2 := createTestUser(t, db, "uma")
	createTestSwap(t, db, requester, p1, models.SwapStatusPending)
	createTestSwap(t, db, requester, p2, models.SwapStatusRejected)

	sent, err := repo.ListSent(ctx, requester.ID)
	if err != nil {
		t.Fatalf("list sent: %v", err)
	}
	if len(sent) != 2 {
		t.Fatalf("expected 2 sent requests, got %d", len(sent))
	}
}
