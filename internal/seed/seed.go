// Package seed populates the database with demo data for local development.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var skillNames = []string{
	"Guitar", "Piano", "Photography", "Spanish", "French", "Cooking",
	"Baking", "Yoga", "Chess", "Woodworking", "Gardening", "Knitting",
	"Drawing", "Public Speaking", "Excel", "Web Design", "Video Editing",
	"Pottery", "Swimming", "Salsa Dancing",
}

var availabilities = []string{
	"weekends", "weekday evenings", "flexible", "mornings", "by arrangement",
}

// Run seeds the database with fake users, skills, swap requests and ratings.
// The demo password for every generated account is "password123".
func Run(db *gorm.DB, userCount int) error {
	if userCount <= 0 {
		userCount = 15
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	users := make([]*models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := &models.User{
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:        fmt.Sprintf("user%d@%s", i, gofakeit.DomainName()),
			Password:     string(hashed),
			FullName:     gofakeit.Name(),
			Location:     gofakeit.City(),
			Availability: availabilities[rand.Intn(len(availabilities))],
			IsPublic:     rand.Intn(10) > 1, // a couple of private profiles
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	// Everyone offers 1-3 skills and wants 1-2.
	skillsByUser := make(map[uint][]*models.Skill)
	for _, u := range users {
		for i := 0; i < 1+rand.Intn(3); i++ {
			skill := &models.Skill{
				UserID:      u.ID,
				Name:        skillNames[rand.Intn(len(skillNames))],
				Type:        models.SkillTypeOffered,
				Description: gofakeit.Sentence(8),
				IsApproved:  true,
			}
			if err := db.Create(skill).Error; err != nil {
				return fmt.Errorf("create skill: %w", err)
			}
			skillsByUser[u.ID] = append(skillsByUser[u.ID], skill)
		}
		for i := 0; i < 1+rand.Intn(2); i++ {
			skill := &models.Skill{
				UserID:     u.ID,
				Name:       skillNames[rand.Intn(len(skillNames))],
				Type:       models.SkillTypeWanted,
				IsApproved: true,
			}
			if err := db.Create(skill).Error; err != nil {
				return fmt.Errorf("create skill: %w", err)
			}
		}
	}

	// Pair users into swap requests in various lifecycle states.
	statuses := []models.SwapStatus{
		models.SwapStatusPending, models.SwapStatusPending,
		models.SwapStatusAccepted, models.SwapStatusRejected,
		models.SwapStatusCompleted,
	}
	var completed []*models.SwapRequest
	for i := 0; i+1 < len(users); i += 2 {
		requester, provider := users[i], users[i+1]
		offered := skillsByUser[requester.ID]
		requested := skillsByUser[provider.ID]
		if len(offered) == 0 || len(requested) == 0 {
			continue
		}

		swap := &models.SwapRequest{
			RequesterID:      requester.ID,
			ProviderID:       provider.ID,
			OfferedSkillID:   offered[0].ID,
			RequestedSkillID: requested[0].ID,
			Message:          gofakeit.Sentence(10),
			Status:           statuses[rand.Intn(len(statuses))],
		}
		if err := db.Create(swap).Error; err != nil {
			return fmt.Errorf("create swap request: %w", err)
		}
		if swap.Status == models.SwapStatusCompleted {
			completed = append(completed, swap)
		}
	}

	// Completed swaps get mutual ratings.
	for _, swap := range completed {
		pairs := [][2]uint{
			{swap.RequesterID, swap.ProviderID},
			{swap.ProviderID, swap.RequesterID},
		}
		for _, p := range pairs {
			rating := &models.Rating{
				SwapID:   swap.ID,
				RaterID:  p[0],
				RatedID:  p[1],
				Score:    3 + rand.Intn(3),
				Feedback: gofakeit.Sentence(6),
			}
			if err := db.Create(rating).Error; err != nil {
				return fmt.Errorf("create rating: %w", err)
			}
		}
	}
	log.Printf("seeded %d completed swaps with ratings", len(completed))

	return nil
}
