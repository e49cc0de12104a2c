package repository

import (
	"context"
	"fmt"

	"github.com/atinyakov/tranum/internal/models"
	"go.uber.org/zap"
)

// SeedPassword is the credential both seed accounts start with.
const SeedPassword = "@@@123@@@"

// Initialize seeds one admin and one traveler when the store has no users.
// It is a no-op otherwise, so calling it on every start is safe.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) > 0 {
		return nil
	}

	pw, err := s.hasher.HashPassword(SeedPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	admin := s.appendUser(models.User{
		FullName:     "Admin User",
		Email:        "ala1@gmail.com",
		PasswordHash: pw,
		Role:         models.RoleAdmin,
		Status:       models.StatusActive,
	})
	traveler := s.appendUser(models.User{
		FullName:     "علاء أحمد",
		Email:        "ala@gmail.com",
		PasswordHash: pw,
		Role:         models.RoleTraveler,
		Status:       models.StatusActive,
		Tier:         models.TierGold,
		Currency:     "United Arab Emirates Dirham (AED)",
		BloodType:    "A+",
	})

	s.log.Info("seeded initial users",
		zap.String("admin", admin.Email),
		zap.String("traveler", traveler.Email),
		zap.String("tr_number", traveler.TRNumber),
	)
	return s.save(ctx)
}
