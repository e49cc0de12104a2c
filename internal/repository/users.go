package repository

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/atinyakov/tranum/internal/models"
	"go.uber.org/zap"
)

// NewTRNumber returns "TR" followed by a ten digit number with no leading zero.
func NewTRNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9_000_000_000))
	if err != nil {
		panic(fmt.Sprintf("read random: %v", err))
	}
	return fmt.Sprintf("TR%d", 1_000_000_000+n.Int64())
}

// ListUsers returns every user in insertion order.
func (s *Store) ListUsers(_ context.Context) []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.users)
}

// UserByID returns the user with id.
func (s *Store) UserByID(_ context.Context, id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// UserByEmail looks the user up ignoring case.
func (s *Store) UserByEmail(_ context.Context, email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.emailIndex(email, ""); i >= 0 {
		return s.users[i], true
	}
	return models.User{}, false
}

// emailIndex finds a user other than exceptID holding email. Callers hold s.mu.
func (s *Store) emailIndex(email, exceptID string) int {
	return slices.IndexFunc(s.users, func(u models.User) bool {
		return u.ID != exceptID && strings.EqualFold(u.Email, email)
	})
}

// AddUser stores u under a fresh id. Travelers get a travel reference number
// unless they already carry one; admins never carry one.
func (s *Store) AddUser(ctx context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailIndex(u.Email, "") >= 0 {
		return models.User{}, ErrEmailTaken
	}
	u = s.appendUser(u)
	if err := s.save(ctx); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// appendUser assigns identifiers and appends. Callers hold s.mu.
func (s *Store) appendUser(u models.User) models.User {
	u.ID = s.newID()
	switch {
	case u.Role != models.RoleTraveler:
		u.TRNumber = ""
	case u.TRNumber == "":
		u.TRNumber = s.newTRNumber()
	}
	s.users = append(s.users, u)
	return u
}

// UpdateUser replaces the stored user with the same id. It reports false,
// without writing, when no such user exists. The travel reference number and
// role are fixed at creation and kept from the stored record.
func (s *Store) UpdateUser(ctx context.Context, u models.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.users, func(v models.User) bool { return v.ID == u.ID })
	if i < 0 {
		return false, nil
	}
	if s.emailIndex(u.Email, u.ID) >= 0 {
		return false, ErrEmailTaken
	}
	u.TRNumber = s.users[i].TRNumber
	u.Role = s.users[i].Role
	s.users[i] = u
	if err := s.save(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteUser removes the user together with every trip, health record,
// document and luggage entry it owns, then writes once.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = slices.DeleteFunc(s.users, func(u models.User) bool { return u.ID == id })
	var trips, health, docs, bags int
	s.trips, trips = withoutOwner(s.trips, id)
	s.health, health = withoutOwner(s.health, id)
	s.documents, docs = withoutOwner(s.documents, id)
	s.luggage, bags = withoutOwner(s.luggage, id)

	s.log.Info("deleted user",
		zap.String("user_id", id),
		zap.Int("trips", trips),
		zap.Int("health_records", health),
		zap.Int("documents", docs),
		zap.Int("luggage", bags),
	)
	return s.save(ctx)
}
