package service

import (
	"context"
	"strings"

	"github.com/atinyakov/tranum/internal/models"
	"github.com/atinyakov/tranum/internal/repository"
)

// Stats is the admin console headline.
type Stats struct {
	Travelers int `json:"travelers"`
	Trips     int `json:"trips"`
	Gold      int `json:"gold"`
	Diamond   int `json:"diamond"`
}

// AdminService backs the admin console. It only ever touches travelers.
type AdminService struct {
	store *repository.Store
}

// NewAdminService constructs an AdminService over store.
func NewAdminService(store *repository.Store) *AdminService {
	return &AdminService{store: store}
}

// Travelers lists travelers whose name, email or travel reference number
// contains query, ignoring case. An empty query matches everyone.
func (s *AdminService) Travelers(ctx context.Context, query string) []models.User {
	q := strings.ToLower(query)
	out := []models.User{}
	for _, u := range s.store.ListUsers(ctx) {
		if u.Role != models.RoleTraveler {
			continue
		}
		if strings.Contains(strings.ToLower(u.FullName), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.TRNumber), q) {
			out = append(out, u)
		}
	}
	return out
}

// Stats counts travelers, all trips, and Gold and Diamond travelers.
func (s *AdminService) Stats(ctx context.Context) Stats {
	var st Stats
	for _, u := range s.store.ListUsers(ctx) {
		if u.Role != models.RoleTraveler {
			continue
		}
		st.Travelers++
		switch u.Tier {
		case models.TierGold:
			st.Gold++
		case models.TierDiamond:
			st.Diamond++
		}
	}
	st.Trips = len(s.store.Trips(ctx))
	return st
}

func (s *AdminService) traveler(ctx context.Context, id string) (models.User, error) {
	u, ok := s.store.UserByID(ctx, id)
	if !ok || u.Role != models.RoleTraveler {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

// SetStatus activates, bans or locks a traveler.
func (s *AdminService) SetStatus(ctx context.Context, id string, status models.Status) (models.User, error) {
	if !status.Valid() {
		return models.User{}, ErrInvalidStatus
	}
	u, err := s.traveler(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	u.Status = status
	if _, err := s.store.UpdateUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpdateTraveler replaces a traveler's profile. The email and credential are
// not editable from the console and are kept from the stored record.
func (s *AdminService) UpdateTraveler(ctx context.Context, u models.User) (models.User, error) {
	stored, err := s.traveler(ctx, u.ID)
	if err != nil {
		return models.User{}, err
	}
	u.Email = stored.Email
	u.PasswordHash = stored.PasswordHash
	if _, err := s.store.UpdateUser(ctx, u); err != nil {
		return models.User{}, err
	}
	updated, _ := s.store.UserByID(ctx, u.ID)
	return updated, nil
}

// DeleteTraveler removes a traveler and everything it owns.
func (s *AdminService) DeleteTraveler(ctx context.Context, id string) error {
	if _, err := s.traveler(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteUser(ctx, id)
}
