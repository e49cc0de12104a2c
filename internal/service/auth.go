// Package service provides the authentication, traveler and admin business
// logic on top of the record store.
package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/atinyakov/tranum/internal/hash"
	"github.com/atinyakov/tranum/internal/models"
	"github.com/atinyakov/tranum/internal/repository"
	"github.com/atinyakov/tranum/internal/storage"
	"go.uber.org/zap"
)

// SessionKey is the backend key holding the signed-in user snapshot.
const SessionKey = "currentUser"

// UserRepository defines the persistence operations
// required by the authentication service.
type UserRepository interface {
	// UserByEmail finds a user ignoring the case of email.
	UserByEmail(ctx context.Context, email string) (models.User, bool)
	// UserByID finds a user by id.
	UserByID(ctx context.Context, id string) (models.User, bool)
	// AddUser stores a new user and returns it with its id assigned.
	AddUser(ctx context.Context, u models.User) (models.User, error)
	// UpdateUser replaces a user, reporting false when the id is unknown.
	UpdateUser(ctx context.Context, u models.User) (bool, error)
}

// AuthOptions configures an AuthService.
type AuthOptions struct {
	// Hasher turns passwords into stored credentials. Defaults to plain.
	Hasher hash.Hasher
	// AdminSecretCode must be presented to register an admin. When empty,
	// admin registration is refused.
	AdminSecretCode string
	Logger          *zap.Logger
}

// AuthService holds the single signed-in session and mirrors it to the
// session backend so a restart can pick it up again.
type AuthService struct {
	repo      UserRepository
	session   storage.Backend
	hasher    hash.Hasher
	adminCode string
	log       *zap.Logger

	mu      sync.RWMutex
	current *models.User
}

// NewAuthService constructs a new AuthService.
func NewAuthService(repo UserRepository, session storage.Backend, opts AuthOptions) *AuthService {
	s := &AuthService{
		repo:      repo,
		session:   session,
		hasher:    opts.Hasher,
		adminCode: opts.AdminSecretCode,
		log:       opts.Logger,
	}
	if s.hasher == nil {
		s.hasher = hash.PlainHasher{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Login signs in the user whose email matches ignoring case and whose
// credential matches exactly.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.authenticate(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}
	if err := s.signIn(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// LoginAs is Login restricted to one role. A valid credential for the other
// role yields ErrRoleMismatch and leaves the session untouched.
func (s *AuthService) LoginAs(ctx context.Context, email, password string, role models.Role) (models.User, error) {
	u, err := s.authenticate(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}
	if u.Role != role {
		return models.User{}, ErrRoleMismatch
	}
	if err := s.signIn(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (models.User, error) {
	u, ok := s.repo.UserByEmail(ctx, email)
	if !ok || !s.hasher.CheckPasswordHash(password, u.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *AuthService) signIn(ctx context.Context, u models.User) error {
	if err := s.setSession(ctx, u); err != nil {
		return err
	}
	s.log.Info("user logged in", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return nil
}

// Register creates an active traveler at the Normal tier and signs it in.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (models.User, error) {
	return s.register(ctx, fullName, email, password, models.RoleTraveler)
}

// RegisterAdmin creates an admin account. The secret code is checked before
// anything is stored.
func (s *AuthService) RegisterAdmin(ctx context.Context, fullName, email, password, secretCode string) (models.User, error) {
	if s.adminCode == "" || subtle.ConstantTimeCompare([]byte(secretCode), []byte(s.adminCode)) != 1 {
		return models.User{}, ErrInvalidAdminCode
	}
	return s.register(ctx, fullName, email, password, models.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, fullName, email, password string, role models.Role) (models.User, error) {
	if _, exists := s.repo.UserByEmail(ctx, email); exists {
		return models.User{}, ErrUserExists
	}
	pw, err := s.hasher.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.repo.AddUser(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: pw,
		Role:         role,
		Status:       models.StatusActive,
		Tier:         models.TierNormal,
	})
	if errors.Is(err, repository.ErrEmailTaken) {
		return models.User{}, ErrUserExists
	}
	if err != nil {
		return models.User{}, fmt.Errorf("add user: %w", err)
	}
	if err := s.setSession(ctx, u); err != nil {
		return models.User{}, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", string(role)))
	return u, nil
}

// Logout clears the session in memory and in the backend.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Remove(ctx, SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.current = nil
	return nil
}

// UpdateUser stores u and, when u is the signed-in user, refreshes the
// session with the stored values.
func (s *AuthService) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	ok, err := s.repo.UpdateUser(ctx, u)
	if errors.Is(err, repository.ErrEmailTaken) {
		return models.User{}, ErrUserExists
	}
	if err != nil {
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	stored, ok := s.repo.UserByID(ctx, u.ID)
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	s.mu.RLock()
	isCurrent := s.current != nil && s.current.ID == stored.ID
	s.mu.RUnlock()
	if isCurrent {
		if err := s.setSession(ctx, stored); err != nil {
			return models.User{}, err
		}
	}
	return stored, nil
}

// Current returns the signed-in user.
func (s *AuthService) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// Restore loads a previously saved session. The snapshot is trusted as is;
// credentials are not checked again.
func (s *AuthService) Restore(ctx context.Context) error {
	raw, ok, err := s.session.Get(ctx, SessionKey)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}

	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
	s.log.Info("session restored", zap.String("user_id", u.ID))
	return nil
}

func (s *AuthService) setSession(ctx context.Context, u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Set(ctx, SessionKey, string(data)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.current = &u
	return nil
}
