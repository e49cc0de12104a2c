// Package repository provides the record store: five collections held in
// memory and written through to a storage.Backend after every mutation.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/atinyakov/tranum/internal/hash"
	"github.com/atinyakov/tranum/internal/models"
	"github.com/atinyakov/tranum/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Keys of the persisted collections.
const (
	UsersKey         = "tranum_users"
	TripsKey         = "tranum_trips"
	HealthRecordsKey = "tranum_healthRecords"
	DocumentsKey     = "tranum_documents"
	LuggageKey       = "tranum_luggage"
)

// ErrEmailTaken is returned when another user already owns the email,
// compared without regard to case.
var ErrEmailTaken = errors.New("email already registered")

// Store is the sole owner of the users, trips, health records, documents and
// luggage collections.
type Store struct {
	backend     storage.Backend
	log         *zap.Logger
	hasher      hash.Hasher
	newID       func() string
	newTRNumber func() string

	mu        sync.Mutex
	users     []models.User
	trips     []models.Trip
	health    []models.HealthRecord
	documents []models.Document
	luggage   []models.Luggage
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for seed and cascade events.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithPasswordHasher sets how seed credentials are stored. The default keeps
// them as given.
func WithPasswordHasher(h hash.Hasher) Option {
	return func(s *Store) { s.hasher = h }
}

// WithIDGenerator replaces the record id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithTRNumberGenerator replaces the travel reference number source.
func WithTRNumberGenerator(fn func() string) Option {
	return func(s *Store) { s.newTRNumber = fn }
}

// NewStore loads every collection from backend. Absent keys read as empty
// collections; a value that does not decode is an error.
func NewStore(ctx context.Context, backend storage.Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend:     backend,
		log:         zap.NewNop(),
		hasher:      hash.PlainHasher{},
		newID:       uuid.NewString,
		newTRNumber: NewTRNumber,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	if err := loadCollection(ctx, s.backend, UsersKey, &s.users); err != nil {
		return err
	}
	if err := loadCollection(ctx, s.backend, TripsKey, &s.trips); err != nil {
		return err
	}
	if err := loadCollection(ctx, s.backend, HealthRecordsKey, &s.health); err != nil {
		return err
	}
	if err := loadCollection(ctx, s.backend, DocumentsKey, &s.documents); err != nil {
		return err
	}
	return loadCollection(ctx, s.backend, LuggageKey, &s.luggage)
}

func loadCollection[T any](ctx context.Context, b storage.Backend, key string, dst *[]T) error {
	raw, ok, err := b.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		*dst = []T{}
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	if *dst == nil {
		*dst = []T{}
	}
	return nil
}

// save overwrites all five collections. Callers hold s.mu.
func (s *Store) save(ctx context.Context) error {
	if err := saveCollection(ctx, s.backend, UsersKey, s.users); err != nil {
		return err
	}
	if err := saveCollection(ctx, s.backend, TripsKey, s.trips); err != nil {
		return err
	}
	if err := saveCollection(ctx, s.backend, HealthRecordsKey, s.health); err != nil {
		return err
	}
	if err := saveCollection(ctx, s.backend, DocumentsKey, s.documents); err != nil {
		return err
	}
	return saveCollection(ctx, s.backend, LuggageKey, s.luggage)
}

func saveCollection[T any](ctx context.Context, b storage.Backend, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := b.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// owned is satisfied by every record type that belongs to a user.
type owned interface {
	RecordID() string
	OwnerID() string
}

func indexOf[T owned](items []T, id string) int {
	return slices.IndexFunc(items, func(v T) bool { return v.RecordID() == id })
}

func ownedBy[T owned](items []T, userID string) []T {
	out := []T{}
	for _, v := range items {
		if v.OwnerID() == userID {
			out = append(out, v)
		}
	}
	return out
}

func byID[T owned](items []T, id string) (T, bool) {
	if i := indexOf(items, id); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

func withoutID[T owned](items []T, id string) []T {
	return slices.DeleteFunc(items, func(v T) bool { return v.RecordID() == id })
}

func withoutOwner[T owned](items []T, userID string) ([]T, int) {
	before := len(items)
	items = slices.DeleteFunc(items, func(v T) bool { return v.OwnerID() == userID })
	return items, before - len(items)
}
