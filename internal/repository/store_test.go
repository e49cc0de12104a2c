package repository

import (
	"context"
	"errors"
	"math"
	"regexp"
	"testing"

	"github.com/atinyakov/tranum/internal/models"
	"github.com/atinyakov/tranum/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingBackend records writes on top of an in-memory backend.
type countingBackend struct {
	*storage.MemoryBackend
	sets   int
	setErr error
}

func (c *countingBackend) Set(ctx context.Context, key, value string) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	return c.MemoryBackend.Set(ctx, key, value)
}

func newTestStore(t *testing.T) (*Store, *countingBackend) {
	t.Helper()
	b := &countingBackend{MemoryBackend: storage.NewMemoryBackend()}
	s, err := NewStore(context.Background(), b)
	require.NoError(t, err)
	return s, b
}

func addTraveler(t *testing.T, s *Store, email string) models.User {
	t.Helper()
	u, err := s.AddUser(context.Background(), models.User{
		FullName: "Traveler " + email,
		Email:    email,
		Role:     models.RoleTraveler,
		Status:   models.StatusActive,
		Tier:     models.TierNormal,
	})
	require.NoError(t, err)
	return u
}

func TestAdd_AssignsUniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	owner := addTraveler(t, s, "a@b.com")

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		trip, err := s.AddTrip(ctx, models.Trip{ID: "caller-supplied", UserID: owner.ID, From: "DXB", To: "CDG"})
		require.NoError(t, err)
		require.NotEqual(t, "caller-supplied", trip.ID)
		require.False(t, seen[trip.ID], "duplicate id %s", trip.ID)
		seen[trip.ID] = true
	}
	assert.Len(t, s.TripsFor(ctx, owner.ID), 50)
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	s, b := newTestStore(t)
	ctx := context.Background()
	owner := addTraveler(t, s, "a@b.com")
	doc, err := s.AddDocument(ctx, models.Document{UserID: owner.ID, Name: "Passport", ExpiryDate: "2030-01-01"})
	require.NoError(t, err)

	before := s.Documents(ctx)
	writes := b.sets

	ok, err := s.UpdateDocument(ctx, models.Document{ID: "missing", UserID: owner.ID, Name: "Visa"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, s.Documents(ctx))
	assert.Equal(t, writes, b.sets, "no-op update must not write")

	ok, err = s.UpdateUser(ctx, models.User{ID: "missing", Email: "x@y.z"})
	require.NoError(t, err)
	assert.False(t, ok)

	doc.Name = "Passport (renewed)"
	ok, err = s.UpdateDocument(ctx, doc)
	require.NoError(t, err)
	assert.True(t, ok)
	got, found := s.DocumentByID(ctx, doc.ID)
	require.True(t, found)
	assert.Equal(t, "Passport (renewed)", got.Name)
}

func TestDeleteUser_Cascades(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	gone := addTraveler(t, s, "gone@example.com")
	kept := addTraveler(t, s, "kept@example.com")

	for _, u := range []models.User{gone, kept} {
		_, err := s.AddTrip(ctx, models.Trip{UserID: u.ID})
		require.NoError(t, err)
		_, err = s.AddHealthRecord(ctx, models.HealthRecord{UserID: u.ID})
		require.NoError(t, err)
		_, err = s.AddDocument(ctx, models.Document{UserID: u.ID})
		require.NoError(t, err)
		_, err = s.AddLuggage(ctx, models.Luggage{UserID: u.ID, TrackingCode: "EK123"})
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteUser(ctx, gone.ID))

	_, found := s.UserByID(ctx, gone.ID)
	assert.False(t, found)
	assert.Empty(t, s.TripsFor(ctx, gone.ID))
	assert.Empty(t, s.HealthRecordsFor(ctx, gone.ID))
	assert.Empty(t, s.DocumentsFor(ctx, gone.ID))
	assert.Empty(t, s.LuggageItemsFor(ctx, gone.ID))

	assert.Len(t, s.TripsFor(ctx, kept.ID), 1)
	assert.Len(t, s.HealthRecordsFor(ctx, kept.ID), 1)
	assert.Len(t, s.DocumentsFor(ctx, kept.ID), 1)
	assert.Len(t, s.LuggageItemsFor(ctx, kept.ID), 1)
	assert.Len(t, s.ListUsers(ctx), 1)
}

func TestAddUser_EmailUniqueIgnoringCase(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	addTraveler(t, s, "dup@example.com")

	_, err := s.AddUser(ctx, models.User{Email: "DUP@Example.com", Role: models.RoleTraveler})
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, s.ListUsers(ctx), 1)

	u, found := s.UserByEmail(ctx, "Dup@EXAMPLE.com")
	require.True(t, found)
	assert.Equal(t, "dup@example.com", u.Email)
}

func TestAddUser_TRNumberOnlyForTravelers(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	pattern := regexp.MustCompile(`^TR[1-9]\d{9}$`)

	traveler := addTraveler(t, s, "t@example.com")
	assert.Regexp(t, pattern, traveler.TRNumber)

	admin, err := s.AddUser(ctx, models.User{Email: "admin@example.com", Role: models.RoleAdmin, TRNumber: "TR0000000000"})
	require.NoError(t, err)
	assert.Empty(t, admin.TRNumber)
}

func TestUpdateUser_KeepsTRNumberAndRole(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	u := addTraveler(t, s, "t@example.com")
	other := addTraveler(t, s, "other@example.com")

	edited := u
	edited.TRNumber = "TR1111111111"
	edited.Role = models.RoleAdmin
	edited.Tier = models.TierDiamond
	ok, err := s.UpdateUser(ctx, edited)
	require.NoError(t, err)
	require.True(t, ok)

	got, _ := s.UserByID(ctx, u.ID)
	assert.Equal(t, u.TRNumber, got.TRNumber)
	assert.Equal(t, models.RoleTraveler, got.Role)
	assert.Equal(t, models.TierDiamond, got.Tier)

	edited.Email = "OTHER@example.com"
	_, err = s.UpdateUser(ctx, edited)
	assert.ErrorIs(t, err, ErrEmailTaken)
	_ = other
}

func TestInitialize_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Initialize(ctx))
	once := len(s.ListUsers(ctx))
	require.NoError(t, s.Initialize(ctx))

	assert.Equal(t, 2, once)
	assert.Len(t, s.ListUsers(ctx), once)

	admin, found := s.UserByEmail(ctx, "ala1@gmail.com")
	require.True(t, found)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Empty(t, admin.TRNumber)

	traveler, found := s.UserByEmail(ctx, "ala@gmail.com")
	require.True(t, found)
	assert.Equal(t, models.TierGold, traveler.Tier)
	assert.Equal(t, SeedPassword, traveler.PasswordHash)
	assert.NotEmpty(t, traveler.TRNumber)
}

func TestInitialize_SkipsWhenUsersExist(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	addTraveler(t, s, "first@example.com")

	require.NoError(t, s.Initialize(ctx))
	assert.Len(t, s.ListUsers(ctx), 1)
}

func TestStore_ReloadsFromBackend(t *testing.T) {
	ctx := context.Background()
	b := storage.NewMemoryBackend()
	s, err := NewStore(ctx, b)
	require.NoError(t, err)

	u, err := s.AddUser(ctx, models.User{Email: "a@b.com", Role: models.RoleTraveler})
	require.NoError(t, err)
	trip, err := s.AddTrip(ctx, models.Trip{UserID: u.ID, TicketPrice: 420.5, Currency: "Euro (EUR)"})
	require.NoError(t, err)

	reopened, err := NewStore(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, s.ListUsers(ctx), reopened.ListUsers(ctx))
	got, found := reopened.TripByID(ctx, trip.ID)
	require.True(t, found)
	assert.Equal(t, trip, got)

	raw, ok, err := b.Get(ctx, LuggageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestNewStore_MalformedData(t *testing.T) {
	ctx := context.Background()
	b := storage.NewMemoryBackend()
	require.NoError(t, b.Set(ctx, TripsKey, "{not json"))

	_, err := NewStore(ctx, b)
	assert.ErrorContains(t, err, "decode tranum_trips")
}

func TestNewStore_StringTicketPrices(t *testing.T) {
	ctx := context.Background()
	b := storage.NewMemoryBackend()
	require.NoError(t, b.Set(ctx, TripsKey,
		`[{"id":"t1","userId":"u1","from":"DXB","to":"CDG","ticketPrice":"100","currency":"Euro (EUR)"},`+
			`{"id":"t2","userId":"u1","from":"CDG","to":"DXB","ticketPrice":"free","currency":"Euro (EUR)"}]`))

	s, err := NewStore(ctx, b)
	require.NoError(t, err)

	numeric, found := s.TripByID(ctx, "t1")
	require.True(t, found)
	assert.Equal(t, models.Price(100), numeric.TicketPrice)

	garbage, found := s.TripByID(ctx, "t2")
	require.True(t, found)
	assert.True(t, math.IsNaN(float64(garbage.TicketPrice)))

	// Saving rewrites both as JSON values that load again.
	require.NoError(t, s.DeleteLuggage(ctx, "none"))
	raw, _, err := b.Get(ctx, TripsKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"ticketPrice":100`)
	assert.Contains(t, raw, `"ticketPrice":null`)
	_, err = NewStore(ctx, b)
	require.NoError(t, err)
}

func TestStore_WriteFailurePropagates(t *testing.T) {
	s, b := newTestStore(t)
	b.setErr = errors.New("quota exceeded")

	_, err := s.AddLuggage(context.Background(), models.Luggage{UserID: "u1", TrackingCode: "X"})
	require.Error(t, err)
	assert.ErrorIs(t, err, b.setErr)
}

func TestReads_ReturnSnapshots(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	owner := addTraveler(t, s, "a@b.com")
	_, err := s.AddLuggage(ctx, models.Luggage{UserID: owner.ID, TrackingCode: "AA1"})
	require.NoError(t, err)

	items := s.LuggageItemsFor(ctx, owner.ID)
	items[0].TrackingCode = "changed"
	all := s.LuggageItems(ctx)
	all[0].TrackingCode = "changed"

	assert.Equal(t, "AA1", s.LuggageItemsFor(ctx, owner.ID)[0].TrackingCode)
}

func TestDelete_RemovesOnlyMatch(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	owner := addTraveler(t, s, "a@b.com")
	first, err := s.AddHealthRecord(ctx, models.HealthRecord{UserID: owner.ID, Name: "Vaccine"})
	require.NoError(t, err)
	second, err := s.AddHealthRecord(ctx, models.HealthRecord{UserID: owner.ID, Name: "Allergy"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteHealthRecord(ctx, first.ID))
	left := s.HealthRecordsFor(ctx, owner.ID)
	require.Len(t, left, 1)
	assert.Equal(t, second.ID, left[0].ID)
}
