package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/atinyakov/tranum/internal/currency"
	"github.com/atinyakov/tranum/internal/models"
	"github.com/atinyakov/tranum/internal/repository"
)

// DocumentView is a document with its status at the time it was listed.
type DocumentView struct {
	models.Document
	Status        models.DocumentStatus `json:"status"`
	DaysRemaining int                   `json:"daysRemaining"`
}

// Summary counts what a traveler sees on the home screen.
type Summary struct {
	Trips           int `json:"trips"`
	HealthRecords   int `json:"healthRecords"`
	ActiveDocuments int `json:"activeDocuments"`
}

// TravelerService scopes record operations to the owning traveler.
type TravelerService struct {
	store *repository.Store
	now   func() time.Time
}

// NewTravelerService constructs a TravelerService over store.
func NewTravelerService(store *repository.Store) *TravelerService {
	return &TravelerService{store: store, now: time.Now}
}

// ownership returns ErrNotFound or ErrNotOwner unless rec exists and belongs
// to userID.
func ownership[T interface{ OwnerID() string }](rec T, found bool, userID string) error {
	if !found {
		return ErrNotFound
	}
	if rec.OwnerID() != userID {
		return ErrNotOwner
	}
	return nil
}

// newestFirst sorts by a YYYY-MM-DD field, latest first, keeping insertion
// order among equal dates.
func newestFirst[T any](items []T, date func(T) string) []T {
	slices.SortStableFunc(items, func(a, b T) int { return cmp.Compare(date(b), date(a)) })
	return items
}

// Trips lists the traveler's trips, latest start date first.
func (s *TravelerService) Trips(ctx context.Context, userID string) []models.Trip {
	return newestFirst(s.store.TripsFor(ctx, userID), func(t models.Trip) string { return t.StartDate })
}

// AddTrip stores a new trip owned by userID.
func (s *TravelerService) AddTrip(ctx context.Context, userID string, t models.Trip) (models.Trip, error) {
	t.UserID = userID
	return s.store.AddTrip(ctx, t)
}

// UpdateTrip replaces a trip of userID. It fails with ErrNotFound or
// ErrNotOwner unless the stored record belongs to userID.
func (s *TravelerService) UpdateTrip(ctx context.Context, userID string, t models.Trip) error {
	existing, found := s.store.TripByID(ctx, t.ID)
	if err := ownership(existing, found, userID); err != nil {
		return err
	}
	t.UserID = userID
	_, err := s.store.UpdateTrip(ctx, t)
	return err
}

// DeleteTrip removes a trip of userID, with the same checks as UpdateTrip.
func (s *TravelerService) DeleteTrip(ctx context.Context, userID, id string) error {
	existing, found := s.store.TripByID(ctx, id)
	if err := ownership(existing, found, userID); err != nil {
		return err
	}
	return s.store.DeleteTrip(ctx, id)
}

// TotalSpent sums every ticket price in the traveler's currency and returns
// the code it is expressed in. Trips in an unknown currency add nothing.
func (s *TravelerService) TotalSpent(ctx context.Context, u models.User) (float64, string) {
	code := currency.Code(cmp.Or(u.Currency, currency.DefaultDisplayName))
	var total float64
	for _, t := range s.store.TripsFor(ctx, u.ID) {
		from := currency.Code(t.Currency)
		if code == "" || from == "" {
			continue
		}
		if v, err := currency.Convert(float64(t.TicketPrice), from, code); err == nil {
			total += v
		}
	}
	return total, code
}

// HealthRecords lists the traveler's records, latest first.
func (s *TravelerService) HealthRecords(ctx context.Context, userID string) []models.HealthRecord {
	return newestFirst(s.store.HealthRecordsFor(ctx, userID), func(h models.HealthRecord) string { return h.Date })
}

// AddHealthRecord stores a new health record owned by userID.
func (s *TravelerService) AddHealthRecord(ctx context.Context, userID string, h models.HealthRecord) (models.HealthRecord, error) {
	h.UserID = userID
	return s.store.AddHealthRecord(ctx, h)
}

// UpdateHealthRecord replaces a health record of userID. It fails with ErrNotFound or
// ErrNotOwner unless the stored record belongs to userID.
func (s *TravelerService) UpdateHealthRecord(ctx context.Context, userID string, h models.HealthRecord) error {
	existing, found := s.store.HealthRecordByID(ctx, h.ID)
	if err := ownership(existing, found, userID); err != nil {
		return err
	}
	h.UserID = userID
	_, err := s.store.UpdateHealthRecord(ctx, h)
	return err
}

// DeleteHealthRecord removes a health record of userID, with the same checks as UpdateHealthRecord.
func (s *TravelerService) DeleteHealthRecord(ctx context.Context, userID, id string) error {
	existing, found := s.store.HealthRecordByID(ctx, id)
	if err := ownership(existing, found, userID); err != nil {
		return err
	}
	return s.store.DeleteHealthRecord(ctx, id)
}

// Documents lists the traveler's documents, latest expiry first, with their
// current status. A document whose expiry date does not parse is reported
// as expired.
func (s *TravelerService) Documents(ctx context.Context, userID string) []DocumentView {
	docs := newestFirst(s.store.DocumentsFor(ctx, userID), func(d models.Document) string { return d.ExpiryDate })
	now := s.now()
	out := make([]DocumentView, 0, len(docs))
	for _, d := range docs {
		status, days, err := d.StatusAt(now)
		if err != nil {
			status = models.DocumentExpired
		}
		out = append(out, DocumentView{Document: d, Status: status, DaysRemaining: days})
	}
	return out
}

// AddDocument stores a new document owned by userID.
func (s *TravelerService) AddDocument(ctx context.Context, userID string, d models.Document) (models.Document, error) {
	d.UserID = userID
	return s.store.AddDocument(ctx, d)
}

// UpdateDocument replaces a document of userID. It fails with ErrNotFound or
// ErrNotOwner unless the stored record belongs to userID.
func (s *TravelerService) UpdateDocument(ctx context.Context, userID string, d models.Document) error {
	existing, found := s.store.DocumentByID(ctx, d.ID)
	if err := ownership(existing, found, userID); err != nil {
		return err
	}
	d.UserID = userID
	_, err := s.store.UpdateDocument(ctx, d)
	return err
}

// DeleteDocument removes a document of userID, with the same checks as UpdateDocument.
func (s *TravelerService) DeleteDocument(ctx context.Context, userID, id string) error {
	existing, found := s.store.DocumentByID(ctx, id)
	if err := ownership(existing, found, userID); err != nil {
		return err
	}
	return s.store.DeleteDocument(ctx, id)
}

// Luggage lists the traveler's tracked bags in the order they were added.
func (s *TravelerService) Luggage(ctx context.Context, userID string) []models.Luggage {
	return s.store.LuggageItemsFor(ctx, userID)
}

// AddLuggage stores a new luggage entry owned by userID.
func (s *TravelerService) AddLuggage(ctx context.Context, userID string, l models.Luggage) (models.Luggage, error) {
	l.UserID = userID
	return s.store.AddLuggage(ctx, l)
}

// UpdateLuggage replaces a luggage entry of userID. It fails with ErrNotFound or
// ErrNotOwner unless the stored record belongs to userID.
func (s *TravelerService) UpdateLuggage(ctx context.Context, userID string, l models.Luggage) error {
	existing, found := s.store.LuggageByID(ctx, l.ID)
	if err := ownership(existing, found, userID); err != nil {
		return err
	}
	l.UserID = userID
	_, err := s.store.UpdateLuggage(ctx, l)
	return err
}

// DeleteLuggage removes a luggage entry of userID, with the same checks as UpdateLuggage.
func (s *TravelerService) DeleteLuggage(ctx context.Context, userID, id string) error {
	existing, found := s.store.LuggageByID(ctx, id)
	if err := ownership(existing, found, userID); err != nil {
		return err
	}
	return s.store.DeleteLuggage(ctx, id)
}

// Summary counts trips, health records and documents not yet expired.
func (s *TravelerService) Summary(ctx context.Context, userID string) Summary {
	now := s.now()
	sum := Summary{
		Trips:         len(s.store.TripsFor(ctx, userID)),
		HealthRecords: len(s.store.HealthRecordsFor(ctx, userID)),
	}
	for _, d := range s.store.DocumentsFor(ctx, userID) {
		if days, err := models.DaysUntil(d.ExpiryDate, now); err == nil && days >= 0 {
			sum.ActiveDocuments++
		}
	}
	return sum
}
