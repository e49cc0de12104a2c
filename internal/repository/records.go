package repository

import (
	"context"
	"slices"

	"github.com/atinyakov/tranum/internal/models"
)

// Trips returns every trip in insertion order.
func (s *Store) Trips(_ context.Context) []models.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.trips)
}

// TripsFor returns the trips owned by userID in insertion order.
func (s *Store) TripsFor(_ context.Context, userID string) []models.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ownedBy(s.trips, userID)
}

// TripByID returns the trip with id.
func (s *Store) TripByID(_ context.Context, id string) (models.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return byID(s.trips, id)
}

// AddTrip stores rec under a fresh id and returns it.
func (s *Store) AddTrip(ctx context.Context, rec models.Trip) (models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.newID()
	s.trips = append(s.trips, rec)
	if err := s.save(ctx); err != nil {
		return models.Trip{}, err
	}
	return rec, nil
}

// UpdateTrip replaces the trip with rec.ID. It reports false, without
// writing, when there is none.
func (s *Store) UpdateTrip(ctx context.Context, rec models.Trip) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.trips, rec.ID)
	if i < 0 {
		return false, nil
	}
	s.trips[i] = rec
	return true, s.save(ctx)
}

// DeleteTrip removes the trip with id.
func (s *Store) DeleteTrip(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = withoutID(s.trips, id)
	return s.save(ctx)
}

// HealthRecords returns every health record in insertion order.
func (s *Store) HealthRecords(_ context.Context) []models.HealthRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.health)
}

// HealthRecordsFor returns the health records owned by userID in insertion order.
func (s *Store) HealthRecordsFor(_ context.Context, userID string) []models.HealthRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ownedBy(s.health, userID)
}

// HealthRecordByID returns the health record with id.
func (s *Store) HealthRecordByID(_ context.Context, id string) (models.HealthRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return byID(s.health, id)
}

// AddHealthRecord stores rec under a fresh id and returns it.
func (s *Store) AddHealthRecord(ctx context.Context, rec models.HealthRecord) (models.HealthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.newID()
	s.health = append(s.health, rec)
	if err := s.save(ctx); err != nil {
		return models.HealthRecord{}, err
	}
	return rec, nil
}

// UpdateHealthRecord behaves like UpdateTrip.
func (s *Store) UpdateHealthRecord(ctx context.Context, rec models.HealthRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.health, rec.ID)
	if i < 0 {
		return false, nil
	}
	s.health[i] = rec
	return true, s.save(ctx)
}

// DeleteHealthRecord removes the health record with id.
func (s *Store) DeleteHealthRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.health = withoutID(s.health, id)
	return s.save(ctx)
}

// Documents returns every document in insertion order.
func (s *Store) Documents(_ context.Context) []models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.documents)
}

// DocumentsFor returns the documents owned by userID in insertion order.
func (s *Store) DocumentsFor(_ context.Context, userID string) []models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ownedBy(s.documents, userID)
}

// DocumentByID returns the document with id.
func (s *Store) DocumentByID(_ context.Context, id string) (models.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return byID(s.documents, id)
}

// AddDocument stores rec under a fresh id and returns it.
func (s *Store) AddDocument(ctx context.Context, rec models.Document) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.newID()
	s.documents = append(s.documents, rec)
	if err := s.save(ctx); err != nil {
		return models.Document{}, err
	}
	return rec, nil
}

// UpdateDocument behaves like UpdateTrip.
func (s *Store) UpdateDocument(ctx context.Context, rec models.Document) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.documents, rec.ID)
	if i < 0 {
		return false, nil
	}
	s.documents[i] = rec
	return true, s.save(ctx)
}

// DeleteDocument removes the document with id.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = withoutID(s.documents, id)
	return s.save(ctx)
}

// LuggageItems returns every luggage entry in insertion order.
func (s *Store) LuggageItems(_ context.Context) []models.Luggage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.luggage)
}

// LuggageItemsFor returns the luggage entries owned by userID in insertion order.
func (s *Store) LuggageItemsFor(_ context.Context, userID string) []models.Luggage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ownedBy(s.luggage, userID)
}

// LuggageByID returns the luggage entry with id.
func (s *Store) LuggageByID(_ context.Context, id string) (models.Luggage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return byID(s.luggage, id)
}

// AddLuggage stores rec under a fresh id and returns it.
func (s *Store) AddLuggage(ctx context.Context, rec models.Luggage) (models.Luggage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.newID()
	s.luggage = append(s.luggage, rec)
	if err := s.save(ctx); err != nil {
		return models.Luggage{}, err
	}
	return rec, nil
}

// UpdateLuggage behaves like UpdateTrip.
func (s *Store) UpdateLuggage(ctx context.Context, rec models.Luggage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.luggage, rec.ID)
	if i < 0 {
		return false, nil
	}
	s.luggage[i] = rec
	return true, s.save(ctx)
}

// DeleteLuggage removes the luggage entry with id.
func (s *Store) DeleteLuggage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.luggage = withoutID(s.luggage, id)
	return s.save(ctx)
}
