// Package models defines the core data structures for travelers, admins and
// the records they own.
package models

// DateLayout is the calendar date format records are written with.
const DateLayout = "2006-01-02"

// Role separates travelers from console administrators.
type Role string

const (
	// RoleTraveler is a regular account owning trips and documents.
	RoleTraveler Role = "traveler"
	// RoleAdmin is a console account.
	RoleAdmin Role = "admin"
)

// Status is the account state an admin can set.
type Status string

const (
	StatusActive Status = "active"
	StatusBanned Status = "banned"
	StatusLocked Status = "locked"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusBanned, StatusLocked:
		return true
	}
	return false
}

// Tier is a display-only traveler classification.
type Tier string

const (
	TierNormal  Tier = "Normal"
	TierSilver  Tier = "Silver"
	TierGold    Tier = "Gold"
	TierDiamond Tier = "Diamond"
)

// User represents an account with credentials and profile attributes.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// FullName is the display name.
	FullName string `json:"fullName"`
	// Email is the login key, unique regardless of case.
	Email string `json:"email"`
	// PasswordHash is the stored credential.
	PasswordHash string `json:"passwordHash"`
	Role         Role   `json:"role"`
	// TRNumber is the travel reference number, set for travelers only.
	TRNumber       string `json:"trNumber,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Status         Status `json:"status,omitempty"`
	Tier           Tier   `json:"tier,omitempty"`
	// Currency is a display name such as "United States Dollar (USD)".
	Currency     string `json:"currency,omitempty"`
	HealthStatus string `json:"healthStatus,omitempty"`
	BloodType    string `json:"bloodType,omitempty"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	Gender       string `json:"gender,omitempty"`
}

// Trip is a journey owned by a user.
type Trip struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	From        string `json:"from"`
	To          string `json:"to"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	TicketPrice Price  `json:"ticketPrice"`
	// Currency is a display name, not a code.
	Currency string `json:"currency"`
	// Attachments are base64 data URIs.
	TicketFile       string `json:"ticketFile,omitempty"`
	BoardingPassFile string `json:"boardingPassFile,omitempty"`
	HotelFile        string `json:"hotelFile,omitempty"`
}

// HealthRecord is a medical note owned by a user.
type HealthRecord struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Details string `json:"details"`
	Doctor  string `json:"doctor,omitempty"`
	File    string `json:"file,omitempty"`
	Date    string `json:"date"`
}

// Document is an identity or travel document owned by a user.
type Document struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	IssuingCountry string `json:"issuingCountry"`
	DocumentNumber string `json:"documentNumber"`
	IssueDate      string `json:"issueDate"`
	ExpiryDate     string `json:"expiryDate"`
	File           string `json:"file,omitempty"`
}

// Luggage is a tracked bag owned by a user.
type Luggage struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	TrackingCode string `json:"trackingCode"`
}

// RecordID and OwnerID let the store treat the owned collections uniformly.

func (t Trip) RecordID() string         { return t.ID }
func (t Trip) OwnerID() string          { return t.UserID }
func (h HealthRecord) RecordID() string { return h.ID }
func (h HealthRecord) OwnerID() string  { return h.UserID }
func (d Document) RecordID() string     { return d.ID }
func (d Document) OwnerID() string      { return d.UserID }
func (l Luggage) RecordID() string      { return l.ID }
func (l Luggage) OwnerID() string       { return l.UserID }
