package models

import (
	"math"
	"time"
)

// DocumentStatus is derived from a document's expiry date and never stored.
type DocumentStatus string

const (
	DocumentExpired      DocumentStatus = "expired"
	DocumentExpiringSoon DocumentStatus = "expiring_soon"
	DocumentValid        DocumentStatus = "valid"
)

// ExpiringSoonDays is the window, inclusive, in which a document counts as
// expiring soon.
const ExpiringSoonDays = 30

// DaysUntil returns the number of whole days from now until date, rounded up
// the way a partial day still counts as one. Dates are read in now's location.
func DaysUntil(date string, now time.Time) (int, error) {
	t, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(t.Sub(now).Hours() / 24)), nil
}

// StatusAt derives the document status at the given instant.
func (d Document) StatusAt(now time.Time) (DocumentStatus, int, error) {
	days, err := DaysUntil(d.ExpiryDate, now)
	if err != nil {
		return "", 0, err
	}
	switch {
	case days < 0:
		return DocumentExpired, days, nil
	case days <= ExpiringSoonDays:
		return DocumentExpiringSoon, days, nil
	default:
		return DocumentValid, days, nil
	}
}
