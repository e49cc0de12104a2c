package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/atinyakov/tranum/internal/currency"
)

// Price is a ticket price. Older data stores it as a string, so both JSON
// numbers and numeric strings are accepted. Other strings and null load as
// NaN, which no conversion accepts.
type Price float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := currency.ParseAmount(s)
		if err != nil {
			v = math.NaN()
		}
		*p = Price(v)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*p = Price(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

// MarshalJSON writes a JSON number, or null when the price is not a number.
func (p Price) MarshalJSON() ([]byte, error) {
	v := float64(p)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
}
