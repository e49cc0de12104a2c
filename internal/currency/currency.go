// Package currency converts ticket prices between currencies using a fixed
// rate table bridged through the US dollar.
package currency

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Base is the currency every rate is expressed against.
const Base = "USD"

// DefaultDisplayName is assumed for users who never picked a currency.
const DefaultDisplayName = "United States Dollar (USD)"

// ErrUnconvertible is returned when an amount is not numeric or a code has
// no known rate.
var ErrUnconvertible = errors.New("unconvertible amount")

// Rates holds units per one USD. The table is static.
var Rates = map[string]float64{
	"USD": 1,
	"EUR": 0.93,
	"JPY": 157.3,
	"GBP": 0.79,
	"AED": 3.67,
	"AUD": 1.5,
	"CAD": 1.37,
	"CHF": 0.9,
	"CNY": 7.24,
	"SEK": 10.48,
	"NZD": 1.63,
}

var codePattern = regexp.MustCompile(`\((.*?)\)`)

// Convert returns amount expressed in the to currency, rounded to cents.
// Equal codes return the amount untouched, even for codes missing from Rates.
func Convert(amount float64, from, to string) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrUnconvertible
	}
	if from == to {
		return amount, nil
	}
	fromRate, ok := Rates[from]
	if !ok {
		return 0, ErrUnconvertible
	}
	toRate, ok := Rates[to]
	if !ok {
		return 0, ErrUnconvertible
	}
	return roundCents(amount / fromRate * toRate), nil
}

// ParseAmount coerces textual input the way stored prices may arrive.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrUnconvertible
	}
	return v, nil
}

// Code extracts "USD" from "United States Dollar (USD)". It returns an empty
// string when the name has no parenthesized token.
func Code(displayName string) string {
	m := codePattern.FindStringSubmatch(displayName)
	if m == nil {
		return ""
	}
	return m[1]
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
