// Package calendar projects months onto a fixed Saturday-first 6×7 grid and
// defines the YYYY-MM-DD keys that partition date notes.
package calendar

import (
	"fmt"
	"time"

	"github.com/starford/startpage/internal/apperr"
)

const keyLayout = "2006-01-02"

// DateKey identifies a calendar day as YYYY-MM-DD.
type DateKey string

// KeyOf returns the key of the given day. Out-of-range months and days are
// normalised the way time.Date does, so KeyOf(2024, 13, 1) is 2025-01-01.
func KeyOf(year int, month time.Month, day int) DateKey {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return DateKey(fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day()))
}

// KeyFromTime returns the key of t's calendar day in t's location.
func KeyFromTime(t time.Time) DateKey {
	return KeyOf(t.Year(), t.Month(), t.Day())
}

// ParseKey validates k and returns its date at midnight UTC.
func ParseKey(k DateKey) (time.Time, error) {
	t, err := time.Parse(keyLayout, string(k))
	if err != nil {
		return time.Time{}, apperr.Validation(fmt.Errorf("date key %q: %w", k, err))
	}
	return t, nil
}

// Valid reports whether k is a canonical key.
func (k DateKey) Valid() bool {
	t, err := ParseKey(k)
	return err == nil && KeyFromTime(t) == k
}

func (k DateKey) String() string { return string(k) }
