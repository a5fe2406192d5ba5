package utils

import (
	"strings"
	"time"
)

// ExpiryRule decides how an entity's expiry date compares against today.
// Drivers are out of service on the expiry day itself; vehicles only after
// it has passed.
type ExpiryRule int

const (
	// ExpiredOnOrBefore flags dates <= today (driver rule).
	ExpiredOnOrBefore ExpiryRule = iota
	// ExpiredBefore flags dates < today (vehicle rule).
	ExpiredBefore
)

// Midnight strips the time-of-day, keeping the date in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseExpiry accepts the date shapes the backend emits: full RFC 3339
// timestamps or bare yyyy-mm-dd dates. Empty or unparsable input means no
// expiry on record.
func ParseExpiry(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsExpired classifies one expiry date against today at midnight. A status
// already reading "EXPIRED" (any case) trips regardless of the date; pass an
// empty status to classify by date alone.
func IsExpired(rawExpiry, status string, today time.Time, rule ExpiryRule) bool {
	if strings.EqualFold(status, "EXPIRED") {
		return true
	}
	expiry, ok := ParseExpiry(rawExpiry)
	if !ok {
		return false
	}
	expiry = Midnight(expiry)
	day := Midnight(today)
	switch rule {
	case ExpiredOnOrBefore:
		return !expiry.After(day)
	case ExpiredBefore:
		return expiry.Before(day)
	}
	return false
}

// ExpiredOf returns the items whose expiry date trips the rule, compared at
// midnight against today. statusOf may be nil; when present, an item whose
// status already reads "EXPIRED" (any case) is flagged regardless of date.
// The source slice is never mutated.
func ExpiredOf[T any](items []T, today time.Time, rule ExpiryRule, expiryOf func(T) string, statusOf func(T) string) []T {
	var out []T
	for _, item := range items {
		status := ""
		if statusOf != nil {
			status = statusOf(item)
		}
		if IsExpired(expiryOf(item), status, today, rule) {
			out = append(out, item)
		}
	}
	return out
}
