package utils

import (
	"testing"
	"time"
)

type licensed struct {
	id     string
	expiry string
	status string
}

func TestExpiredOfDriverRule(t *testing.T) {
	today := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	drivers := []licensed{
		{id: "DRI-001", expiry: "2024-06-15"},            // expires today
		{id: "DRI-002", expiry: "2024-06-16"},            // tomorrow
		{id: "DRI-003", expiry: "2023-01-01"},            // long gone
		{id: "DRI-004", expiry: ""},                      // no date on record
		{id: "DRI-005", expiry: "2024-06-14T08:00:00Z"},  // timestamp form
	}

	got := ExpiredOf(drivers, today, ExpiredOnOrBefore,
		func(d licensed) string { return d.expiry }, nil)

	want := map[string]bool{"DRI-001": true, "DRI-003": true, "DRI-005": true}
	if len(got) != len(want) {
		t.Fatalf("expected %d expired drivers, got %d", len(want), len(got))
	}
	for _, d := range got {
		if !want[d.id] {
			t.Errorf("driver %s unexpectedly classified expired", d.id)
		}
	}
}

func TestExpiredOfVehicleRule(t *testing.T) {
	today := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	vehicles := []licensed{
		{id: "VEH-001", expiry: "2024-06-15", status: "Available"}, // equal day: NOT expired
		{id: "VEH-002", expiry: "2024-06-14", status: "Available"},
		{id: "VEH-003", expiry: "2025-01-01", status: "EXPIRED"},  // status wins over date
		{id: "VEH-004", expiry: "2025-01-01", status: "expired"},  // case-insensitive
		{id: "VEH-005", expiry: "2025-01-01", status: "Available"},
	}

	got := ExpiredOf(vehicles, today, ExpiredBefore,
		func(v licensed) string { return v.expiry },
		func(v licensed) string { return v.status })

	want := map[string]bool{"VEH-002": true, "VEH-003": true, "VEH-004": true}
	if len(got) != len(want) {
		t.Fatalf("expected %d expired vehicles, got %d: %v", len(want), len(got), got)
	}
	for _, v := range got {
		if !want[v.id] {
			t.Errorf("vehicle %s unexpectedly classified expired", v.id)
		}
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2024, 6, 15, 23, 59, 59, 123, time.UTC)
	got := Midnight(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("Midnight left time-of-day: %v", got)
	}
	if got.Year() != 2024 || got.Month() != time.June || got.Day() != 15 {
		t.Errorf("Midnight changed the date: %v", got)
	}
}
