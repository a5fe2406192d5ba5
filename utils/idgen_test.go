package utils

import (
	"testing"

	"p9e.in/vms/store"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name   string
		ids    []string
		prefix string
		width  int
		want   string
	}{
		{"empty collection starts at 1", nil, "VEH", 3, "VEH-001"},
		{"uses max plus one", []string{"VEH-001", "VEH-007"}, "VEH", 3, "VEH-008"},
		{"gaps are not reused", []string{"VEH-001", "VEH-003"}, "VEH", 3, "VEH-004"},
		{"unparsable suffixes ignored", []string{"VEH-OLD", "VEH-002"}, "VEH", 3, "VEH-003"},
		{"foreign prefixes ignored", []string{"DRI-009", "VEH-002"}, "VEH", 3, "VEH-003"},
		{"all invalid falls back to 1", []string{"junk", "VEH-"}, "VEH", 3, "VEH-001"},
		{"width pads correctly", []string{"DRI-099"}, "DRI", 3, "DRI-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.ids, tt.prefix, tt.width); got != tt.want {
				t.Errorf("NextID(%v, %q, %d) = %q, expected %q", tt.ids, tt.prefix, tt.width, got, tt.want)
			}
		})
	}
}

func TestNextRequestID(t *testing.T) {
	s := store.NewMemStore()

	first, err := NextRequestID(s, 2026)
	if err != nil {
		t.Fatalf("NextRequestID: %v", err)
	}
	if first != "VEH-REQ-2026-001" {
		t.Errorf("first id = %q, expected VEH-REQ-2026-001", first)
	}

	second, err := NextRequestID(s, 2026)
	if err != nil {
		t.Fatalf("NextRequestID: %v", err)
	}
	if second != "VEH-REQ-2026-002" {
		t.Errorf("second id = %q, expected VEH-REQ-2026-002", second)
	}

	// The counter survives independently of any fetched collection.
	if raw, ok := s.Get(RequestCounterKey); !ok || raw != "2" {
		t.Errorf("persisted counter = %q (ok=%v), expected 2", raw, ok)
	}
}
