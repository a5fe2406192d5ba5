package utils

import (
	"fmt"
	"strconv"
	"strings"

	"p9e.in/vms/store"
)

// NextID derives the next identifier for a collection that encodes its
// sequence in the id itself (VEH-001, DRI-007, ...). It scans the numeric
// suffix after the last dash of every id carrying the prefix, ignores ids
// that do not parse, and pads max+1 to width digits. An empty collection
// starts at 1.
func NextID(ids []string, prefix string, width int) string {
	max := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix+"-") {
			continue
		}
		suffix := id[strings.LastIndex(id, "-")+1:]
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%0*d", prefix, width, max+1)
}

// RequestCounterKey is the durable counter behind request ids. This is a
// deliberately different mechanism from NextID: request ids come from a
// stored monotonic counter, not from scanning the fetched collection, and the
// two are kept separate.
const RequestCounterKey = "vehicleRequestCounter"

// NextRequestID increments the persisted counter and combines it with the
// calendar year: VEH-REQ-2026-001.
func NextRequestID(s store.Store, year int) (string, error) {
	counter := 1
	if raw, ok := s.Get(RequestCounterKey); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			counter = n + 1
		}
	}
	if err := s.Set(RequestCounterKey, strconv.Itoa(counter)); err != nil {
		return "", fmt.Errorf("persisting request counter: %w", err)
	}
	return fmt.Sprintf("VEH-REQ-%d-%03d", year, counter), nil
}
