package utils

import "strings"

// StatusAll is the sentinel filter value that matches every status.
const StatusAll = "All"

// RegisterPageSize is the fixed page size of the vehicle and driver registers.
const RegisterPageSize = 7

// Filter returns the items matching a free-text query and a status filter.
// The query is trimmed and lower-cased; an item matches when the query is
// empty or any accessor's text contains it case-insensitively. Status "All"
// matches everything, otherwise statusOf(item) must equal status exactly.
// Order is preserved; the input is never mutated.
func Filter[T any](items []T, query, status string, statusOf func(T) string, fields ...func(T) string) []T {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []T
	for _, item := range items {
		if q != "" {
			matched := false
			for _, field := range fields {
				if strings.Contains(strings.ToLower(field(item)), q) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if status != StatusAll && statusOf != nil && statusOf(item) != status {
			continue
		}
		out = append(out, item)
	}
	return out
}

// TotalPages is ceil(count / size); zero items means zero pages.
func TotalPages(count, size int) int {
	if size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// ClampPage keeps a requested page inside [1, totalPages]. Navigating past
// either boundary is a no-op, so out-of-range values snap to the edge. A page
// of an empty result is always 1.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}

// Paginate slices out one page of items. Page numbers are 1-based and
// clamped first.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return nil
	}
	page = ClampPage(page, TotalPages(len(items), size))
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
