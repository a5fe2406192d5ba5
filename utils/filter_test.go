package utils

import (
	"reflect"
	"testing"
)

type row struct {
	name   string
	nic    string
	status string
}

func names(rows []row) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.name)
	}
	return out
}

func TestFilter(t *testing.T) {
	rows := []row{
		{"Kumara Silva", "851234567V", "Available"},
		{"Nimal Perera", "902345678V", "Expired"},
		{"Sunil Kumara", "751234999V", "Available"},
		{"Amara Jay", "881111222V", "Expired"},
	}
	statusOf := func(r row) string { return r.status }
	fields := []func(r row) string{
		func(r row) string { return r.name },
		func(r row) string { return r.nic },
	}

	tests := []struct {
		name   string
		query  string
		status string
		want   []string
	}{
		{"empty query all status returns everything", "", StatusAll, []string{"Kumara Silva", "Nimal Perera", "Sunil Kumara", "Amara Jay"}},
		{"query matches any field case-insensitively", "KUMARA", StatusAll, []string{"Kumara Silva", "Sunil Kumara"}},
		{"query matches nic field", "902345", StatusAll, []string{"Nimal Perera"}},
		{"query is trimmed", "  kumara  ", StatusAll, []string{"Kumara Silva", "Sunil Kumara"}},
		{"status filter is exact", "", "Expired", []string{"Nimal Perera", "Amara Jay"}},
		{"query and status combine", "a", "Available", []string{"Kumara Silva", "Sunil Kumara"}},
		{"no match yields empty", "zzz", StatusAll, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(rows, tt.query, tt.status, statusOf, fields...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q, %q) = %v, expected %v", tt.query, tt.status, got, tt.want)
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	rows := []row{{name: "b"}, {name: "a"}, {name: "ab"}}
	got := names(Filter(rows, "a", StatusAll, nil, func(r row) string { return r.name }))
	want := []string{"a", "ab"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected stable filter %v, got %v", want, got)
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	if got := TotalPages(len(items), RegisterPageSize); got != 2 {
		t.Fatalf("TotalPages(10, 7) = %d, expected 2", got)
	}
	if got := TotalPages(0, RegisterPageSize); got != 0 {
		t.Fatalf("TotalPages(0, 7) = %d, expected 0", got)
	}

	first := Paginate(items, 1, RegisterPageSize)
	if !reflect.DeepEqual(first, []int{1, 2, 3, 4, 5, 6, 7}) {
		t.Errorf("page 1 = %v", first)
	}
	second := Paginate(items, 2, RegisterPageSize)
	if !reflect.DeepEqual(second, []int{8, 9, 10}) {
		t.Errorf("page 2 = %v", second)
	}

	// Navigating past either boundary clamps instead of erroring.
	if got := Paginate(items, 99, RegisterPageSize); !reflect.DeepEqual(got, second) {
		t.Errorf("page past end = %v, expected last page %v", got, second)
	}
	if got := Paginate(items, 0, RegisterPageSize); !reflect.DeepEqual(got, first) {
		t.Errorf("page before start = %v, expected first page %v", got, first)
	}
	if got := Paginate([]int{}, 1, RegisterPageSize); got != nil {
		t.Errorf("empty collection page = %v, expected nil", got)
	}
}
