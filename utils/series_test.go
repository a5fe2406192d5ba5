package utils

import (
	"reflect"
	"testing"
)

func TestMergeYearlySeries(t *testing.T) {
	tests := []struct {
		name     string
		server   map[string]int
		baseline []YearCount
		want     []YearCount
	}{
		{
			name:     "server overrides shared year, baseline fills missing",
			server:   map[string]int{"2023": 12},
			baseline: []YearCount{{"2020", 10}, {"2023", 50}},
			want:     []YearCount{{"2020", 10}, {"2023", 12}},
		},
		{
			name:     "empty server data yields baseline sorted",
			server:   map[string]int{},
			baseline: []YearCount{{"2021", 30}, {"2020", 10}},
			want:     []YearCount{{"2020", 10}, {"2021", 30}},
		},
		{
			name:     "server years outside baseline are kept",
			server:   map[string]int{"2026": 7, "2019": 2},
			baseline: []YearCount{{"2020", 10}},
			want:     []YearCount{{"2019", 2}, {"2020", 10}, {"2026", 7}},
		},
		{
			name:   "no baseline at all",
			server: map[string]int{"2025": 4},
			want:   []YearCount{{"2025", 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeYearlySeries(tt.server, tt.baseline)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MergeYearlySeries(%v, %v) = %v, expected %v", tt.server, tt.baseline, got, tt.want)
			}
		})
	}
}

func TestMergeYearlySeriesWithDefaultBaseline(t *testing.T) {
	got := MergeYearlySeries(map[string]int{"2024": 80}, BaselineYearlySeries)
	if len(got) != len(BaselineYearlySeries) {
		t.Fatalf("expected %d entries, got %d", len(BaselineYearlySeries), len(got))
	}
	for _, yc := range got {
		if yc.Name == "2024" && yc.Value != 80 {
			t.Errorf("server value for 2024 not taken: got %d", yc.Value)
		}
	}
}
