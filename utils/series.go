package utils

import "sort"

// YearCount is one chart category: a 4-digit year key and its request count.
type YearCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// BaselineYearlySeries keeps the dashboard chart populated when the backend
// has little history. Server data always wins for a shared year.
var BaselineYearlySeries = []YearCount{
	{Name: "2020", Value: 10},
	{Name: "2021", Value: 30},
	{Name: "2022", Value: 40},
	{Name: "2023", Value: 50},
	{Name: "2024", Value: 65},
}

// MergeYearlySeries starts from the server-reported per-year counts, appends
// baseline entries for years the server did not report, and sorts by year key
// ascending. Lexicographic order equals numeric order for 4-digit years.
func MergeYearlySeries(serverCounts map[string]int, baseline []YearCount) []YearCount {
	merged := make([]YearCount, 0, len(serverCounts)+len(baseline))
	seen := make(map[string]bool, len(serverCounts))
	for year, count := range serverCounts {
		merged = append(merged, YearCount{Name: year, Value: count})
		seen[year] = true
	}
	for _, b := range baseline {
		if !seen[b.Name] {
			merged = append(merged, b)
		}
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Name < merged[j].Name
	})
	return merged
}
