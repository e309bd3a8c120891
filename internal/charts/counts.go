package charts

import (
	"sort"

	"lpbcli/internal/analysis"
)

// Count is the number of occurrences of one categorical value
type Count struct {
	Label string
	N     int
}

// countValues tallies values in first-seen order
func countValues(values []string) []Count {
	index := make(map[string]int)
	var counts []Count
	for _, v := range values {
		i, ok := index[v]
		if !ok {
			i = len(counts)
			index[v] = i
			counts = append(counts, Count{Label: v})
		}
		counts[i].N++
	}
	return counts
}

// StatusCounts returns the count per status with PASS and FAIL first when
// present and the remaining statuses in first-seen order.
func StatusCounts(statuses []string) []Count {
	counts := countValues(statuses)
	ordered := make([]Count, 0, len(counts))
	for _, head := range []string{analysis.StatusPass, analysis.StatusFail} {
		for _, c := range counts {
			if c.Label == head {
				ordered = append(ordered, c)
			}
		}
	}
	for _, c := range counts {
		if c.Label != analysis.StatusPass && c.Label != analysis.StatusFail {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

// TopValues returns the n most frequent values, most frequent first.
// Equal counts keep first-seen order.
func TopValues(values []string, n int) []Count {
	counts := countValues(values)
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].N > counts[j].N
	})
	if n >= 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts
}
