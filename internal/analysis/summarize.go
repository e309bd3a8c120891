package analysis

import (
	"math"
	"sort"

	"lpbcli/internal/config"
)

// StatusPass is the only status counted as passing.
const StatusPass = "PASS"

// StatusFail is the status ordered second in status charts.
const StatusFail = "FAIL"

// ScenarioSummary is the aggregate of one scenario group
type ScenarioSummary struct {
	Scenario       string
	NLinks         int
	PassRate       float64
	FailRate       float64
	MarginMeanDB   float64
	MarginMedianDB float64
	MarginP05DB    float64
	MarginP95DB    float64
	MarginMinDB    float64
	MarginMaxDB    float64
}

// SummaryHeaders returns the summary table header; the first column is
// named after the configured scenario column.
func SummaryHeaders(cfg config.AnalysisConfig) []string {
	return []string{
		cfg.ScenarioCol,
		"n_links",
		"pass_rate",
		"fail_rate",
		"margin_mean_db",
		"margin_median_db",
		"margin_p05_db",
		"margin_p95_db",
		"margin_min_db",
		"margin_max_db",
	}
}

// Summarize groups ds by scenario and aggregates each group. Rows are
// ordered by descending fail rate, then ascending mean margin with missing
// means last; remaining ties keep ascending scenario order.
func Summarize(ds *Dataset, cfg config.AnalysisConfig) []ScenarioSummary {
	groups := make(map[string][]Record)
	for _, rec := range ds.Records {
		groups[rec.Scenario] = append(groups[rec.Scenario], rec)
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	summaries := make([]ScenarioSummary, 0, len(labels))
	for _, label := range labels {
		summaries = append(summaries, summarizeGroup(label, groups[label]))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.FailRate != b.FailRate {
			return a.FailRate > b.FailRate
		}
		return lessNaNLast(a.MarginMeanDB, b.MarginMeanDB)
	})
	return summaries
}

func summarizeGroup(label string, records []Record) ScenarioSummary {
	margins := make([]float64, len(records))
	passed := 0
	for i, rec := range records {
		margins[i] = rec.Margin
		if rec.Status == StatusPass {
			passed++
		}
	}
	passRate := float64(passed) / float64(len(records))
	ms := DescribeMargins(margins)

	return ScenarioSummary{
		Scenario:       label,
		NLinks:         len(records),
		PassRate:       passRate,
		FailRate:       1 - passRate,
		MarginMeanDB:   ms.Mean,
		MarginMedianDB: ms.Median,
		MarginP05DB:    ms.P05,
		MarginP95DB:    ms.P95,
		MarginMinDB:    ms.Min,
		MarginMaxDB:    ms.Max,
	}
}

// lessNaNLast orders ascending with NaN after every number
func lessNaNLast(a, b float64) bool {
	switch {
	case math.IsNaN(a):
		return false
	case math.IsNaN(b):
		return true
	default:
		return a < b
	}
}

// WorstLinks returns up to n records with the smallest non-missing margins,
// ascending, ties in input order.
func WorstLinks(ds *Dataset, n int) []Record {
	candidates := make([]Record, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if !math.IsNaN(rec.Margin) {
			candidates = append(candidates, rec)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Margin < candidates[j].Margin
	})
	if n < 0 {
		n = 0
	}
	if n < len(candidates) {
		candidates = candidates[:n]
	}
	return candidates
}
