package reporter

import (
	"sort"

	"qaeval/pkg/core"
)

// Reporter writes an evaluation report.
type Reporter interface {
	Report(report core.EvalReport) error
}

const (
	FormatJSON     = "json"
	FormatTable    = "table"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// metricNames returns the summary keys in stable order.
func metricNames(report core.EvalReport) []string {
	names := make([]string, 0, len(report.Summary))
	for name := range report.Summary {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(metrics core.MetricResult) []string {
	keys := metrics.Keys()
	sort.Strings(keys)
	return keys
}
