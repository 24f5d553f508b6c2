package reporter

import (
	"fmt"
	"io"

	"qaeval/pkg/core"

	"github.com/olekukonko/tablewriter"
)

type TableReporter struct {
	Writer io.Writer
}

func (r TableReporter) Report(report core.EvalReport) error {
	fmt.Fprintf(r.Writer, "Dataset: %s  Evaluator: %s", report.DatasetName, report.EvaluatorName)
	if report.ModelName != "" {
		fmt.Fprintf(r.Writer, "  Model: %s", report.ModelName)
	}
	fmt.Fprintln(r.Writer)

	table := tablewriter.NewWriter(r.Writer)
	table.Header([]string{"Metric", "Count", "Mean", "Median", "P95"})
	for _, name := range metricNames(report) {
		stats := report.Summary[name]
		table.Append([]string{
			name,
			fmt.Sprintf("%d", stats.Count),
			fmt.Sprintf("%.3f", stats.Mean),
			fmt.Sprintf("%.3f", stats.Median),
			fmt.Sprintf("%.3f", stats.P95),
		})
	}
	table.Append([]string{"records", fmt.Sprintf("%d", len(report.Results)), "", "", ""})
	table.Append([]string{"failed", fmt.Sprintf("%d", report.Failed), "", "", ""})
	table.Append([]string{"avg latency", report.Latency.Avg.String(), "", "", ""})
	table.Append([]string{"p95 latency", report.Latency.P95.String(), "", "", ""})
	table.Render()
	return nil
}
