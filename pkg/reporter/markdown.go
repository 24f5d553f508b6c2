package reporter

import (
	"fmt"
	"io"

	"qaeval/pkg/core"
)

type MarkdownReporter struct {
	Writer io.Writer
}

func (r MarkdownReporter) Report(report core.EvalReport) error {
	if _, err := fmt.Fprintf(r.Writer, "# QA Evaluation Report\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "- Dataset: %s\n- Evaluator: %s\n- Model: %s\n\n", report.DatasetName, report.EvaluatorName, report.ModelName); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.Writer, "## Summary\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "| Metric | Count | Mean | Median | P95 |\n|---|---|---|---|---|\n"); err != nil {
		return err
	}
	for _, name := range metricNames(report) {
		stats := report.Summary[name]
		if _, err := fmt.Fprintf(r.Writer, "| %s | %d | %.3f | %.3f | %.3f |\n", name, stats.Count, stats.Mean, stats.Median, stats.P95); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(r.Writer, "\n## Records\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "| Question | Answer | Ground truth | Metrics | Error |\n|---|---|---|---|---|\n"); err != nil {
		return err
	}
	for _, result := range report.Results {
		if _, err := fmt.Fprintf(
			r.Writer,
			"| %s | %s | %s | %s | %s |\n",
			escapePipe(result.Input.Question),
			escapePipe(result.Input.Answer),
			escapePipe(result.Input.GroundTruth),
			escapePipe(formatMetrics(result.Metrics)),
			escapePipe(result.Error),
		); err != nil {
			return err
		}
	}
	return nil
}

func formatMetrics(metrics core.MetricResult) string {
	out := ""
	for i, name := range sortedKeys(metrics) {
		if i > 0 {
			out += ", "
		}
		if value, ok := metrics.Float(name); ok {
			out += fmt.Sprintf("%s=%.3f", name, value)
		} else {
			out += fmt.Sprintf("%s=%v", name, metrics[name])
		}
	}
	return out
}

func escapePipe(input string) string {
	if input == "" {
		return ""
	}
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if r == '|' {
			out = append(out, '\\', r)
		} else if r == '\n' || r == '\r' {
			out = append(out, ' ')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
