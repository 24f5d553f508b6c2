package reporter

import (
	"html/template"
	"io"

	"qaeval/pkg/core"
)

type HTMLReporter struct {
	Writer io.Writer
	Title  string
}

type htmlMetricRow struct {
	Name  string
	Stats core.MetricStats
}

type htmlRecordRow struct {
	Input   core.QAInput
	Metrics string
	Error   string
}

func (r HTMLReporter) Report(report core.EvalReport) error {
	title := r.Title
	if title == "" {
		title = "QA Evaluation Report"
	}

	summary := make([]htmlMetricRow, 0, len(report.Summary))
	for _, name := range metricNames(report) {
		summary = append(summary, htmlMetricRow{Name: name, Stats: report.Summary[name]})
	}
	records := make([]htmlRecordRow, 0, len(report.Results))
	for _, result := range report.Results {
		records = append(records, htmlRecordRow{
			Input:   result.Input,
			Metrics: formatMetrics(result.Metrics),
			Error:   result.Error,
		})
	}

	data := struct {
		Title   string
		Report  core.EvalReport
		Summary []htmlMetricRow
		Records []htmlRecordRow
	}{
		Title:   title,
		Report:  report,
		Summary: summary,
		Records: records,
	}

	tpl := template.Must(template.New("report").Parse(htmlTemplate))
	return tpl.Execute(r.Writer, data)
}

const htmlTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 24px; }
    table { border-collapse: collapse; width: 100%; margin-top: 16px; }
    th, td { border: 1px solid #ddd; padding: 8px; }
    th { background: #f5f5f5; text-align: left; }
    .meta { margin-bottom: 12px; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <div class="meta">
    <div><strong>Dataset:</strong> {{ .Report.DatasetName }}</div>
    <div><strong>Evaluator:</strong> {{ .Report.EvaluatorName }}</div>
    <div><strong>Model:</strong> {{ .Report.ModelName }}</div>
    <div><strong>Records:</strong> {{ len .Report.Results }} ({{ .Report.Failed }} failed)</div>
  </div>
  <h2>Summary</h2>
  <table>
    <tr><th>Metric</th><th>Count</th><th>Mean</th><th>Median</th><th>P95</th></tr>
    {{ range .Summary }}
    <tr>
      <td>{{ .Name }}</td>
      <td>{{ .Stats.Count }}</td>
      <td>{{ printf "%.3f" .Stats.Mean }}</td>
      <td>{{ printf "%.3f" .Stats.Median }}</td>
      <td>{{ printf "%.3f" .Stats.P95 }}</td>
    </tr>
    {{ end }}
  </table>
  <h2>Records</h2>
  <table>
    <tr><th>Question</th><th>Answer</th><th>Ground truth</th><th>Metrics</th><th>Error</th></tr>
    {{ range .Records }}
    <tr>
      <td>{{ .Input.Question }}</td>
      <td>{{ .Input.Answer }}</td>
      <td>{{ .Input.GroundTruth }}</td>
      <td>{{ .Metrics }}</td>
      <td>{{ .Error }}</td>
    </tr>
    {{ end }}
  </table>
</body>
</html>
`
