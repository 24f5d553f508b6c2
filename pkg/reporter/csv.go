package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"qaeval/pkg/core"
)

type CSVReporter struct {
	Writer io.Writer
}

func (r CSVReporter) Report(report core.EvalReport) error {
	writer := csv.NewWriter(r.Writer)

	// Collect every metric name seen across the run so each gets a
	// column even when some records failed.
	names := map[string]bool{}
	for _, result := range report.Results {
		for _, name := range result.Metrics.Keys() {
			names[name] = true
		}
	}
	columns := make([]string, 0, len(names))
	for name := range names {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	header := []string{"question", "answer", "context", "ground_truth"}
	header = append(header, columns...)
	header = append(header, "error", "duration_seconds")
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, result := range report.Results {
		record := []string{
			result.Input.Question,
			result.Input.Answer,
			result.Input.Context,
			result.Input.GroundTruth,
		}
		for _, name := range columns {
			value, present := result.Metrics[name]
			if !present {
				record = append(record, "")
				continue
			}
			if f, ok := result.Metrics.Float(name); ok {
				record = append(record, strconv.FormatFloat(f, 'f', 4, 64))
			} else {
				record = append(record, fmt.Sprintf("%v", value))
			}
		}
		record = append(record,
			result.Error,
			strconv.FormatFloat(result.Duration.Seconds(), 'f', 6, 64),
		)
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
