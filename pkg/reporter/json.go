package reporter

import (
	"encoding/json"
	"io"

	"qaeval/pkg/core"
)

type JSONReporter struct {
	Writer  io.Writer
	Pretty  bool
	Compact bool
}

func (r JSONReporter) Report(report core.EvalReport) error {
	// NaN scores from unparsable judge replies cannot be encoded.
	sanitized := report
	sanitized.Results = make([]core.Result, len(report.Results))
	for i, result := range report.Results {
		sanitized.Results[i] = result
		sanitized.Results[i].Metrics = result.Metrics.Sanitize()
	}

	encoder := json.NewEncoder(r.Writer)
	if r.Pretty && !r.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(sanitized)
}
