package evallog

import (
	"archive/zip"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"qaeval/pkg/core"
)

// EvalLog is the persisted form of one batch run.
type EvalLog struct {
	Version    int                         `json:"version"`
	RunID      string                      `json:"run_id"`
	Dataset    string                      `json:"dataset"`
	Evaluator  string                      `json:"evaluator"`
	Model      string                      `json:"model,omitempty"`
	Summary    map[string]core.MetricStats `json:"summary,omitempty"`
	Completed  int                         `json:"completed"`
	Failed     int                         `json:"failed"`
	Metadata   map[string]string           `json:"metadata,omitempty"`
	StartedAt  string                      `json:"started_at"`
	FinishedAt string                      `json:"finished_at"`
	Records    []RecordLog                 `json:"records,omitempty"`
}

// RecordLog is one scored tuple in the log.
type RecordLog struct {
	Input    core.QAInput      `json:"input"`
	Metrics  core.MetricResult `json:"metrics,omitempty"`
	Error    string            `json:"error,omitempty"`
	Duration float64           `json:"duration_seconds"`
}

const timeLayout = "2006-01-02T15:04:05-07:00"

// FromReport converts a runner report into its persisted form.
func FromReport(report core.EvalReport) EvalLog {
	startedAt := report.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	finishedAt := report.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}

	records := make([]RecordLog, 0, len(report.Results))
	for _, result := range report.Results {
		records = append(records, RecordLog{
			Input:    result.Input,
			Metrics:  result.Metrics.Sanitize(),
			Error:    result.Error,
			Duration: result.Duration.Seconds(),
		})
	}

	return EvalLog{
		Version:    1,
		RunID:      generateID(),
		Dataset:    report.DatasetName,
		Evaluator:  report.EvaluatorName,
		Model:      report.ModelName,
		Summary:    report.Summary,
		Completed:  report.Completed,
		Failed:     report.Failed,
		Metadata:   report.Metadata,
		StartedAt:  startedAt.UTC().Format(timeLayout),
		FinishedAt: finishedAt.UTC().Format(timeLayout),
		Records:    records,
	}
}

// WriteJSON writes the log as one pretty-printed JSON file and
// returns its path.
func WriteJSON(logDir string, log EvalLog) (string, error) {
	if logDir == "" {
		return "", fmt.Errorf("evallog: logDir is required")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(logDir, buildLogFileName(log, "json"))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return "", err
	}
	return path, nil
}

// WriteArchive writes the log as a zip archive with a header entry
// and one entry per record, so large runs can be inspected without
// loading every record.
func WriteArchive(logDir string, log EvalLog) (string, error) {
	if logDir == "" {
		return "", fmt.Errorf("evallog: logDir is required")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(logDir, buildLogFileName(log, "zip"))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)

	header := log
	header.Records = nil
	if err := writeZipJSON(zipWriter, "header.json", header); err != nil {
		zipWriter.Close()
		return "", err
	}
	for idx, record := range log.Records {
		name := fmt.Sprintf("records/%d.json", idx+1)
		if err := writeZipJSON(zipWriter, name, record); err != nil {
			zipWriter.Close()
			return "", err
		}
	}
	if err := zipWriter.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// ReadJSON loads a log written by WriteJSON.
func ReadJSON(path string) (EvalLog, error) {
	var log EvalLog
	f, err := os.Open(path)
	if err != nil {
		return EvalLog{}, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&log); err != nil {
		return EvalLog{}, err
	}
	return log, nil
}

// ReadArchive loads a log written by WriteArchive.
func ReadArchive(path string) (EvalLog, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return EvalLog{}, err
	}
	defer r.Close()

	var log EvalLog
	for _, f := range r.File {
		if f.Name != "header.json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return EvalLog{}, err
		}
		err = json.NewDecoder(rc).Decode(&log)
		rc.Close()
		if err != nil {
			return EvalLog{}, err
		}
		break
	}

	for _, f := range r.File {
		if filepath.Dir(f.Name) != "records" || filepath.Ext(f.Name) != ".json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return EvalLog{}, err
		}
		var record RecordLog
		decodeErr := json.NewDecoder(rc).Decode(&record)
		rc.Close()
		if decodeErr != nil {
			return EvalLog{}, decodeErr
		}
		log.Records = append(log.Records, record)
	}
	return log, nil
}

// FailedRecords extracts the inputs of failed records for a retry
// run.
func FailedRecords(log EvalLog) []core.QAInput {
	var out []core.QAInput
	for _, record := range log.Records {
		if record.Error != "" {
			out = append(out, record.Input)
		}
	}
	return out
}

func buildLogFileName(log EvalLog, ext string) string {
	timestamp := time.Now().Format("2006-01-02T15-04-05")
	dataset := sanitizeName(log.Dataset)
	evaluator := sanitizeName(log.Evaluator)
	if dataset == "" {
		dataset = "dataset"
	}
	if evaluator == "" {
		evaluator = "evaluator"
	}
	return fmt.Sprintf("%s_%s_%s.%s", timestamp, dataset, evaluator, ext)
}

func writeZipJSON(writer *zip.Writer, name string, data any) error {
	entry, err := writer.Create(name)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(entry)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func sanitizeName(input string) string {
	var builder strings.Builder
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

func generateID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
