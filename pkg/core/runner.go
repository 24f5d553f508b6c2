package core

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"
)

// Runner fans a dataset of QA records out to an evaluator.
type Runner struct {
	Dataset      Dataset
	Evaluator    Evaluator
	Workers      int
	Progress     func(completed, total int)
	TotalRecords int
}

// Result captures the outcome for one record.
type Result struct {
	Input    QAInput       `json:"input" yaml:"input"`
	Metrics  MetricResult  `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// MetricStats aggregates one metric across a run.
type MetricStats struct {
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	P95    float64 `json:"p95" yaml:"p95"`
}

// LatencyStats aggregates per-record wall time.
type LatencyStats struct {
	Avg time.Duration `json:"avg" yaml:"avg"`
	P50 time.Duration `json:"p50" yaml:"p50"`
	P95 time.Duration `json:"p95" yaml:"p95"`
	P99 time.Duration `json:"p99" yaml:"p99"`
}

// EvalReport summarizes a batch run.
type EvalReport struct {
	DatasetName   string                 `json:"dataset_name" yaml:"dataset_name"`
	EvaluatorName string                 `json:"evaluator_name" yaml:"evaluator_name"`
	ModelName     string                 `json:"model_name,omitempty" yaml:"model_name,omitempty"`
	Summary       map[string]MetricStats `json:"summary" yaml:"summary"`
	Latency       LatencyStats           `json:"latency" yaml:"latency"`
	Completed     int                    `json:"completed" yaml:"completed"`
	Failed        int                    `json:"failed" yaml:"failed"`
	Results       []Result               `json:"results" yaml:"results"`
	Metadata      map[string]string      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	StartedAt     time.Time              `json:"started_at" yaml:"started_at"`
	FinishedAt    time.Time              `json:"finished_at" yaml:"finished_at"`
}

// Run executes the evaluation and returns a report. Per-record
// evaluator failures are recorded on the result, not returned.
func (r *Runner) Run(ctx context.Context) (EvalReport, error) {
	if r.Dataset == nil || r.Evaluator == nil {
		return EvalReport{}, errors.New("runner: dataset and evaluator are required")
	}

	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}

	started := time.Now()
	recordCh, errCh := r.Dataset.Records(ctx)

	resultsCh := make(chan Result, workers)
	done := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for record := range recordCh {
				select {
				case <-ctx.Done():
					return
				default:
				}
				result := evaluateRecord(ctx, r.Evaluator, record)
				select {
				case resultsCh <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		for i := 0; i < workers; i++ {
			<-done
		}
		close(resultsCh)
	}()

	var results []Result
	var datasetErr error
	for {
		select {
		case <-ctx.Done():
			return EvalReport{}, ctx.Err()
		case err, ok := <-errCh:
			if !ok {
				// a nil channel never selects again
				errCh = nil
				continue
			}
			if err != nil && datasetErr == nil {
				datasetErr = err
			}
		case result, ok := <-resultsCh:
			if !ok {
				if datasetErr != nil {
					return EvalReport{}, datasetErr
				}
				return r.buildReport(results, started), nil
			}
			results = append(results, result)
			if r.Progress != nil {
				r.Progress(len(results), r.TotalRecords)
			}
		}
	}
}

func (r *Runner) buildReport(results []Result, started time.Time) EvalReport {
	report := EvalReport{
		DatasetName:   r.Dataset.Name(),
		EvaluatorName: r.Evaluator.Name(),
		Summary:       Summarize(results),
		Results:       results,
		StartedAt:     started,
		FinishedAt:    time.Now(),
	}
	latencies := make([]time.Duration, 0, len(results))
	for _, result := range results {
		latencies = append(latencies, result.Duration)
		if result.Error == "" {
			report.Completed++
		} else {
			report.Failed++
		}
	}
	report.Latency = LatencyStats{
		Avg: averageDuration(latencies),
		P50: percentileDuration(latencies, 0.50),
		P95: percentileDuration(latencies, 0.95),
		P99: percentileDuration(latencies, 0.99),
	}
	return report
}

func evaluateRecord(ctx context.Context, evaluator Evaluator, record QAInput) Result {
	start := time.Now()
	result := Result{Input: record}

	metrics, err := evaluator.Evaluate(ctx, record)
	if err != nil {
		result.Error = err.Error()
	} else {
		result.Metrics = metrics
	}
	result.Duration = time.Since(start)
	return result
}

// Summarize computes per-metric statistics over numeric, non-NaN
// scores. String scores and failed records are skipped.
func Summarize(results []Result) map[string]MetricStats {
	values := map[string][]float64{}
	for _, result := range results {
		if result.Error != "" {
			continue
		}
		for key := range result.Metrics {
			score, ok := result.Metrics.Float(key)
			if !ok || math.IsNaN(score) {
				continue
			}
			values[key] = append(values[key], score)
		}
	}

	summary := make(map[string]MetricStats, len(values))
	for key, scores := range values {
		summary[key] = MetricStats{
			Count:  len(scores),
			Mean:   average(scores),
			Median: percentile(scores, 0.50),
			P95:    percentile(scores, 0.95),
		}
	}
	return summary
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	copied := make([]float64, len(values))
	copy(copied, values)
	sort.Float64s(copied)

	if p <= 0 {
		return copied[0]
	}
	if p >= 1 {
		return copied[len(copied)-1]
	}

	index := p * float64(len(copied)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return copied[lower]
	}
	weight := index - float64(lower)
	return copied[lower]*(1-weight) + copied[upper]*weight
}

func averageDuration(values []time.Duration) time.Duration {
	if len(values) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range values {
		sum += v
	}
	return time.Duration(int64(sum) / int64(len(values)))
}

func percentileDuration(values []time.Duration, p float64) time.Duration {
	if len(values) == 0 {
		return 0
	}
	copied := make([]time.Duration, len(values))
	copy(copied, values)
	sort.Slice(copied, func(i, j int) bool { return copied[i] < copied[j] })

	if p <= 0 {
		return copied[0]
	}
	if p >= 1 {
		return copied[len(copied)-1]
	}

	index := p * float64(len(copied)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return copied[lower]
	}
	weight := index - float64(lower)
	lowerVal := float64(copied[lower])
	upperVal := float64(copied[upper])
	return time.Duration(lowerVal*(1-weight) + upperVal*weight)
}
