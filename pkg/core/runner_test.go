package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"qaeval/pkg/core"
	"qaeval/pkg/dataset"

	"github.com/stretchr/testify/require"
)

type overlapEvaluator struct{}

func (overlapEvaluator) Name() string {
	return "overlap"
}

func (overlapEvaluator) Evaluate(_ context.Context, input core.QAInput) (core.MetricResult, error) {
	if input.Answer == "" {
		return nil, errors.New("empty answer")
	}
	score := 0.0
	if input.Answer == input.GroundTruth {
		score = 1.0
	}
	return core.MetricResult{"match": score}, nil
}

func TestRunnerRun(t *testing.T) {
	ds := dataset.NewSliceDataset([]core.QAInput{
		{Question: "q1", Answer: "a", GroundTruth: "a"},
		{Question: "q2", Answer: "b", GroundTruth: "c"},
	}, "static")

	runner := core.Runner{
		Dataset:   ds,
		Evaluator: overlapEvaluator{},
		Workers:   2,
	}

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "static", report.DatasetName)
	require.Equal(t, "overlap", report.EvaluatorName)
	require.Equal(t, 2, report.Completed)
	require.Equal(t, 0, report.Failed)
	require.Equal(t, 2, report.Summary["match"].Count)
	require.Equal(t, 0.5, report.Summary["match"].Mean)
}

func TestRunnerRecordsPerRecordFailures(t *testing.T) {
	ds := dataset.NewSliceDataset([]core.QAInput{
		{Question: "q1", Answer: "a", GroundTruth: "a"},
		{Question: "q2"},
	}, "static")

	runner := core.Runner{
		Dataset:   ds,
		Evaluator: overlapEvaluator{},
		Workers:   1,
	}

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Completed)
	require.Equal(t, 1, report.Failed)

	failures := 0
	for _, result := range report.Results {
		if result.Error != "" {
			failures++
			require.Nil(t, result.Metrics)
		}
	}
	require.Equal(t, 1, failures)
}

// earlyCloseDataset closes its error channel before any record is
// delivered, the way a source with nothing to report may.
type earlyCloseDataset struct {
	records []core.QAInput
}

func (d earlyCloseDataset) Name() string {
	return "early-close"
}

func (d earlyCloseDataset) Len(_ context.Context) (int, error) {
	return len(d.records), nil
}

func (d earlyCloseDataset) Records(ctx context.Context) (<-chan core.QAInput, <-chan error) {
	recordCh := make(chan core.QAInput)
	errCh := make(chan error)
	close(errCh)
	go func() {
		defer close(recordCh)
		for _, record := range d.records {
			time.Sleep(time.Millisecond)
			select {
			case <-ctx.Done():
				return
			case recordCh <- record:
			}
		}
	}()
	return recordCh, errCh
}

func TestRunnerHandlesEarlyErrorChannelClose(t *testing.T) {
	ds := earlyCloseDataset{records: []core.QAInput{
		{Question: "q1", Answer: "a", GroundTruth: "a"},
		{Question: "q2", Answer: "b", GroundTruth: "b"},
	}}

	runner := core.Runner{
		Dataset:   ds,
		Evaluator: overlapEvaluator{},
		Workers:   2,
	}

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	require.Equal(t, 2, report.Completed)
}

func TestRunnerRequiresDatasetAndEvaluator(t *testing.T) {
	runner := core.Runner{}
	_, err := runner.Run(context.Background())
	require.Error(t, err)
}

func TestRunnerReportsProgress(t *testing.T) {
	ds := dataset.NewSliceDataset([]core.QAInput{
		{Question: "q1", Answer: "a", GroundTruth: "a"},
		{Question: "q2", Answer: "b", GroundTruth: "b"},
		{Question: "q3", Answer: "c", GroundTruth: "c"},
	}, "static")

	var updates int
	runner := core.Runner{
		Dataset:      ds,
		Evaluator:    overlapEvaluator{},
		Workers:      1,
		TotalRecords: 3,
		Progress: func(completed, total int) {
			updates++
			require.Equal(t, 3, total)
		},
	}

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	require.Equal(t, 3, updates)
}
