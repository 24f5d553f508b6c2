package tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"qaeval/pkg/core"
	"qaeval/pkg/dataset"
	"qaeval/pkg/evallog"
	"qaeval/pkg/evaluator"
	"qaeval/pkg/model"

	"github.com/stretchr/testify/require"
)

func scriptedJudge() model.MockModel {
	return model.MockModel{
		NameValue: "scripted-judge",
		Responses: map[string]string{
			"Groundedness measures":  "5",
			"Relevance measures":     "4",
			"Coherence of an answer": "4",
			"Fluency measures":       "5",
			"Equivalence measures":   "3",
		},
	}
}

func TestEndToEndSingleTuple(t *testing.T) {
	qa := evaluator.NewQAEvaluator(scriptedJudge(), core.GenerateOptions{})

	metrics, err := qa.Evaluate(context.Background(), core.QAInput{
		Question:    "Tokyo is the capital of which country?",
		Answer:      "Japan",
		Context:     "Tokyo is the capital of Japan.",
		GroundTruth: "Japan",
	})
	require.NoError(t, err)

	require.Len(t, metrics, 6)
	require.Equal(t, 5.0, metrics["gpt_groundedness"])
	require.Equal(t, 4.0, metrics["gpt_relevance"])
	require.Equal(t, 4.0, metrics["gpt_coherence"])
	require.Equal(t, 5.0, metrics["gpt_fluency"])
	require.Equal(t, 3.0, metrics["gpt_similarity"])
	require.Equal(t, 1.0, metrics["f1_score"])
}

func TestEndToEndBatchRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.jsonl")
	lines := `{"question":"Tokyo is the capital of which country?","answer":"Japan","context":"Tokyo is the capital of Japan.","ground_truth":"Japan"}
{"question":"What is the capital of France?","answer":"Paris","context":"Paris is the capital of France.","ground_truth":"Paris"}`
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))

	ds := dataset.NewFileDataset(path)
	qa := evaluator.NewQAEvaluator(scriptedJudge(), core.GenerateOptions{})

	runner := core.Runner{
		Dataset:   ds,
		Evaluator: qa,
		Workers:   2,
	}
	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, report.Completed)
	require.Equal(t, 0, report.Failed)
	require.Equal(t, 2, report.Summary["gpt_groundedness"].Count)
	require.Equal(t, 5.0, report.Summary["gpt_groundedness"].Mean)
	require.Equal(t, 1.0, report.Summary["f1_score"].Mean)

	logPath, err := evallog.WriteJSON(dir, evallog.FromReport(report))
	require.NoError(t, err)
	loaded, err := evallog.ReadJSON(logPath)
	require.NoError(t, err)
	require.Len(t, loaded.Records, 2)
	require.Empty(t, evallog.FailedRecords(loaded))
}

func TestEndToEndSequentialMatchesConcurrent(t *testing.T) {
	input := core.QAInput{
		Question:    "Tokyo is the capital of which country?",
		Answer:      "Japan",
		Context:     "Tokyo is the capital of Japan.",
		GroundTruth: "Japan",
	}

	concurrent := evaluator.NewQAEvaluator(scriptedJudge(), core.GenerateOptions{})
	sequential := evaluator.NewQAEvaluator(scriptedJudge(), core.GenerateOptions{})
	sequential.Sequential = true

	conMetrics, err := concurrent.Evaluate(context.Background(), input)
	require.NoError(t, err)
	seqMetrics, err := sequential.Evaluate(context.Background(), input)
	require.NoError(t, err)

	require.Equal(t, seqMetrics, conMetrics)
}
