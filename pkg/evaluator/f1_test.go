package evaluator

import (
	"context"
	"testing"

	"qaeval/pkg/core"

	"github.com/stretchr/testify/require"
)

func TestF1ExactMatch(t *testing.T) {
	metrics, err := F1{}.Evaluate(context.Background(), core.QAInput{
		Answer:      "Japan",
		GroundTruth: "Japan",
	})
	require.NoError(t, err)
	require.Equal(t, 1.0, metrics["f1_score"])
}

func TestF1IgnoresCasePunctuationAndArticles(t *testing.T) {
	metrics, err := F1{}.Evaluate(context.Background(), core.QAInput{
		Answer:      "The capital is PARIS.",
		GroundTruth: "capital is paris",
	})
	require.NoError(t, err)
	require.Equal(t, 1.0, metrics["f1_score"])
}

func TestF1PartialOverlap(t *testing.T) {
	metrics, err := F1{}.Evaluate(context.Background(), core.QAInput{
		Answer:      "The capital is Tokyo",
		GroundTruth: "Tokyo",
	})
	require.NoError(t, err)
	// precision 1/3, recall 1/1
	score, ok := metrics.Float("f1_score")
	require.True(t, ok)
	require.InDelta(t, 0.5, score, 1e-9)
}

func TestF1NoOverlap(t *testing.T) {
	metrics, err := F1{}.Evaluate(context.Background(), core.QAInput{
		Answer:      "Berlin",
		GroundTruth: "Madrid",
	})
	require.NoError(t, err)
	require.Equal(t, 0.0, metrics["f1_score"])
}

func TestF1EmptyInputs(t *testing.T) {
	metrics, err := F1{}.Evaluate(context.Background(), core.QAInput{})
	require.NoError(t, err)
	require.Equal(t, 0.0, metrics["f1_score"])
}

func TestF1RepeatedTokens(t *testing.T) {
	metrics, err := F1{}.Evaluate(context.Background(), core.QAInput{
		Answer:      "yes yes yes",
		GroundTruth: "yes",
	})
	require.NoError(t, err)
	// one shared token, counted once
	score, ok := metrics.Float("f1_score")
	require.True(t, ok)
	require.InDelta(t, 0.5, score, 1e-9)
}
