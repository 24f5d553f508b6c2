package evaluator

import (
	"context"
	"errors"
	"math"
	"testing"

	"qaeval/pkg/core"

	"github.com/stretchr/testify/require"
)

type scriptedJudge struct {
	content string
	err     error

	lastPrompt string
	lastOpts   core.GenerateOptions
}

func (s *scriptedJudge) Name() string {
	return "scripted"
}

func (s *scriptedJudge) Generate(_ context.Context, prompt string, opts core.GenerateOptions) (core.Response, error) {
	s.lastPrompt = prompt
	s.lastOpts = opts
	if s.err != nil {
		return core.Response{}, s.err
	}
	return core.Response{Content: s.content}, nil
}

func TestParseStarRating(t *testing.T) {
	cases := []struct {
		reply string
		want  float64
	}{
		{"4", 4},
		{" 5 ", 5},
		{"I would rate this 3 stars", 3},
		{"2\n", 2},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, parseStarRating(tc.reply), "reply %q", tc.reply)
	}

	require.True(t, math.IsNaN(parseStarRating("five stars")))
	require.True(t, math.IsNaN(parseStarRating("")))
}

func TestPromptGradedEvaluate(t *testing.T) {
	judge := &scriptedJudge{content: "4"}
	ev := NewGroundedness(judge, core.GenerateOptions{})

	metrics, err := ev.Evaluate(context.Background(), tokyoInput())
	require.NoError(t, err)
	require.Equal(t, 4.0, metrics["gpt_groundedness"])

	require.Contains(t, judge.lastPrompt, "Tokyo is the capital of Japan.")
	require.Contains(t, judge.lastPrompt, "Japan")
	require.Equal(t, judgeSystemPrompt, judge.lastOpts.SystemPrompt)
	require.Equal(t, float32(0), judge.lastOpts.Temperature)
}

func TestPromptGradedUnparsableReplyScoresNaN(t *testing.T) {
	judge := &scriptedJudge{content: "excellent answer"}
	ev := NewFluency(judge, core.GenerateOptions{})

	metrics, err := ev.Evaluate(context.Background(), tokyoInput())
	require.NoError(t, err)
	score, ok := metrics.Float("gpt_fluency")
	require.True(t, ok)
	require.True(t, math.IsNaN(score))
}

func TestPromptGradedJudgeErrorPropagates(t *testing.T) {
	boom := errors.New("rate limited")
	judge := &scriptedJudge{err: boom}
	ev := NewRelevance(judge, core.GenerateOptions{})

	_, err := ev.Evaluate(context.Background(), tokyoInput())
	require.ErrorIs(t, err, boom)
}

func TestPromptGradedRequiresJudge(t *testing.T) {
	ev := NewCoherence(nil, core.GenerateOptions{})
	_, err := ev.Evaluate(context.Background(), tokyoInput())
	require.Error(t, err)
}

func TestPromptRendering(t *testing.T) {
	input := core.QAInput{
		Question:    "Q?",
		Answer:      "A.",
		Context:     "C.",
		GroundTruth: "G.",
	}
	cases := []struct {
		build    func(core.Model, core.GenerateOptions) core.Evaluator
		metric   string
		contains []string
	}{
		{NewGroundedness, "gpt_groundedness", []string{"C.", "A."}},
		{NewRelevance, "gpt_relevance", []string{"Q?", "C.", "A."}},
		{NewCoherence, "gpt_coherence", []string{"Q?", "A."}},
		{NewFluency, "gpt_fluency", []string{"Q?", "A."}},
		{NewSimilarity, "gpt_similarity", []string{"Q?", "G.", "A."}},
	}
	for _, tc := range cases {
		judge := &scriptedJudge{content: "5"}
		metrics, err := tc.build(judge, core.GenerateOptions{}).Evaluate(context.Background(), input)
		require.NoError(t, err)
		require.Equal(t, 5.0, metrics[tc.metric])
		for _, fragment := range tc.contains {
			require.Contains(t, judge.lastPrompt, fragment, "metric %s", tc.metric)
		}
	}
}
