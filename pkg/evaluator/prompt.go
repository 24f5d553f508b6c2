package evaluator

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"qaeval/pkg/core"
)

const judgeSystemPrompt = `You are an AI assistant. You will be given the definition of an evaluation metric for assessing the quality of an answer in a question-answering task. Your job is to compute an accurate evaluation score using the provided metric. Respond with the rating and nothing else.`

// promptGraded asks a judge model to rate one quality dimension of an
// answer on a one-to-five scale. The rendered prompt carries the
// metric definition and the relevant tuple fields.
type promptGraded struct {
	name    string
	metric  string
	judge   core.Model
	options core.GenerateOptions
	render  func(input core.QAInput) string
}

func (p promptGraded) Name() string {
	return p.name
}

func (p promptGraded) Evaluate(ctx context.Context, input core.QAInput) (core.MetricResult, error) {
	if p.judge == nil {
		return nil, fmt.Errorf("evaluator: %s requires a judge model", p.name)
	}

	opts := p.options
	opts.SystemPrompt = judgeSystemPrompt
	opts.Temperature = 0
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 16
	}

	resp, err := p.judge.Generate(ctx, p.render(input), opts)
	if err != nil {
		return nil, fmt.Errorf("evaluator: %s: %w", p.name, err)
	}

	return core.MetricResult{p.metric: parseStarRating(resp.Content)}, nil
}

var ratingRegex = regexp.MustCompile(`\d`)

// parseStarRating extracts the first digit of the judge's reply. A
// reply without a digit scores NaN rather than failing the call, so
// one off-script judge response does not abort a composite run.
func parseStarRating(content string) float64 {
	match := ratingRegex.FindString(content)
	if match == "" {
		return math.NaN()
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}
