package evaluator

import (
	"context"
	"strings"
	"unicode"

	"qaeval/pkg/core"
)

// F1 scores token-level overlap between the answer and the ground
// truth. It needs no model and no configuration.
type F1 struct{}

func (F1) Name() string {
	return "f1"
}

func (F1) Evaluate(_ context.Context, input core.QAInput) (core.MetricResult, error) {
	prediction := answerTokens(input.Answer)
	reference := answerTokens(input.GroundTruth)

	common := 0
	counts := make(map[string]int, len(reference))
	for _, token := range reference {
		counts[token]++
	}
	for _, token := range prediction {
		if counts[token] > 0 {
			counts[token]--
			common++
		}
	}

	score := 0.0
	if common > 0 {
		precision := float64(common) / float64(len(prediction))
		recall := float64(common) / float64(len(reference))
		score = 2 * precision * recall / (precision + recall)
	}
	return core.MetricResult{"f1_score": score}, nil
}

// answerTokens lowercases, strips punctuation and the articles
// a/an/the, and splits on whitespace.
func answerTokens(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, text)

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, field := range fields {
		switch field {
		case "a", "an", "the":
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}
