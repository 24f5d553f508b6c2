package evaluator

import (
	"fmt"

	"qaeval/pkg/core"
)

const fluencyPrompt = `Fluency measures the quality of individual sentences in the ANSWER, and whether they are well-written and grammatically correct. Rate the fluency of the ANSWER between one to five stars:
One star: the answer completely lacks fluency
Two stars: the answer mostly lacks fluency
Three stars: the answer is partially fluent
Four stars: the answer is mostly fluent
Five stars: the answer has perfect fluency

QUESTION:
%s

ANSWER:
%s

Respond with the number of stars only.`

// NewFluency rates the grammatical quality of the answer.
func NewFluency(judge core.Model, opts core.GenerateOptions) core.Evaluator {
	return promptGraded{
		name:    "fluency",
		metric:  "gpt_fluency",
		judge:   judge,
		options: opts,
		render: func(input core.QAInput) string {
			return fmt.Sprintf(fluencyPrompt, input.Question, input.Answer)
		},
	}
}
