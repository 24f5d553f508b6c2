package evaluator

import (
	"fmt"

	"qaeval/pkg/core"
)

const relevancePrompt = `Relevance measures how well the ANSWER addresses the main aspects of the QUESTION, based on the CONTEXT. Consider whether all and only the important aspects are contained in the ANSWER. Rate the relevance of the ANSWER between one to five stars:
One star: the answer completely lacks relevance
Two stars: the answer mostly lacks relevance
Three stars: the answer is partially relevant
Four stars: the answer is mostly relevant
Five stars: the answer has perfect relevance

CONTEXT:
%s

QUESTION:
%s

ANSWER:
%s

Respond with the number of stars only.`

// NewRelevance rates how well the answer addresses the question given
// the context.
func NewRelevance(judge core.Model, opts core.GenerateOptions) core.Evaluator {
	return promptGraded{
		name:    "relevance",
		metric:  "gpt_relevance",
		judge:   judge,
		options: opts,
		render: func(input core.QAInput) string {
			return fmt.Sprintf(relevancePrompt, input.Context, input.Question, input.Answer)
		},
	}
}
