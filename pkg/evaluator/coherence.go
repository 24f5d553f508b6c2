package evaluator

import (
	"fmt"

	"qaeval/pkg/core"
)

const coherencePrompt = `Coherence of an answer is measured by how well all the sentences fit together and sound naturally as a whole. Consider the overall quality of the ANSWER when evaluating coherence. Rate the coherence of the ANSWER between one to five stars:
One star: the answer completely lacks coherence
Two stars: the answer mostly lacks coherence
Three stars: the answer is partially coherent
Four stars: the answer is mostly coherent
Five stars: the answer has perfect coherency

QUESTION:
%s

ANSWER:
%s

Respond with the number of stars only.`

// NewCoherence rates how naturally the answer reads as a whole.
func NewCoherence(judge core.Model, opts core.GenerateOptions) core.Evaluator {
	return promptGraded{
		name:    "coherence",
		metric:  "gpt_coherence",
		judge:   judge,
		options: opts,
		render: func(input core.QAInput) string {
			return fmt.Sprintf(coherencePrompt, input.Question, input.Answer)
		},
	}
}
