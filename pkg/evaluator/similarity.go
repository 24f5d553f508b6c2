package evaluator

import (
	"fmt"

	"qaeval/pkg/core"
)

const similarityPrompt = `Equivalence measures the similarity between the PREDICTED ANSWER and the CORRECT ANSWER for the given QUESTION. This rating should be based on semantic equivalence rather than exact wording. Rate the equivalence between one to five stars:
One star: the predicted answer is not at all similar to the correct answer
Two stars: the predicted answer is mostly not similar to the correct answer
Three stars: the predicted answer is somewhat similar to the correct answer
Four stars: the predicted answer is mostly similar to the correct answer
Five stars: the predicted answer is completely similar to the correct answer

QUESTION:
%s

CORRECT ANSWER:
%s

PREDICTED ANSWER:
%s

Respond with the number of stars only.`

// NewSimilarity rates the semantic equivalence of the answer to the
// ground truth.
func NewSimilarity(judge core.Model, opts core.GenerateOptions) core.Evaluator {
	return promptGraded{
		name:    "similarity",
		metric:  "gpt_similarity",
		judge:   judge,
		options: opts,
		render: func(input core.QAInput) string {
			return fmt.Sprintf(similarityPrompt, input.Question, input.GroundTruth, input.Answer)
		},
	}
}
