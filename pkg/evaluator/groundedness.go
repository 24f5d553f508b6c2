package evaluator

import (
	"fmt"

	"qaeval/pkg/core"
)

const groundednessPrompt = `Groundedness measures whether the ANSWER follows logically from the information contained in the CONTEXT. Rate the ANSWER using the following scale:
5: The ANSWER follows logically from the information contained in the CONTEXT.
4: The ANSWER follows mostly from the CONTEXT with minor unsupported details.
3: The ANSWER mixes supported and unsupported claims about the CONTEXT.
2: The ANSWER is largely unsupported by the CONTEXT.
1: The ANSWER is logically false from the information contained in the CONTEXT.

CONTEXT:
%s

ANSWER:
%s

Rating:`

// NewGroundedness rates whether the answer is entailed by the context.
func NewGroundedness(judge core.Model, opts core.GenerateOptions) core.Evaluator {
	return promptGraded{
		name:    "groundedness",
		metric:  "gpt_groundedness",
		judge:   judge,
		options: opts,
		render: func(input core.QAInput) string {
			return fmt.Sprintf(groundednessPrompt, input.Context, input.Answer)
		},
	}
}
