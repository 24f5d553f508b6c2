package evaluator

import (
	"context"
	"errors"

	"qaeval/pkg/core"
)

// QAEvaluator fans one QA tuple out to an ordered set of evaluators
// and merges their metric maps into one result. It holds no mutable
// state between calls.
type QAEvaluator struct {
	// Evaluators run in slice order in sequential mode. Metric keys
	// are expected to be disjoint; on a collision the last writer
	// wins, which in concurrent mode means completion order.
	Evaluators []core.Evaluator

	// Sequential runs evaluators one at a time in order. The zero
	// value dispatches all evaluators concurrently.
	Sequential bool
}

// NewQAEvaluator builds the standard six-evaluator composite:
// groundedness, relevance, coherence, fluency, similarity, and F1.
// The judge model and generate options configure the five
// prompt-graded evaluators; F1 takes neither.
func NewQAEvaluator(judge core.Model, opts core.GenerateOptions) *QAEvaluator {
	return &QAEvaluator{
		Evaluators: []core.Evaluator{
			NewGroundedness(judge, opts),
			NewRelevance(judge, opts),
			NewCoherence(judge, opts),
			NewFluency(judge, opts),
			NewSimilarity(judge, opts),
			F1{},
		},
	}
}

func (q *QAEvaluator) Name() string {
	return "qa"
}

type outcome struct {
	metrics core.MetricResult
	err     error
}

// Evaluate runs every evaluator on the input and merges their
// results. The call is all-or-nothing: the first evaluator failure
// aborts the merge and propagates unmodified, discarding any metrics
// already collected. In concurrent mode the siblings of a failed
// evaluator are not cancelled; they finish on their own.
func (q *QAEvaluator) Evaluate(ctx context.Context, input core.QAInput) (core.MetricResult, error) {
	if len(q.Evaluators) == 0 {
		return nil, errors.New("qa: at least one evaluator is required")
	}

	if q.Sequential {
		merged := core.MetricResult{}
		for _, ev := range q.Evaluators {
			metrics, err := ev.Evaluate(ctx, input)
			if err != nil {
				return nil, err
			}
			merged.Merge(metrics)
		}
		return merged, nil
	}

	// Buffered so evaluators still in flight after an early return
	// can deliver their outcome and exit.
	outcomes := make(chan outcome, len(q.Evaluators))
	for _, ev := range q.Evaluators {
		go func(ev core.Evaluator) {
			metrics, err := ev.Evaluate(ctx, input)
			outcomes <- outcome{metrics: metrics, err: err}
		}(ev)
	}

	merged := core.MetricResult{}
	for range q.Evaluators {
		out := <-outcomes
		if out.err != nil {
			return nil, out.err
		}
		merged.Merge(out.metrics)
	}
	return merged, nil
}
