package core

import "context"

// Evaluator scores one QA tuple along one or more metric dimensions.
type Evaluator interface {
	Name() string
	Evaluate(ctx context.Context, input QAInput) (MetricResult, error)
}

// Dataset provides QA records for a batch run.
type Dataset interface {
	Name() string
	Len(ctx context.Context) (int, error)
	Records(ctx context.Context) (<-chan QAInput, <-chan error)
}
