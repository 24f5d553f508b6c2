package model

import (
	"context"

	"qaeval/pkg/core"
)

// ThrottledModel gates every request through a rate limiter. Useful
// when the composite fans six judge requests out per record.
type ThrottledModel struct {
	Model   core.Model
	Limiter core.RateLimiter
}

func (t ThrottledModel) Name() string {
	if t.Model == nil {
		return ""
	}
	return t.Model.Name()
}

func (t ThrottledModel) Generate(ctx context.Context, prompt string, opts core.GenerateOptions) (core.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(ctx); err != nil {
			return core.Response{}, err
		}
	}
	return t.Model.Generate(ctx, prompt, opts)
}
