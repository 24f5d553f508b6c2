package model

import (
	"context"

	"qaeval/pkg/cache"
	"qaeval/pkg/core"
)

// CachedModel serves repeated prompts from a disk cache. Judge
// prompts repeat across runs of the same dataset, so this saves
// quota on re-runs.
type CachedModel struct {
	Model core.Model
	Cache *cache.Cache
}

func (c CachedModel) Name() string {
	if c.Model == nil {
		return ""
	}
	return c.Model.Name()
}

func (c CachedModel) Generate(ctx context.Context, prompt string, opts core.GenerateOptions) (core.Response, error) {
	if c.Model == nil {
		return core.Response{}, nil
	}
	if c.Cache != nil {
		if resp, ok := c.Cache.Lookup(c.Name(), prompt, opts); ok {
			return resp, nil
		}
	}
	resp, err := c.Model.Generate(ctx, prompt, opts)
	if err != nil {
		return core.Response{}, err
	}
	if c.Cache != nil {
		_ = c.Cache.Store(c.Name(), prompt, opts, resp)
	}
	return resp, nil
}
