package model

import (
	"context"
	"sort"
	"strings"
	"time"

	"qaeval/pkg/core"
)

// MockModel returns scripted responses for tests and offline runs.
// Responses maps a prompt substring to the reply for prompts
// containing it; longer substrings win when several match. Prompts
// with no match get ResponseText, or are echoed back when that is
// empty too.
type MockModel struct {
	NameValue    string
	ResponseText string
	Responses    map[string]string
	Err          error
}

func (m MockModel) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

func (m MockModel) Generate(_ context.Context, prompt string, _ core.GenerateOptions) (core.Response, error) {
	if m.Err != nil {
		return core.Response{}, m.Err
	}

	start := time.Now()
	content := prompt
	if m.ResponseText != "" {
		content = m.ResponseText
	}
	if len(m.Responses) > 0 {
		keys := make([]string, 0, len(m.Responses))
		for key := range m.Responses {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
		for _, key := range keys {
			if strings.Contains(prompt, key) {
				content = m.Responses[key]
				break
			}
		}
	}
	return core.Response{
		Content: content,
		Latency: time.Since(start),
	}, nil
}
