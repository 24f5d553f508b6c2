package core

import (
	"context"
	"time"
)

// Model generates responses for prompts.
type Model interface {
	Name() string
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (Response, error)
}

// Response is a model response plus basic telemetry.
type Response struct {
	Content    string        `json:"content" yaml:"content"`
	TokenUsage TokenUsage    `json:"token_usage" yaml:"token_usage"`
	Latency    time.Duration `json:"latency" yaml:"latency"`
}

// TokenUsage captures token accounting for a request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens" yaml:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens" yaml:"completion_tokens"`
	TotalTokens      int `json:"total_tokens" yaml:"total_tokens"`
}

// GenerateOptions controls model generation behavior.
type GenerateOptions struct {
	Temperature  float32  `json:"temperature" yaml:"temperature"`
	MaxTokens    int      `json:"max_tokens" yaml:"max_tokens"`
	TopP         float32  `json:"top_p" yaml:"top_p"`
	Stop         []string `json:"stop" yaml:"stop"`
	SystemPrompt string   `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`
}
