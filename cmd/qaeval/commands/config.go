package commands

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Dataset    string          `mapstructure:"dataset"`
	Workers    int             `mapstructure:"workers"`
	Sequential bool            `mapstructure:"sequential"`
	Output     string          `mapstructure:"output"`
	Format     string          `mapstructure:"format"`
	LogDir     string          `mapstructure:"log_dir"`
	LogFormat  string          `mapstructure:"log_format"`
	Provider   string          `mapstructure:"provider"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Cache      CacheConfig     `mapstructure:"cache"`
	Model      ModelConfig     `mapstructure:"model"`
	OpenAI     ProviderConfig  `mapstructure:"openai"`
	Anthropic  AnthropicConfig `mapstructure:"anthropic"`
	Gemini     ProviderConfig  `mapstructure:"gemini"`
	Ollama     OllamaConfig    `mapstructure:"ollama"`
}

type ModelConfig struct {
	Name         string `mapstructure:"name"`
	MockResponse string `mapstructure:"mock_response"`
}

type ProviderConfig struct {
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxRetries     int    `mapstructure:"max_retries"`
	BackoffMillis  int    `mapstructure:"backoff_millis"`
}

type AnthropicConfig struct {
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxRetries     int    `mapstructure:"max_retries"`
	BackoffMillis  int    `mapstructure:"backoff_millis"`
	MaxTokens      int    `mapstructure:"max_tokens"`
}

type OllamaConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Dir      string `mapstructure:"dir"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".qaeval")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
