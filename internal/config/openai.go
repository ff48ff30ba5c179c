package config

import "time"

const (
	DefaultOpenAIBaseURL    = "https://api.openai.com/v1"
	DefaultModel            = "gpt-3.5-turbo"
	DefaultMaxTokens        = 300
	DefaultMaxTokensCeiling = 1000
	DefaultTemperature      = 0.7
	DefaultFrequencyPenalty = 0.5
	DefaultUpstreamTimeout  = 15 * time.Second
)

// OpenAIConfig describes how to reach the upstream completion API.
type OpenAIConfig struct {
	// APIKey is only ever read from the environment.
	APIKey  string        `yaml:"-" validate:"required"`
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// CompletionConfig is the fixed completion setup applied to every relayed request.
type CompletionConfig struct {
	Model            string  `yaml:"model" validate:"required"`
	MaxTokens        int     `yaml:"max_tokens" validate:"min=1"`
	Temperature      float32 `yaml:"temperature" validate:"min=0,max=2"`
	PresencePenalty  float32 `yaml:"presence_penalty" validate:"min=-2,max=2"`
	FrequencyPenalty float32 `yaml:"frequency_penalty" validate:"min=-2,max=2"`

	// AllowMaxTokensOverride lets callers pick max_tokens, clamped to MaxTokensCeiling.
	AllowMaxTokensOverride bool `yaml:"allow_max_tokens_override"`
	MaxTokensCeiling       int  `yaml:"max_tokens_ceiling" validate:"gtefield=MaxTokens"`
}

// GetOpenAIKey returns the upstream API key, accepting the legacy OPENAI_KEY name.
func GetOpenAIKey() string {
	if key := GetEnvOrDefault("OPENAI_API_KEY", ""); key != "" {
		return key
	}
	return GetEnvOrDefault("OPENAI_KEY", "")
}

// ResolveMaxTokens picks the max_tokens sent upstream for a caller's requested value.
func (c CompletionConfig) ResolveMaxTokens(requested *int) int {
	if !c.AllowMaxTokensOverride || requested == nil || *requested <= 0 {
		return c.MaxTokens
	}
	if *requested > c.MaxTokensCeiling {
		return c.MaxTokensCeiling
	}
	return *requested
}
