package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML config file.
const ConfigFileEnv = "RELAY_CONFIG_FILE"

// Config is the process-wide configuration. It is built once at startup by Load and
// must not be mutated afterwards.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Completion CompletionConfig `yaml:"completion"`
}

// ServerConfig covers the listening side of the relay.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port" validate:"min=1,max=65535"`
	MaxBodyBytes   int64    `yaml:"max_body_bytes" validate:"gt=0"`
	AllowedOrigins []string `yaml:"allowed_origins" validate:"min=1,dive,required"`
	// MetricsAddr enables a separate Prometheus listener when set.
	MetricsAddr string `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
}

// Addr returns the host:port the HTTP server binds to.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Default returns the built-in configuration without an API key.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           5000,
			MaxBodyBytes:   10 << 20,
			AllowedOrigins: []string{"*"},
		},
		OpenAI: OpenAIConfig{
			BaseURL: DefaultOpenAIBaseURL,
			Timeout: DefaultUpstreamTimeout,
		},
		Completion: CompletionConfig{
			Model:            DefaultModel,
			MaxTokens:        DefaultMaxTokens,
			Temperature:      DefaultTemperature,
			PresencePenalty:  0,
			FrequencyPenalty: DefaultFrequencyPenalty,
			MaxTokensCeiling: DefaultMaxTokensCeiling,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// RELAY_CONFIG_FILE and the environment, in that order, then validates it.
func Load() (*Config, error) {
	cfg := Default()

	if path := GetEnvOrDefault(ConfigFileEnv, ""); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Msg("Configuration file loaded")
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnv() {
	c.Server.Host = GetEnvOrDefault("HOST", c.Server.Host)
	c.Server.Port = parseEnvInt("PORT", c.Server.Port)
	c.Server.MaxBodyBytes = parseEnvInt64("MAX_BODY_BYTES", c.Server.MaxBodyBytes)
	c.Server.AllowedOrigins = parseEnvList("CORS_ALLOWED_ORIGINS", c.Server.AllowedOrigins)
	c.Server.MetricsAddr = GetEnvOrDefault("METRICS_ADDR", c.Server.MetricsAddr)

	c.OpenAI.APIKey = GetOpenAIKey()
	c.OpenAI.BaseURL = GetEnvOrDefault("OPENAI_BASE_URL", c.OpenAI.BaseURL)
	c.OpenAI.Timeout = parseEnvDuration("UPSTREAM_TIMEOUT", c.OpenAI.Timeout)

	c.Completion.Model = GetEnvOrDefault("OPENAI_MODEL", c.Completion.Model)
	c.Completion.MaxTokens = parseEnvInt("OPENAI_MAX_TOKENS", c.Completion.MaxTokens)
	c.Completion.Temperature = parseEnvFloat("OPENAI_TEMPERATURE", c.Completion.Temperature)
	c.Completion.PresencePenalty = parseEnvFloat("OPENAI_PRESENCE_PENALTY", c.Completion.PresencePenalty)
	c.Completion.FrequencyPenalty = parseEnvFloat("OPENAI_FREQUENCY_PENALTY", c.Completion.FrequencyPenalty)
	c.Completion.AllowMaxTokensOverride = parseEnvBool("ALLOW_MAX_TOKENS_OVERRIDE", c.Completion.AllowMaxTokensOverride)
	c.Completion.MaxTokensCeiling = parseEnvInt("MAX_TOKENS_CEILING", c.Completion.MaxTokensCeiling)
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
