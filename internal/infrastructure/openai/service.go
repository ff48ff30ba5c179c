package openai

import (
	"errors"

	"github.com/harmoni-app/relay/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

type Service struct {
	client *openai.Client
}

// NewService builds the upstream client. Timeouts are applied per call through the
// request context rather than on the HTTP client.
func NewService(cfg config.OpenAIConfig) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	log.Info().Str("base_url", clientConfig.BaseURL).Msg("Initialising OpenAI service")

	return &Service{
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

func (s *Service) GetClient() *openai.Client {
	return s.client
}
