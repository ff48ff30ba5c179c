package services

import (
	"fmt"

	"github.com/harmoni-app/relay/internal/config"
	"github.com/harmoni-app/relay/internal/infrastructure/openai"
	"github.com/harmoni-app/relay/internal/metrics"
	"github.com/harmoni-app/relay/internal/services/chat"
	"github.com/rs/zerolog/log"
)

type Services struct {
	chatService *chat.Implementation
	metrics     *metrics.Collector
}

// InitializeServices initializes all required services
func InitializeServices(cfg *config.Config) (*Services, error) {
	log.Info().Msg("Initializing core services")

	collector := metrics.NewCollector()

	openAIService, err := openai.NewService(cfg.OpenAI)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize OpenAI service - service is required for core functionality")
		return nil, fmt.Errorf("failed to initialize OpenAI service: %w", err)
	}

	chatService, err := chat.NewService(openAIService, cfg, collector)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize chat service - required for message processing")
		return nil, fmt.Errorf("failed to initialize chat service: %w", err)
	}

	log.Info().
		Str("model", cfg.Completion.Model).
		Dur("upstream_timeout", cfg.OpenAI.Timeout).
		Bool("max_tokens_override", cfg.Completion.AllowMaxTokensOverride).
		Msg("All services initialized successfully")

	return &Services{
		chatService: chatService,
		metrics:     collector,
	}, nil
}

// GetChatService returns the chat service
func (s *Services) GetChatService() *chat.Implementation {
	return s.chatService
}

// GetMetrics returns the metrics collector
func (s *Services) GetMetrics() *metrics.Collector {
	return s.metrics
}
