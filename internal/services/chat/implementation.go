package chat

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/harmoni-app/relay/internal/config"
	infraopenai "github.com/harmoni-app/relay/internal/infrastructure/openai"
	"github.com/harmoni-app/relay/internal/metrics"
	"github.com/harmoni-app/relay/internal/services/chat/models"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

type Implementation struct {
	client     *openai.Client
	completion config.CompletionConfig
	timeout    time.Duration
	metrics    *metrics.Collector
}

// NewService wires the relay to an upstream client. collector may be nil.
func NewService(openAIService *infraopenai.Service, cfg *config.Config, collector *metrics.Collector) (*Implementation, error) {
	if openAIService == nil {
		return nil, errors.New("OpenAI service is required")
	}
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}

	return &Implementation{
		client:     openAIService.GetClient(),
		completion: cfg.Completion,
		timeout:    cfg.OpenAI.Timeout,
		metrics:    collector,
	}, nil
}

func (s *Implementation) ProcessChat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	logger := zerolog.Ctx(ctx)

	if len(req.Messages) == 0 {
		return nil, invalidInput(http.StatusBadRequest, msgMessagesEmpty, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	openaiReq := s.buildRequest(req)

	logger.Debug().
		Str("model", openaiReq.Model).
		Int("message_count", len(openaiReq.Messages)).
		Int("max_tokens", openaiReq.MaxTokens).
		Msg("Sending completion request upstream")

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openaiReq)
	if err != nil {
		relayErr := classify(ctx, err)
		s.metrics.ObserveUpstream(relayErr.Kind.String(), time.Since(start))
		return nil, relayErr
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Role == "" {
		s.metrics.ObserveUpstream(KindUpstreamEmptyResponse.String(), time.Since(start))
		return nil, upstreamEmpty()
	}
	s.metrics.ObserveUpstream("ok", time.Since(start))

	message := resp.Choices[0].Message

	logger.Debug().
		Str("finish_reason", string(resp.Choices[0].FinishReason)).
		Int("total_tokens", resp.Usage.TotalTokens).
		Dur("upstream_duration", time.Since(start)).
		Msg("Completion received")

	return &models.ChatResponse{
		Choices: []models.Choice{{
			Message: models.ChatMessage{
				Role:    message.Role,
				Content: message.Content,
			},
		}},
	}, nil
}

func (s *Implementation) buildRequest(req models.ChatRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	// the client omits a zero temperature and the upstream would fall back to its own default
	temperature := s.completion.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	return openai.ChatCompletionRequest{
		Model:            s.completion.Model,
		Messages:         messages,
		MaxTokens:        s.completion.ResolveMaxTokens(req.MaxTokens),
		Temperature:      temperature,
		PresencePenalty:  s.completion.PresencePenalty,
		FrequencyPenalty: s.completion.FrequencyPenalty,
	}
}
