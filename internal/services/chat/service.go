package chat

import (
	"context"

	"github.com/harmoni-app/relay/internal/services/chat/models"
)

// Service defines the interface for chat operations
type Service interface {
	// ProcessChat relays a validated conversation upstream and returns the single
	// completion. Any error is an *Error.
	ProcessChat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}
