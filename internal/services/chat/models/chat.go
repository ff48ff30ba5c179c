package models

// ChatMessage represents a single message in a chat conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a validated inbound /chat request.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	// MaxTokens is the caller's requested budget; nil when not supplied.
	MaxTokens *int `json:"max_tokens,omitempty" validate:"omitempty,gt=0"`
}

// ChatResponse wraps the single relayed completion
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

// Choice represents a single chat completion choice
type Choice struct {
	Message ChatMessage `json:"message"`
}
