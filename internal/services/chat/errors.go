package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// Kind classifies a relay failure.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindUpstreamTimeout
	KindUpstreamError
	KindUpstreamEmptyResponse
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUpstreamTimeout:
		return "upstream_timeout"
	case KindUpstreamError:
		return "upstream_error"
	case KindUpstreamEmptyResponse:
		return "upstream_empty_response"
	default:
		return "internal_error"
	}
}

const (
	upstreamPrefix         = "OpenAI"
	unknownUpstreamMessage = "unknown upstream error"
	internalErrorMessage   = "Internal server error"
	timeoutMessage         = "Timeout: AI did not respond in time"
)

// Error is the only error type ProcessChat and DecodeRequest return. Status and
// Message are what the caller sees; Details is set for internal errors only.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidInput(status int, message string, err error) *Error {
	return &Error{Kind: KindInvalidInput, Status: status, Message: message, Err: err}
}

func upstreamTimeout(err error) *Error {
	return &Error{Kind: KindUpstreamTimeout, Status: http.StatusGatewayTimeout, Message: timeoutMessage, Err: err}
}

func upstreamError(status int, message string, err error) *Error {
	if message == "" {
		message = unknownUpstreamMessage
	}
	return &Error{
		Kind:    KindUpstreamError,
		Status:  status,
		Message: fmt.Sprintf("%s: %s", upstreamPrefix, message),
		Err:     err,
	}
}

func upstreamEmpty() *Error {
	return &Error{
		Kind:    KindUpstreamEmptyResponse,
		Status:  http.StatusInternalServerError,
		Message: internalErrorMessage,
		Details: "no completion returned by upstream",
	}
}

// Internal wraps an unclassified failure.
func Internal(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Message: internalErrorMessage,
		Details: err.Error(),
		Err:     err,
	}
}

// classify maps a failed completion call onto the relay taxonomy. Order matters:
// timeout, then any upstream HTTP failure, then everything else.
func classify(ctx context.Context, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return upstreamTimeout(err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return upstreamError(apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return upstreamError(reqErr.HTTPStatusCode, "", err)
	}

	return Internal(err)
}
