package chat

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/harmoni-app/relay/internal/services/chat/models"
)

const (
	msgInvalidFormat    = "Invalid request format"
	msgMessagesRequired = `"messages" field is required and must be an array`
	msgMessagesEmpty    = "messages array cannot be empty"
	msgMessageShape     = `each message must be an object with string "role" and "content" fields`
	msgMaxTokensInvalid = `"max_tokens" must be a positive integer`
	msgRequestTooLarge  = "Request body too large"
)

// use a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

// rawChatRequest keeps the fields undecoded so a wrong type can be reported per field.
type rawChatRequest struct {
	Messages  json.RawMessage `json:"messages"`
	MaxTokens json.RawMessage `json:"max_tokens"`
}

// DecodeRequest reads and validates a /chat body. Every error it returns is an
// *Error of kind KindInvalidInput.
func DecodeRequest(body io.Reader) (models.ChatRequest, error) {
	var req models.ChatRequest

	var raw rawChatRequest
	dec := json.NewDecoder(body)
	if err := dec.Decode(&raw); err != nil {
		return req, decodeError(err)
	}
	// the body must hold exactly one JSON value
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON body")
		}
		return req, decodeError(err)
	}

	messages := bytes.TrimSpace(raw.Messages)
	if len(messages) == 0 || messages[0] != '[' {
		return req, invalidInput(http.StatusBadRequest, msgMessagesRequired, nil)
	}

	if err := json.Unmarshal(messages, &req.Messages); err != nil {
		return req, invalidInput(http.StatusBadRequest, msgMessageShape, err)
	}

	if len(req.Messages) == 0 {
		return req, invalidInput(http.StatusBadRequest, msgMessagesEmpty, nil)
	}

	if maxTokens := bytes.TrimSpace(raw.MaxTokens); len(maxTokens) > 0 && !bytes.Equal(maxTokens, []byte("null")) {
		var n int
		if err := json.Unmarshal(maxTokens, &n); err != nil {
			return req, invalidInput(http.StatusBadRequest, msgMaxTokensInvalid, err)
		}
		req.MaxTokens = &n
	}

	if err := validate.Struct(req); err != nil {
		return req, invalidInput(http.StatusBadRequest, msgMaxTokensInvalid, err)
	}

	return req, nil
}

func decodeError(err error) *Error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return invalidInput(http.StatusRequestEntityTooLarge, msgRequestTooLarge, err)
	}
	return invalidInput(http.StatusBadRequest, msgInvalidFormat, err)
}
