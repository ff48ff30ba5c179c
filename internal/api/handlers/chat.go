package handlers

import (
	"errors"
	"net/http"

	"github.com/harmoni-app/relay/internal/services/chat"
	"github.com/harmoni-app/relay/pkg/httpext"
	"github.com/rs/zerolog"
)

// HandleChat relays a chat conversation to the upstream completion API
func HandleChat(chatService chat.Service, maxBodyBytes int64, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	if maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	}

	req, err := chat.DecodeRequest(r.Body)
	if err != nil {
		writeChatError(w, r, err)
		return
	}

	logger.Debug().
		Int("message_count", len(req.Messages)).
		Str("client_ip", r.RemoteAddr).
		Msg("Received chat request")

	resp, err := chatService.ProcessChat(r.Context(), req)
	if err != nil {
		writeChatError(w, r, err)
		return
	}

	httpext.JsonResponse(w, http.StatusOK, resp)
}

// writeChatError renders a relay failure. Anything that is not a *chat.Error is
// treated as internal.
func writeChatError(w http.ResponseWriter, r *http.Request, err error) {
	var relayErr *chat.Error
	if !errors.As(err, &relayErr) {
		relayErr = chat.Internal(err)
	}

	event := zerolog.Ctx(r.Context()).Error()
	if relayErr.Kind == chat.KindInvalidInput {
		event = zerolog.Ctx(r.Context()).Warn()
	}
	event.
		Err(err).
		Str("path", r.URL.Path).
		Str("kind", relayErr.Kind.String()).
		Int("status", relayErr.Status).
		Msg("Chat request failed")

	httpext.JsonErrorWithDetails(w, relayErr.Status, httpext.ErrorResponse{
		Error:   relayErr.Message,
		Details: relayErr.Details,
	})
}
