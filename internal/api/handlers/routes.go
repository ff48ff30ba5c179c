package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/harmoni-app/relay/internal/config"
	"github.com/harmoni-app/relay/internal/services/chat"
)

// RegisterRoutes mounts the public relay surface on router.
func RegisterRoutes(router *mux.Router, chatService chat.Service, cfg *config.Config) {
	router.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		HandleChat(chatService, cfg.Server.MaxBodyBytes, w, r)
	}).Methods(http.MethodPost)

	router.HandleFunc("/health", HandleHealth).Methods(http.MethodGet, http.MethodHead)

	router.NotFoundHandler = http.HandlerFunc(HandleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(HandleNotFound)
}
