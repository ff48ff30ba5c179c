package handlers

import (
	"net/http"

	"github.com/harmoni-app/relay/pkg/httpext"
)

// HandleNotFound answers every route the router does not serve, including known
// paths hit with the wrong method.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	httpext.JsonError(w, "Endpoint not found", http.StatusNotFound)
}
