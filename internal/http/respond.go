package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/edu-delahoz/finanzas/internal/log"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter, err error) {
	log.FromContext(ctx).ErrorContext(ctx, "Request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
