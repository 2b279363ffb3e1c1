package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/edu-delahoz/finanzas/internal/core"
	"github.com/edu-delahoz/finanzas/internal/storage"
)

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeInternalError(r.Context(), w, err)
		return
	}
	if users == nil {
		users = []core.User{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": users})
}

type userUpdateRequest struct {
	Name  *string `json:"name"`
	Role  *string `json:"role"`
	Phone *string `json:"phone"`
}

func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		methodNotAllowed(w, http.MethodPatch)
		return
	}

	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/users/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req userUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	patch := core.UserPatch{Name: req.Name, Phone: req.Phone}
	if req.Role != nil {
		role := core.Role(*req.Role)
		patch.Role = &role
	}
	if err := patch.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.store.UpdateUser(r.Context(), id, patch)
	if errors.Is(err, storage.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeInternalError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": updated})
}
