package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edu-delahoz/finanzas/internal/core"
	"github.com/edu-delahoz/finanzas/internal/storage"
)

// SessionVerifier checks bearer session tokens minted by the external
// auth provider. This service never issues tokens; it only verifies the
// shared-secret HS256 signature and reads the subject.
type SessionVerifier struct {
	secret []byte
}

func NewSessionVerifier(secret string) *SessionVerifier {
	return &SessionVerifier{secret: []byte(secret)}
}

// UserID returns the subject of a valid session token.
func (v *SessionVerifier) UserID(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

// requireSession authenticates the request and loads the current user.
// On failure it writes a 401 and returns ok=false.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (core.User, bool) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return core.User{}, false
	}

	userID, err := s.sessions.UserID(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return core.User{}, false
	}

	// The role is read fresh on every request so demotions take effect
	// immediately, not when the token expires.
	user, err := s.store.GetUser(r.Context(), userID)
	if errors.Is(err, storage.ErrUserNotFound) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return core.User{}, false
	}
	if err != nil {
		writeInternalError(r.Context(), w, err)
		return core.User{}, false
	}

	return user, true
}

// requireAdmin is requireSession plus an ADMIN role gate (403).
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (core.User, bool) {
	user, ok := s.requireSession(w, r)
	if !ok {
		return core.User{}, false
	}
	if user.Role != core.RoleAdmin {
		writeError(w, http.StatusForbidden, "Forbidden")
		return core.User{}, false
	}
	return user, true
}
