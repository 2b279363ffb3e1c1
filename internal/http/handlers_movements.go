package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/edu-delahoz/finanzas/internal/core"
	"github.com/edu-delahoz/finanzas/internal/log"
	"github.com/edu-delahoz/finanzas/internal/storage"
)

type movementPayload struct {
	ID        string            `json:"id"`
	Type      core.MovementType `json:"type"`
	Amount    string            `json:"amount"`
	Concept   string            `json:"concept"`
	Date      time.Time         `json:"date"`
	CreatedAt time.Time         `json:"createdAt"`
	User      core.UserRef      `json:"user"`
}

type pageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func toMovementPayload(m core.Movement) movementPayload {
	return movementPayload{
		ID:        m.ID,
		Type:      m.Type,
		Amount:    core.FormatCents(m.AmountCents),
		Concept:   m.Concept,
		Date:      m.Date.UTC(),
		CreatedAt: m.CreatedAt.UTC(),
		User:      m.User,
	}
}

func (s *Server) handleMovements(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleMovementsList(w, r)
	case http.MethodPost:
		s.handleMovementCreate(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleMovementsList(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireSession(w, r); !ok {
		return
	}

	query := r.URL.Query()
	pagination, err := parsePagination(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, userMessage(err))
		return
	}

	search := parseSearch(query)
	filter := storage.ListFilter{
		Search: search,
		Type:   typeFromSearch(search),
		Limit:  pagination.Limit,
		Offset: pagination.Offset(),
	}

	// Count and page run concurrently against independent connections.
	g, ctx := errgroup.WithContext(r.Context())
	var (
		total     int64
		movements []core.Movement
	)
	g.Go(func() error {
		var err error
		total, err = s.store.CountMovements(ctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		movements, err = s.store.ListMovements(ctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		writeInternalError(r.Context(), w, err)
		return
	}

	data := make([]movementPayload, 0, len(movements))
	for _, m := range movements {
		data = append(data, toMovementPayload(m))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": data,
		"meta": pageMeta{
			Page:       pagination.Page,
			Limit:      pagination.Limit,
			Total:      total,
			TotalPages: totalPages(total, pagination.Limit),
		},
	})
}

// typeFromSearch turns a search term that names a movement type into a
// type filter, so searching "income" also matches by type.
func typeFromSearch(search string) core.MovementType {
	if t := core.MovementType(strings.ToUpper(search)); t.Valid() {
		return t
	}
	return ""
}

type movementCreateRequest struct {
	Type    string `json:"type"`
	Amount  any    `json:"amount"`
	Concept string `json:"concept"`
	Date    string `json:"date"`
}

func (s *Server) handleMovementCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}

	var req movementCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	movementType := core.MovementType(req.Type)
	if !movementType.Valid() {
		writeError(w, http.StatusBadRequest, core.ErrInvalidType.Error())
		return
	}

	cents, err := core.ParseAmount(amountString(req.Amount))
	if err != nil {
		writeError(w, http.StatusBadRequest, core.ErrInvalidAmount.Error())
		return
	}

	concept := strings.TrimSpace(req.Concept)
	if concept == "" {
		writeError(w, http.StatusBadRequest, core.ErrEmptyConcept.Error())
		return
	}

	date, err := parseDateInput(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, core.ErrInvalidDate.Error())
		return
	}

	movement := core.Movement{
		ID:          uuid.NewString(),
		Type:        movementType,
		AmountCents: cents,
		Concept:     concept,
		Date:        date.UTC(),
		CreatedAt:   time.Now().UTC(),
		User:        core.UserRef{ID: user.ID, Name: user.Name, Email: user.Email},
	}

	created, err := s.store.CreateMovement(r.Context(), movement)
	if err != nil {
		writeInternalError(r.Context(), w, err)
		return
	}

	// Mirror event is best effort: the movement is already persisted.
	if s.pub != nil {
		if err := s.pub.PublishMovementCreated(r.Context(), created.ID); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(),
				"Failed to publish movement created event", "id", created.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{"data": toMovementPayload(created)})
}

// amountString flattens the number-or-string amount field the frontend
// sends into a decimal string for ParseAmount.
func amountString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case json.Number:
		return value.String()
	default:
		return ""
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

func parseDateInput(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
