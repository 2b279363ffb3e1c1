package http

import (
	"net/http"
	"time"

	"github.com/edu-delahoz/finanzas/internal/core"
	"github.com/edu-delahoz/finanzas/internal/reports"
)

const rangeLayout = "2006-01-02T15:04:05.000Z07:00"

type rangePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type summaryPayload struct {
	reports.Summary
	Group string       `json:"group"`
	Range rangePayload `json:"range"`
}

func (s *Server) handleReportsSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	q := r.URL.Query()

	group, err := reports.ParseGroup(singleParam(q, "group"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rng, err := reports.ResolveDateRange(singleParam(q, "from"), singleParam(q, "to"), time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	movements, err := s.store.MovementsInRange(r.Context(), rng.From, rng.To)
	if err != nil {
		writeInternalError(r.Context(), w, err)
		return
	}

	summary, err := reports.Aggregate(toReportRows(movements), group)
	if err != nil {
		writeInternalError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": summaryPayload{
		Summary: summary,
		Group:   string(group),
		Range: rangePayload{
			From: rng.From.UTC().Format(rangeLayout),
			To:   rng.To.UTC().Format(rangeLayout),
		},
	}})
}

func (s *Server) handleReportsCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	q := r.URL.Query()

	rng, err := reports.ResolveDateRange(singleParam(q, "from"), singleParam(q, "to"), time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	movements, err := s.store.MovementsInRange(r.Context(), rng.From, rng.To)
	if err != nil {
		writeInternalError(r.Context(), w, err)
		return
	}

	body := reports.EncodeCSV(toReportRows(movements))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// toReportRows converts stored movements into the string-amount rows
// the reports engine consumes.
func toReportRows(movements []core.Movement) []reports.Row {
	rows := make([]reports.Row, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, reports.Row{
			Type:      m.Type,
			Amount:    core.FormatCents(m.AmountCents),
			Concept:   m.Concept,
			Date:      m.Date,
			UserName:  m.User.Name,
			UserEmail: m.User.Email,
		})
	}
	return rows
}
