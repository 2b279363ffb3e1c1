// Package memory is an in-memory mirror backend used in tests and
// local development when no spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"github.com/edu-delahoz/finanzas/internal/core"
	"github.com/edu-delahoz/finanzas/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	rows []core.Movement
}

var _ sheets.MovementAppender = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) AppendMovement(_ context.Context, m core.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, m)
	return nil
}

// Movements returns a copy of everything appended so far.
func (s *Store) Movements() []core.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Movement, len(s.rows))
	copy(out, s.rows)
	return out
}
