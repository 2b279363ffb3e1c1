// Package worker mirrors newly created movements into the configured
// spreadsheet backend, driven by AMQP movement-created events.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edu-delahoz/finanzas/internal/amqp"
	"github.com/edu-delahoz/finanzas/internal/core"
	"github.com/edu-delahoz/finanzas/internal/sheets"
)

// MovementGetter is the slice of the repository the worker needs.
type MovementGetter interface {
	GetMovement(ctx context.Context, id string) (core.Movement, error)
}

type MirrorWorker struct {
	store    MovementGetter
	appender sheets.MovementAppender
}

func NewMirrorWorker(store MovementGetter, appender sheets.MovementAppender) *MirrorWorker {
	return &MirrorWorker{store: store, appender: appender}
}

// HandleMovementCreated fetches the movement named by the message and
// appends it to the mirror. Errors propagate so the delivery gets
// requeued.
func (w *MirrorWorker) HandleMovementCreated(ctx context.Context, msg *amqp.MovementCreatedMessage) error {
	movement, err := w.store.GetMovement(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get movement %s: %w", msg.ID, err)
	}

	if err := w.appender.AppendMovement(ctx, movement); err != nil {
		return fmt.Errorf("append movement %s: %w", msg.ID, err)
	}

	slog.InfoContext(ctx, "Mirrored movement",
		"id", movement.ID,
		"type", movement.Type,
		"amount_cents", movement.AmountCents)

	return nil
}
