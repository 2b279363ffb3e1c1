// Package sheets defines the ports for mirroring movements into an
// external spreadsheet, with Google Sheets and in-memory backends.
package sheets

import (
	"context"

	"github.com/edu-delahoz/finanzas/internal/core"
)

// MovementAppender appends one movement row to the mirror target.
type MovementAppender interface {
	AppendMovement(ctx context.Context, m core.Movement) error
}
