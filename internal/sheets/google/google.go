// Package google mirrors movements into a Google Sheets spreadsheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/edu-delahoz/finanzas/internal/core"
	"github.com/edu-delahoz/finanzas/internal/sheets"
)

type Config struct {
	SpreadsheetID string
	SheetName     string
	// CredentialsFile and CredentialsJSON are optional; with neither
	// set the client falls back to Application Default Credentials.
	CredentialsFile string
	CredentialsJSON string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ sheets.MovementAppender = (*Client)(nil)

func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName := cfg.SheetName
	if sheetName == "" {
		sheetName = "Movements"
	}

	var opts []goption.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, goption.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, goption.WithCredentialsFile(cfg.CredentialsFile))
	}
	opts = append(opts, goption.WithScopes(gsheet.SpreadsheetsScope))

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// AppendMovement appends one row in the same column order as the CSV
// export: type, amount, concept, date, userName, userEmail.
func (c *Client) AppendMovement(ctx context.Context, m core.Movement) error {
	values := &gsheet.ValueRange{
		Values: [][]interface{}{{
			string(m.Type),
			core.FormatCents(m.AmountCents),
			m.Concept,
			m.Date.UTC().Format(time.RFC3339),
			m.User.Name,
			m.User.Email,
		}},
	}

	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.sheetName+"!A:F", values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to sheet %q: %w", c.sheetName, err)
	}

	return nil
}
