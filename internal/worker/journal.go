// Package worker mirrors mutation events into an append-only journal
// sheet. The in-memory store stays authoritative; the journal is an
// observational audit trail and its failures never reach the API.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	gsheet "google.golang.org/api/sheets/v4"

	"findash/internal/events"
)

// RowAppender appends one row to the journal.
type RowAppender interface {
	AppendRow(ctx context.Context, row []interface{}) error
}

// JournalWorker converts mutation events into journal rows.
type JournalWorker struct {
	appender RowAppender
	logger   *slog.Logger
}

func NewJournalWorker(appender RowAppender, logger *slog.Logger) *JournalWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &JournalWorker{appender: appender, logger: logger}
}

// HandleMutation appends one row per event. Errors propagate so the
// consumer nacks and requeues the delivery.
func (w *JournalWorker) HandleMutation(ctx context.Context, msg *events.Mutation) error {
	row := journalRow(msg)
	if err := w.appender.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("append journal row: %w", err)
	}

	w.logger.InfoContext(ctx, "Journaled mutation",
		"entity", msg.Entity,
		"op", msg.Op,
		"id", msg.ID,
		"revision", msg.Revision)
	return nil
}

// journalRow lays out one sheet row: when, what, which, revision, and
// the amount in decimal units for deposit/withdraw events.
func journalRow(msg *events.Mutation) []interface{} {
	amount := ""
	if msg.AmountCents != 0 {
		amount = strconv.FormatFloat(float64(msg.AmountCents)/100, 'f', 2, 64)
	}
	return []interface{}{
		msg.Timestamp.UTC().Format(time.RFC3339),
		msg.Entity,
		msg.Op,
		msg.ID,
		strconv.FormatInt(msg.Revision, 10),
		amount,
	}
}

// SheetAppender writes journal rows to a Google Sheets tab.
type SheetAppender struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetAppender(svc *gsheet.Service, spreadsheetID, sheetName string) *SheetAppender {
	return &SheetAppender{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}
}

func (a *SheetAppender) AppendRow(ctx context.Context, row []interface{}) error {
	rng := fmt.Sprintf("%s!A:F", a.sheetName)
	vr := &gsheet.ValueRange{Values: [][]interface{}{row}}

	_, err := a.svc.Spreadsheets.Values.
		Append(a.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", a.sheetName, err)
	}
	return nil
}
