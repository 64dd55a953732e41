// Package dataset loads the startup dataset behind a common Source
// interface. The dataset is a read-once input: a Source is consulted
// exactly once at process start and never refreshed, and nothing is
// ever written back through it.
package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"findash/internal/config"
	"findash/internal/core"
)

// Source produces the aggregate root once at startup.
type Source interface {
	Load(ctx context.Context) (core.AppData, error)
}

// BackendType selects the dataset source implementation.
type BackendType string

const (
	JSONBackend   BackendType = "json"
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case JSONBackend, SQLiteBackend, SheetsBackend:
		return true
	}
	return false
}

// New creates the dataset source selected by the configuration.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	backend := BackendType(cfg.DatasetBackend)
	if !backend.IsValid() {
		return nil, fmt.Errorf("invalid dataset backend: %s", cfg.DatasetBackend)
	}

	switch backend {
	case SQLiteBackend:
		logger.Info("Using SQLite dataset source", "db_path", cfg.SQLiteDBPath)
		return NewSQLiteSource(cfg.SQLiteDBPath), nil
	case SheetsBackend:
		src, err := NewSheetsSource(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets dataset source: %w", err)
		}
		logger.Info("Using Google Sheets dataset source", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		return src, nil
	default:
		logger.Info("Using JSON dataset source", "path", cfg.DatasetPath)
		return NewJSONSource(cfg.DatasetPath), nil
	}
}
