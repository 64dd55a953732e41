package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"findash/internal/config"
	"findash/internal/core"
)

// userSheet holds a single profile row: Name, Currency.
const userSheet = "User"

// SheetsSource reads the dataset from a Google Spreadsheet, one tab per
// collection. Rows are read top to bottom, so sheet order is dataset
// order.
type SheetsSource struct {
	svc           *gsheet.Service
	spreadsheetID string

	transactionsSheet   string
	savingsPotsSheet    string
	budgetsSheet        string
	recurringBillsSheet string
}

// NewSheetsSource creates a read-only Sheets client using Service
// Account credentials from GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func NewSheetsSource(ctx context.Context, cfg *config.Config) (*SheetsSource, error) {
	if strings.TrimSpace(cfg.GoogleSpreadsheetID) == "" {
		return nil, errors.New("missing Google spreadsheet ID")
	}

	svc, err := newSheetsService(ctx, gsheet.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsSource{
		svc:                 svc,
		spreadsheetID:       cfg.GoogleSpreadsheetID,
		transactionsSheet:   cfg.GoogleTransactionsSheet,
		savingsPotsSheet:    cfg.GoogleSavingsPotsSheet,
		budgetsSheet:        cfg.GoogleBudgetsSheet,
		recurringBillsSheet: cfg.GoogleRecurringBillsSheet,
	}, nil
}

// NewSheetsService initializes a Sheets service for the given scope.
// Shared with the journal mirror worker, which needs write access.
func NewSheetsService(ctx context.Context, scope string) (*gsheet.Service, error) {
	return newSheetsService(ctx, scope)
}

func newSheetsService(ctx context.Context, scope string) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(scope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (s *SheetsSource) Load(ctx context.Context) (core.AppData, error) {
	var data core.AppData
	var err error

	userRows, err := s.readRange(ctx, userSheet+"!A2:B2")
	if err != nil {
		return core.AppData{}, err
	}
	if data.User, err = parseUserRows(userRows); err != nil {
		return core.AppData{}, err
	}

	txRows, err := s.readRange(ctx, s.transactionsSheet+"!A2:F")
	if err != nil {
		return core.AppData{}, err
	}
	if data.Transactions, err = parseTransactionRows(txRows); err != nil {
		return core.AppData{}, err
	}

	potRows, err := s.readRange(ctx, s.savingsPotsSheet+"!A2:F")
	if err != nil {
		return core.AppData{}, err
	}
	if data.SavingsPots, err = parseSavingsPotRows(potRows); err != nil {
		return core.AppData{}, err
	}

	budgetRows, err := s.readRange(ctx, s.budgetsSheet+"!A2:I")
	if err != nil {
		return core.AppData{}, err
	}
	if data.Budgets, err = parseBudgetRows(budgetRows); err != nil {
		return core.AppData{}, err
	}

	billRows, err := s.readRange(ctx, s.recurringBillsSheet+"!A2:G")
	if err != nil {
		return core.AppData{}, err
	}
	if data.RecurringBills, err = parseRecurringBillRows(billRows); err != nil {
		return core.AppData{}, err
	}

	if err := data.Validate(); err != nil {
		return core.AppData{}, fmt.Errorf("validate sheets dataset: %w", err)
	}
	return data, nil
}

func (s *SheetsSource) readRange(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", rng, err)
	}
	return resp.Values, nil
}
