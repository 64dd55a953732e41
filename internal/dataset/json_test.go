package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleDataset = `{
  "transactions": [
    {"id": "tx-1", "date": "2025-07-01T00:00:00Z", "description": "Salary", "category": "Income", "amount": 3200, "type": "income"},
    {"id": "tx-2", "date": "2025-07-03T00:00:00Z", "description": "Groceries", "category": "Food", "amount": 84.25, "type": "expense"}
  ],
  "savingsPots": [
    {"id": "pot-1", "name": "Holiday", "goal": 2000, "currentAmount": 1200.5, "targetDate": "2026-06-01T00:00:00Z", "icon": "Plane"}
  ],
  "budgets": [
    {"id": "bud-1", "name": "Food", "category": "Food", "amount": 400, "spentAmount": 84.25, "period": "monthly", "startDate": "2025-07-01T00:00:00Z", "endDate": "2025-07-31T00:00:00Z"}
  ],
  "recurringBills": [
    {"id": "bill-1", "name": "Rent", "category": "Housing", "amount": 950, "dueDateDescription": "1st of month", "nextDueDate": "2025-08-01T00:00:00Z", "status": "due"}
  ],
  "user": {"name": "Alex", "currency": "EUR"}
}`

func writeDatasetFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dataset file: %v", err)
	}
	return path
}

func TestJSONSourceLoad(t *testing.T) {
	src := NewJSONSource(writeDatasetFile(t, sampleDataset))

	data, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := len(data.Transactions); got != 2 {
		t.Fatalf("transactions = %d, want 2", got)
	}
	if got := data.Transactions[1].Amount.Cents; got != 8425 {
		t.Errorf("transaction amount cents = %d, want 8425", got)
	}
	if got := data.SavingsPots[0].CurrentAmount.Cents; got != 120050 {
		t.Errorf("pot current cents = %d, want 120050", got)
	}
	if data.SavingsPots[0].TargetDate == nil {
		t.Error("pot target date should be set")
	}
	if got := data.User.Currency; got != "EUR" {
		t.Errorf("currency = %q, want EUR", got)
	}
}

func TestJSONSourceMissingFile(t *testing.T) {
	src := NewJSONSource(filepath.Join(t.TempDir(), "nope.json"))
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestJSONSourceMalformed(t *testing.T) {
	src := NewJSONSource(writeDatasetFile(t, `{"transactions": [`))
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestJSONSourceInvalidData(t *testing.T) {
	// Duplicate entity IDs must be rejected before the dataset is served.
	doc := `{
	  "transactions": [],
	  "savingsPots": [
	    {"id": "pot-1", "name": "A", "goal": 100, "currentAmount": 0},
	    {"id": "pot-1", "name": "B", "goal": 100, "currentAmount": 0}
	  ],
	  "budgets": [],
	  "recurringBills": [],
	  "user": {"name": "Alex", "currency": "EUR"}
	}`
	src := NewJSONSource(writeDatasetFile(t, doc))
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("expected validation error for duplicate IDs")
	}
}
