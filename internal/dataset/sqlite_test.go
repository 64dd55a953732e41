package dataset

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func seedSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "findash.db")

	if err := runMigrations(path); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`INSERT INTO users (id, name, currency) VALUES (1, 'Alex', 'EUR')`,
		`INSERT INTO transactions (id, date, description, category, amount_cents, type, position)
		 VALUES ('tx-1', '2025-07-01T00:00:00Z', 'Salary', 'Income', 320000, 'income', 0),
		        ('tx-2', '2025-07-03', 'Groceries', 'Food', 8425, 'expense', 1)`,
		`INSERT INTO savings_pots (id, name, goal_cents, current_cents, target_date, icon, position)
		 VALUES ('pot-1', 'Holiday', 200000, 120050, '2026-06-01', 'Plane', 0),
		        ('pot-2', 'Rainy Day', 50000, 0, NULL, '', 1)`,
		`INSERT INTO budgets (id, name, category, amount_cents, spent_cents, period, start_date, end_date, icon, position)
		 VALUES ('bud-1', 'Food', 'Food', 40000, 8425, 'monthly', '2025-07-01', '2025-07-31', '', 0)`,
		`INSERT INTO recurring_bills (id, name, category, amount_cents, due_date_description, next_due_date, status, position)
		 VALUES ('bill-1', 'Rent', 'Housing', 95000, '1st of month', '2025-08-01', 'due', 0)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return path
}

func TestSQLiteSourceLoad(t *testing.T) {
	src := NewSQLiteSource(seedSQLite(t))

	data, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := len(data.Transactions); got != 2 {
		t.Fatalf("transactions = %d, want 2", got)
	}
	if got := data.Transactions[0].ID; got != "tx-1" {
		t.Errorf("first transaction = %q, want tx-1 (position order)", got)
	}
	if got := data.Transactions[1].Amount.Cents; got != 8425 {
		t.Errorf("amount cents = %d, want 8425", got)
	}
	if got := len(data.SavingsPots); got != 2 {
		t.Fatalf("savings pots = %d, want 2", got)
	}
	if data.SavingsPots[0].TargetDate == nil {
		t.Error("pot-1 target date should be set")
	}
	if data.SavingsPots[1].TargetDate != nil {
		t.Error("pot-2 target date should be nil")
	}
	if got := data.Budgets[0].Period; got != "monthly" {
		t.Errorf("budget period = %q, want monthly", got)
	}
	if got := data.RecurringBills[0].Status.Rank(); got != 2 {
		t.Errorf("bill status rank = %d, want 2", got)
	}
	if got := data.User.Name; got != "Alex" {
		t.Errorf("user name = %q, want Alex", got)
	}
}

func TestSQLiteSourceRunsMigrationsOnEmptyDatabase(t *testing.T) {
	// A fresh database migrates cleanly but has no profile row yet.
	src := NewSQLiteSource(filepath.Join(t.TempDir(), "empty.db"))
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("expected error for dataset without a user profile")
	}
}
