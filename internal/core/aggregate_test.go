package core

import (
	"testing"
	"time"
)

func tx(id string, amount int64, typ TransactionType, category string) Transaction {
	return Transaction{
		ID:          id,
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "test " + id,
		Category:    category,
		Amount:      Money{Cents: amount},
		Type:        typ,
	}
}

func TestTotalByTypeAndBalance(t *testing.T) {
	txs := []Transaction{
		tx("t1", 250000, Income, "Salary"),
		tx("t2", 4500, Expense, "Dining"),
		tx("t3", 12000, Expense, "Groceries"),
		tx("t4", 5000, Income, "Refund"),
	}
	income := TotalByType(txs, Income)
	expenses := TotalByType(txs, Expense)
	if income.Cents != 255000 {
		t.Fatalf("income = %d, want 255000", income.Cents)
	}
	if expenses.Cents != 16500 {
		t.Fatalf("expenses = %d, want 16500", expenses.Cents)
	}
	// balance identity: balance == income - expenses
	if got := Balance(txs); got.Cents != income.Cents-expenses.Cents {
		t.Fatalf("balance = %d, want %d", got.Cents, income.Cents-expenses.Cents)
	}
}

func TestTotalByTypeEmpty(t *testing.T) {
	if got := TotalByType(nil, Income); got.Cents != 0 {
		t.Fatalf("empty input should sum to 0, got %d", got.Cents)
	}
	if got := Balance(nil); got.Cents != 0 {
		t.Fatalf("empty balance should be 0, got %d", got.Cents)
	}
}

func TestSpendingByCategory(t *testing.T) {
	txs := []Transaction{
		tx("t1", 5000, Expense, "Dining"),
		tx("t2", 100000, Income, "Salary"), // income excluded
		tx("t3", 3000, Expense, "Transport"),
		tx("t4", 2500, Expense, "Dining"),
	}
	rows := SpendingByCategory(txs)
	if len(rows) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(rows))
	}
	// first-seen order
	if rows[0].Category != "Dining" || rows[0].Amount.Cents != 7500 {
		t.Fatalf("Dining row wrong: %+v", rows[0])
	}
	if rows[1].Category != "Transport" || rows[1].Amount.Cents != 3000 {
		t.Fatalf("Transport row wrong: %+v", rows[1])
	}

	top := TopCategories(rows, 1)
	if len(top) != 1 || top[0].Category != "Dining" {
		t.Fatalf("top-1 should be Dining, got %+v", top)
	}
}

func TestPotProgress(t *testing.T) {
	tests := []struct {
		name    string
		pot     SavingsPot
		want    float64
	}{
		{"partial", SavingsPot{Goal: Money{Cents: 100000}, CurrentAmount: Money{Cents: 40000}}, 40},
		{"past goal", SavingsPot{Goal: Money{Cents: 100000}, CurrentAmount: Money{Cents: 150000}}, 150},
		{"zero goal defined as zero", SavingsPot{Goal: Money{}, CurrentAmount: Money{Cents: 40000}}, 0},
		{"empty pot", SavingsPot{Goal: Money{Cents: 100000}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PotProgress(tt.pot); got != tt.want {
				t.Errorf("PotProgress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemainingToGoal(t *testing.T) {
	p := SavingsPot{Goal: Money{Cents: 100000}, CurrentAmount: Money{Cents: 40000}}
	if got := RemainingToGoal(p); got.Cents != 60000 {
		t.Fatalf("remaining = %d, want 60000", got.Cents)
	}
	p.CurrentAmount = Money{Cents: 120000}
	if got := RemainingToGoal(p); got.Cents != 0 {
		t.Fatalf("remaining past goal = %d, want 0", got.Cents)
	}
}

func TestBudgetClassification(t *testing.T) {
	base := Budget{Amount: Money{Cents: 50000}}

	tests := []struct {
		name       string
		spent      int64
		wantState  BudgetState
		wantProg   float64
		wantOver   int64
	}{
		{"limit reached at exactly the ceiling", 50000, BudgetLimitReached, 100, 0},
		{"overspent by exactly 100 units", 60000, BudgetOverspent, 100, 10000},
		{"in progress at zero", 0, BudgetInProgress, 0, 0},
		{"in progress mid-way", 25000, BudgetInProgress, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := base
			b.SpentAmount = Money{Cents: tt.spent}
			if got := BudgetStatus(b); got != tt.wantState {
				t.Errorf("BudgetStatus() = %v, want %v", got, tt.wantState)
			}
			if got := BudgetProgress(b); got != tt.wantProg {
				t.Errorf("BudgetProgress() = %v, want %v", got, tt.wantProg)
			}
			if got := Overspend(b); got.Cents != tt.wantOver {
				t.Errorf("Overspend() = %d, want %d", got.Cents, tt.wantOver)
			}
		})
	}
}

func TestBudgetProgressClampsOverspend(t *testing.T) {
	b := Budget{Amount: Money{Cents: 10000}, SpentAmount: Money{Cents: 35000}}
	if got := BudgetProgress(b); got != 100 {
		t.Fatalf("display progress should clamp to 100, got %v", got)
	}
	if got := BudgetStatus(b); got != BudgetOverspent {
		t.Fatalf("raw classification must still detect overspend, got %v", got)
	}
}

func TestBillBucketTotals(t *testing.T) {
	bills := []RecurringBill{
		{Status: Paid, Amount: Money{Cents: 10000}},
		{Status: Due, Amount: Money{Cents: 7000}},
		{Status: Overdue, Amount: Money{Cents: 3000}},
		{Status: Due, Amount: Money{Cents: 2000}},
	}
	totals := BillBucketTotals(bills)
	if totals.Paid.Cents != 10000 {
		t.Errorf("paid = %d, want 10000", totals.Paid.Cents)
	}
	if totals.Due.Cents != 9000 {
		t.Errorf("due = %d, want 9000", totals.Due.Cents)
	}
	if totals.Overdue.Cents != 3000 {
		t.Errorf("overdue = %d, want 3000", totals.Overdue.Cents)
	}
	if totals.Upcoming.Cents != 12000 {
		t.Errorf("upcoming = %d, want due+overdue=12000", totals.Upcoming.Cents)
	}
}

func TestTotalSavedInPots(t *testing.T) {
	pots := []SavingsPot{
		{CurrentAmount: Money{Cents: 40000}},
		{CurrentAmount: Money{Cents: 15000}},
	}
	if got := TotalSavedInPots(pots); got.Cents != 55000 {
		t.Fatalf("total saved = %d, want 55000", got.Cents)
	}
}
