package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"findash/internal/core"
)

func seedData() core.AppData {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return core.AppData{
		Transactions: []core.Transaction{
			{ID: "t1", Date: now, Description: "Salary", Category: "Income", Amount: core.Money{Cents: 250000}, Type: core.Income},
			{ID: "t2", Date: now, Description: "Groceries", Category: "Groceries", Amount: core.Money{Cents: 12000}, Type: core.Expense},
		},
		SavingsPots: []core.SavingsPot{
			{ID: "p1", Name: "Holiday", Goal: core.Money{Cents: 100000}, CurrentAmount: core.Money{Cents: 40000}},
		},
		Budgets: []core.Budget{
			{ID: "b1", Name: "Food", Category: "Groceries", Amount: core.Money{Cents: 50000}, SpentAmount: core.Money{Cents: 12000}, Period: core.Monthly, StartDate: now, EndDate: now.AddDate(0, 1, 0)},
		},
		RecurringBills: []core.RecurringBill{
			{ID: "rb1", Name: "Rent", Category: "Housing", Amount: core.Money{Cents: 120000}, NextDueDate: now.AddDate(0, 0, 5), Status: core.Due},
		},
		User: core.User{Name: "Alex", Currency: "USD"},
	}
}

func newTestStore() *Store {
	s := New(seedData())
	n := 0
	s.newID = func() string { n++; return fmt.Sprintf("test-%d", n) }
	return s
}

func TestReadsReturnCopies(t *testing.T) {
	s := newTestStore()
	pots := s.SavingsPots()
	pots[0].CurrentAmount = core.Money{Cents: 0}
	if got := s.SavingsPots()[0].CurrentAmount.Cents; got != 40000 {
		t.Fatalf("mutating a snapshot leaked into the store: %d", got)
	}
}

func TestCreateBudget(t *testing.T) {
	s := newTestStore()
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	created, err := s.CreateBudget(core.Budget{
		Name:      "Transport",
		Category:  "Transport",
		Amount:    core.Money{Cents: 20000},
		Period:    core.Monthly,
		StartDate: now,
		EndDate:   now.AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create should assign an id")
	}
	if len(s.Budgets()) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(s.Budgets()))
	}
}

func TestCreateBudgetRejectedLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore()
	before := s.Budgets()
	rev := s.Revision()

	_, err := s.CreateBudget(core.Budget{Name: "", Amount: core.Money{Cents: 100}})
	if !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if len(s.Budgets()) != len(before) {
		t.Fatal("rejected create changed the collection")
	}
	if s.Revision() != rev {
		t.Fatal("rejected create bumped the revision")
	}
}

func TestUpdateBudget(t *testing.T) {
	s := newTestStore()
	b := s.Budgets()[0]
	b.Amount = core.Money{Cents: 60000}
	updated, err := s.UpdateBudget(b)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount.Cents != 60000 {
		t.Fatalf("update did not apply: %+v", updated)
	}

	b.ID = "missing"
	if _, err := s.UpdateBudget(b); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBudgetIdempotent(t *testing.T) {
	s := newTestStore()
	if !s.DeleteBudget("b1") {
		t.Fatal("first delete should remove the budget")
	}
	if s.DeleteBudget("b1") {
		t.Fatal("second delete should be a no-op")
	}
	if len(s.Budgets()) != 0 {
		t.Fatalf("budget not removed")
	}
}

func TestPotLifecycle(t *testing.T) {
	s := newTestStore()
	created, err := s.CreatePot(core.SavingsPot{Name: "Car", Goal: core.Money{Cents: 500000}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created.Name = "New Car"
	if _, err := s.UpdatePot(created); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !s.DeletePot(created.ID) {
		t.Fatal("delete should remove the pot")
	}
}

func TestDeposit(t *testing.T) {
	s := newTestStore()
	pot, err := s.Deposit("p1", core.Money{Cents: 5000})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if pot.CurrentAmount.Cents != 45000 {
		t.Fatalf("balance after deposit = %d, want 45000", pot.CurrentAmount.Cents)
	}

	if _, err := s.Deposit("p1", core.Money{Cents: 0}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("zero deposit should be rejected, got %v", err)
	}
	if _, err := s.Deposit("missing", core.Money{Cents: 100}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWithdraw(t *testing.T) {
	s := newTestStore()

	// withdrawal that would go negative is rejected, pot unchanged
	_, err := s.Withdraw("p1", core.Money{Cents: 45000})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := s.SavingsPots()[0].CurrentAmount.Cents; got != 40000 {
		t.Fatalf("rejected withdrawal changed the balance: %d", got)
	}

	// withdrawing the exact balance drains the pot to zero
	pot, err := s.Withdraw("p1", core.Money{Cents: 40000})
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if pot.CurrentAmount.Cents != 0 {
		t.Fatalf("balance after full withdrawal = %d, want 0", pot.CurrentAmount.Cents)
	}
}

func TestNoPersistenceAcrossLoads(t *testing.T) {
	data := seedData()
	s := New(data)
	s.DeleteBudget("b1")
	if _, err := s.Deposit("p1", core.Money{Cents: 100}); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	// a fresh store over the same dataset sees none of the mutations
	fresh := New(seedData())
	if len(fresh.Budgets()) != 1 {
		t.Fatal("mutations leaked across loads")
	}
	if fresh.SavingsPots()[0].CurrentAmount.Cents != 40000 {
		t.Fatal("pot balance leaked across loads")
	}
}

func TestTransactionCategories(t *testing.T) {
	s := newTestStore()
	cats := s.TransactionCategories()
	if len(cats) != 2 || cats[0] != "Income" || cats[1] != "Groceries" {
		t.Fatalf("categories = %v, want [Income Groceries] in first-seen order", cats)
	}
}

func TestRevisionAdvancesOnMutation(t *testing.T) {
	s := newTestStore()
	rev := s.Revision()
	if _, err := s.Deposit("p1", core.Money{Cents: 1}); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if s.Revision() != rev+1 {
		t.Fatalf("revision = %d, want %d", s.Revision(), rev+1)
	}
}
