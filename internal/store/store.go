// Package store holds the in-process repository that owns the aggregate
// root for a session. The dataset is loaded once at startup and mutated
// only in memory: there is no save path, by contract. A process restart
// always returns to the loaded dataset.
package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"findash/internal/core"
)

var (
	ErrNotFound          = errors.New("entity not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Store is the single owner of the entity collections. All reads hand
// out copies; all mutations validate before committing, so a rejected
// operation leaves the collections untouched.
type Store struct {
	mu   sync.Mutex
	data core.AppData
	rev  int64

	// newID is swappable in tests for deterministic ids.
	newID func() string
}

func New(data core.AppData) *Store {
	return &Store{data: data, newID: uuid.NewString}
}

// Revision counts accepted mutations since load. Callers use it as a
// cheap cache key for anything derived from the collections.
func (s *Store) Revision() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

func (s *Store) User() core.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.User
}

func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Transactions)
}

func (s *Store) SavingsPots() []core.SavingsPot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.SavingsPots)
}

func (s *Store) Budgets() []core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Budgets)
}

func (s *Store) RecurringBills() []core.RecurringBill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.RecurringBills)
}

// TransactionCategories returns the distinct transaction category labels
// in first-seen order. The budget form offers these plus the Overall
// sentinel.
func (s *Store) TransactionCategories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, t := range s.data.Transactions {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}

// CreateBudget validates the draft, assigns a fresh id and appends it.
func (s *Store) CreateBudget(b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.newID()
	s.data.Budgets = append(s.data.Budgets, b)
	s.rev++
	return b, nil
}

// UpdateBudget replaces the budget with the matching id. The same
// validation rules as create apply before the replacement is committed.
func (s *Store) UpdateBudget(b core.Budget) (core.Budget, error) {
	if strings.TrimSpace(b.ID) == "" {
		return core.Budget{}, fmt.Errorf("update budget: %w", core.ErrEmptyID)
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, fmt.Errorf("update budget %s: %w", b.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Budgets {
		if s.data.Budgets[i].ID == b.ID {
			s.data.Budgets[i] = b
			s.rev++
			return b, nil
		}
	}
	return core.Budget{}, fmt.Errorf("update budget %s: %w", b.ID, ErrNotFound)
}

// DeleteBudget removes the budget with the matching id. Deleting an
// absent id is a no-op, not an error.
func (s *Store) DeleteBudget(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Budgets {
		if s.data.Budgets[i].ID == id {
			s.data.Budgets = slices.Delete(s.data.Budgets, i, i+1)
			s.rev++
			return true
		}
	}
	return false
}

// CreatePot validates the draft, assigns a fresh id and appends it.
func (s *Store) CreatePot(p core.SavingsPot) (core.SavingsPot, error) {
	if err := p.Validate(); err != nil {
		return core.SavingsPot{}, fmt.Errorf("create pot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.newID()
	s.data.SavingsPots = append(s.data.SavingsPots, p)
	s.rev++
	return p, nil
}

func (s *Store) UpdatePot(p core.SavingsPot) (core.SavingsPot, error) {
	if strings.TrimSpace(p.ID) == "" {
		return core.SavingsPot{}, fmt.Errorf("update pot: %w", core.ErrEmptyID)
	}
	if err := p.Validate(); err != nil {
		return core.SavingsPot{}, fmt.Errorf("update pot %s: %w", p.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.SavingsPots {
		if s.data.SavingsPots[i].ID == p.ID {
			s.data.SavingsPots[i] = p
			s.rev++
			return p, nil
		}
	}
	return core.SavingsPot{}, fmt.Errorf("update pot %s: %w", p.ID, ErrNotFound)
}

func (s *Store) DeletePot(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.SavingsPots {
		if s.data.SavingsPots[i].ID == id {
			s.data.SavingsPots = slices.Delete(s.data.SavingsPots, i, i+1)
			s.rev++
			return true
		}
	}
	return false
}

// Deposit adds a strictly positive amount to the pot's balance.
func (s *Store) Deposit(potID string, amount core.Money) (core.SavingsPot, error) {
	if amount.Cents <= 0 {
		return core.SavingsPot{}, fmt.Errorf("deposit into pot %s: %w", potID, core.ErrInvalidAmount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.SavingsPots {
		if s.data.SavingsPots[i].ID == potID {
			s.data.SavingsPots[i].CurrentAmount.Cents += amount.Cents
			s.rev++
			return s.data.SavingsPots[i], nil
		}
	}
	return core.SavingsPot{}, fmt.Errorf("deposit into pot %s: %w", potID, ErrNotFound)
}

// Withdraw removes a strictly positive amount from the pot's balance.
// A withdrawal that would take the balance negative is rejected with
// ErrInsufficientFunds and the pot is left unchanged.
func (s *Store) Withdraw(potID string, amount core.Money) (core.SavingsPot, error) {
	if amount.Cents <= 0 {
		return core.SavingsPot{}, fmt.Errorf("withdraw from pot %s: %w", potID, core.ErrInvalidAmount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.SavingsPots {
		if s.data.SavingsPots[i].ID == potID {
			if amount.Cents > s.data.SavingsPots[i].CurrentAmount.Cents {
				return core.SavingsPot{}, fmt.Errorf("withdraw from pot %s: %w", potID, ErrInsufficientFunds)
			}
			s.data.SavingsPots[i].CurrentAmount.Cents -= amount.Cents
			s.rev++
			return s.data.SavingsPots[i], nil
		}
	}
	return core.SavingsPot{}, fmt.Errorf("withdraw from pot %s: %w", potID, ErrNotFound)
}
