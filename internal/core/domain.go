package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Monthly BudgetPeriod = "monthly"
	Weekly  BudgetPeriod = "weekly"
	Yearly  BudgetPeriod = "yearly"
	Custom  BudgetPeriod = "custom"
)

const (
	Paid    BillStatus = "paid"
	Due     BillStatus = "due"
	Overdue BillStatus = "overdue"
)

// OverallCategory is the sentinel budget category covering all spending.
const OverallCategory = "Overall"

type (
	TransactionType string
	BudgetPeriod    string
	BillStatus      string

	// Transaction is an immutable ledger entry. Amount is a non-negative
	// magnitude; Type says which side of the balance it lands on.
	Transaction struct {
		ID          string          `json:"id"`
		Date        time.Time       `json:"date"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Amount      Money           `json:"amount"`
		Type        TransactionType `json:"type"`
	}

	// SavingsPot is a named savings goal. CurrentAmount may exceed Goal
	// but never goes negative.
	SavingsPot struct {
		ID            string     `json:"id"`
		Name          string     `json:"name"`
		Goal          Money      `json:"goal"`
		CurrentAmount Money      `json:"currentAmount"`
		TargetDate    *time.Time `json:"targetDate,omitempty"`
		Icon          string     `json:"icon,omitempty"`
	}

	// Budget is a spending ceiling for a category (or OverallCategory)
	// over a period. SpentAmount is stored, not derived; status is always
	// computed from the raw amounts.
	Budget struct {
		ID          string       `json:"id"`
		Name        string       `json:"name"`
		Category    string       `json:"category"`
		Amount      Money        `json:"amount"`
		SpentAmount Money        `json:"spentAmount"`
		Period      BudgetPeriod `json:"period"`
		StartDate   time.Time    `json:"startDate"`
		EndDate     time.Time    `json:"endDate"`
		Icon        string       `json:"icon,omitempty"`
	}

	// RecurringBill is a periodic payment obligation. Status is
	// authoritative data from the dataset, not derived from NextDueDate.
	RecurringBill struct {
		ID                 string     `json:"id"`
		Name               string     `json:"name"`
		Category           string     `json:"category"`
		Amount             Money      `json:"amount"`
		DueDateDescription string     `json:"dueDateDescription"`
		NextDueDate        time.Time  `json:"nextDueDate"`
		Status             BillStatus `json:"status"`
	}

	User struct {
		Name     string `json:"name"`
		Currency string `json:"currency"`
	}

	// AppData is the aggregate root: one collection of each entity plus
	// the user profile, loaded once per session.
	AppData struct {
		Transactions   []Transaction   `json:"transactions"`
		SavingsPots    []SavingsPot    `json:"savingsPots"`
		Budgets        []Budget        `json:"budgets"`
		RecurringBills []RecurringBill `json:"recurringBills"`
		User           User            `json:"user"`
	}
)

var (
	ErrEmptyID          = errors.New("empty id")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidGoal      = errors.New("goal must be positive")
	ErrNegativeBalance  = errors.New("current amount cannot be negative")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrUnknownType      = errors.New("unknown transaction type")
	ErrUnknownPeriod    = errors.New("unknown budget period")
	ErrUnknownStatus    = errors.New("unknown bill status")
	ErrDuplicateID      = errors.New("duplicate id")
)

func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

func (p BudgetPeriod) IsValid() bool {
	switch p {
	case Monthly, Weekly, Yearly, Custom:
		return true
	}
	return false
}

func (s BillStatus) IsValid() bool {
	switch s {
	case Paid, Due, Overdue:
		return true
	}
	return false
}

// Rank maps a bill status to its urgency ordering: overdue sorts before
// due, due before paid. Unknown statuses sink to the bottom.
func (s BillStatus) Rank() int {
	switch s {
	case Overdue:
		return 1
	case Due:
		return 2
	case Paid:
		return 3
	}
	return 4
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if !t.Type.IsValid() {
		return ErrUnknownType
	}
	return nil
}

func (p SavingsPot) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	if p.Goal.Cents <= 0 {
		return ErrInvalidGoal
	}
	if p.CurrentAmount.Cents < 0 {
		return ErrNegativeBalance
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if len(b.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if b.SpentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if !b.Period.IsValid() {
		return ErrUnknownPeriod
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return ErrZeroDate
	}
	if !b.StartDate.Before(b.EndDate) {
		return ErrInvalidDateRange
	}
	return nil
}

func (b RecurringBill) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if b.NextDueDate.IsZero() {
		return ErrZeroDate
	}
	if !b.Status.IsValid() {
		return ErrUnknownStatus
	}
	return nil
}

// Validate checks every entity and rejects duplicate ids within a
// collection. The dataset is a read-once input, so a bad document fails
// the whole load rather than being repaired silently.
func (d AppData) Validate() error {
	seen := make(map[string]struct{}, len(d.Transactions))
	for _, t := range d.Transactions {
		if err := t.Validate(); err != nil {
			return errors.New("transaction " + t.ID + ": " + err.Error())
		}
		if _, dup := seen[t.ID]; dup {
			return ErrDuplicateID
		}
		seen[t.ID] = struct{}{}
	}
	seen = make(map[string]struct{}, len(d.SavingsPots))
	for _, p := range d.SavingsPots {
		if strings.TrimSpace(p.ID) == "" {
			return ErrEmptyID
		}
		if err := p.Validate(); err != nil {
			return errors.New("savings pot " + p.ID + ": " + err.Error())
		}
		if _, dup := seen[p.ID]; dup {
			return ErrDuplicateID
		}
		seen[p.ID] = struct{}{}
	}
	seen = make(map[string]struct{}, len(d.Budgets))
	for _, b := range d.Budgets {
		if strings.TrimSpace(b.ID) == "" {
			return ErrEmptyID
		}
		if err := b.Validate(); err != nil {
			return errors.New("budget " + b.ID + ": " + err.Error())
		}
		if _, dup := seen[b.ID]; dup {
			return ErrDuplicateID
		}
		seen[b.ID] = struct{}{}
	}
	seen = make(map[string]struct{}, len(d.RecurringBills))
	for _, b := range d.RecurringBills {
		if err := b.Validate(); err != nil {
			return errors.New("recurring bill " + b.ID + ": " + err.Error())
		}
		if _, dup := seen[b.ID]; dup {
			return ErrDuplicateID
		}
		seen[b.ID] = struct{}{}
	}
	if strings.TrimSpace(d.User.Currency) == "" {
		return errors.New("user currency cannot be empty")
	}
	return nil
}
