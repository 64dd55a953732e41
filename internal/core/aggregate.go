package core

// Aggregation over the entity collections. Every function here is pure:
// no ordering requirements on input, no mutation, empty input sums to 0.

const (
	BudgetInProgress   BudgetState = "in_progress"
	BudgetLimitReached BudgetState = "limit_reached"
	BudgetOverspent    BudgetState = "overspent"
)

type (
	BudgetState string

	// CategorySpend is one row of the spending-by-category breakdown.
	CategorySpend struct {
		Category string `json:"category"`
		Amount   Money  `json:"amount"`
	}

	// BillTotals partitions bill amounts by status. Upcoming combines
	// everything not yet paid.
	BillTotals struct {
		Paid     Money `json:"paid"`
		Due      Money `json:"due"`
		Overdue  Money `json:"overdue"`
		Upcoming Money `json:"upcoming"`
	}
)

// TotalByType sums the amounts of all transactions of the given type.
func TotalByType(txs []Transaction, typ TransactionType) Money {
	var sum int64
	for _, t := range txs {
		if t.Type == typ {
			sum += t.Amount.Cents
		}
	}
	return Money{Cents: sum}
}

// Balance is total income minus total expenses.
func Balance(txs []Transaction) Money {
	return Money{Cents: TotalByType(txs, Income).Cents - TotalByType(txs, Expense).Cents}
}

// SpendingByCategory groups expense transactions by category, summing
// amounts. Rows come back in first-seen order; callers sort explicitly
// when they need a ranking.
func SpendingByCategory(txs []Transaction) []CategorySpend {
	sums := make(map[string]int64)
	var order []string
	for _, t := range txs {
		if t.Type != Expense {
			continue
		}
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount.Cents
	}
	out := make([]CategorySpend, 0, len(order))
	for _, cat := range order {
		out = append(out, CategorySpend{Category: cat, Amount: Money{Cents: sums[cat]}})
	}
	return out
}

// TopCategories returns the n largest rows, sorted descending by amount.
// Ties keep their relative input order. n <= 0 or n beyond the row count
// returns all rows sorted.
func TopCategories(spends []CategorySpend, n int) []CategorySpend {
	sorted := SortStable(spends, func(a, b CategorySpend) int {
		switch {
		case a.Amount.Cents < b.Amount.Cents:
			return -1
		case a.Amount.Cents > b.Amount.Cents:
			return 1
		}
		return 0
	}, true)
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// PotProgress is the saved fraction of the goal as a percentage. It is
// not clamped: a pot past its goal reports over 100. A zero goal is
// defined as 0 progress rather than a division fault.
func PotProgress(p SavingsPot) float64 {
	if p.Goal.Cents <= 0 {
		return 0
	}
	return float64(p.CurrentAmount.Cents) / float64(p.Goal.Cents) * 100
}

// RemainingToGoal is how much is still missing; 0 once the goal is met.
func RemainingToGoal(p SavingsPot) Money {
	rem := p.Goal.Cents - p.CurrentAmount.Cents
	if rem < 0 {
		rem = 0
	}
	return Money{Cents: rem}
}

// TotalSavedInPots sums current balances across all pots.
func TotalSavedInPots(pots []SavingsPot) Money {
	var sum int64
	for _, p := range pots {
		sum += p.CurrentAmount.Cents
	}
	return Money{Cents: sum}
}

// BudgetProgress is spent/amount as a percentage, clamped to [0,100] for
// display. The overspent condition is detected from the raw amounts, not
// from this clamped value.
func BudgetProgress(b Budget) float64 {
	if b.Amount.Cents <= 0 {
		return 0
	}
	progress := float64(b.SpentAmount.Cents) / float64(b.Amount.Cents) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// BudgetStatus classifies a budget from the raw, unclamped amounts.
func BudgetStatus(b Budget) BudgetState {
	switch {
	case b.SpentAmount.Cents > b.Amount.Cents:
		return BudgetOverspent
	case b.SpentAmount.Cents == b.Amount.Cents:
		return BudgetLimitReached
	}
	return BudgetInProgress
}

// Overspend is the amount past the ceiling; 0 unless overspent.
func Overspend(b Budget) Money {
	over := b.SpentAmount.Cents - b.Amount.Cents
	if over < 0 {
		over = 0
	}
	return Money{Cents: over}
}

// BudgetRemaining is the headroom left; 0 when at or over the limit.
func BudgetRemaining(b Budget) Money {
	rem := b.Amount.Cents - b.SpentAmount.Cents
	if rem < 0 {
		rem = 0
	}
	return Money{Cents: rem}
}

// BillBucketTotals sums bill amounts per status bucket.
func BillBucketTotals(bills []RecurringBill) BillTotals {
	var totals BillTotals
	for _, b := range bills {
		switch b.Status {
		case Paid:
			totals.Paid.Cents += b.Amount.Cents
		case Due:
			totals.Due.Cents += b.Amount.Cents
		case Overdue:
			totals.Overdue.Cents += b.Amount.Cents
		}
	}
	totals.Upcoming.Cents = totals.Due.Cents + totals.Overdue.Cents
	return totals
}
