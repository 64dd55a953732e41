package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"findash/internal/core"
)

// Row layouts, first data row at row 2:
//
//	Transactions:   ID, Date, Description, Category, Amount, Type
//	SavingsPots:    ID, Name, Goal, CurrentAmount, TargetDate, Icon
//	Budgets:        ID, Name, Category, Amount, Spent, Period, StartDate, EndDate, Icon
//	RecurringBills: ID, Name, Category, Amount, DueDateDescription, NextDueDate, Status
//	User:           Name, Currency

func parseUserRows(values [][]interface{}) (core.User, error) {
	if len(values) == 0 {
		return core.User{}, fmt.Errorf("user sheet: no profile row")
	}
	row := toStrings(values[0])
	return core.User{
		Name:     safeGet(row, 0),
		Currency: safeGet(row, 1),
	}, nil
}

func parseTransactionRows(values [][]interface{}) ([]core.Transaction, error) {
	var out []core.Transaction
	for i, v := range values {
		row := toStrings(v)
		if rowEmpty(row) {
			continue
		}
		t := core.Transaction{
			ID:          safeGet(row, 0),
			Description: safeGet(row, 2),
			Category:    safeGet(row, 3),
			Type:        core.TransactionType(strings.ToLower(safeGet(row, 5))),
		}
		var err error
		if t.Date, err = parseDate(safeGet(row, 1)); err != nil {
			return nil, fmt.Errorf("transactions row %d: %w", i+2, err)
		}
		cents, err := core.ParseDecimalToCents(safeGet(row, 4))
		if err != nil {
			return nil, fmt.Errorf("transactions row %d: amount: %w", i+2, err)
		}
		t.Amount = core.Money{Cents: cents}
		out = append(out, t)
	}
	return out, nil
}

func parseSavingsPotRows(values [][]interface{}) ([]core.SavingsPot, error) {
	var out []core.SavingsPot
	for i, v := range values {
		row := toStrings(v)
		if rowEmpty(row) {
			continue
		}
		p := core.SavingsPot{
			ID:   safeGet(row, 0),
			Name: safeGet(row, 1),
			Icon: safeGet(row, 5),
		}
		goal, err := core.ParseDecimalToCents(safeGet(row, 2))
		if err != nil {
			return nil, fmt.Errorf("savings pots row %d: goal: %w", i+2, err)
		}
		// A fresh pot has a zero balance, which the strictly-positive
		// parser would reject.
		current, err := parseBalanceCell(safeGet(row, 3))
		if err != nil {
			return nil, fmt.Errorf("savings pots row %d: current amount: %w", i+2, err)
		}
		p.Goal = core.Money{Cents: goal}
		p.CurrentAmount = core.Money{Cents: current}
		if target := strings.TrimSpace(safeGet(row, 4)); target != "" {
			ts, err := parseDate(target)
			if err != nil {
				return nil, fmt.Errorf("savings pots row %d: %w", i+2, err)
			}
			p.TargetDate = &ts
		}
		out = append(out, p)
	}
	return out, nil
}

func parseBudgetRows(values [][]interface{}) ([]core.Budget, error) {
	var out []core.Budget
	for i, v := range values {
		row := toStrings(v)
		if rowEmpty(row) {
			continue
		}
		b := core.Budget{
			ID:       safeGet(row, 0),
			Name:     safeGet(row, 1),
			Category: safeGet(row, 2),
			Period:   core.BudgetPeriod(strings.ToLower(safeGet(row, 5))),
			Icon:     safeGet(row, 8),
		}
		amount, err := core.ParseDecimalToCents(safeGet(row, 3))
		if err != nil {
			return nil, fmt.Errorf("budgets row %d: amount: %w", i+2, err)
		}
		spent, err := parseBalanceCell(safeGet(row, 4))
		if err != nil {
			return nil, fmt.Errorf("budgets row %d: spent: %w", i+2, err)
		}
		b.Amount = core.Money{Cents: amount}
		b.SpentAmount = core.Money{Cents: spent}
		if b.StartDate, err = parseDate(safeGet(row, 6)); err != nil {
			return nil, fmt.Errorf("budgets row %d: %w", i+2, err)
		}
		if b.EndDate, err = parseDate(safeGet(row, 7)); err != nil {
			return nil, fmt.Errorf("budgets row %d: %w", i+2, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func parseRecurringBillRows(values [][]interface{}) ([]core.RecurringBill, error) {
	var out []core.RecurringBill
	for i, v := range values {
		row := toStrings(v)
		if rowEmpty(row) {
			continue
		}
		b := core.RecurringBill{
			ID:                 safeGet(row, 0),
			Name:               safeGet(row, 1),
			Category:           safeGet(row, 2),
			DueDateDescription: safeGet(row, 4),
			Status:             core.BillStatus(strings.ToLower(safeGet(row, 6))),
		}
		amount, err := core.ParseDecimalToCents(safeGet(row, 3))
		if err != nil {
			return nil, fmt.Errorf("recurring bills row %d: amount: %w", i+2, err)
		}
		b.Amount = core.Money{Cents: amount}
		if b.NextDueDate, err = parseDate(safeGet(row, 5)); err != nil {
			return nil, fmt.Errorf("recurring bills row %d: %w", i+2, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// parseBalanceCell parses a balance-like cell where zero (or blank) is
// a legitimate value. Negative amounts are still rejected.
func parseBalanceCell(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, core.ErrInvalidAmount
	}
	return int64(math.Round(v * 100)), nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	return out
}

func safeGet(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
