package httpapi

import (
	"net/http"

	"findash/internal/core"
)

type overviewResponse struct {
	Currency      string               `json:"currency"`
	UserName      string               `json:"userName"`
	Balance       core.Money           `json:"balance"`
	Income        core.Money           `json:"income"`
	Expenses      core.Money           `json:"expenses"`
	TopCategories []core.CategorySpend `json:"topCategories"`
	Pots          potsSummary          `json:"pots"`
	Bills         core.BillTotals      `json:"bills"`
}

type potsSummary struct {
	Count      int        `json:"count"`
	TotalSaved core.Money `json:"totalSaved"`
}

// handleOverview assembles the dashboard headline numbers.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	txs := s.store.Transactions()
	pots := s.store.SavingsPots()
	bills := s.store.RecurringBills()
	user := s.store.User()

	resp := overviewResponse{
		Currency:      user.Currency,
		UserName:      user.Name,
		Balance:       core.Balance(txs),
		Income:        core.TotalByType(txs, core.Income),
		Expenses:      core.TotalByType(txs, core.Expense),
		TopCategories: core.TopCategories(core.SpendingByCategory(txs), 4),
		Pots: potsSummary{
			Count:      len(pots),
			TotalSaved: core.TotalSavedInPots(pots),
		},
		Bills: core.BillBucketTotals(bills),
	}

	respondJSON(w, http.StatusOK, resp)
}
