package httpapi

import (
	"net/http"

	"findash/internal/core"
)

// handleListBills serves the recurring bills table. The "status" sort
// key orders by urgency (overdue, due, paid), never alphabetically.
func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	p := s.parseViewParams(r)

	items := s.store.RecurringBills()
	items = core.Search(items, p.Search, core.BillSearchFields)
	items = core.Filter(items, func(b core.RecurringBill) string { return b.Category }, p.Category)

	cmp, known := core.BillComparator(p.SortKey)
	desc := p.Desc
	if !known {
		// Collection default: soonest due first.
		desc = false
	}
	items = core.SortStable(items, cmp, desc)

	totalItems := len(items)
	pageItems, totalPages := core.Paginate(items, p.Page, p.PageSize)

	type listResponse struct {
		pageResponse[core.RecurringBill]
		Totals core.BillTotals `json:"totals"`
	}
	respondJSON(w, http.StatusOK, listResponse{
		pageResponse: newPageResponse(pageItems, p, totalPages, totalItems),
		Totals:       core.BillBucketTotals(s.store.RecurringBills()),
	})
}
