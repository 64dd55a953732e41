package httpapi

import (
	"net/http"

	"findash/internal/core"
)

// handleListTransactions serves the interactive transactions table:
// search, category filter, stable sort and pagination, recomputed from
// the full collection on every request.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	p := s.parseViewParams(r)

	items := s.store.Transactions()
	items = core.Search(items, p.Search, core.TransactionSearchFields)
	items = core.Filter(items, func(t core.Transaction) string { return t.Category }, p.Category)

	cmp, known := core.TransactionComparator(p.SortKey)
	desc := p.Desc
	if !known {
		// Collection default: most recent first.
		desc = true
	}
	items = core.SortStable(items, cmp, desc)

	totalItems := len(items)
	pageItems, totalPages := core.Paginate(items, p.Page, p.PageSize)

	type listResponse struct {
		pageResponse[core.Transaction]
		Categories []string `json:"categories"`
	}
	respondJSON(w, http.StatusOK, listResponse{
		pageResponse: newPageResponse(pageItems, p, totalPages, totalItems),
		Categories:   s.store.TransactionCategories(),
	})
}
