package httpapi

import (
	"net/http"

	"findash/internal/core"
	"findash/internal/events"
	"findash/internal/icons"
)

// budgetView is a budget plus its derived display numbers. Status comes
// from the raw amounts; Progress is clamped for display only.
type budgetView struct {
	core.Budget
	Status    core.BudgetState `json:"status"`
	Progress  float64          `json:"progress"`
	Remaining core.Money       `json:"remaining"`
	Overspend core.Money       `json:"overspend"`
}

func newBudgetView(b core.Budget) budgetView {
	return budgetView{
		Budget:    b,
		Status:    core.BudgetStatus(b),
		Progress:  core.BudgetProgress(b),
		Remaining: core.BudgetRemaining(b),
		Overspend: core.Overspend(b),
	}
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets := s.store.Budgets()
	views := make([]budgetView, 0, len(budgets))
	for _, b := range budgets {
		views = append(views, newBudgetView(b))
	}
	respondJSON(w, http.StatusOK, struct {
		Items []budgetView `json:"items"`
	}{Items: views})
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var draft core.Budget
	if err := decodeJSON(r, &draft); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	draft.Icon = s.resolveIcon(r, draft.Icon, icons.DefaultBudget)

	created, err := s.store.CreateBudget(draft)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	s.publish(r.Context(), events.NewMutation(events.EntityBudget, events.OpCreate, created.ID, s.store.Revision()))
	respondJSON(w, http.StatusCreated, newBudgetView(created))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var draft core.Budget
	if err := decodeJSON(r, &draft); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	draft.ID = r.PathValue("id")
	draft.Icon = s.resolveIcon(r, draft.Icon, icons.DefaultBudget)

	updated, err := s.store.UpdateBudget(draft)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	s.publish(r.Context(), events.NewMutation(events.EntityBudget, events.OpUpdate, updated.ID, s.store.Revision()))
	respondJSON(w, http.StatusOK, newBudgetView(updated))
}

// handleDeleteBudget is idempotent: deleting an absent budget is still
// 204.
func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if s.store.DeleteBudget(id) {
		s.publish(r.Context(), events.NewMutation(events.EntityBudget, events.OpDelete, id, s.store.Revision()))
	}
	w.WriteHeader(http.StatusNoContent)
}
