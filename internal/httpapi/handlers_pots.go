package httpapi

import (
	"net/http"

	"findash/internal/core"
	"findash/internal/events"
	"findash/internal/icons"
)

// potView is a pot plus its derived display numbers.
type potView struct {
	core.SavingsPot
	Progress        float64    `json:"progress"`
	RemainingToGoal core.Money `json:"remainingToGoal"`
}

func newPotView(p core.SavingsPot) potView {
	return potView{
		SavingsPot:      p,
		Progress:        core.PotProgress(p),
		RemainingToGoal: core.RemainingToGoal(p),
	}
}

func (s *Server) handleListPots(w http.ResponseWriter, r *http.Request) {
	pots := s.store.SavingsPots()
	views := make([]potView, 0, len(pots))
	for _, p := range pots {
		views = append(views, newPotView(p))
	}
	respondJSON(w, http.StatusOK, struct {
		Items      []potView  `json:"items"`
		TotalSaved core.Money `json:"totalSaved"`
	}{Items: views, TotalSaved: core.TotalSavedInPots(pots)})
}

func (s *Server) handleCreatePot(w http.ResponseWriter, r *http.Request) {
	var draft core.SavingsPot
	if err := decodeJSON(r, &draft); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	draft.Icon = s.resolveIcon(r, draft.Icon, icons.DefaultPot)

	created, err := s.store.CreatePot(draft)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	s.publish(r.Context(), events.NewMutation(events.EntityPot, events.OpCreate, created.ID, s.store.Revision()))
	respondJSON(w, http.StatusCreated, newPotView(created))
}

func (s *Server) handleUpdatePot(w http.ResponseWriter, r *http.Request) {
	var draft core.SavingsPot
	if err := decodeJSON(r, &draft); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	draft.ID = r.PathValue("id")
	draft.Icon = s.resolveIcon(r, draft.Icon, icons.DefaultPot)

	updated, err := s.store.UpdatePot(draft)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	s.publish(r.Context(), events.NewMutation(events.EntityPot, events.OpUpdate, updated.ID, s.store.Revision()))
	respondJSON(w, http.StatusOK, newPotView(updated))
}

// handleDeletePot is idempotent: deleting an absent pot is still 204.
func (s *Server) handleDeletePot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if s.store.DeletePot(id) {
		s.publish(r.Context(), events.NewMutation(events.EntityPot, events.OpDelete, id, s.store.Revision()))
	}
	w.WriteHeader(http.StatusNoContent)
}

type amountRequest struct {
	Amount core.Money `json:"amount"`
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	pot, err := s.store.Deposit(id, req.Amount)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	s.publish(r.Context(), events.NewMutation(events.EntityPot, events.OpDeposit, id, s.store.Revision()).WithAmount(req.Amount.Cents))
	respondJSON(w, http.StatusOK, newPotView(pot))
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	pot, err := s.store.Withdraw(id, req.Amount)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	s.publish(r.Context(), events.NewMutation(events.EntityPot, events.OpWithdraw, id, s.store.Revision()).WithAmount(req.Amount.Cents))
	respondJSON(w, http.StatusOK, newPotView(pot))
}

// resolveIcon maps an icon name onto the known set, logging when an
// unknown name gets replaced by the fallback.
func (s *Server) resolveIcon(r *http.Request, name, fallback string) string {
	resolved, ok := icons.Resolve(name, fallback)
	if !ok {
		s.logger.WarnContext(r.Context(), "Unknown icon replaced with fallback",
			"requested", name,
			"fallback", fallback)
	}
	return resolved
}
