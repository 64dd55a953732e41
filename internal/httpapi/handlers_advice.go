package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"findash/internal/advice"
)

type adviceResponse struct {
	Recommendations string `json:"recommendations"`
	Cached          bool   `json:"cached"`
}

// handleAdvice asks the collaborator for recommendations over the full
// transaction history. At most one upstream call runs at a time; while
// one is pending, further requests get 409. Successful responses are
// cached per dataset revision, so repeat requests against unchanged
// data skip the network entirely.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if s.advice == nil {
		respondError(w, http.StatusServiceUnavailable, "advice is not configured")
		return
	}

	cacheKey := "rev-" + strconv.FormatInt(s.store.Revision(), 10)
	if text, ok := s.adviceCache.Get(cacheKey); ok {
		respondJSON(w, http.StatusOK, adviceResponse{Recommendations: text, Cached: true})
		return
	}

	if !s.adviceInFlight.CompareAndSwap(false, true) {
		respondError(w, http.StatusConflict, "an advice request is already in progress")
		return
	}
	defer s.adviceInFlight.Store(false)

	text, err := s.advice.Analyze(r.Context(), s.store.Transactions())
	if err != nil {
		switch {
		case errors.Is(err, advice.ErrNoTransactions):
			respondError(w, http.StatusUnprocessableEntity, "no transactions to analyze")
		case errors.Is(err, advice.ErrMissingAPIKey):
			respondError(w, http.StatusServiceUnavailable, "advice is not configured")
		default:
			// Deliberately generic: the upstream failure reason stays in
			// the logs.
			respondError(w, http.StatusBadGateway, "advice is temporarily unavailable, please try again later")
		}
		return
	}

	s.adviceCache.Set(cacheKey, text)
	respondJSON(w, http.StatusOK, adviceResponse{Recommendations: text})
}
