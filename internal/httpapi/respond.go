package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"findash/internal/store"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondStoreError maps store and validation errors onto the API error
// contract: unknown id is 404, everything the caller can fix is 422.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	}
}

func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// viewParams are the interactive table controls shared by the list
// endpoints.
type viewParams struct {
	Search   string
	Category string
	SortKey  string
	Desc     bool
	Page     int
	PageSize int
}

func (s *Server) parseViewParams(r *http.Request) viewParams {
	q := r.URL.Query()
	p := viewParams{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
		SortKey:  strings.TrimSpace(q.Get("sort")),
		Desc:     strings.EqualFold(strings.TrimSpace(q.Get("dir")), "desc"),
		Page:     1,
		PageSize: s.defaultPageSize,
	}
	if v := strings.TrimSpace(q.Get("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Page = n
		}
	}
	if v := strings.TrimSpace(q.Get("page_size")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			p.PageSize = n
		}
	}
	return p
}

// pageResponse is the envelope for paginated collection views.
type pageResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

func newPageResponse[T any](items []T, p viewParams, totalPages, totalItems int) pageResponse[T] {
	page := p.Page
	// Mirror the clamping the paginator applied.
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}
	return pageResponse[T]{
		Items:      items,
		Page:       page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}
}
