package core

import (
	"slices"
	"strings"
)

// Derived view engine: search, filter, stable sort, and pagination,
// generic over the entity collections. Every transition of an
// interactive table view (search text, filter value, sort key or
// direction) recomputes the derived list from the full collection and
// resets to page 1; the functions here are the synchronous, deterministic
// pieces that recomputation is built from.

// FilterAll is the sentinel filter value that disables equality
// filtering.
const FilterAll = "all"

// Search keeps the items whose searchable fields contain term,
// case-insensitively. An empty term keeps everything.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(items)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Filter keeps the items whose key equals want exactly. The FilterAll
// sentinel (or an empty want) disables the filter, so filtering by "all"
// is the identity.
func Filter[T any](items []T, key func(T) string, want string) []T {
	if want == "" || want == FilterAll {
		return slices.Clone(items)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if key(it) == want {
			out = append(out, it)
		}
	}
	return out
}

// SortStable returns a sorted copy. The sort is stable: equal elements
// keep their relative input order, in both directions. Descending
// negates the comparator, which preserves stability because equal stays
// equal.
func SortStable[T any](items []T, cmp func(a, b T) int, desc bool) []T {
	out := slices.Clone(items)
	if cmp == nil {
		return out
	}
	if desc {
		inner := cmp
		cmp = func(a, b T) int { return -inner(a, b) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// Paginate slices out the 1-based page of the given size and reports the
// total page count, ceil(len/pageSize). Out-of-range pages are clamped:
// below 1 to the first page, past the end to the last valid page. A
// non-positive pageSize returns everything as a single page.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		return slices.Clone(items), 1
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		return []T{}, 0
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return slices.Clone(items[start:end]), totalPages
}

// compareMoney orders by cents.
func compareMoney(a, b Money) int {
	switch {
	case a.Cents < b.Cents:
		return -1
	case a.Cents > b.Cents:
		return 1
	}
	return 0
}

func compareString(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// TransactionComparator resolves an HTTP sort key to a comparator. The
// second return reports whether the key was recognized; callers fall
// back to the collection default (date) for unknown keys.
func TransactionComparator(key string) (func(a, b Transaction) int, bool) {
	switch key {
	case "date":
		return func(a, b Transaction) int { return a.Date.Compare(b.Date) }, true
	case "description":
		return func(a, b Transaction) int { return compareString(a.Description, b.Description) }, true
	case "category":
		return func(a, b Transaction) int { return compareString(a.Category, b.Category) }, true
	case "amount":
		return func(a, b Transaction) int { return compareMoney(a.Amount, b.Amount) }, true
	case "type":
		return func(a, b Transaction) int { return compareString(string(a.Type), string(b.Type)) }, true
	}
	return func(a, b Transaction) int { return a.Date.Compare(b.Date) }, false
}

// BillComparator resolves an HTTP sort key to a comparator. "status" is
// the synthetic severity key: it orders by urgency rank (overdue, due,
// paid), never alphabetically. Unknown keys fall back to the collection
// default (next due date).
func BillComparator(key string) (func(a, b RecurringBill) int, bool) {
	switch key {
	case "name":
		return func(a, b RecurringBill) int { return compareString(a.Name, b.Name) }, true
	case "category":
		return func(a, b RecurringBill) int { return compareString(a.Category, b.Category) }, true
	case "amount":
		return func(a, b RecurringBill) int { return compareMoney(a.Amount, b.Amount) }, true
	case "nextDueDate":
		return func(a, b RecurringBill) int { return a.NextDueDate.Compare(b.NextDueDate) }, true
	case "status":
		return func(a, b RecurringBill) int { return a.Status.Rank() - b.Status.Rank() }, true
	}
	return func(a, b RecurringBill) int { return a.NextDueDate.Compare(b.NextDueDate) }, false
}

// TransactionSearchFields are the text fields the transactions table
// searches across.
func TransactionSearchFields(t Transaction) []string {
	return []string{t.Description, t.Category}
}

// BillSearchFields are the text fields the bills table searches across.
func BillSearchFields(b RecurringBill) []string {
	return []string{b.Name, b.Category}
}
