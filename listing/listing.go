// Package listing is the reusable filter/pagination engine shared by every
// list view. All transforms are stateless, order-preserving and idempotent:
// for a fixed input list and fixed filter state the output is identical on
// every call.
package listing

import (
	"strings"
	"time"
)

// FacetAll is the facet value meaning "no filtering on this facet".
const FacetAll = "all"

// Predicate reports whether an item passes one filter.
type Predicate[T any] func(T) bool

// FilterText keeps items where any designated field contains the search term
// as a case-insensitive substring. An empty or whitespace-only term is a
// no-op and returns the input unchanged.
func FilterText[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.TrimSpace(strings.ToLower(term))
	if term == "" {
		return items
	}
	var out []T
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Apply keeps items that pass every predicate. Predicates compose with
// logical AND and input order is preserved.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	if len(preds) == 0 {
		return items
	}
	var out []T
	for _, item := range items {
		keep := true
		for _, pred := range preds {
			if !pred(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// Facet builds an exact-match predicate on one field. The values "" and
// "all" disable the facet.
func Facet[T any](value string, field func(T) string) Predicate[T] {
	if value == "" || value == FacetAll {
		return func(T) bool { return true }
	}
	return func(item T) bool {
		return strings.EqualFold(field(item), value)
	}
}

// DateRange builds a creation-window predicate: "today" keeps items created
// within the last day, "week" the last 7 days, "month" the last 30 days.
// Unknown values (including "all") disable the facet.
func DateRange[T any](value string, now time.Time, createdAt func(T) time.Time) Predicate[T] {
	var window time.Duration
	switch value {
	case "today":
		window = 24 * time.Hour
	case "week":
		window = 7 * 24 * time.Hour
	case "month":
		window = 30 * 24 * time.Hour
	default:
		return func(T) bool { return true }
	}
	cutoff := now.Add(-window)
	return func(item T) bool {
		created := createdAt(item)
		return !created.IsZero() && created.After(cutoff)
	}
}

// Window slices one zero-indexed page out of a filtered list. The slice is
// [page*size, page*size+size), clamped to the list bounds.
func Window[T any](items []T, page, size int) []T {
	if page < 0 || size <= 0 {
		return nil
	}
	start := page * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
