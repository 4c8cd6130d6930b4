// Package app owns the application state: the catalog snapshot held by a
// single root controller, and the view-local query state whose transitions
// are pure reducer steps.
package app

import "barganhamogi/internal/domain"

// QueryState is the filter state of the offer listing: selected category
// ("Todos" is the wildcard), free-text search, and 1-indexed page.
type QueryState struct {
	Category string
	Search   string
	Page     int
}

// InitialQuery is the unfiltered first page.
func InitialQuery() QueryState {
	return QueryState{Category: domain.AllCategories, Search: "", Page: 1}
}

// Event is a user-triggered query-state transition.
type Event interface {
	apply(QueryState) QueryState
}

// CategorySelected switches the category filter and resets to page 1.
type CategorySelected struct{ Name string }

// SearchChanged replaces the search text and resets to page 1.
type SearchChanged struct{ Text string }

// PageChanged moves to another page. The catalog engine clamps the upper
// bound; the reducer only guards the lower one.
type PageChanged struct{ Page int }

// FiltersCleared returns to the unfiltered first page.
type FiltersCleared struct{}

func (e CategorySelected) apply(s QueryState) QueryState {
	s.Category = e.Name
	s.Page = 1
	return s
}

func (e SearchChanged) apply(s QueryState) QueryState {
	s.Search = e.Text
	s.Page = 1
	return s
}

func (e PageChanged) apply(s QueryState) QueryState {
	s.Page = e.Page
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

func (FiltersCleared) apply(QueryState) QueryState { return InitialQuery() }

// Reduce applies events in order and returns the resulting state. It never
// mutates its input.
func Reduce(s QueryState, events ...Event) QueryState {
	for _, e := range events {
		s = e.apply(s)
	}
	return s
}
