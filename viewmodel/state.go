// Package viewmodel holds the inventory table state: filters, sort and
// pagination over a shop listing. State changes only through Reduce, and
// the visible page is always recomputed from the full item list by Derive.
package viewmodel

import "maps"

// Direction is the sort order of the table.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

const (
	DefaultSortKey     = "name"
	DefaultRowsPerPage = 10
)

// RowsPerPageOptions are the page sizes the pagination control offers.
var RowsPerPageOptions = []int{5, 10, 25}

// State is the table state. Treat it as a value: Reduce never mutates its
// input.
type State struct {
	TextFilters  map[string]string
	ExactFilters map[string]string
	InStockOnly  bool
	SortKey      string
	SortDir      Direction
	Page         int
	RowsPerPage  int
}

// Default is the state after every data load.
func Default() State {
	return State{
		TextFilters:  map[string]string{},
		ExactFilters: map[string]string{},
		SortKey:      DefaultSortKey,
		SortDir:      Ascending,
		RowsPerPage:  DefaultRowsPerPage,
	}
}

func (s State) clone() State {
	s.TextFilters = maps.Clone(s.TextFilters)
	s.ExactFilters = maps.Clone(s.ExactFilters)
	if s.TextFilters == nil {
		s.TextFilters = map[string]string{}
	}
	if s.ExactFilters == nil {
		s.ExactFilters = map[string]string{}
	}
	return s
}
