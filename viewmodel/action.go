package viewmodel

// Action is a state transition. The set is closed; Reduce switches over it.
type Action interface {
	isAction()
}

// SetTextFilter narrows rows to those whose field contains Value, ignoring
// case. An empty Value removes the filter.
type SetTextFilter struct {
	Field string
	Value string
}

// SetExactFilter narrows rows to those whose field equals Value. An empty
// Value removes the filter.
type SetExactFilter struct {
	Field string
	Value string
}

// ClearFilters drops every text and exact filter.
type ClearFilters struct{}

// SetInStockOnly hides rows with zero stock when On.
type SetInStockOnly struct {
	On bool
}

// SetSort sorts by Field. Selecting the current key again flips the
// direction; a new key starts ascending.
type SetSort struct {
	Field string
}

// SetPage moves to a zero-based page.
type SetPage struct {
	Page int
}

// SetRowsPerPage changes the page size. Non-positive sizes are ignored.
type SetRowsPerPage struct {
	Rows int
}

// Reload resets the state after the listing is fetched again.
type Reload struct{}

func (SetTextFilter) isAction()  {}
func (SetExactFilter) isAction() {}
func (ClearFilters) isAction()   {}
func (SetInStockOnly) isAction() {}
func (SetSort) isAction()        {}
func (SetPage) isAction()        {}
func (SetRowsPerPage) isAction() {}
func (Reload) isAction()         {}

// Reduce returns the state after a. Every change other than SetPage
// returns to the first page.
func Reduce(s State, a Action) State {
	next := s.clone()
	switch a := a.(type) {
	case SetTextFilter:
		setFilter(next.TextFilters, a.Field, a.Value)
	case SetExactFilter:
		setFilter(next.ExactFilters, a.Field, a.Value)
	case ClearFilters:
		clear(next.TextFilters)
		clear(next.ExactFilters)
	case SetInStockOnly:
		next.InStockOnly = a.On
	case SetSort:
		if a.Field == next.SortKey {
			next.SortDir = next.SortDir.flip()
		} else {
			next.SortKey = a.Field
			next.SortDir = Ascending
		}
	case SetPage:
		next.Page = max(a.Page, 0)
		return next
	case SetRowsPerPage:
		if a.Rows <= 0 {
			return next
		}
		next.RowsPerPage = a.Rows
	case Reload:
		return Default()
	default:
		return next
	}
	next.Page = 0
	return next
}

func setFilter(m map[string]string, field, value string) {
	if value == "" {
		delete(m, field)
		return
	}
	m[field] = value
}
