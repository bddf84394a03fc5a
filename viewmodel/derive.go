package viewmodel

import (
	"slices"
	"strconv"
	"strings"

	"github.com/kasuganosora/datapad/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// View is the derived table content for one state.
type View struct {
	Rows      []model.InventoryItem
	Total     int // rows matching the filters, across all pages
	Page      int
	PageCount int
}

var unlimited = strconv.Itoa(model.UnlimitedStock)

// Derive computes the visible page: stable sort, then filters and the
// stock toggle, then the slice [page*size, page*size+size). A page past the
// end is empty. items is not modified.
func Derive(items []model.InventoryItem, s State) View {
	size := s.RowsPerPage
	if size <= 0 {
		size = DefaultRowsPerPage
	}

	sorted := slices.Clone(items)
	sortItems(sorted, s.SortKey, s.SortDir)

	matched := make([]model.InventoryItem, 0, len(sorted))
	for i := range sorted {
		if keep(&sorted[i], s) {
			matched = append(matched, sorted[i])
		}
	}

	v := View{
		Total:     len(matched),
		Page:      s.Page,
		PageCount: (len(matched) + size - 1) / size,
	}
	start := s.Page * size
	if s.Page < 0 || start >= len(matched) {
		v.Rows = []model.InventoryItem{}
		return v
	}
	v.Rows = matched[start:min(start+size, len(matched))]
	return v
}

// sortItems orders by the display form of field using locale string
// collation, so numbers compare as text ("10" < "100" < "9"). The unlimited
// stock sentinel "-1" sorts after every other value.
func sortItems(items []model.InventoryItem, field string, dir Direction) {
	col := collate.New(language.English)
	slices.SortStableFunc(items, func(a, b model.InventoryItem) int {
		av, _ := a.FieldString(field)
		bv, _ := b.FieldString(field)
		c := compareValues(col, av, bv)
		if dir == Descending {
			return -c
		}
		return c
	})
}

func compareValues(col *collate.Collator, a, b string) int {
	switch {
	case a == b:
		return 0
	case a == unlimited:
		return 1
	case b == unlimited:
		return -1
	}
	return col.CompareString(a, b)
}

func keep(item *model.InventoryItem, s State) bool {
	if s.InStockOnly && !item.InStock() {
		return false
	}
	for field, want := range s.TextFilters {
		v, _ := item.FieldString(field)
		if !strings.Contains(strings.ToLower(v), strings.ToLower(want)) {
			return false
		}
	}
	for field, want := range s.ExactFilters {
		if v, _ := item.FieldString(field); v != want {
			return false
		}
	}
	return true
}

// Options returns the distinct non-empty values of field, collated, for
// exact filter menus.
func Options(items []model.InventoryItem, field string) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range items {
		v, _ := items[i].FieldString(field)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	col := collate.New(language.English)
	slices.SortFunc(out, func(a, b string) int { return compareValues(col, a, b) })
	return out
}
