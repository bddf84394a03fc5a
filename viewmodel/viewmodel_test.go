package viewmodel

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kasuganosora/datapad/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(name string, stock int) model.InventoryItem {
	return model.InventoryItem{Name: name, Category: "Gear", Type: "Tool", Rarity: "Common", Stock: stock}
}

func names(items []model.InventoryItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func sampleItems() []model.InventoryItem {
	items := []model.InventoryItem{
		item("Medpac", 5),
		item("Glow Rod", 0),
		item("Comlink", -1),
		item("Macrobinoculars", 2),
		item("Breath Mask", 1),
	}
	items[0].Category = "Medical"
	items[3].Rarity = "Uncommon"
	return items
}

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, "name", s.SortKey)
	assert.Equal(t, Ascending, s.SortDir)
	assert.Equal(t, 10, s.RowsPerPage)
	assert.Zero(t, s.Page)
	assert.Empty(t, s.TextFilters)
	assert.Contains(t, RowsPerPageOptions, s.RowsPerPage)
}

func TestDerive_UnlimitedStockSortsLast(t *testing.T) {
	items := []model.InventoryItem{item("a", 3), item("b", -1), item("c", 0)}
	s := Reduce(Default(), SetSort{Field: "stock"})

	v := Derive(items, s)
	assert.Equal(t, []string{"c", "a", "b"}, names(v.Rows), "ascending: 0, 3, -1")

	v = Derive(items, Reduce(s, SetSort{Field: "stock"}))
	assert.Equal(t, []string{"b", "a", "c"}, names(v.Rows), "descending puts -1 first")
}

func TestDerive_NumericFieldsCompareAsStrings(t *testing.T) {
	items := []model.InventoryItem{item("a", 9), item("b", 10), item("c", 100)}
	for i, cost := range []float64{9, 10, 100} {
		items[i].Cost = cost
	}

	v := Derive(items, Reduce(Default(), SetSort{Field: "cost"}))
	assert.Equal(t, []string{"b", "c", "a"}, names(v.Rows), "10, 100, 9")

	v = Derive(items, Reduce(Default(), SetSort{Field: "stock"}))
	assert.Equal(t, []string{"b", "c", "a"}, names(v.Rows))

	assert.Equal(t, []string{"10", "100", "9"}, Options(items, "cost"))
}

func TestDerive_SortIsStable(t *testing.T) {
	items := []model.InventoryItem{item("x", 1), item("y", 1), item("z", 1)}
	v := Derive(items, Reduce(Default(), SetSort{Field: "stock"}))
	assert.Equal(t, []string{"x", "y", "z"}, names(v.Rows))
}

func TestDerive_NameFilterMatchesCaseInsensitiveSubstring(t *testing.T) {
	items := sampleItems()
	for _, q := range []string{"m", "MA", "glow", "zzz"} {
		v := Derive(items, Reduce(Default(), SetTextFilter{Field: "name", Value: q}))
		var want []string
		for _, it := range items {
			if strings.Contains(strings.ToLower(it.Name), strings.ToLower(q)) {
				want = append(want, it.Name)
			}
		}
		assert.ElementsMatch(t, want, names(v.Rows), q)
		assert.Equal(t, len(want), v.Total, q)
	}
}

func TestDerive_ExactFilter(t *testing.T) {
	items := sampleItems()
	s := Reduce(Default(), SetExactFilter{Field: "rarity", Value: "Uncommon"})
	assert.Equal(t, []string{"Macrobinoculars"}, names(Derive(items, s).Rows))

	s = Reduce(s, SetExactFilter{Field: "rarity", Value: "uncommon"})
	assert.Empty(t, Derive(items, s).Rows, "exact filters are case sensitive")

	s = Reduce(s, SetExactFilter{Field: "rarity", Value: ""})
	assert.Len(t, Derive(items, s).Rows, 5, "empty value removes the filter")
}

func TestDerive_FiltersCombine(t *testing.T) {
	items := sampleItems()
	s := Reduce(Default(), SetTextFilter{Field: "name", Value: "m"})
	s = Reduce(s, SetExactFilter{Field: "category", Value: "Gear"})
	assert.Equal(t, []string{"Breath Mask", "Comlink", "Macrobinoculars"}, names(Derive(items, s).Rows))

	s = Reduce(s, ClearFilters{})
	assert.Len(t, Derive(items, s).Rows, 5)
}

func TestDerive_InStockOnly(t *testing.T) {
	s := Reduce(Default(), SetInStockOnly{On: true})
	v := Derive(sampleItems(), s)
	assert.Equal(t, []string{"Breath Mask", "Comlink", "Macrobinoculars", "Medpac"}, names(v.Rows),
		"zero stock hidden, unlimited kept")
}

func TestDerive_Pagination(t *testing.T) {
	var items []model.InventoryItem
	for i := range 12 {
		items = append(items, item(fmt.Sprintf("item-%02d", i), 1))
	}
	s := Reduce(Default(), SetRowsPerPage{Rows: 5})

	v := Derive(items, s)
	assert.Equal(t, 12, v.Total)
	assert.Equal(t, 3, v.PageCount)
	assert.Equal(t, []string{"item-00", "item-01", "item-02", "item-03", "item-04"}, names(v.Rows))

	s = Reduce(s, SetPage{Page: 2})
	v = Derive(items, s)
	assert.Equal(t, []string{"item-10", "item-11"}, names(v.Rows))
	assert.Equal(t, v, Derive(items, s), "derivation is idempotent")

	v = Derive(items, Reduce(s, SetPage{Page: 3}))
	assert.Empty(t, v.Rows)
	assert.Equal(t, 3, v.PageCount)
}

func TestDerive_DoesNotModifyInput(t *testing.T) {
	items := []model.InventoryItem{item("b", 1), item("a", 1)}
	Derive(items, Default())
	assert.Equal(t, []string{"b", "a"}, names(items))
}

func TestReduce_ResetsPage(t *testing.T) {
	onPage := Reduce(Default(), SetPage{Page: 3})
	require.Equal(t, 3, onPage.Page)

	for _, a := range []Action{
		SetTextFilter{Field: "name", Value: "med"},
		SetExactFilter{Field: "type", Value: "Tool"},
		ClearFilters{},
		SetInStockOnly{On: true},
		SetSort{Field: "cost"},
		SetRowsPerPage{Rows: 25},
		Reload{},
	} {
		assert.Zero(t, Reduce(onPage, a).Page, "%T", a)
	}

	s := Reduce(onPage, SetRowsPerPage{Rows: 25})
	assert.Equal(t, 25, s.RowsPerPage)
	s = Reduce(onPage, SetRowsPerPage{Rows: 0})
	assert.Equal(t, 10, s.RowsPerPage)
	assert.Equal(t, 0, Reduce(onPage, SetPage{Page: -4}).Page)
}

func TestReduce_SortToggle(t *testing.T) {
	s := Reduce(Default(), SetSort{Field: "name"})
	assert.Equal(t, Descending, s.SortDir)
	s = Reduce(s, SetSort{Field: "name"})
	assert.Equal(t, Ascending, s.SortDir)

	s = Reduce(Reduce(s, SetSort{Field: "name"}), SetSort{Field: "cost"})
	assert.Equal(t, "cost", s.SortKey)
	assert.Equal(t, Ascending, s.SortDir, "a new key starts ascending")
	assert.Equal(t, "asc", s.SortDir.String())
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := Reduce(Default(), SetTextFilter{Field: "name", Value: "med"})
	_ = Reduce(s, SetTextFilter{Field: "name", Value: "glow"})
	_ = Reduce(s, ClearFilters{})
	assert.Equal(t, "med", s.TextFilters["name"])
}

func TestReload_RestoresDefaults(t *testing.T) {
	s := Reduce(Default(), SetInStockOnly{On: true})
	s = Reduce(s, SetSort{Field: "weight"})
	s = Reduce(s, SetRowsPerPage{Rows: 5})
	assert.Equal(t, Default(), Reduce(s, Reload{}))
}

func TestOptions(t *testing.T) {
	items := sampleItems()
	items[1].SubType = new(string)
	assert.Equal(t, []string{"Gear", "Medical"}, Options(items, "category"))
	assert.Equal(t, []string{"0", "1", "2", "5", "-1"}, Options(items, "stock"))
	assert.Empty(t, Options(items, "subType"))
}

func TestStore(t *testing.T) {
	st := NewStore()
	st.Load(sampleItems())
	st.Dispatch(SetRowsPerPage{Rows: 5})
	st.Dispatch(SetPage{Page: 1})
	assert.Empty(t, st.View().Rows)

	state := st.Dispatch(SetInStockOnly{On: true})
	assert.Zero(t, state.Page)
	assert.Equal(t, 4, st.View().Total)

	state.TextFilters["name"] = "mutated"
	assert.Empty(t, st.State().TextFilters, "returned state is a copy")

	loaded := []model.InventoryItem{item("Bacta", 3)}
	st.Load(loaded)
	assert.Equal(t, Default(), st.State())
	assert.Len(t, st.Items(), 1)

	loaded[0].Name = "changed by caller"
	st.Items()[0].Stock = 0
	got := st.Items()
	assert.Equal(t, "Bacta", got[0].Name, "Load keeps its own copy")
	assert.Equal(t, 3, got[0].Stock, "Items returns a copy")
}
