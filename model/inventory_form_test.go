package model_test

import (
	"testing"

	"github.com/kasuganosora/datapad/form"
	"github.com/kasuganosora/datapad/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemSchemas_MatchRecord(t *testing.T) {
	assert.NoError(t, model.NewItemSchema().MatchesRecord(model.InventoryFields))
	assert.NoError(t, model.EditItemSchema(model.InventoryItem{}).MatchesRecord(model.InventoryFields, "name"))
}

func TestEditItemSchema_InitialValues(t *testing.T) {
	item := model.InventoryItem{
		Name: "Stim", Category: "Medical", Type: "Consumable", Rarity: "Rare",
		Weight: 0.1, Cost: 250, Stock: 4, SubType: ptr("Injector"),
	}
	f := form.New(model.EditItemSchema(item))
	assert.Equal(t, "Medical", f.Value("category"))
	assert.Equal(t, "Injector", f.Value("subType"))
	assert.Equal(t, 4.0, f.Value("stock"))
	assert.Equal(t, false, f.Value("enhanced"))
	assert.Nil(t, f.Value("name"))
}

func TestItemFromValues_EditRoundTrip(t *testing.T) {
	item := model.InventoryItem{
		Name: "Stim", Category: "Medical", Type: "Consumable", Rarity: "Rare",
		Weight: 0.1, Cost: 250, Stock: 4,
	}
	f := form.New(model.EditItemSchema(item))
	require.NoError(t, f.Set("stock", "3"))

	var got model.InventoryItem
	err := f.Submit(func(v form.Values) error {
		v["name"] = item.Name
		var err error
		got, err = model.ItemFromValues(v)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "Stim", got.Name)
	assert.Equal(t, 3, got.Stock)
	assert.Nil(t, got.SubType)
	require.NotNil(t, got.Enhanced)
	assert.False(t, *got.Enhanced)
	assert.NoError(t, got.Validate())
}

func TestItemFromValues_MissingName(t *testing.T) {
	f := form.New(model.EditItemSchema(model.InventoryItem{Category: "a", Type: "b", Rarity: "c"}))
	err := f.Submit(func(v form.Values) error {
		_, err := model.ItemFromValues(v)
		return err
	})
	assert.ErrorIs(t, err, form.ErrMissingField)
}

func TestNewItemSchema_RejectsEmptyName(t *testing.T) {
	f := form.New(model.NewItemSchema())
	require.NoError(t, f.Set("category", "Tools"))
	require.NoError(t, f.Set("type", "Kit"))
	require.NoError(t, f.Set("rarity", "Common"))
	err := f.Submit(func(form.Values) error { t.Fatal("must not submit"); return nil })
	assert.ErrorIs(t, err, form.ErrInvalid)
	assert.NotEmpty(t, f.Error("name"))
	assert.Equal(t, 1.0, f.Value("stock"))
}

func TestItemFromValues_StockOutOfRange(t *testing.T) {
	f := form.New(model.EditItemSchema(model.InventoryItem{Category: "a", Type: "b", Rarity: "c"}))
	require.NoError(t, f.Set("stock", 1e19))
	err := f.Submit(func(form.Values) error { t.Fatal("must not submit"); return nil })
	assert.ErrorIs(t, err, form.ErrInvalid)
	assert.NotEmpty(t, f.Error("stock"))

	values := form.Values{
		"name": "Crate", "category": "a", "type": "b", "subType": "", "rarity": "c",
		"weight": 0.0, "cost": 0.0, "stock": 1e19, "resourceUrl": "", "enhanced": false,
	}
	_, err = model.ItemFromValues(values)
	assert.ErrorIs(t, err, model.ErrInvalidRecord)

	values["stock"] = float64(model.MaxStock)
	item, err := model.ItemFromValues(values)
	require.NoError(t, err)
	assert.Equal(t, model.MaxStock, item.Stock)
}
