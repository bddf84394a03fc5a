package model

import (
	"fmt"
	"math"

	"github.com/kasuganosora/datapad/form"
)

// NewItemSchema is the form used to add an item to a shop.
func NewItemSchema() form.Schema {
	return append(form.Schema{
		{Key: "name", Label: "Name", Entry: form.StringEntry{Required: true}},
	}, itemFields(InventoryItem{Stock: 1})...)
}

// EditItemSchema is the form used to edit an existing item. The name is the
// item's key and is left out; callers put it back before ItemFromValues.
func EditItemSchema(item InventoryItem) form.Schema {
	return itemFields(item)
}

func itemFields(item InventoryItem) form.Schema {
	enhanced := item.Enhanced != nil && *item.Enhanced
	return form.Schema{
		{Key: "category", Label: "Category", Entry: form.StringEntry{InitialValue: item.Category, Required: true}},
		{Key: "type", Label: "Type", Entry: form.StringEntry{InitialValue: item.Type, Required: true}},
		{Key: "subType", Label: "Sub-type", Entry: form.StringEntry{InitialValue: derefString(item.SubType)}},
		{Key: "rarity", Label: "Rarity", Entry: form.StringEntry{InitialValue: item.Rarity, Required: true}},
		{Key: "weight", Label: "Weight", Entry: form.NumberEntry{InitialValue: item.Weight, Min: form.Bound(0)}},
		{Key: "cost", Label: "Cost", Entry: form.NumberEntry{InitialValue: item.Cost, Min: form.Bound(0)}},
		{Key: "stock", Label: "Stock (-1 for unlimited)", Entry: form.NumberEntry{
			InitialValue: float64(item.Stock), Min: form.Bound(UnlimitedStock), Max: form.Bound(MaxStock), IntegerOnly: true,
		}},
		{Key: "resourceUrl", Label: "Resource URL", Entry: form.StringEntry{InitialValue: derefString(item.ResourceURL)}},
		{Key: "enhanced", Label: "Enhanced", Entry: form.BooleanEntry{InitialValue: enhanced}},
	}
}

// ItemFromValues builds an item from submitted form values. Every field of
// the item must be present; a missing one yields form.ErrMissingField.
// Empty optional strings become absent fields.
func ItemFromValues(v form.Values) (InventoryItem, error) {
	var (
		item InventoryItem
		err  error
	)
	str := func(key string) string {
		if err != nil {
			return ""
		}
		var s string
		s, err = v.String(key)
		return s
	}
	num := func(key string) float64 {
		if err != nil {
			return 0
		}
		var n float64
		n, err = v.Number(key)
		return n
	}

	item.Name = str("name")
	item.Category = str("category")
	item.Type = str("type")
	item.SubType = optional(str("subType"))
	item.Rarity = str("rarity")
	item.Weight = num("weight")
	item.Cost = num("cost")
	stock := num("stock")
	item.ResourceURL = optional(str("resourceUrl"))
	if err != nil {
		return InventoryItem{}, err
	}
	if math.Trunc(stock) != stock {
		return InventoryItem{}, fmt.Errorf("%w: stock must be a whole number", ErrInvalidRecord)
	}
	if stock < UnlimitedStock || stock > MaxStock {
		return InventoryItem{}, fmt.Errorf("%w: stock must be between %d and %d", ErrInvalidRecord, UnlimitedStock, MaxStock)
	}
	item.Stock = int(stock)

	enhanced, err := v.Bool("enhanced")
	if err != nil {
		return InventoryItem{}, err
	}
	item.Enhanced = &enhanced
	return item, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
