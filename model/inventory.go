package model

import (
	"strconv"
)

const (
	// UnlimitedStock marks an item that never runs out.
	UnlimitedStock = -1
	// MaxStock is the largest finite stock a shop can hold.
	MaxStock = 1<<31 - 1
)

// InventoryItem is one entry in a shop. Name is the key within its shop.
type InventoryItem struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"-"`
	Name        string  `gorm:"size:128;not null" json:"name" validate:"required,max=128"`
	Category    string  `gorm:"size:64" json:"category" validate:"required"`
	Type        string  `gorm:"size:64" json:"type" validate:"required"`
	SubType     *string `gorm:"size:64" json:"subType,omitempty"`
	Rarity      string  `gorm:"size:32" json:"rarity" validate:"required"`
	Weight      float64 `gorm:"not null;default:0" json:"weight" validate:"gte=0"`
	Cost        float64 `gorm:"not null;default:0" json:"cost" validate:"gte=0"`
	Stock       int     `gorm:"not null;default:0" json:"stock" validate:"gte=-1,lte=2147483647"`
	ResourceURL *string `gorm:"size:512" json:"resourceUrl,omitempty" validate:"omitempty,url"`
	Enhanced    *bool   `json:"enhanced,omitempty"`
}

// InventoryFields lists the item's field keys in table column order.
var InventoryFields = []string{
	"name", "category", "type", "subType", "rarity",
	"weight", "cost", "stock", "resourceUrl", "enhanced",
}

// Validate checks the record constraints (non-negative weight and cost,
// stock >= -1, required descriptors).
func (i *InventoryItem) Validate() error {
	return validateStruct(i)
}

// InStock reports whether at least one unit can be bought.
func (i *InventoryItem) InStock() bool {
	return i.Stock != 0
}

// Unlimited reports whether the item carries the unlimited stock sentinel.
func (i *InventoryItem) Unlimited() bool {
	return i.Stock == UnlimitedStock
}

// FieldString returns the display form of a field, used by table filters
// and sorting. Absent optional fields render as "". ok is false for an
// unknown field.
func (i *InventoryItem) FieldString(field string) (s string, ok bool) {
	switch field {
	case "name":
		return i.Name, true
	case "category":
		return i.Category, true
	case "type":
		return i.Type, true
	case "subType":
		return derefString(i.SubType), true
	case "rarity":
		return i.Rarity, true
	case "weight":
		return formatNumber(i.Weight), true
	case "cost":
		return formatNumber(i.Cost), true
	case "stock":
		return strconv.Itoa(i.Stock), true
	case "resourceUrl":
		return derefString(i.ResourceURL), true
	case "enhanced":
		if i.Enhanced == nil {
			return "", true
		}
		return strconv.FormatBool(*i.Enhanced), true
	}
	return "", false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
