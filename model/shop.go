package model

import (
	"errors"
	"fmt"
)

// ErrUnknownShop is returned for any shop name outside the catalog.
var ErrUnknownShop = errors.New("unknown shop")

// Shop identifies an inventory collection. The value is the spelling used in
// query parameters.
type Shop string

const (
	ShopEquipment  Shop = "equipment"
	ShopApothecary Shop = "apothecary"
)

var shopTables = map[Shop]string{
	ShopEquipment:  "equipment_items",
	ShopApothecary: "apothecary_items",
}

// Shops lists every shop in display order.
func Shops() []Shop {
	return []Shop{ShopEquipment, ShopApothecary}
}

// ParseShop resolves a query-parameter shop name. Matching is exact; anything
// else fails closed with ErrUnknownShop.
func ParseShop(name string) (Shop, error) {
	s := Shop(name)
	if _, ok := shopTables[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownShop, name)
	}
	return s, nil
}

// Table returns the backing table of the shop.
func (s Shop) Table() string { return shopTables[s] }

// DisplayName is the title-cased shop name shown in menus.
func (s Shop) DisplayName() string {
	switch s {
	case ShopEquipment:
		return "Equipment"
	case ShopApothecary:
		return "Apothecary"
	}
	return string(s)
}
