package functions

import (
	"context"

	"github.com/kasuganosora/datapad/model"
)

func shopParam(ev Event) (model.Shop, error) {
	name, err := param(ev, "shopName")
	if err != nil {
		return "", err
	}
	return model.ParseShop(name)
}

func shopCollection(shop model.Shop) collection {
	return collection{Kind: "item", Table: shop.Table()}
}

func (s *Service) getShopInventory(ctx context.Context, ev Event) (any, error) {
	shop, err := shopParam(ev)
	if err != nil {
		return nil, err
	}
	if items, ok := s.inventory.get(ctx, shop); ok {
		return items, nil
	}
	gen := s.inventory.generation(shop)
	items, err := listRecords[model.InventoryItem](ctx, s.db, shopCollection(shop))
	if err != nil {
		return nil, err
	}
	s.inventory.put(ctx, shop, gen, items)
	return items, nil
}

func (s *Service) insertInventoryItem(ctx context.Context, ev Event) (any, error) {
	shop, err := shopParam(ev)
	if err != nil {
		return nil, err
	}
	var item model.InventoryItem
	if err := decodeRecord(ev, "item", &item); err != nil {
		return nil, err
	}
	if err := insertRecord(ctx, s.db, shopCollection(shop), item.Name, &item); err != nil {
		return nil, err
	}
	s.inventory.invalidate(ctx, shop)
	return item, nil
}

// editInventoryItem replaces every field of the item except its name.
func (s *Service) editInventoryItem(ctx context.Context, ev Event) (any, error) {
	shop, err := shopParam(ev)
	if err != nil {
		return nil, err
	}
	var item model.InventoryItem
	if err := decodeRecord(ev, "item", &item); err != nil {
		return nil, err
	}
	if err := editRecord(ctx, s.db, shopCollection(shop), item.Name, &item); err != nil {
		return nil, err
	}
	s.inventory.invalidate(ctx, shop)
	return item, nil
}

func (s *Service) deleteInventoryItem(ctx context.Context, ev Event) (any, error) {
	shop, err := shopParam(ev)
	if err != nil {
		return nil, err
	}
	name, err := param(ev, "itemName")
	if err != nil {
		return nil, err
	}
	if err := deleteRecord[model.InventoryItem](ctx, s.db, shopCollection(shop), name); err != nil {
		return nil, err
	}
	s.inventory.invalidate(ctx, shop)
	return deleted{Name: name}, nil
}
