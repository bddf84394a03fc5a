package client

import (
	"context"
	"errors"

	"github.com/kasuganosora/datapad/model"
)

// ErrOutOfStock is returned by Purchase for an item with zero stock. No
// request is sent.
var ErrOutOfStock = errors.New("item is out of stock")

// Purchase buys one unit of item and returns the item as it should now be
// displayed. Unlimited items are returned unchanged without a request.
// The decrement is computed from the caller's copy, so two concurrent
// purchases of the same item can both succeed with one decrement.
func (c *Client) Purchase(ctx context.Context, shop model.Shop, item model.InventoryItem) (model.InventoryItem, error) {
	switch {
	case item.Unlimited():
		return item, nil
	case !item.InStock():
		return item, ErrOutOfStock
	}
	item.Stock--
	if err := c.EditInventoryItem(ctx, shop, item); err != nil {
		item.Stock++
		return item, err
	}
	return item, nil
}
