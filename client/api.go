package client

import (
	"context"

	"github.com/kasuganosora/datapad/model"
)

func (c *Client) GetAllContacts(ctx context.Context) ([]model.Contact, error) {
	var out []model.Contact
	err := c.get(ctx, "GetAllContacts", nil, &out)
	return out, err
}

func (c *Client) GetAllCharacters(ctx context.Context) ([]model.Character, error) {
	var out []model.Character
	err := c.get(ctx, "GetAllCharacters", nil, &out)
	return out, err
}

func (c *Client) GetAllPlayerCharacters(ctx context.Context) ([]model.Character, error) {
	var out []model.Character
	err := c.get(ctx, "GetAllPlayerCharacters", nil, &out)
	return out, err
}

func (c *Client) GetKnownCharacters(ctx context.Context) ([]model.Character, error) {
	var out []model.Character
	err := c.get(ctx, "GetKnownCharacters", nil, &out)
	return out, err
}

// GetPlayerCharacters returns the characters owned by userName.
func (c *Client) GetPlayerCharacters(ctx context.Context, userName string) ([]model.Character, error) {
	var out []model.Character
	err := c.get(ctx, "GetPlayerCharacters", map[string]any{"userName": userName}, &out)
	return out, err
}

func (c *Client) GetPlayer(ctx context.Context, userName string) (*model.Player, error) {
	var out model.Player
	if err := c.get(ctx, "GetPlayer", map[string]any{"userName": userName}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTimeline(ctx context.Context) ([]model.TimelineEvent, error) {
	var out []model.TimelineEvent
	err := c.get(ctx, "GetTimeline", nil, &out)
	return out, err
}

func (c *Client) GetShopInventory(ctx context.Context, shop model.Shop) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	err := c.get(ctx, "GetShopInventory", map[string]any{"shopName": shop}, &out)
	return out, err
}

func (c *Client) InsertInventoryItem(ctx context.Context, shop model.Shop, item model.InventoryItem) error {
	return c.putRecord(ctx, "InsertInventoryItem", "item", item, map[string]any{"shopName": shop})
}

// EditInventoryItem replaces every field of the item named item.Name.
func (c *Client) EditInventoryItem(ctx context.Context, shop model.Shop, item model.InventoryItem) error {
	return c.putRecord(ctx, "EditInventoryItem", "item", item, map[string]any{"shopName": shop})
}

func (c *Client) DeleteInventoryItem(ctx context.Context, shop model.Shop, itemName string) error {
	return c.post(ctx, "DeleteInventoryItem", map[string]any{"shopName": shop, "itemName": itemName}, nil)
}

func (c *Client) InsertContact(ctx context.Context, contact model.Contact) error {
	return c.putRecord(ctx, "InsertContact", "contact", contact, nil)
}

func (c *Client) EditContact(ctx context.Context, contact model.Contact) error {
	return c.putRecord(ctx, "EditContact", "contact", contact, nil)
}

func (c *Client) DeleteContact(ctx context.Context, name string) error {
	return c.post(ctx, "DeleteContact", map[string]any{"contactName": name}, nil)
}

func (c *Client) InsertCharacter(ctx context.Context, character model.Character) error {
	return c.putRecord(ctx, "InsertCharacter", "character", character, nil)
}

func (c *Client) EditCharacter(ctx context.Context, character model.Character) error {
	return c.putRecord(ctx, "EditCharacter", "character", character, nil)
}

func (c *Client) DeleteCharacter(ctx context.Context, name string) error {
	return c.post(ctx, "DeleteCharacter", map[string]any{"characterName": name}, nil)
}

func (c *Client) InsertTimelineEvent(ctx context.Context, event model.TimelineEvent) error {
	return c.putRecord(ctx, "InsertTimelineEvent", "event", event, nil)
}

func (c *Client) EditTimelineEvent(ctx context.Context, event model.TimelineEvent) error {
	return c.putRecord(ctx, "EditTimelineEvent", "event", event, nil)
}

func (c *Client) DeleteTimelineEvent(ctx context.Context, name string) error {
	return c.post(ctx, "DeleteTimelineEvent", map[string]any{"eventName": name}, nil)
}

// putRecord sends rec as JSON in parameter key alongside params.
func (c *Client) putRecord(ctx context.Context, function, key string, rec any, params map[string]any) error {
	raw, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	all := map[string]any{key: raw}
	for k, v := range params {
		all[k] = v
	}
	return c.post(ctx, function, all, nil)
}
