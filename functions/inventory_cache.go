package functions

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/kasuganosora/datapad/cache"
	"github.com/kasuganosora/datapad/model"
	"go.uber.org/zap"
)

// InventoryChannel carries the name of a shop whose listing changed.
const InventoryChannel = "datapad:inventory"

const inventoryKeyPrefix = "datapad:inventory:"

// inventoryCache is a read-through cache of shop listings. Cache failures
// only cost a database read; they never fail a request.
//
// Every invalidation bumps the shop's generation. A fill carries the
// generation observed before its database read and is discarded when an
// invalidation landed in between.
type inventoryCache struct {
	c      cache.Cache
	ps     cache.PubSub
	ttl    time.Duration
	gens   map[model.Shop]*atomic.Uint64
	logger *zap.Logger
}

func newInventoryCache(c cache.Cache, ps cache.PubSub, ttl time.Duration, logger *zap.Logger) *inventoryCache {
	gens := make(map[model.Shop]*atomic.Uint64, len(model.Shops()))
	for _, shop := range model.Shops() {
		gens[shop] = new(atomic.Uint64)
	}
	return &inventoryCache{c: c, ps: ps, ttl: ttl, gens: gens, logger: logger}
}

// generation must be read before the database read whose result is passed
// to put.
func (ic *inventoryCache) generation(shop model.Shop) uint64 {
	return ic.gens[shop].Load()
}

func (ic *inventoryCache) enabled() bool {
	return ic.c != nil && ic.ttl > 0
}

func inventoryKey(shop model.Shop) string {
	return inventoryKeyPrefix + string(shop)
}

func (ic *inventoryCache) get(ctx context.Context, shop model.Shop) ([]model.InventoryItem, bool) {
	if !ic.enabled() {
		return nil, false
	}
	raw, err := ic.c.Get(ctx, inventoryKey(shop))
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			ic.logger.Warn("inventory cache read failed", zap.String("shop", string(shop)), zap.Error(err))
		}
		return nil, false
	}
	var items []model.InventoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		ic.logger.Warn("inventory cache entry corrupt", zap.String("shop", string(shop)), zap.Error(err))
		return nil, false
	}
	ic.logger.Debug("inventory cache hit", zap.String("shop", string(shop)))
	return items, true
}

func (ic *inventoryCache) put(ctx context.Context, shop model.Shop, gen uint64, items []model.InventoryItem) {
	if !ic.enabled() || ic.generation(shop) != gen {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := ic.c.Set(ctx, inventoryKey(shop), string(raw), ic.ttl); err != nil {
		ic.logger.Warn("inventory cache write failed", zap.String("shop", string(shop)), zap.Error(err))
		return
	}
	// An invalidation that ran before the Set above may have deleted nothing.
	if ic.generation(shop) != gen {
		ic.logger.Debug("inventory cache fill superseded", zap.String("shop", string(shop)))
		ic.drop(ctx, shop)
	}
}

// invalidate drops the shop listing here and tells peers to do the same.
func (ic *inventoryCache) invalidate(ctx context.Context, shop model.Shop) {
	if !ic.enabled() {
		return
	}
	ic.drop(ctx, shop)
	if ic.ps == nil {
		return
	}
	if err := ic.ps.Publish(ctx, InventoryChannel, string(shop)); err != nil {
		ic.logger.Warn("inventory invalidation publish failed", zap.String("shop", string(shop)), zap.Error(err))
	}
}

func (ic *inventoryCache) drop(ctx context.Context, shop model.Shop) {
	ic.gens[shop].Add(1)
	if err := ic.c.Del(ctx, inventoryKey(shop)); err != nil {
		ic.logger.Warn("inventory cache delete failed", zap.String("shop", string(shop)), zap.Error(err))
	}
}

func (ic *inventoryCache) listen(ctx context.Context) error {
	if !ic.enabled() || ic.ps == nil {
		return nil
	}
	msgs, cancel, err := ic.ps.Subscribe(ctx, InventoryChannel)
	if err != nil {
		return err
	}
	defer cancel()
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			shop, err := model.ParseShop(msg.Payload)
			if err != nil {
				ic.logger.Warn("inventory invalidation for unknown shop", zap.String("payload", msg.Payload))
				continue
			}
			ic.drop(ctx, shop)
		case <-ctx.Done():
			return nil
		}
	}
}
