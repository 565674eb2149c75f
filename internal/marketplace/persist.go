package marketplace

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"MarketStore/internal/kvstore"
)

// Fixed storage keys, one JSON array each. Changing the persisted
// shape requires clearing these keys by hand; there is no migration.
const (
	keyCart      = "marketplace_cart"
	keyFavorites = "marketplace_favorites"
	keyViewed    = "marketplace_viewed"
)

// persister serializes user state into the key-value store.
// Persistence is best-effort: every failure is logged and swallowed,
// and never blocks the in-memory mutation that triggered it.
type persister struct {
	kv  kvstore.Store
	log *zap.Logger
}

func (p *persister) save(ctx context.Context, cart []CartItem, favorites, viewed []Product) {
	p.saveKey(ctx, keyCart, cart)
	p.saveKey(ctx, keyFavorites, favorites)
	p.saveKey(ctx, keyViewed, viewed)
}

func (p *persister) saveKey(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		p.log.Warn("persist marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := p.kv.Set(ctx, key, string(raw)); err != nil {
		p.log.Warn("persist write failed", zap.String("key", key), zap.Error(err))
	}
}

// restore loads whatever state the store holds. Missing or malformed
// keys yield empty defaults.
func (p *persister) restore(ctx context.Context) (cart []CartItem, favorites, viewed []Product) {
	restoreKey(p, ctx, keyCart, &cart)
	restoreKey(p, ctx, keyFavorites, &favorites)
	restoreKey(p, ctx, keyViewed, &viewed)
	return cart, favorites, viewed
}

func restoreKey[T any](p *persister, ctx context.Context, key string, out *T) {
	raw, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		p.log.Warn("persist read failed", zap.String("key", key), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		p.log.Warn("persist decode failed", zap.String("key", key), zap.Error(err))
		var zero T
		*out = zero
	}
}
