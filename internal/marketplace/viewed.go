package marketplace

import "sync"

// recentlyViewedCap bounds the ring; the oldest entry is evicted.
const recentlyViewedCap = 20

// viewedRing is a most-recent-first sequence of product snapshots,
// deduplicated by identity.
type viewedRing struct {
	mu    sync.Mutex
	items []Product
}

// record moves an already-present product to the front, otherwise
// prepends it, then truncates to the cap.
func (r *viewedRing) record(p Product) []Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]Product, 0, len(r.items)+1)
	kept = append(kept, p.Clone())
	for _, v := range r.items {
		if v.ID != p.ID {
			kept = append(kept, v)
		}
	}
	if len(kept) > recentlyViewedCap {
		kept = kept[:recentlyViewedCap]
	}
	r.items = kept
	return r.snapshotLocked()
}

func (r *viewedRing) snapshot() []Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// restore rebuilds the ring from persisted state, deduplicating by
// identity (first occurrence wins) and truncating to the cap.
func (r *viewedRing) restore(items []Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int64]bool, len(items))
	kept := make([]Product, 0, min(len(items), recentlyViewedCap))
	for _, p := range items {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		kept = append(kept, p.Clone())
		if len(kept) == recentlyViewedCap {
			break
		}
	}
	r.items = kept
}

func (r *viewedRing) snapshotLocked() []Product {
	return cloneProducts(r.items)
}
