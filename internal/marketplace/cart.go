package marketplace

import "sync"

// cartLedger holds the cart lines. At most one line exists per
// (product identity, selected variant) pair; identical products with
// different variants are distinct lines.
type cartLedger struct {
	mu    sync.Mutex
	items []CartItem
}

// add merges into an existing line when product identity and variant
// match, otherwise appends a new line. Returns the post-mutation
// snapshot.
func (l *cartLedger) add(p Product, quantity int, variant ProductVariant) []CartItem {
	if quantity < 1 {
		quantity = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].Product.ID == p.ID && l.items[i].SelectedVariant.Equal(variant) {
			l.items[i].Quantity += quantity
			return l.snapshotLocked()
		}
	}

	l.items = append(l.items, CartItem{
		Product:         p.Clone(),
		Quantity:        quantity,
		SelectedVariant: variant,
	})
	return l.snapshotLocked()
}

// remove drops every line for the product identity, regardless of
// variant.
func (l *cartLedger) remove(productID int64) []CartItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.removeLocked(productID)
	return l.snapshotLocked()
}

// changeQuantity adjusts the first line matching the product identity.
// A quantity at or below zero removes the product from the cart
// entirely.
func (l *cartLedger) changeQuantity(productID int64, delta int) []CartItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].Product.ID != productID {
			continue
		}
		if l.items[i].Quantity+delta <= 0 {
			l.removeLocked(productID)
		} else {
			l.items[i].Quantity += delta
		}
		break
	}
	return l.snapshotLocked()
}

func (l *cartLedger) snapshot() []CartItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// restore replaces the ledger wholesale with persisted state. Lines
// that violate the ledger's invariants are dropped: non-positive
// quantities and duplicate (identity, variant) pairs, first
// occurrence wins.
func (l *cartLedger) restore(items []CartItem) {
	l.mu.Lock()
	defer l.mu.Unlock()

	type lineKey struct {
		id      int64
		variant ProductVariant
	}
	seen := make(map[lineKey]bool, len(items))
	kept := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		k := lineKey{it.Product.ID, it.SelectedVariant}
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, it.clone())
	}
	l.items = kept
}

func (l *cartLedger) removeLocked(productID int64) {
	kept := l.items[:0]
	for _, it := range l.items {
		if it.Product.ID != productID {
			kept = append(kept, it)
		}
	}
	l.items = kept
}

func (l *cartLedger) snapshotLocked() []CartItem {
	return cloneItems(l.items)
}
