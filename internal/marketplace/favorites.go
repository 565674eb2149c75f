package marketplace

import "sync"

// favoritesSet holds at most one entry per product identity, each a
// snapshot flagged as favorite.
type favoritesSet struct {
	mu    sync.Mutex
	items []Product
}

// toggle removes the product when present, adds it otherwise. Reports
// whether the product is a favorite after the call.
func (s *favoritesSet) toggle(p Product) (snapshot []Product, favorite bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.snapshotLocked(), false
		}
	}

	fav := p.Clone()
	fav.Favorite = true
	s.items = append(s.items, fav)
	return s.snapshotLocked(), true
}

func (s *favoritesSet) remove(productID int64) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, p := range s.items {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	s.items = kept
	return s.snapshotLocked()
}

func (s *favoritesSet) contains(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == productID {
			return true
		}
	}
	return false
}

func (s *favoritesSet) snapshot() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// restore rebuilds the set from persisted state, keeping one entry per
// product identity.
func (s *favoritesSet) restore(items []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int64]bool, len(items))
	kept := make([]Product, 0, len(items))
	for _, p := range items {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		kept = append(kept, p.Clone())
	}
	s.items = kept
}

func (s *favoritesSet) snapshotLocked() []Product {
	return cloneProducts(s.items)
}
