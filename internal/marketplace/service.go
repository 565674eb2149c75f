package marketplace

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"MarketStore/internal/kvstore"
)

var ErrEmptyCart = errors.New("cart is empty")

// Service is the marketplace façade. It owns the catalog, the cart
// ledger, the favorites set and the recently-viewed ring, persists
// user state after every mutation and republishes the new snapshot to
// subscribers. Callers only ever receive snapshot copies.
type Service struct {
	catalog   *Catalog
	cart      *cartLedger
	favorites *favoritesSet
	viewed    *viewedRing
	persist   *persister

	cartFeed      *Feed[[]CartItem]
	favoritesFeed *Feed[[]Product]
	viewedFeed    *Feed[[]Product]

	log *zap.Logger
}

type Options struct {
	// Source supplies catalog documents; nil leaves the service on
	// built-in defaults and mock records.
	Source Source
	// KV persists cart, favorites and recently-viewed; nil disables
	// durability (an in-memory store is used).
	KV  kvstore.Store
	Log *zap.Logger
}

// New constructs the façade and restores persisted user state, so
// subscribers see the restored snapshots immediately.
func New(opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	kv := opts.KV
	if kv == nil {
		kv = kvstore.NewMemStore()
	}

	s := &Service{
		catalog:       newCatalog(opts.Source, log),
		cart:          &cartLedger{},
		favorites:     &favoritesSet{},
		viewed:        &viewedRing{},
		persist:       &persister{kv: kv, log: log},
		cartFeed:      NewFeed[[]CartItem](),
		favoritesFeed: NewFeed[[]Product](),
		viewedFeed:    NewFeed[[]Product](),
		log:           log,
	}

	cart, favorites, viewed := s.persist.restore(context.Background())
	s.cart.restore(cart)
	s.favorites.restore(favorites)
	s.viewed.restore(viewed)

	s.cartFeed.Publish(s.cart.snapshot())
	s.favoritesFeed.Publish(s.favorites.snapshot())
	s.viewedFeed.Publish(s.viewed.snapshot())

	return s
}

// ----- catalog -----

func (s *Service) LoadCatalog(ctx context.Context) *Result[CatalogStats] {
	return s.catalog.Load(ctx)
}

func (s *Service) Categories() []Category {
	return s.catalog.Categories()
}

func (s *Service) ProductsByCategory(ctx context.Context, categoryID string, filters *FilterOptions, opts QueryOptions) *Result[[]Product] {
	return s.catalog.ProductsByCategory(ctx, categoryID, filters, opts)
}

func (s *Service) ProductByID(ctx context.Context, id string) *Result[Product] {
	return s.catalog.ProductByID(ctx, id)
}

func (s *Service) ProductByIDStrict(ctx context.Context, id string) *Result[Product] {
	return s.catalog.ProductByIDStrict(ctx, id)
}

// ----- cart -----

func (s *Service) AddToCart(ctx context.Context, p Product, quantity int, variant ProductVariant) []CartItem {
	snap := s.cart.add(p, quantity, variant)
	s.persistAll(ctx)
	s.cartFeed.Publish(snap)
	return snap
}

func (s *Service) RemoveFromCart(ctx context.Context, productID int64) []CartItem {
	snap := s.cart.remove(productID)
	s.persistAll(ctx)
	s.cartFeed.Publish(snap)
	return snap
}

func (s *Service) ChangeQuantity(ctx context.Context, productID int64, delta int) []CartItem {
	snap := s.cart.changeQuantity(productID, delta)
	s.persistAll(ctx)
	s.cartFeed.Publish(snap)
	return snap
}

func (s *Service) CartItems() []CartItem {
	return s.cart.snapshot()
}

// CheckoutResult is the stub order receipt. No payment or order
// processing happens; the cart is left untouched.
type CheckoutResult struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Items   int    `json:"items"`
	Total   int64  `json:"total"`
}

func (s *Service) Checkout(_ context.Context) (CheckoutResult, error) {
	items := s.cart.snapshot()
	if len(items) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	var total int64
	for _, it := range items {
		total += it.Product.Price * int64(it.Quantity)
	}
	return CheckoutResult{
		OrderID: "o_" + uuid.NewString(),
		Status:  "NEW",
		Items:   len(items),
		Total:   total,
	}, nil
}

// ----- favorites -----

func (s *Service) ToggleFavorite(ctx context.Context, p Product) (snapshot []Product, favorite bool) {
	snap, fav := s.favorites.toggle(p)
	s.persistAll(ctx)
	s.favoritesFeed.Publish(snap)
	return snap, fav
}

func (s *Service) RemoveFavorite(ctx context.Context, productID int64) []Product {
	snap := s.favorites.remove(productID)
	s.persistAll(ctx)
	s.favoritesFeed.Publish(snap)
	return snap
}

func (s *Service) IsFavorite(productID int64) bool {
	return s.favorites.contains(productID)
}

func (s *Service) Favorites() []Product {
	return s.favorites.snapshot()
}

// ----- recently viewed -----

func (s *Service) RecordView(ctx context.Context, p Product) []Product {
	snap := s.viewed.record(p)
	s.persistAll(ctx)
	s.viewedFeed.Publish(snap)
	return snap
}

func (s *Service) RecentlyViewed() []Product {
	return s.viewed.snapshot()
}

// ----- feeds -----

func (s *Service) CartFeed() *Feed[[]CartItem] { return s.cartFeed }

func (s *Service) FavoritesFeed() *Feed[[]Product] { return s.favoritesFeed }

func (s *Service) ViewedFeed() *Feed[[]Product] { return s.viewedFeed }

func (s *Service) persistAll(ctx context.Context) {
	s.persist.save(ctx, s.cart.snapshot(), s.favorites.snapshot(), s.viewed.snapshot())
}
