package marketplace_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"MarketStore/internal/marketplace"
)

func listProducts(t *testing.T, svc *marketplace.Service, categoryID string, f *marketplace.FilterOptions, opts marketplace.QueryOptions) []marketplace.Product {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	list, err := svc.ProductsByCategory(ctx, categoryID, f, opts).Wait(ctx)
	if err != nil {
		t.Fatalf("products by category: %v", err)
	}
	return list
}

func TestCategoriesDefaultsWhenUnloaded(t *testing.T) {
	svc := newTestService(t, marketplace.StaticSource{Err: errors.New("down")})

	cats := svc.Categories()
	if len(cats) != 10 {
		t.Fatalf("expected the ten built-in categories, got %d", len(cats))
	}
	for _, c := range cats {
		if len(c.Subcategories) == 0 {
			t.Fatalf("category %s has no subcategories", c.ID)
		}
	}
}

func TestCategoriesTranslationKeys(t *testing.T) {
	svc := newTestService(t, marketplace.StaticSource{Document: testDocument(t)})

	found := false
	for _, c := range svc.Categories() {
		if c.NameKey == "" || !strings.HasPrefix(c.NameKey, "CATEGORY_") {
			t.Fatalf("category %s: bad name key %q", c.ID, c.NameKey)
		}
		for _, sub := range c.Subcategories {
			if sub.NameKey == "" {
				t.Fatalf("subcategory %s has no name key", sub.ID)
			}
			if sub.ID == "mens-clothes" {
				found = true
				if sub.NameKey != "CATEGORY_MENS_CLOTHES" {
					t.Fatalf("derived key = %q", sub.NameKey)
				}
			}
		}
	}
	if !found {
		t.Fatal("default tree is missing mens-clothes")
	}

	reload(t, svc)
	cats := svc.Categories()
	if len(cats) != 1 || cats[0].NameKey != "CATEGORY_ELECTRONICS" {
		t.Fatalf("loaded categories: %+v", cats)
	}
}

// flakySource fails while err is set and serves doc otherwise.
type flakySource struct {
	doc *marketplace.CatalogDocument
	err error
}

func (s *flakySource) Fetch(context.Context) (*marketplace.CatalogDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

type failingSource struct{}

func (failingSource) Fetch(context.Context) (*marketplace.CatalogDocument, error) {
	return nil, errors.New("fetch failed")
}

func TestLoadFailureKeepsPriorCatalog(t *testing.T) {
	src := &flakySource{doc: testDocument(t)}
	svc := newTestService(t, src)
	reload(t, svc)

	before := mustProduct(t, svc, "p-alpha")

	src.err = errors.New("boom")
	ctx := context.Background()
	if _, err := svc.LoadCatalog(ctx).Wait(ctx); err == nil {
		t.Fatal("expected load error")
	}

	after := mustProduct(t, svc, "p-alpha")
	if after.ID != before.ID || after.Title != before.Title {
		t.Fatalf("catalog changed after failed load: %+v vs %+v", before, after)
	}
	if after.LookupSource != "cache" {
		t.Fatalf("lookup should still hit the cached catalog, got %q", after.LookupSource)
	}
}

// gatedSource stalls its first fetch until released; later fetches
// return immediately.
type gatedSource struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
	stalled *marketplace.CatalogDocument
	quick   *marketplace.CatalogDocument
}

func (s *gatedSource) Fetch(context.Context) (*marketplace.CatalogDocument, error) {
	s.mu.Lock()
	s.calls++
	first := s.calls == 1
	s.mu.Unlock()

	if first {
		close(s.started)
		<-s.release
		return s.stalled, nil
	}
	return s.quick, nil
}

func TestOverlappingLoadsLastAppliedWins(t *testing.T) {
	src := &gatedSource{
		started: make(chan struct{}),
		release: make(chan struct{}),
		stalled: document(t, `{"products": [
			{"id": "slow-1", "title": "Slow", "price": 100, "category_id": "slow-cat", "in_stock": true}
		], "categories": [{"id": "slow-cat", "name": "Slow"}]}`),
		quick: document(t, `{"products": [
			{"id": "quick-1", "title": "Quick", "price": 200, "category_id": "quick-cat", "in_stock": true}
		], "categories": [{"id": "quick-cat", "name": "Quick"}]}`),
	}
	svc := newTestService(t, src)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slow := svc.LoadCatalog(ctx)
	<-src.started

	// a second load completes while the first is still in flight
	if _, err := svc.LoadCatalog(ctx).Wait(ctx); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if _, err := svc.ProductByIDStrict(ctx, "quick-1").Wait(ctx); err != nil {
		t.Fatalf("second load not applied: %v", err)
	}

	close(src.release)
	if _, err := slow.Wait(ctx); err != nil {
		t.Fatalf("first load: %v", err)
	}

	// whichever load resolved last wins wholesale
	if _, err := svc.ProductByIDStrict(ctx, "slow-1").Wait(ctx); err != nil {
		t.Fatalf("stalled load must win: %v", err)
	}
	if _, err := svc.ProductByIDStrict(ctx, "quick-1").Wait(ctx); !errors.Is(err, marketplace.ErrProductNotFound) {
		t.Fatalf("earlier load's products must be gone, got %v", err)
	}
	cats := svc.Categories()
	if len(cats) != 1 || cats[0].ID != "slow-cat" {
		t.Fatalf("categories = %+v", cats)
	}
}

func TestFilterThenSort(t *testing.T) {
	svc := loadedService(t, marketplace.StaticSource{Document: testDocument(t)})

	from, to := int64(1000), int64(5000)
	list := listProducts(t, svc, "electronics", &marketplace.FilterOptions{
		PriceFrom: &from,
		PriceTo:   &to,
	}, marketplace.QueryOptions{RealOnly: true})

	if len(list) != 2 {
		t.Fatalf("expected 2 products in [1000,5000], got %d", len(list))
	}
	for _, p := range list {
		if p.Price < from || p.Price > to {
			t.Fatalf("price %d outside range", p.Price)
		}
	}
	// default sort is popularity: descending review count
	if list[0].Reviews < list[1].Reviews {
		t.Fatalf("not sorted by popularity: %d before %d", list[0].Reviews, list[1].Reviews)
	}
}

func TestUnfilteredListingKeepsLoadOrder(t *testing.T) {
	svc := loadedService(t, marketplace.StaticSource{Document: testDocument(t)})

	// Beta has the highest review count; a popularity sort would put it
	// first. Without filters the listing keeps document order.
	list := listProducts(t, svc, "electronics", nil, marketplace.QueryOptions{RealOnly: true})
	if len(list) != 3 {
		t.Fatalf("expected 3 products, got %d", len(list))
	}
	for i, want := range []string{"Alpha", "Beta", "Gamma"} {
		if list[i].Title != want {
			t.Fatalf("position %d = %q, want %q", i, list[i].Title, want)
		}
	}
}

func TestSortKeys(t *testing.T) {
	svc := loadedService(t, marketplace.StaticSource{Document: testDocument(t)})
	opts := marketplace.QueryOptions{RealOnly: true}

	low := listProducts(t, svc, "electronics", &marketplace.FilterOptions{SortBy: marketplace.SortPriceLow}, opts)
	for i := 1; i < len(low); i++ {
		if low[i-1].Price > low[i].Price {
			t.Fatalf("priceLow not ascending at %d", i)
		}
	}

	high := listProducts(t, svc, "electronics", &marketplace.FilterOptions{SortBy: marketplace.SortPriceHigh}, opts)
	for i := 1; i < len(high); i++ {
		if high[i-1].Price < high[i].Price {
			t.Fatalf("priceHigh not descending at %d", i)
		}
	}

	rating := listProducts(t, svc, "electronics", &marketplace.FilterOptions{SortBy: marketplace.SortRating}, opts)
	for i := 1; i < len(rating); i++ {
		if rating[i-1].Rating < rating[i].Rating {
			t.Fatalf("rating not descending at %d", i)
		}
	}

	// "new" is a positional reversal of the unsorted listing order
	popular := listProducts(t, svc, "electronics", &marketplace.FilterOptions{SortBy: marketplace.SortPopularity}, opts)
	reversed := listProducts(t, svc, "electronics", &marketplace.FilterOptions{SortBy: marketplace.SortNew}, opts)
	if len(popular) != len(reversed) {
		t.Fatalf("length mismatch: %d vs %d", len(popular), len(reversed))
	}
	if reversed[0].Title != "Gamma" {
		t.Fatalf("reversal should put the last-loaded record first, got %q", reversed[0].Title)
	}

	// unknown key leaves order untouched rather than failing
	unknown := listProducts(t, svc, "electronics", &marketplace.FilterOptions{SortBy: "velocity"}, opts)
	if len(unknown) != len(popular) {
		t.Fatalf("unknown sort key changed the result set")
	}
}

func TestFilterBrandAndStock(t *testing.T) {
	svc := loadedService(t, marketplace.StaticSource{Document: testDocument(t)})
	opts := marketplace.QueryOptions{RealOnly: true}

	sony := listProducts(t, svc, "electronics", &marketplace.FilterOptions{Brands: []string{"Sony"}}, opts)
	if len(sony) != 1 || sony[0].Brand != "Sony" {
		t.Fatalf("brand filter: %+v", sony)
	}

	inStock := listProducts(t, svc, "electronics", &marketplace.FilterOptions{InStock: true}, opts)
	for _, p := range inStock {
		if !p.InStock {
			t.Fatalf("out-of-stock product in in-stock listing: %+v", p)
		}
	}

	minRating := 4.0
	rated := listProducts(t, svc, "electronics", &marketplace.FilterOptions{Rating: &minRating}, opts)
	for _, p := range rated {
		if p.Rating < minRating {
			t.Fatalf("rating %f below minimum", p.Rating)
		}
	}
}

func TestSparseCategoryToppedUpWithMocks(t *testing.T) {
	svc := loadedService(t, marketplace.StaticSource{Document: testDocument(t)})

	list := listProducts(t, svc, "electronics", nil, marketplace.QueryOptions{})
	if len(list) != 30 {
		t.Fatalf("sparse category should be topped up to 30, got %d", len(list))
	}

	// mock shape only: never exact values
	ids := map[int64]bool{}
	mocks := 0
	for _, p := range list {
		if ids[p.ID] {
			t.Fatalf("duplicate identity %d in listing", p.ID)
		}
		ids[p.ID] = true
		if p.LookupSource == "mock" {
			mocks++
			if p.Title == "" || p.Price <= 0 || p.CategoryID != "electronics" {
				t.Fatalf("malformed mock: %+v", p)
			}
		}
	}
	if mocks != 27 {
		t.Fatalf("expected 27 synthetic records, got %d", mocks)
	}

	real := listProducts(t, svc, "electronics", nil, marketplace.QueryOptions{RealOnly: true})
	if len(real) != 3 {
		t.Fatalf("real-only listing should keep the 3 loaded records, got %d", len(real))
	}
}

func TestProductByIDFallsBackToMock(t *testing.T) {
	// empty, unloaded catalog whose source always fails: the lookup
	// still resolves to a synthetic product after the reload attempt
	svc := newTestService(t, failingSource{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p, err := svc.ProductByID(ctx, "9001").Wait(ctx)
	if err != nil {
		t.Fatalf("lenient lookup must not fail: %v", err)
	}
	if p.ID != 9001 {
		t.Fatalf("numeric identity must round-trip: got %d", p.ID)
	}
	if p.LookupSource != "mock" {
		t.Fatalf("expected a synthetic product, got %q", p.LookupSource)
	}
}

func TestProductByIDStableForUnknownStringID(t *testing.T) {
	svc := loadedService(t, marketplace.StaticSource{Document: testDocument(t)})

	first := mustProduct(t, svc, "ghost-sku")
	second := mustProduct(t, svc, "ghost-sku")
	if first.ID != second.ID {
		t.Fatalf("unknown id must stay stable across lookups: %d vs %d", first.ID, second.ID)
	}
}

func TestProductByIDStrictTaxonomy(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// catalog unavailable
	down := newTestService(t, failingSource{})
	if _, err := down.ProductByIDStrict(ctx, "1").Wait(ctx); !errors.Is(err, marketplace.ErrCatalogUnavailable) {
		t.Fatalf("want ErrCatalogUnavailable, got %v", err)
	}

	// loaded but missing
	svc := loadedService(t, marketplace.StaticSource{Document: testDocument(t)})
	if _, err := svc.ProductByIDStrict(ctx, "9999").Wait(ctx); !errors.Is(err, marketplace.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}

	// found
	p, err := svc.ProductByIDStrict(ctx, "p-alpha").Wait(ctx)
	if err != nil || p.Title != "Alpha" {
		t.Fatalf("strict hit failed: %v %+v", err, p)
	}
}

func TestFileSourceFixture(t *testing.T) {
	svc := loadedService(t, marketplace.FileSource{Path: "testdata/catalog.json"})

	list := listProducts(t, svc, "electronics", nil, marketplace.QueryOptions{RealOnly: true})
	if len(list) == 0 {
		t.Fatal("fixture catalog has electronics products")
	}
	cats := svc.Categories()
	if len(cats) != 3 {
		t.Fatalf("fixture has 3 categories, got %d", len(cats))
	}
}
