package marketplace

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

const (
	// categories with fewer real products than this are topped up with
	// synthetic records
	minRealProducts = 10
	// target listing size after top-up
	mockListingSize = 30
)

// Catalog owns the loaded product and category sets and answers all
// catalog queries. The whole catalog is replaced on every successful
// load; a failed load leaves prior state untouched.
type Catalog struct {
	mu         sync.RWMutex
	products   []Product
	categories []Category
	loaded     bool
	assigner   *identityAssigner

	source Source
	mocks  *mockFactory
	log    *zap.Logger
}

func newCatalog(source Source, log *zap.Logger) *Catalog {
	return &Catalog{
		assigner: newIdentityAssigner(),
		source:   source,
		mocks:    newMockFactory(),
		log:      log,
	}
}

// Load fetches the catalog document and, on success, swaps it in
// wholesale, rebuilding identity assignment. Overlapping loads are not
// cancelled; whichever resolves last wins.
func (c *Catalog) Load(ctx context.Context) *Result[CatalogStats] {
	if c.source == nil {
		return failed[CatalogStats](fmt.Errorf("%w: no source configured", ErrCatalogUnavailable))
	}

	res := newResult[CatalogStats]()
	go func() {
		doc, err := c.source.Fetch(ctx)
		if err != nil {
			c.log.Warn("catalog load failed", zap.Error(err))
			res.fail(err)
			return
		}
		stats := c.replace(doc)
		c.log.Info("catalog loaded",
			zap.Int("products", stats.Products),
			zap.Int("categories", stats.Categories),
		)
		res.resolve(stats)
	}()
	return res
}

func (c *Catalog) replace(doc *CatalogDocument) CatalogStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = c.assigner.assign(doc.Products)
	c.categories = doc.Categories
	c.loaded = true

	return CatalogStats{Products: len(c.products), Categories: len(c.categories)}
}

// Categories returns the cached category tree, or the built-in default
// set when nothing is loaded yet. Every category and subcategory gets
// a translation key derived from its identity if the document did not
// supply one.
func (c *Catalog) Categories() []Category {
	c.mu.RLock()
	cats := c.categories
	c.mu.RUnlock()

	if len(cats) == 0 {
		cats = defaultCategories()
	}

	out := make([]Category, 0, len(cats))
	for _, cat := range cats {
		out = append(out, withNameKey(cat))
	}
	return out
}

func withNameKey(cat Category) Category {
	out := cat.clone()
	if out.NameKey == "" {
		out.NameKey = translationKey(out.ID)
	}
	for i := range out.Subcategories {
		if out.Subcategories[i].NameKey == "" {
			out.Subcategories[i].NameKey = translationKey(out.Subcategories[i].ID)
		}
	}
	return out
}

// translationKey derives a deterministic i18n key from a category
// identity: uppercased, non-alphanumeric runs collapsed to one
// underscore. "mens-clothes" -> "CATEGORY_MENS_CLOTHES".
func translationKey(id string) string {
	var b strings.Builder
	b.WriteString("CATEGORY")
	pending := true
	for _, r := range strings.ToUpper(id) {
		alnum := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !alnum {
			pending = true
			continue
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ProductsByCategory lists a category, topping sparse categories up
// with synthetic records unless opts.RealOnly is set. A request that
// carries filters is narrowed first and then ordered by the requested
// sort key, defaulting to popularity; an unfiltered listing keeps its
// generation order.
func (c *Catalog) ProductsByCategory(ctx context.Context, categoryID string, filters *FilterOptions, opts QueryOptions) *Result[[]Product] {
	res := newResult[[]Product]()
	go func() {
		select {
		case <-ctx.Done():
			res.fail(ctx.Err())
			return
		default:
		}

		list := c.categoryProducts(categoryID)
		if len(list) < minRealProducts && !opts.RealOnly {
			list = append(list, c.synthesizeListing(categoryID, mockListingSize-len(list))...)
		}

		list = applyFilters(list, filters)

		if filters != nil {
			key := filters.SortBy
			if key == "" {
				key = SortPopularity
			}
			sortProducts(list, key)
		}

		res.resolve(list)
	}()
	return res
}

func (c *Catalog) categoryProducts(categoryID string) []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Product
	for i := range c.products {
		if c.products[i].CategoryID == categoryID || c.products[i].SubcategoryID == categoryID {
			out = append(out, c.products[i].Clone())
		}
	}
	return out
}

// ProductByID resolves a product identity, falling back through the
// assigned id, the original->assigned map and stringified-id equality.
// If the catalog was never loaded it triggers one load and retries.
// A miss is not an error here: a synthetic product carrying the
// requested identity is returned instead.
func (c *Catalog) ProductByID(ctx context.Context, id string) *Result[Product] {
	res := newResult[Product]()
	go func() {
		if p, ok := c.find(id); ok {
			p.LookupSource = "cache"
			res.resolve(p)
			return
		}

		if !c.isLoaded() {
			if _, err := c.Load(ctx).Wait(ctx); err == nil {
				if p, ok := c.find(id); ok {
					p.LookupSource = "reload"
					res.resolve(p)
					return
				}
			}
		}

		res.resolve(c.synthesizeOne(id))
	}()
	return res
}

// ProductByIDStrict is the strict-mode lookup: it distinguishes found,
// ErrProductNotFound and ErrCatalogUnavailable instead of
// manufacturing a fallback record.
func (c *Catalog) ProductByIDStrict(ctx context.Context, id string) *Result[Product] {
	res := newResult[Product]()
	go func() {
		if p, ok := c.find(id); ok {
			p.LookupSource = "cache"
			res.resolve(p)
			return
		}

		if !c.isLoaded() {
			if _, err := c.Load(ctx).Wait(ctx); err != nil {
				res.fail(fmt.Errorf("%w: %v", ErrCatalogUnavailable, err))
				return
			}
			if p, ok := c.find(id); ok {
				p.LookupSource = "reload"
				res.resolve(p)
				return
			}
		}

		res.fail(fmt.Errorf("%w: %s", ErrProductNotFound, id))
	}()
	return res
}

func (c *Catalog) isLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Catalog) find(id string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		if p, ok := c.findByAssigned(n); ok {
			return p, true
		}
	}

	if assigned, ok := c.assigner.lookup(id); ok {
		if p, ok := c.findByAssigned(assigned); ok {
			return p, true
		}
	}

	// last resort: stringified identity equality
	for i := range c.products {
		if c.products[i].SourceID == id || strconv.FormatInt(c.products[i].ID, 10) == id {
			return c.products[i].Clone(), true
		}
	}
	return Product{}, false
}

// callers hold c.mu
func (c *Catalog) findByAssigned(id int64) (Product, bool) {
	for i := range c.products {
		if c.products[i].ID == id {
			return c.products[i].Clone(), true
		}
	}
	return Product{}, false
}

// synthesizeListing mints fresh identities for generated records so
// they can never collide with loaded ones.
func (c *Catalog) synthesizeListing(categoryID string, n int) []Product {
	if n <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, c.mocks.product(c.assigner.mint(), categoryID, i))
	}
	return out
}

// synthesizeOne keeps the requested identity stable: numeric ids are
// echoed back, non-numeric ones are registered with the assigner so a
// repeat lookup yields the same identity.
func (c *Catalog) synthesizeOne(id string) Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	assigned := c.assigner.ensure(id)
	p := c.mocks.single(assigned)
	if _, numeric := SourceID(id).Numeric(); !numeric {
		p.SourceID = id
	}
	return p
}
