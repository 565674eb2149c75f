package marketplace

// Specification is a single name/value row on a product card.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Review struct {
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	Avatar     string  `json:"avatar,omitempty"`
	Rating     float64 `json:"rating"`
	Date       string  `json:"date"`
	Text       string  `json:"text"`
	Helpful    int     `json:"helpful"`
	NotHelpful int     `json:"not_helpful"`
}

// ProductVariant is a concrete selectable configuration of a product.
// The zero value means "no variant selected".
type ProductVariant struct {
	ID    string `json:"id,omitempty"`
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
	SKU   string `json:"sku,omitempty"`
}

// Equal compares variants field by field.
func (v ProductVariant) Equal(o ProductVariant) bool { return v == o }

func (v ProductVariant) IsZero() bool { return v == ProductVariant{} }

// Product is a catalog record. ID is always the assigned numeric
// identity; the identifier the source document supplied, if any, is
// kept in SourceID.
type Product struct {
	ID              int64            `json:"id"`
	SourceID        string           `json:"source_id,omitempty"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	LongDescription string           `json:"long_description,omitempty"`
	Price           int64            `json:"price"`
	Currency        string           `json:"currency,omitempty"`
	OldPrice        int64            `json:"old_price,omitempty"`
	Discount        int              `json:"discount,omitempty"`
	Rating          float64          `json:"rating,omitempty"`
	Reviews         int              `json:"reviews,omitempty"`
	ReviewsList     []Review         `json:"reviews_list,omitempty"`
	Image           string           `json:"image,omitempty"`
	Images          []string         `json:"images,omitempty"`
	Badge           string           `json:"badge,omitempty"`
	Seller          string           `json:"seller,omitempty"`
	SellerRating    float64          `json:"seller_rating,omitempty"`
	CategoryID      string           `json:"category_id"`
	SubcategoryID   string           `json:"subcategory_id,omitempty"`
	Colors          []string         `json:"colors,omitempty"`
	Sizes           []string         `json:"sizes,omitempty"`
	Variants        []ProductVariant `json:"variants,omitempty"`
	Specifications  []Specification  `json:"specifications,omitempty"`
	Brand           string           `json:"brand,omitempty"`
	InStock         bool             `json:"in_stock"`
	Favorite        bool             `json:"favorite,omitempty"`
	Tags            []string         `json:"tags,omitempty"`

	// LookupSource marks where a lookup result came from: "cache",
	// "reload" or "mock".
	LookupSource string `json:"lookup_source,omitempty"`
}

// Clone returns a copy that shares no slices with the receiver, so
// callers can never mutate store-owned state through a snapshot.
func (p Product) Clone() Product {
	c := p
	c.ReviewsList = append([]Review(nil), p.ReviewsList...)
	c.Images = append([]string(nil), p.Images...)
	c.Colors = append([]string(nil), p.Colors...)
	c.Sizes = append([]string(nil), p.Sizes...)
	c.Variants = append([]ProductVariant(nil), p.Variants...)
	c.Specifications = append([]Specification(nil), p.Specifications...)
	c.Tags = append([]string(nil), p.Tags...)
	return c
}

func cloneProducts(in []Product) []Product {
	out := make([]Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.Clone())
	}
	return out
}

// Category carries one level of optional subcategories. ProductCount
// is informational only.
type Category struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	NameKey       string     `json:"name_key,omitempty"`
	Icon          string     `json:"icon,omitempty"`
	Image         string     `json:"image,omitempty"`
	ProductCount  int        `json:"product_count"`
	Description   string     `json:"description,omitempty"`
	Subcategories []Category `json:"subcategories,omitempty"`
}

func (c Category) clone() Category {
	out := c
	out.Subcategories = make([]Category, 0, len(c.Subcategories))
	for _, sub := range c.Subcategories {
		out.Subcategories = append(out.Subcategories, sub.clone())
	}
	if len(out.Subcategories) == 0 {
		out.Subcategories = nil
	}
	return out
}

// CartItem is a cart line: a denormalized product snapshot plus the
// selected quantity and variant. Quantity is always >= 1; a line that
// would drop to zero is removed instead.
type CartItem struct {
	Product         Product        `json:"product"`
	Quantity        int            `json:"quantity"`
	SelectedVariant ProductVariant `json:"selected_variant,omitzero"`
}

func (i CartItem) clone() CartItem {
	c := i
	c.Product = i.Product.Clone()
	return c
}

func cloneItems(in []CartItem) []CartItem {
	out := make([]CartItem, 0, len(in))
	for _, it := range in {
		out = append(out, it.clone())
	}
	return out
}

type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortRating     SortKey = "rating"
	SortPriceLow   SortKey = "priceLow"
	SortPriceHigh  SortKey = "priceHigh"
	SortNew        SortKey = "new"
)

// FilterOptions narrows and orders a product listing. Nil pointer
// fields mean "not constrained".
type FilterOptions struct {
	PriceFrom *int64   `json:"price_from,omitempty"`
	PriceTo   *int64   `json:"price_to,omitempty"`
	Brands    []string `json:"brands,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
	InStock   bool     `json:"in_stock,omitempty"`
	SortBy    SortKey  `json:"sort_by,omitempty"`
}

// QueryOptions tunes listing behavior beyond filtering.
type QueryOptions struct {
	// RealOnly suppresses synthetic top-up records for sparse
	// categories.
	RealOnly bool
}

// CatalogStats reports what a completed catalog load brought in.
type CatalogStats struct {
	Products   int `json:"products"`
	Categories int `json:"categories"`
}
