package marketplace

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	mockBrands = []string{"Samsung", "Apple", "Sony", "LG", "Xiaomi", "Huawei", "OnePlus", "Motorola"}
	mockBadges = []string{"Хит", "New", "Акция", "Популярное"}
	mockColors = []string{"Чёрный", "Белый", "Синий", "Красный"}
	mockSizes  = []string{"S", "M", "L", "XL"}
)

// mockFactory generates placeholder products for sparse categories and
// lookup fallbacks. Values are pseudo-random and cosmetic; only the
// shape matters.
type mockFactory struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newMockFactory() *mockFactory {
	return &mockFactory{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (f *mockFactory) product(id int64, categoryID string, ordinal int) Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	return Product{
		ID:              id,
		Title:           fmt.Sprintf("%s №%d", categoryDisplayName(categoryID), ordinal+1),
		Description:     "Высокое качество, отличные отзывы покупателей",
		LongDescription: "Это полное описание товара с подробной информацией о характеристиках, преимуществах и применении. Товар прошел проверку качества и готов к доставке.",
		Price:           int64(f.rnd.Intn(100000)) + 1000,
		Currency:        "RUB",
		OldPrice:        int64(f.rnd.Intn(150000)) + 15000,
		Discount:        f.rnd.Intn(50),
		Rating:          roundRating(f.rnd.Float64()*2 + 3),
		Reviews:         f.rnd.Intn(500) + 10,
		Image:           f.image(),
		Images:          []string{f.image(), f.image(), f.image()},
		Badge:           mockBadges[f.rnd.Intn(len(mockBadges))],
		Seller:          "Официальный магазин",
		SellerRating:    roundRating(f.rnd.Float64() + 4),
		CategoryID:      categoryID,
		Colors:          append([]string(nil), mockColors...),
		Sizes:           append([]string(nil), mockSizes...),
		InStock:         f.rnd.Float64() > 0.2,
		Brand:           mockBrands[f.rnd.Intn(len(mockBrands))],
		Specifications: []Specification{
			{Name: "Материал", Value: "Премиум пластик"},
			{Name: "Гарантия", Value: "2 года"},
			{Name: "Страна", Value: "Корея"},
		},
		ReviewsList:  mockReviews(),
		Tags:         []string{"популярное", "качество", "доставка"},
		LookupSource: "mock",
	}
}

// single is the lookup-miss fallback product: fixed display fields, the
// requested identity.
func (f *mockFactory) single(id int64) Product {
	return Product{
		ID:              id,
		Title:           "Премиум товар",
		Description:     "Высокое качество, отличные отзывы",
		LongDescription: "Это полное описание товара с подробной информацией. Товар прошел проверку качества и готов к доставке.",
		Price:           4990,
		Currency:        "RUB",
		OldPrice:        6990,
		Discount:        28,
		Rating:          4.5,
		Reviews:         124,
		Image:           "/assets/img/product-1.jpg",
		Images: []string{
			"/assets/img/product-1.jpg",
			"/assets/img/product-2.jpg",
			"/assets/img/product-3.jpg",
			"/assets/img/product-4.jpg",
		},
		Badge:        "Хит",
		Seller:       "Официальный магазин",
		SellerRating: 4.8,
		CategoryID:   "electronics",
		Colors:       []string{"Чёрный", "Белый", "Синий"},
		Sizes:        append([]string(nil), mockSizes...),
		InStock:      true,
		Brand:        "Samsung",
		Specifications: []Specification{
			{Name: "Материал", Value: "Премиум пластик + алюминий"},
			{Name: "Размеры", Value: "15 × 10 × 2 см"},
			{Name: "Вес", Value: "250 г"},
			{Name: "Гарантия", Value: "2 года"},
			{Name: "Страна производства", Value: "Корея"},
		},
		ReviewsList:  mockReviews(),
		Tags:         []string{"популярное", "качество", "хит продаж"},
		LookupSource: "mock",
	}
}

func (f *mockFactory) image() string {
	return fmt.Sprintf("/assets/img/product-%d.jpg", f.rnd.Intn(5)+1)
}

func mockReviews() []Review {
	return []Review{
		{
			ID: uuid.NewString(), Author: "Иван Петров", Rating: 5, Date: "2025-11-15",
			Text: "Отличный товар! Быстро пришёл, всё работает идеально. Рекомендую!", Helpful: 45, NotHelpful: 2,
		},
		{
			ID: uuid.NewString(), Author: "Мария Сидорова", Rating: 4, Date: "2025-11-10",
			Text: "Хороший товар, но упаковка могла быть получше.", Helpful: 32, NotHelpful: 5,
		},
		{
			ID: uuid.NewString(), Author: "Сергей Козлов", Rating: 5, Date: "2025-11-05",
			Text: "Лучшее соотношение цены и качества. Спасибо продавцу за быструю доставку!", Helpful: 67, NotHelpful: 1,
		},
		{
			ID: uuid.NewString(), Author: "Екатерина Волкова", Rating: 4, Date: "2025-10-28",
			Text: "Нормально, но есть небольшие недостатки", Helpful: 18, NotHelpful: 8,
		},
	}
}

func roundRating(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
