package marketplace

// defaultCategories is the built-in top-level catalog served until a
// real catalog document has been loaded, so listings are never empty.
func defaultCategories() []Category {
	return []Category{
		{
			ID: "electronics", Name: "Электроника", Icon: "phone-portrait-outline",
			ProductCount: 15420, Description: "Смартфоны, ноутбуки, фототехника",
			Subcategories: []Category{
				{ID: "smartphones", Name: "Смартфоны и гаджеты", Icon: "phone-portrait-outline", ProductCount: 3200},
				{ID: "laptops", Name: "Ноутбуки и компьютеры", Icon: "laptop-outline", ProductCount: 1850},
				{ID: "tv", Name: "Телевизоры и видео", Icon: "desktop-outline", ProductCount: 980},
				{ID: "cameras", Name: "Фототехника", Icon: "camera-outline", ProductCount: 750},
				{ID: "audio", Name: "Аудиотехника", Icon: "volume-high-outline", ProductCount: 2100},
				{ID: "games", Name: "Игры и консоли", Icon: "game-controller-outline", ProductCount: 1540},
				{ID: "accessories", Name: "Аксессуары", Icon: "cube-outline", ProductCount: 5000},
			},
		},
		{
			ID: "clothes", Name: "Одежда и обувь", Icon: "shirt-outline",
			ProductCount: 28540, Description: "Мужская, женская, детская одежда",
			Subcategories: []Category{
				{ID: "mens-clothes", Name: "Мужская одежда", Icon: "person-outline", ProductCount: 8900},
				{ID: "womens-clothes", Name: "Женская одежда", Icon: "person-outline", ProductCount: 12400},
				{ID: "kids-clothes", Name: "Детская одежда", Icon: "heart-circle-outline", ProductCount: 4200},
				{ID: "shoes", Name: "Обувь", Icon: "footsteps-outline", ProductCount: 7800},
			},
		},
		{
			ID: "home", Name: "Дом и сад", Icon: "home-outline",
			ProductCount: 12350, Description: "Мебель, декор, инструменты",
			Subcategories: []Category{
				{ID: "furniture", Name: "Мебель", Icon: "bed-outline", ProductCount: 3400},
				{ID: "decor", Name: "Декор", Icon: "color-palette-outline", ProductCount: 5600},
				{ID: "tools", Name: "Инструменты", Icon: "build-outline", ProductCount: 2100},
				{ID: "textiles", Name: "Текстиль и ковры", Icon: "square-outline", ProductCount: 1250},
			},
		},
		{
			ID: "beauty", Name: "Красота и здоровье", Icon: "sparkles-outline",
			ProductCount: 18760, Description: "Косметика, парфюмерия, витамины",
			Subcategories: []Category{
				{ID: "cosmetics", Name: "Косметика", Icon: "sparkles-outline", ProductCount: 6500},
				{ID: "perfume", Name: "Парфюмерия", Icon: "water-outline", ProductCount: 2100},
				{ID: "skincare", Name: "Уход за кожей", Icon: "leaf-outline", ProductCount: 5800},
				{ID: "vitamins", Name: "Витамины и БАДы", Icon: "medical-outline", ProductCount: 4360},
			},
		},
		{
			ID: "kids", Name: "Детские товары", Icon: "heart-circle-outline",
			ProductCount: 9820, Description: "Игрушки, одежда, товары для малышей",
			Subcategories: []Category{
				{ID: "toys", Name: "Игрушки", Icon: "heart-circle-outline", ProductCount: 4200},
				{ID: "baby-goods", Name: "Товары для малышей", Icon: "bed-outline", ProductCount: 3100},
				{ID: "kids-furniture", Name: "Детская мебель", Icon: "chair-outline", ProductCount: 1520},
			},
		},
		{
			ID: "food", Name: "Продукты питания", Icon: "fast-food-outline",
			ProductCount: 22100, Description: "Продукты, напитки, снеки",
			Subcategories: []Category{
				{ID: "grocery", Name: "Продукты", Icon: "fast-food-outline", ProductCount: 12000},
				{ID: "drinks", Name: "Напитки", Icon: "water-outline", ProductCount: 5400},
				{ID: "snacks", Name: "Снеки и сладости", Icon: "happy-outline", ProductCount: 4700},
			},
		},
		{
			ID: "auto", Name: "Автотовары", Icon: "car-outline",
			ProductCount: 8540, Description: "Запчасти, аксессуары, масла",
			Subcategories: []Category{
				{ID: "parts", Name: "Запчасти", Icon: "car-outline", ProductCount: 3200},
				{ID: "accessories-auto", Name: "Аксессуары", Icon: "cube-outline", ProductCount: 2800},
				{ID: "oils", Name: "Масла и жидкости", Icon: "water-outline", ProductCount: 1540},
			},
		},
		{
			ID: "sports", Name: "Спорт и отдых", Icon: "bicycle-outline",
			ProductCount: 14200, Description: "Спортивный инвентарь, туризм",
			Subcategories: []Category{
				{ID: "sports-equipment", Name: "Спортивный инвентарь", Icon: "bicycle-outline", ProductCount: 5600},
				{ID: "fitness", Name: "Фитнес и тренажеры", Icon: "barbell-outline", ProductCount: 3200},
				{ID: "tourism", Name: "Туризм и путешествия", Icon: "backpack-outline", ProductCount: 5400},
			},
		},
		{
			ID: "books", Name: "Книги", Icon: "book-outline",
			ProductCount: 45320, Description: "Художественные, учебные книги",
			Subcategories: []Category{
				{ID: "fiction", Name: "Художественная литература", Icon: "book-outline", ProductCount: 18900},
				{ID: "education", Name: "Учебная литература", Icon: "school-outline", ProductCount: 12400},
				{ID: "reference", Name: "Справочники", Icon: "help-circle-outline", ProductCount: 14020},
			},
		},
		{
			ID: "pets", Name: "Зоотовары", Icon: "paw-outline",
			ProductCount: 7650, Description: "Корм, игрушки для животных",
			Subcategories: []Category{
				{ID: "pet-food", Name: "Корм для животных", Icon: "paw-outline", ProductCount: 3200},
				{ID: "pet-toys", Name: "Игрушки для животных", Icon: "heart-circle-outline", ProductCount: 2150},
				{ID: "pet-care", Name: "Уход за животными", Icon: "bandage-outline", ProductCount: 2300},
			},
		},
	}
}

var categoryNames = map[string]string{
	"electronics": "Электроника",
	"clothes":     "Одежда",
	"home":        "Дом и сад",
	"beauty":      "Красота",
	"kids":        "Детские товары",
	"food":        "Продукты",
	"auto":        "Автотовары",
	"sports":      "Спорт",
	"books":       "Книги",
	"pets":        "Зоотовары",
}

func categoryDisplayName(categoryID string) string {
	if name, ok := categoryNames[categoryID]; ok {
		return name
	}
	return "Товар"
}
