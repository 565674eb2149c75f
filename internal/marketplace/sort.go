package marketplace

import "sort"

// applyFilters narrows a listing. Filtering always runs before
// sorting.
func applyFilters(list []Product, f *FilterOptions) []Product {
	if f == nil {
		return list
	}

	out := list[:0]
	for _, p := range list {
		if f.PriceFrom != nil && p.Price < *f.PriceFrom {
			continue
		}
		if f.PriceTo != nil && p.Price > *f.PriceTo {
			continue
		}
		if len(f.Brands) > 0 && (p.Brand == "" || !contains(f.Brands, p.Brand)) {
			continue
		}
		if f.Rating != nil && p.Rating < *f.Rating {
			continue
		}
		if f.InStock && !p.InStock {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortProducts orders a listing in place. Missing ratings and review
// counts sort as zero. "new" is a positional reversal of the current
// order, not a recency sort. Unknown keys leave the order untouched.
func sortProducts(list []Product, key SortKey) {
	switch key {
	case SortPopularity:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Reviews > list[j].Reviews })
	case SortRating:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Rating > list[j].Rating })
	case SortPriceLow:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price < list[j].Price })
	case SortPriceHigh:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price > list[j].Price })
	case SortNew:
		for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
			list[i], list[j] = list[j], list[i]
		}
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
