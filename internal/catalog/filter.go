package catalog

import "strings"

// Filter returns the products whose name contains query (case-insensitive)
// and whose category equals category. An empty query matches every name and
// CategoryAll (or an empty category) matches every category. The input order
// is preserved and the input slice is not modified.
func Filter(products []Product, query, category string) []Product {
	needle := strings.ToLower(query)
	matchAll := category == "" || category == CategoryAll
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if !matchAll && p.Category != category {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Find returns the first product with the given id.
func Find(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
