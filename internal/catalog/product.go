// Package catalog holds the toy catalog: the product model, the catalog
// filter, and the admin mutations persisted through the store slot.
package catalog

const (
	// CategoryAll is the filter sentinel that matches every category.
	CategoryAll = "all"
	// DefaultRating is assigned to every product created through Add.
	DefaultRating = 4.5
	// PlaceholderImage is used when a product is saved without an image.
	PlaceholderImage = "/static/img/placeholder.svg"
)

// Product is a single toy listed in the catalog.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       int64   `json:"price"`
	Image       string  `json:"image"`
	Stock       bool    `json:"stock"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description,omitempty"`
}

// ProductInput carries raw admin form values.
type ProductInput struct {
	Name        string
	Price       string
	Category    string
	Stock       bool
	Description string
	Image       string
}

// InputFromProduct prefills an edit form from an existing product.
func InputFromProduct(p Product) ProductInput {
	return ProductInput{
		Name:        p.Name,
		Price:       formatInt(p.Price),
		Category:    p.Category,
		Stock:       p.Stock,
		Description: p.Description,
		Image:       p.Image,
	}
}

// Category is one entry of the fixed category set.
type Category struct {
	Value string
	Label string
}

var categories = []Category{
	{Value: "robot", Label: "Robot"},
	{Value: "boneka", Label: "Boneka"},
	{Value: "lego", Label: "Lego"},
	{Value: "mobil", Label: "Mobil RC"},
	{Value: "puzzle", Label: "Puzzle"},
	{Value: "action-figure", Label: "Action Figure"},
}

// Categories returns the category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryLabel returns the display label for a category value.
// Unknown values are returned as-is.
func CategoryLabel(value string) string {
	if value == CategoryAll {
		return "Semua"
	}
	for _, c := range categories {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

// DefaultProducts is the catalog written on first load of an empty store.
func DefaultProducts() []Product {
	return []Product{
		{ID: "1", Name: "Robot Transformer Deluxe", Price: 299000, Image: PlaceholderImage, Stock: true, Category: "robot", Rating: 4.8},
		{ID: "2", Name: "Boneka Teddy Bear Jumbo", Price: 150000, Image: PlaceholderImage, Stock: true, Category: "boneka", Rating: 4.9},
		{ID: "3", Name: "Lego Building Set Castle", Price: 450000, Image: PlaceholderImage, Stock: false, Category: "lego", Rating: 4.7},
		{ID: "4", Name: "Remote Control Car Racing", Price: 350000, Image: PlaceholderImage, Stock: true, Category: "mobil", Rating: 4.6},
		{ID: "5", Name: "Puzzle 1000 Pieces", Price: 85000, Image: PlaceholderImage, Stock: true, Category: "puzzle", Rating: 4.5},
		{ID: "6", Name: "Action Figure Superhero", Price: 125000, Image: PlaceholderImage, Stock: false, Category: "action-figure", Rating: 4.8},
	}
}

func cloneProducts(in []Product) []Product {
	out := make([]Product, len(in))
	copy(out, in)
	return out
}
