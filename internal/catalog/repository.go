package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ramatoys/storefront/internal/store"
)

// Repository loads and persists the whole product list.
type Repository interface {
	Load(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, products []Product) error
}

// SlotRepository serialises the product list into a single store slot.
type SlotRepository struct {
	store store.Store
	key   string
}

// NewRepository constructs a SlotRepository on store.ProductsSlot.
func NewRepository(s store.Store) *SlotRepository {
	return &SlotRepository{store: s, key: store.ProductsSlot}
}

// Load decodes the product slot. It returns ErrNoCatalog when the slot has
// never been written.
func (r *SlotRepository) Load(ctx context.Context) ([]Product, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, store.ErrSlotNotFound) {
			return nil, ErrNoCatalog
		}
		return nil, err
	}
	return Decode(raw)
}

// Save overwrites the product slot with the entire list.
func (r *SlotRepository) Save(ctx context.Context, products []Product) error {
	raw, err := Encode(products)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key, raw)
}

// Encode serialises products as a JSON array. A nil list encodes as [].
func Encode(products []Product) ([]byte, error) {
	if products == nil {
		products = []Product{}
	}
	return json.Marshal(products)
}

// Decode parses a JSON array of products.
func Decode(raw []byte) ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCatalog, err)
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

var _ Repository = (*SlotRepository)(nil)
