package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// MutationRecorder receives the outcome of each admin mutation.
type MutationRecorder interface {
	RecordMutation(op, result string)
}

// Stats summarises the catalog for the admin dashboard.
type Stats struct {
	TotalProducts int
	InStock       int
	OutOfStock    int
	TotalValue    int64
}

// Service implements catalog reads and the admin add, edit and delete flows.
// Every mutation rewrites the whole list. Mutations are serialised within
// the process; writers in other processes still overwrite each other.
type Service struct {
	repo     Repository
	recorder MutationRecorder
	now      func() time.Time

	mu    sync.Mutex
	seeds singleflight.Group
}

// NewService constructs a Service. recorder may be nil.
func NewService(repo Repository, recorder MutationRecorder) *Service {
	return &Service{repo: repo, recorder: recorder, now: time.Now}
}

// WithNow overrides the clock used for id generation.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Catalog returns the stored list, writing DefaultProducts first when the
// store has no list yet.
func (s *Service) Catalog(ctx context.Context) ([]Product, error) {
	products, err := s.repo.Load(ctx)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, ErrNoCatalog) {
		return nil, err
	}
	v, err, _ := s.seeds.Do("seed", func() (interface{}, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		products, err := s.repo.Load(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrNoCatalog) {
			return nil, err
		}
		defaults := DefaultProducts()
		if err := s.repo.Save(ctx, defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneProducts(v.([]Product)), nil
}

// Current returns the stored list without seeding; an empty store yields an
// empty list.
func (s *Service) Current(ctx context.Context) ([]Product, error) {
	products, err := s.repo.Load(ctx)
	if errors.Is(err, ErrNoCatalog) {
		return []Product{}, nil
	}
	return products, err
}

// List returns the catalog narrowed by query and category.
func (s *Service) List(ctx context.Context, query, category string) ([]Product, error) {
	products, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(products, query, category), nil
}

// Get returns the catalog product with the given id.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	products, err := s.Catalog(ctx)
	if err != nil {
		return Product{}, err
	}
	p, ok := Find(products, id)
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

// Add validates in and appends a new product.
func (s *Service) Add(ctx context.Context, in ProductInput) (Product, error) {
	v, err := validateInput(in)
	if err != nil {
		s.record("add", "invalid")
		return Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Current(ctx)
	if err != nil {
		s.record("add", "error")
		return Product{}, err
	}
	image := v.image
	if image == "" {
		image = PlaceholderImage
	}
	product := Product{
		ID:          nextID(s.now(), products),
		Name:        v.name,
		Price:       v.price,
		Image:       image,
		Stock:       v.stock,
		Category:    v.category,
		Rating:      DefaultRating,
		Description: v.description,
	}
	updated := append(cloneProducts(products), product)
	if err := s.repo.Save(ctx, updated); err != nil {
		s.record("add", "error")
		return Product{}, err
	}
	s.record("add", "ok")
	return product, nil
}

// Edit replaces the fields of the product selected for editing. The id and
// rating are kept, and the image is kept when in carries none.
func (s *Service) Edit(ctx context.Context, editingID string, in ProductInput) (Product, error) {
	if editingID == "" {
		s.record("edit", "invalid")
		return Product{}, &ValidationError{Fields: map[string]string{"editing": "Tidak ada produk yang sedang diedit"}}
	}
	v, err := validateInput(in)
	if err != nil {
		s.record("edit", "invalid")
		return Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Current(ctx)
	if err != nil {
		s.record("edit", "error")
		return Product{}, err
	}
	updated := cloneProducts(products)
	var edited Product
	found := false
	for i, p := range updated {
		if p.ID != editingID {
			continue
		}
		p.Name = v.name
		p.Price = v.price
		p.Category = v.category
		p.Stock = v.stock
		p.Description = v.description
		if v.image != "" {
			p.Image = v.image
		}
		updated[i] = p
		edited = p
		found = true
	}
	if !found {
		s.record("edit", "not_found")
		return Product{}, ErrProductNotFound
	}
	if err := s.repo.Save(ctx, updated); err != nil {
		s.record("edit", "error")
		return Product{}, err
	}
	s.record("edit", "ok")
	return edited, nil
}

// Delete removes the product with the given id once confirmed.
func (s *Service) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		s.record("delete", "unconfirmed")
		return ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Current(ctx)
	if err != nil {
		s.record("delete", "error")
		return err
	}
	remaining := make([]Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) == len(products) {
		s.record("delete", "not_found")
		return ErrProductNotFound
	}
	if err := s.repo.Save(ctx, remaining); err != nil {
		s.record("delete", "error")
		return err
	}
	s.record("delete", "ok")
	return nil
}

// Stats summarises the stored list.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	products, err := s.Current(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Summarise(products), nil
}

// Summarise computes Stats for products.
func Summarise(products []Product) Stats {
	stats := Stats{TotalProducts: len(products)}
	for _, p := range products {
		if p.Stock {
			stats.InStock++
		} else {
			stats.OutOfStock++
		}
		stats.TotalValue += p.Price
	}
	return stats
}

func (s *Service) record(op, result string) {
	if s.recorder != nil {
		s.recorder.RecordMutation(op, result)
	}
}
