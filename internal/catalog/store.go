// Package catalog holds the storefront's read-only snapshot of products and
// categories. Consumers never mutate the snapshot in place; the only writes
// are a full reload and the optimistic status projection used by the admin
// availability toggle.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/repo"
)

// LoadError means the storefront has no catalog to render. There is no
// fallback menu; callers surface an "unable to load menu" state.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("unable to load menu: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type Store struct {
	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
	loaded     bool
}

func NewStore() *Store {
	return &Store{}
}

// Load replaces the snapshot with the current repository contents.
func (s *Store) Load(ctx context.Context, products repo.ProductRepository, categories repo.CategoryRepository) error {
	prods, err := products.List(ctx)
	if err != nil {
		return &LoadError{Err: err}
	}

	cats, err := categories.List(ctx)
	if err != nil {
		return &LoadError{Err: err}
	}

	for i := range cats {
		if cats[i].Emoji == "" {
			cats[i].Emoji = EmojiFor(cats[i].Name)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = prods
	s.categories = cats
	s.loaded = true

	return nil
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// ProductsByCategory returns the whole catalog for the "all" sentinel,
// otherwise the matching subset, preserving catalog order.
func (s *Store) ProductsByCategory(categoryID string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if categoryID == domain.CategoryAll {
		out := make([]domain.Product, len(s.products))
		copy(out, s.products)
		return out
	}

	var out []domain.Product
	for _, p := range s.products {
		if p.Category == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// DailySpecials is the working set fed to the carousel controller.
func (s *Store) DailySpecials() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Product
	for _, p := range s.products {
		if p.IsDailySpecial {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Categories returns the tab list with the "all" sentinel prepended.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, 0, len(s.categories)+1)
	out = append(out, domain.Category{ID: domain.CategoryAll, Name: "Todos", Emoji: "🍽️"})
	out = append(out, s.categories...)
	return out
}

// ApplyStatus flips a product's availability in the snapshot and returns the
// previous status so a failed downstream write can be compensated with the
// inverse apply.
func (s *Store) ApplyStatus(productID string, status domain.ProductStatus) (domain.ProductStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == productID {
			old := s.products[i].Status
			s.products[i].Status = status
			return old, true
		}
	}
	return "", false
}
