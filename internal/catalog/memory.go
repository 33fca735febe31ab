package catalog

import (
	"context"
	"sync"

	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
)

// MemoryCatalog serves products from an in-process map.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	order    []string
}

func NewMemoryCatalog(products ...domain.Product) *MemoryCatalog {
	c := &MemoryCatalog{products: make(map[string]*domain.Product, len(products))}
	for i := range products {
		p := products[i]
		c.products[p.ID] = &p
		c.order = append(c.order, p.ID)
	}
	return c
}

// NewSeededCatalog returns a catalog preloaded with the sample apparel range.
func NewSeededCatalog() *MemoryCatalog {
	return NewMemoryCatalog(SampleProducts()...)
}

func (c *MemoryCatalog) List(_ context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		if p := c.products[id]; p.Active {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (c *MemoryCatalog) GetByID(_ context.Context, id string) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, exists := c.products[id]
	if !exists {
		return nil, domain.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (c *MemoryCatalog) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.Slug == slug {
			copied := *p
			return &copied, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (c *MemoryCatalog) Featured(_ context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []domain.Product
	for _, id := range c.order {
		if p := c.products[id]; p.Active && p.Featured {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (c *MemoryCatalog) Categories(_ context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var result []string
	for _, id := range c.order {
		p := c.products[id]
		if p.Active && !seen[p.Category] {
			seen[p.Category] = true
			result = append(result, p.Category)
		}
	}
	return result, nil
}

// SampleProducts is the static catalog used when no backing store is
// configured.
func SampleProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Slug:        "classic-denim-shirt",
			Name:        "Classic Denim Shirt",
			Description: "Premium cotton denim shirt with classic fit",
			Category:    "Shirts",
			Price:       1299,
			MRP:         1799,
			ImageURL:    "https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=600&h=800",
			Sizes:       []string{"S", "M", "L", "XL"},
			Stock:       map[string]int{"S": 15, "M": 20, "L": 18, "XL": 12},
			Rating:      4.3,
			Featured:    true,
			Active:      true,
		},
		{
			ID:          "2",
			Slug:        "oversized-cotton-tshirt",
			Name:        "Oversized Cotton T-Shirt",
			Description: "Comfortable oversized tee in premium cotton",
			Category:    "T-Shirts",
			Price:       599,
			MRP:         899,
			ImageURL:    "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=600&h=800",
			Sizes:       []string{"S", "M", "L", "XL"},
			Stock:       map[string]int{"S": 25, "M": 30, "L": 28, "XL": 20},
			Rating:      4.5,
			Active:      true,
		},
		{
			ID:          "3",
			Slug:        "slim-fit-dark-jeans",
			Name:        "Slim Fit Dark Jeans",
			Description: "Dark wash slim fit jeans with stretch comfort",
			Category:    "Jeans",
			Price:       1899,
			MRP:         2499,
			ImageURL:    "https://images.unsplash.com/photo-1542272604-787c3835535d?w=600&h=800",
			Sizes:       []string{"30", "32", "34", "36"},
			Stock:       map[string]int{"30": 10, "32": 14, "34": 12, "36": 8},
			Rating:      4.2,
			Featured:    true,
			Active:      true,
		},
		{
			ID:          "4",
			Slug:        "bomber-jacket",
			Name:        "Bomber Jacket",
			Description: "Lightweight bomber jacket for all seasons",
			Category:    "Jackets",
			Price:       2799,
			MRP:         3499,
			ImageURL:    "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=600&h=800",
			Sizes:       []string{"M", "L", "XL"},
			Stock:       map[string]int{"M": 6, "L": 9, "XL": 4},
			Rating:      4.6,
			Active:      true,
		},
		{
			ID:          "5",
			Slug:        "floral-summer-dress",
			Name:        "Floral Summer Dress",
			Description: "Breezy floral dress in soft viscose",
			Category:    "Dresses",
			Price:       1599,
			MRP:         1999,
			ImageURL:    "https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=600&h=800",
			Sizes:       []string{"S", "M", "L"},
			Stock:       map[string]int{"S": 11, "M": 13, "L": 7},
			Rating:      4.4,
			Featured:    true,
			Active:      true,
		},
	}
}
