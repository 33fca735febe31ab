package catalog

import (
	"context"

	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
)

// Catalog is the read-only product collaborator. The cart consumes a
// snapshot from it at add time and never queries it again for a line item.
type Catalog interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Featured(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}
