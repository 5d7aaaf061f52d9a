package port

import "github.com/jeanmendescs/marketplace/internal/core/domain"

// Catalog exposes the static, read-only product list loaded at startup.
type Catalog interface {
	// Products returns every catalog entry.
	Products() []domain.Product

	// GetProductByID looks up a product; ok is false for unknown ids.
	GetProductByID(id int) (domain.Product, bool)
}
