// Package catalog provides the immutable product catalog, either embedded
// in the binary or loaded once from MySQL at startup.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/jeanmendescs/marketplace/internal/core/domain"
)

//go:embed products.json
var productsJSON []byte

// Static is an in-memory catalog. It never changes after construction.
type Static struct {
	products []domain.Product
	byID     map[int]domain.Product
}

// NewStatic builds the catalog from the embedded product data.
func NewStatic() (*Static, error) {
	var products []domain.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	return FromProducts(products), nil
}

// FromProducts builds a catalog from an externally supplied product list.
func FromProducts(products []domain.Product) *Static {
	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Static{products: products, byID: byID}
}

func (c *Static) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Static) GetProductByID(id int) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}
