package catalog

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jeanmendescs/marketplace/internal/core/domain"
)

func TestNewStatic_LoadsEmbeddedCatalog(t *testing.T) {
	cat, err := NewStatic()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	products := cat.Products()
	if len(products) == 0 {
		t.Fatal("expected embedded catalog to have products")
	}

	seen := make(map[int]bool)
	for _, p := range products {
		if seen[p.ID] {
			t.Errorf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = true

		if p.Name == "" {
			t.Errorf("product %d has empty name", p.ID)
		}
		if p.Price.IsNegative() {
			t.Errorf("product %d has negative price %s", p.ID, p.Price)
		}
	}
}

func TestGetProductByID(t *testing.T) {
	cat, err := NewStatic()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, ok := cat.GetProductByID(1)
	if !ok {
		t.Fatal("expected product 1 to exist")
	}
	if p.ID != 1 {
		t.Errorf("expected id 1, got %d", p.ID)
	}

	if _, ok := cat.GetProductByID(9999); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestFromProducts(t *testing.T) {
	products := []domain.Product{
		{ID: 7, Name: "Lava Lamp", Price: decimal.NewFromInt(25)},
	}

	cat := FromProducts(products)

	p, ok := cat.GetProductByID(7)
	if !ok || p.Name != "Lava Lamp" {
		t.Errorf("unexpected lookup result: %+v ok=%v", p, ok)
	}

	// Products returns a copy; mutating it must not leak into the catalog.
	out := cat.Products()
	out[0].Name = "changed"
	p, _ = cat.GetProductByID(7)
	if p.Name != "Lava Lamp" {
		t.Error("catalog mutated through Products() slice")
	}
}
