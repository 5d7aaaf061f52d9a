package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jeanmendescs/marketplace/internal/core/domain"
)

// MySQLAdapter reads the product catalog out of MySQL. The read happens once
// at startup; the resulting catalog is immutable like the embedded one.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, description, price, image, alt
		FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var price string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Image, &p.Alt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse price for product %d: %w", p.ID, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}
