package sqlite

import (
	"context"
	"fmt"

	"record-service/internal/models"
)

type productRow struct {
	ID          int64
	Name        string
	Description string
	Price       int64
}

func productToRow(p models.Product) productRow {
	return productRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
}

func (r productRow) toModel() *models.Product {
	return &models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
	}
}

func (s *Store) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	row := productToRow(p)
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO products (name, description, price) VALUES (?, ?, ?)",
		row.Name, row.Description, row.Price,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	if row.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read product id: %w", err)
	}
	return row.toModel(), nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var row productRow
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, price FROM products WHERE id = ?", id,
	).Scan(&row.ID, &row.Name, &row.Description, &row.Price)
	if err != nil {
		return nil, notFound(err)
	}
	return row.toModel(), nil
}
