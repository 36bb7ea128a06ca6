package sqlite

import (
	"context"
	"fmt"
	"time"

	"record-service/internal/models"
)

// Dates are stored as RFC 3339 UTC text so they sort and compare lexically.
const dateLayout = time.RFC3339Nano

type orderRow struct {
	ID        int64
	UserID    int64
	ProductID int64
	Date      string
	Status    string
}

func orderToRow(o models.Order) orderRow {
	return orderRow{
		ID:        o.ID,
		UserID:    o.UserID,
		ProductID: o.ProductID,
		Date:      o.Date.UTC().Format(dateLayout),
		Status:    o.Status,
	}
}

func (r orderRow) toModel() (*models.Order, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date of order %d: %w", r.ID, err)
	}
	return &models.Order{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Date:      date,
		Status:    r.Status,
	}, nil
}

// CreateOrder inserts o as given. Referenced users and products are not
// checked here.
func (s *Store) CreateOrder(ctx context.Context, o models.Order) (*models.Order, error) {
	row := orderToRow(o)
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO orders (user_id, product_id, date, status) VALUES (?, ?, ?, ?)",
		row.UserID, row.ProductID, row.Date, row.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	if row.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read order id: %w", err)
	}
	return row.toModel()
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var row orderRow
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, product_id, date, status FROM orders WHERE id = ?", id,
	).Scan(&row.ID, &row.UserID, &row.ProductID, &row.Date, &row.Status)
	if err != nil {
		return nil, notFound(err)
	}
	return row.toModel()
}
