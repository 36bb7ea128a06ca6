package sqlite

import (
	"context"
	"fmt"

	"record-service/internal/models"
)

type userRow struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func userToRow(u models.User) userRow {
	return userRow{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Password:  u.Password,
	}
}

func (r userRow) toModel() *models.User {
	return &models.User{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
	}
}

// CreateUser inserts u and returns it with the assigned id. A duplicate email
// fails with the driver's constraint error.
func (s *Store) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	row := userToRow(u)
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, email, password) VALUES (?, ?, ?, ?)",
		row.FirstName, row.LastName, row.Email, row.Password,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	if row.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}
	return row.toModel(), nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var row userRow
	err := s.db.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, email, password FROM users WHERE id = ?", id,
	).Scan(&row.ID, &row.FirstName, &row.LastName, &row.Email, &row.Password)
	if err != nil {
		return nil, notFound(err)
	}
	return row.toModel(), nil
}
