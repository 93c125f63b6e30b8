package store

import (
	"context"
	"database/sql"
	"errors"
)

type Car struct {
	ID           int64  `json:"id"`
	Model        string `json:"model"`
	Brand        string `json:"brand"`
	Year         int32  `json:"year"`
	PriceCents   int64  `json:"price_cents"`
	Availability bool   `json:"availability"`
	Image        string `json:"image,omitempty"`
}

func (s *Store) AddCar(ctx context.Context, c *Car) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO cars(model,brand,year,price_cents,availability,image)
VALUES(?,?,?,?,?,?)`,
		c.Model, c.Brand, c.Year, c.PriceCents, c.Availability, c.Image)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) ListCars(ctx context.Context) ([]Car, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id,model,brand,year,price_cents,availability,COALESCE(image,'')
FROM cars ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Car
	for rows.Next() {
		var c Car
		if err := rows.Scan(&c.ID, &c.Model, &c.Brand, &c.Year, &c.PriceCents, &c.Availability, &c.Image); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CarExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM cars WHERE id=?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// DeleteCar reports how many rows went away; 0 means unknown id.
func (s *Store) DeleteCar(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cars WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
