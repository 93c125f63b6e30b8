package store

import (
	"context"
	"database/sql"
	"errors"
)

type Location struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (s *Store) AddLocation(ctx context.Context, l *Location) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO locations(name,address,phone) VALUES(?,?,?)`,
		l.Name, l.Address, l.Phone)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,name,address,phone FROM locations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Phone); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) GetLocation(ctx context.Context, id int64) (*Location, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name,address,phone FROM locations WHERE id=?`, id)
	l := &Location{}
	if err := row.Scan(&l.ID, &l.Name, &l.Address, &l.Phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

// UpdateLocation overwrites only the non-empty fields, keeping the rest.
func (s *Store) UpdateLocation(ctx context.Context, id int64, name, address, phone string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
UPDATE locations SET
  name    = CASE WHEN ?<>'' THEN ? ELSE name END,
  address = CASE WHEN ?<>'' THEN ? ELSE address END,
  phone   = CASE WHEN ?<>'' THEN ? ELSE phone END
WHERE id=?`,
		name, name, address, address, phone, phone, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) DeleteLocation(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM locations WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
