package store

import (
	"context"
	"database/sql"
	"errors"
)

// SparePart is the stock ledger row. stock_quantity is only decremented
// through the reservation engine; restocks go through SetPartStock.
type SparePart struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Brand         string `json:"brand"`
	PriceCents    int64  `json:"price_cents"`
	StockQuantity int32  `json:"stock_quantity"`
	LocationID    int64  `json:"location_id"`
}

func (s *Store) AddPart(ctx context.Context, p *SparePart) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO spare_parts(name,brand,price_cents,stock_quantity,location_id)
VALUES(?,?,?,?,?)`,
		p.Name, p.Brand, p.PriceCents, p.StockQuantity, p.LocationID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) ListParts(ctx context.Context) ([]SparePart, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id,name,brand,price_cents,stock_quantity,location_id
FROM spare_parts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SparePart
	for rows.Next() {
		var p SparePart
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.PriceCents, &p.StockQuantity, &p.LocationID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPart(ctx context.Context, id int64) (*SparePart, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id,name,brand,price_cents,stock_quantity,location_id
FROM spare_parts WHERE id=?`, id)
	p := &SparePart{}
	if err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.PriceCents, &p.StockQuantity, &p.LocationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// SetPartStock is the restock path: it overwrites the quantity outright
// and is not part of the reservation transaction.
func (s *Store) SetPartStock(ctx context.Context, id int64, qty int32) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE spare_parts SET stock_quantity=? WHERE id=?`, qty, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) DeletePart(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM spare_parts WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// --- ledger ops scoped to a reservation transaction ---

// Stock reads the available quantity. Pass a *sql.Tx while holding the
// part lock to make the read authoritative; pass nil for the optimistic
// pre-check outside the transaction.
func (s *Store) Stock(ctx context.Context, tx *sql.Tx, partID int64) (int32, error) {
	const q = `SELECT stock_quantity FROM spare_parts WHERE id=?`
	var row *sql.Row
	if tx != nil {
		row = tx.QueryRowContext(ctx, q, partID)
	} else {
		row = s.db.QueryRowContext(ctx, q, partID)
	}
	var qty int32
	if err := row.Scan(&qty); err != nil {
		return 0, err // sql.ErrNoRows cuando la pieza no existe
	}
	return qty, nil
}

// DecrementStock subtracts qty inside tx. The WHERE guard keeps the
// quantity from ever going negative even if the caller's check was
// wrong; applied=false means the guard fired.
func (s *Store) DecrementStock(ctx context.Context, tx *sql.Tx, partID int64, qty int32) (applied bool, err error) {
	res, err := tx.ExecContext(ctx, `
UPDATE spare_parts SET stock_quantity = stock_quantity - ?
WHERE id=? AND stock_quantity >= ?`, qty, partID, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
