package store

import (
	"context"
	"database/sql"
)

// Booking is one journal entry: who reserved what and how much. Rows are
// inserted only by the reservation engine and never updated or deleted.
type Booking struct {
	ID          int64 `json:"id"`
	UserID      int64 `json:"user_id"`
	PartID      int64 `json:"spare_part_id"`
	Quantity    int32 `json:"quantity"`
	CreatedUnix int64 `json:"created_unix"`
}

// BookingView is a Booking joined with descriptive part/user fields for
// the dashboard.
type BookingView struct {
	Booking
	PartName   string `json:"part_name"`
	PartBrand  string `json:"brand"`
	PriceCents int64  `json:"price_cents"`
	UserName   string `json:"user_name,omitempty"`
}

// InsertBooking appends to the journal inside the caller's reservation
// transaction; it only becomes visible at commit.
func (s *Store) InsertBooking(ctx context.Context, tx *sql.Tx, userID, partID int64, qty int32) (int64, error) {
	res, err := tx.ExecContext(ctx, `
INSERT INTO spare_part_bookings(user_id,spare_part_id,quantity,created_unix)
VALUES(?,?,?,?)`,
		userID, partID, qty, nowUnix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) BookingsByUser(ctx context.Context, userID int64) ([]BookingView, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT b.id,b.user_id,b.spare_part_id,b.quantity,b.created_unix,
       p.name,p.brand,p.price_cents
FROM spare_part_bookings b
JOIN spare_parts p ON b.spare_part_id = p.id
WHERE b.user_id=? ORDER BY b.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookingView
	for rows.Next() {
		var v BookingView
		if err := rows.Scan(&v.ID, &v.UserID, &v.PartID, &v.Quantity, &v.CreatedUnix,
			&v.PartName, &v.PartBrand, &v.PriceCents); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// AllBookings additionally joins the requesting user's name; reserved
// for employee/supervisor views.
func (s *Store) AllBookings(ctx context.Context) ([]BookingView, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT b.id,b.user_id,b.spare_part_id,b.quantity,b.created_unix,
       p.name,p.brand,p.price_cents,u.name
FROM spare_part_bookings b
JOIN spare_parts p ON b.spare_part_id = p.id
JOIN users u ON b.user_id = u.id
ORDER BY b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookingView
	for rows.Next() {
		var v BookingView
		if err := rows.Scan(&v.ID, &v.UserID, &v.PartID, &v.Quantity, &v.CreatedUnix,
			&v.PartName, &v.PartBrand, &v.PriceCents, &v.UserName); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
