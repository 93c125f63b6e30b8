package store

import (
	"context"
	"database/sql"
	"errors"
)

// Estados de una reserva de vehículo (test drive / renta).
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCanceled  = "canceled"
)

func ValidReservationStatus(st string) bool {
	return st == ReservationPending || st == ReservationConfirmed || st == ReservationCanceled
}

type Reservation struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	CarID           int64  `json:"car_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	TotalPriceCents int64  `json:"total_price_cents"`
	Status          string `json:"status"`
}

func (s *Store) AddReservation(ctx context.Context, r *Reservation) (int64, error) {
	if r.Status == "" {
		r.Status = ReservationPending
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO reservations(user_id,car_id,start_date,end_date,total_price_cents,status)
VALUES(?,?,?,?,?,?)`,
		r.UserID, r.CarID, r.StartDate, r.EndDate, r.TotalPriceCents, r.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) ListReservations(ctx context.Context) ([]Reservation, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id,user_id,car_id,start_date,end_date,total_price_cents,status
FROM reservations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reservation
	for rows.Next() {
		var r Reservation
		if err := rows.Scan(&r.ID, &r.UserID, &r.CarID, &r.StartDate, &r.EndDate, &r.TotalPriceCents, &r.Status); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GetReservation(ctx context.Context, id int64) (*Reservation, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id,user_id,car_id,start_date,end_date,total_price_cents,status
FROM reservations WHERE id=?`, id)
	r := &Reservation{}
	if err := row.Scan(&r.ID, &r.UserID, &r.CarID, &r.StartDate, &r.EndDate, &r.TotalPriceCents, &r.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

func (s *Store) UpdateReservationStatus(ctx context.Context, id int64, status string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE reservations SET status=? WHERE id=?`, status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) DeleteReservation(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reservations WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
