package store

import (
	"context"
	"database/sql"
	"errors"
)

// Estados de una orden de servicio de taller.
const (
	ServicePending    = "pending"
	ServiceInProgress = "in_progress"
	ServiceCompleted  = "completed"
)

func ValidServiceStatus(st string) bool {
	return st == ServicePending || st == ServiceInProgress || st == ServiceCompleted
}

type ServiceOrder struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	CarID       int64  `json:"car_id"`
	LocationID  int64  `json:"location_id"`
	ServiceDate string `json:"service_date"`
	Description string `json:"description"`
	CostCents   int64  `json:"cost_cents"`
	Status      string `json:"status"`

	// joined for display
	LocationName    string `json:"location_name,omitempty"`
	LocationAddress string `json:"location_address,omitempty"`
}

func (s *Store) AddService(ctx context.Context, o *ServiceOrder) (int64, error) {
	if o.Status == "" {
		o.Status = ServicePending
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO services(user_id,car_id,location_id,service_date,description,cost_cents,status)
VALUES(?,?,?,?,?,?,?)`,
		o.UserID, o.CarID, o.LocationID, o.ServiceDate, o.Description, o.CostCents, o.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const serviceSelect = `
SELECT s.id,s.user_id,s.car_id,s.location_id,s.service_date,s.description,s.cost_cents,s.status,
       l.name,l.address
FROM services s
JOIN locations l ON s.location_id = l.id`

func (s *Store) scanServices(rows *sql.Rows) ([]ServiceOrder, error) {
	defer rows.Close()
	var out []ServiceOrder
	for rows.Next() {
		var o ServiceOrder
		if err := rows.Scan(&o.ID, &o.UserID, &o.CarID, &o.LocationID, &o.ServiceDate,
			&o.Description, &o.CostCents, &o.Status, &o.LocationName, &o.LocationAddress); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *Store) ListServices(ctx context.Context) ([]ServiceOrder, error) {
	rows, err := s.db.QueryContext(ctx, serviceSelect+` ORDER BY s.id`)
	if err != nil {
		return nil, err
	}
	return s.scanServices(rows)
}

func (s *Store) GetService(ctx context.Context, id int64) (*ServiceOrder, error) {
	row := s.db.QueryRowContext(ctx, serviceSelect+` WHERE s.id=?`, id)
	var o ServiceOrder
	if err := row.Scan(&o.ID, &o.UserID, &o.CarID, &o.LocationID, &o.ServiceDate,
		&o.Description, &o.CostCents, &o.Status, &o.LocationName, &o.LocationAddress); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (s *Store) ServicesByUser(ctx context.Context, userID int64) ([]ServiceOrder, error) {
	rows, err := s.db.QueryContext(ctx, serviceSelect+` WHERE s.user_id=? ORDER BY s.id`, userID)
	if err != nil {
		return nil, err
	}
	return s.scanServices(rows)
}

func (s *Store) ServicesByLocation(ctx context.Context, locationID int64) ([]ServiceOrder, error) {
	rows, err := s.db.QueryContext(ctx, serviceSelect+` WHERE s.location_id=? ORDER BY s.id`, locationID)
	if err != nil {
		return nil, err
	}
	return s.scanServices(rows)
}

func (s *Store) UpdateService(ctx context.Context, id int64, o *ServiceOrder) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
UPDATE services SET location_id=?, service_date=?, description=?, cost_cents=?, status=?
WHERE id=?`,
		o.LocationID, o.ServiceDate, o.Description, o.CostCents, o.Status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) UpdateServiceStatus(ctx context.Context, id int64, status string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE services SET status=? WHERE id=?`, status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) DeleteService(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
