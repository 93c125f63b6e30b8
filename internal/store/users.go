package store

import (
	"context"
	"database/sql"
	"errors"
)

// Roles conocidos por el middleware de autorización.
const (
	RoleCustomer   = "customer"
	RoleEmployee   = "employee"
	RoleSupervisor = "supervisor"
)

func ValidRole(r string) bool {
	return r == RoleCustomer || r == RoleEmployee || r == RoleSupervisor
}

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	CreatedUnix  int64  `json:"created_unix"`
}

func (s *Store) CreateUser(ctx context.Context, u *User) (int64, error) {
	u.CreatedUnix = nowUnix()
	res, err := s.db.ExecContext(ctx, `
INSERT INTO users(name,email,password_hash,phone,role,created_unix)
VALUES(?,?,?,?,?,?)`,
		u.Name, u.Email, u.PasswordHash, u.Phone, u.Role, u.CreatedUnix)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id,name,email,password_hash,phone,role,created_unix
FROM users WHERE email=?`, email)
	u := &User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.CreatedUnix); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id int64) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id,name,email,password_hash,phone,role,created_unix
FROM users WHERE id=?`, id)
	u := &User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.CreatedUnix); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}
