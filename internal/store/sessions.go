package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is the opaque bearer token handed out at login. Tokens live
// server-side so logout actually revokes them.
type Session struct {
	Token       string
	UserID      int64
	Role        string
	ExpiresUnix int64
}

func (s *Store) CreateSession(ctx context.Context, userID int64, role string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	expires := time.Now().Add(ttl).Unix()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO sessions(token,user_id,role,expires_unix) VALUES(?,?,?,?)`,
		token, userID, role, expires)
	if err != nil {
		return "", err
	}
	return token, nil
}

// SessionByToken returns nil when the token is unknown or expired.
func (s *Store) SessionByToken(ctx context.Context, token string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT token,user_id,role,expires_unix FROM sessions WHERE token=?`, token)
	ses := &Session{}
	if err := row.Scan(&ses.Token, &ses.UserID, &ses.Role, &ses.ExpiresUnix); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if ses.ExpiresUnix < time.Now().Unix() {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token=?`, token)
		return nil, nil
	}
	return ses, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token=?`, token)
	return err
}
