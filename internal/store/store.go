package store

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite" // driver 100% Go
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database and runs the migration.
func Open(dbPath string) (*Store, error) {
	// _pragma busy_timeout para evitar "database is locked"
	dsn := "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout=5000&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxIdleTime(2 * time.Minute)
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS users(
  id            INTEGER PRIMARY KEY AUTOINCREMENT,
  name          TEXT NOT NULL,
  email         TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  phone         TEXT NOT NULL,
  role          TEXT NOT NULL,
  created_unix  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS sessions(
  token        TEXT PRIMARY KEY,
  user_id      INTEGER NOT NULL,
  role         TEXT NOT NULL,
  expires_unix INTEGER NOT NULL,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS cars(
  id           INTEGER PRIMARY KEY AUTOINCREMENT,
  model        TEXT NOT NULL,
  brand        TEXT NOT NULL,
  year         INTEGER NOT NULL,
  price_cents  INTEGER NOT NULL,
  availability INTEGER NOT NULL DEFAULT 1,
  image        TEXT
);
CREATE TABLE IF NOT EXISTS locations(
  id      INTEGER PRIMARY KEY AUTOINCREMENT,
  name    TEXT NOT NULL,
  address TEXT NOT NULL,
  phone   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS reservations(
  id                INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id           INTEGER NOT NULL,
  car_id            INTEGER NOT NULL,
  start_date        TEXT NOT NULL,
  end_date          TEXT NOT NULL,
  total_price_cents INTEGER NOT NULL,
  status            TEXT NOT NULL DEFAULT 'pending'
);
CREATE TABLE IF NOT EXISTS services(
  id           INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id      INTEGER NOT NULL,
  car_id       INTEGER NOT NULL,
  location_id  INTEGER NOT NULL,
  service_date TEXT NOT NULL,
  description  TEXT NOT NULL,
  cost_cents   INTEGER NOT NULL,
  status       TEXT NOT NULL DEFAULT 'pending'
);
CREATE TABLE IF NOT EXISTS spare_parts(
  id             INTEGER PRIMARY KEY AUTOINCREMENT,
  name           TEXT NOT NULL,
  brand          TEXT NOT NULL,
  price_cents    INTEGER NOT NULL,
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK(stock_quantity >= 0),
  location_id    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS spare_part_bookings(
  id            INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id       INTEGER NOT NULL,
  spare_part_id INTEGER NOT NULL,
  quantity      INTEGER NOT NULL,
  created_unix  INTEGER NOT NULL,
  FOREIGN KEY(spare_part_id) REFERENCES spare_parts(id)
);
CREATE INDEX IF NOT EXISTS idx_reservations_user ON reservations(user_id);
CREATE INDEX IF NOT EXISTS idx_services_user ON services(user_id);
CREATE INDEX IF NOT EXISTS idx_services_location ON services(location_id);
CREATE INDEX IF NOT EXISTS idx_bookings_user ON spare_part_bookings(user_id);
CREATE INDEX IF NOT EXISTS idx_sessions_expiry ON sessions(expires_unix);
`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// BeginTx opens a transaction for callers that coordinate several
// statements, like the reservation engine.
func (s *Store) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// seed inicial opcional (para pruebas)
func (s *Store) Seed(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt := `
INSERT INTO spare_parts(id,name,brand,price_cents,stock_quantity,location_id)
VALUES(?,?,?,?,?,?)
ON CONFLICT(id) DO NOTHING;
`
	inserts := [][]any{
		{1, "Brake pad set", "Brembo", 8990, 25, 1},
		{2, "Oil filter", "Mann", 1250, 60, 1},
		{3, "Timing belt", "Gates", 4550, 0, 2},
		{4, "Spark plug", "NGK", 780, 120, 2},
		{5, "Clutch kit", "Sachs", 21900, 3, 1},
	}
	for _, v := range inserts {
		if _, err := tx.ExecContext(ctx, stmt, v...); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO locations(id,name,address,phone)
VALUES(1,'Downtown','Cra 45 #12-30','555-0101'),(2,'North','Av 68 #90-15','555-0102')
ON CONFLICT(id) DO NOTHING;`); err != nil {
		return err
	}
	return tx.Commit()
}

func nowUnix() int64 { return time.Now().Unix() }
