// Package store persists chunk snapshots in a SQLite database so removed
// chunks come back the way they left.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/Faultbox/solis/internal/logger"
	"github.com/Faultbox/solis/internal/terrain"
)

// Store errors.
var (
	ErrNotFound    = errors.New("chunk snapshot not found")
	ErrBadSnapshot = errors.New("unsupported chunk snapshot")
)

// Store is a SQLite-backed chunk snapshot index. Safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string
}

// Info describes a stored snapshot row without decoding its payload.
type Info struct {
	Seed      int64
	Coord     terrain.Coord
	Bytes     int
	UpdatedAt time.Time
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("chunk store opened", zap.String("path", path))
	return &Store{db: db, path: path}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS chunks (
			seed INTEGER NOT NULL,
			cx INTEGER NOT NULL,
			cy INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			margin INTEGER NOT NULL,
			occupied INTEGER NOT NULL,
			decorations INTEGER NOT NULL,
			payload BLOB NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (seed, cx, cy)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Save writes snap, replacing any earlier snapshot of the same chunk.
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	snap.Version = SnapshotVersion
	blob, err := encodeSnapshot(&snap)
	if err != nil {
		return fmt.Errorf("chunk %s: %w", snap.Coord, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO chunks (seed, cx, cy, width, height, margin, occupied, decorations, payload, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(seed, cx, cy) DO UPDATE SET
			width = excluded.width,
			height = excluded.height,
			margin = excluded.margin,
			occupied = excluded.occupied,
			decorations = excluded.decorations,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		snap.Seed, snap.Coord.X, snap.Coord.Y,
		snap.Layout.Width, snap.Layout.Height, snap.Layout.Margin,
		snap.Occupied(), len(snap.Decorations),
		blob, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving chunk %s: %w", snap.Coord, err)
	}
	return nil
}

// Load returns the snapshot of chunk c for a planet seed.
func (s *Store) Load(ctx context.Context, seed int64, c terrain.Coord) (Snapshot, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM chunks WHERE seed = ? AND cx = ? AND cy = ?`,
		seed, c.X, c.Y,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: seed %d chunk %s", ErrNotFound, seed, c)
	}
	if err != nil {
		return Snapshot{}, err
	}

	snap, err := decodeSnapshot(blob)
	if err != nil {
		return Snapshot{}, fmt.Errorf("chunk %s: %w", c, err)
	}
	return snap, nil
}

// Delete removes a chunk snapshot. Deleting a missing row is not an error.
func (s *Store) Delete(ctx context.Context, seed int64, c terrain.Coord) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM chunks WHERE seed = ? AND cx = ? AND cy = ?`,
		seed, c.X, c.Y,
	)
	return err
}

// Count returns the number of stored snapshots.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// List returns every stored row ordered by seed and coordinate.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seed, cx, cy, length(payload), updated_at FROM chunks ORDER BY seed, cy, cx`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Info
	for rows.Next() {
		var (
			info    Info
			updated string
		)
		if err := rows.Scan(&info.Seed, &info.Coord.X, &info.Coord.Y, &info.Bytes, &updated); err != nil {
			return nil, err
		}
		info.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
