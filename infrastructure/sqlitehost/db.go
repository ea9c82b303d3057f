// Package sqlitehost persists contract state, accounts and query tables in SQLite.
package sqlitehost

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/query/engine"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const ownerKey = "owner"

// DB implements ports.Persistence, ports.Accounts and engine.Store on SQLite.
type DB struct {
	db     *sql.DB
	logger *slog.Logger
}

var (
	_ ports.Persistence = (*DB)(nil)
	_ ports.Accounts    = (*DB)(nil)
	_ engine.Store      = (*DB)(nil)
)

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger used for schema and write diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *DB) {
		d.logger = logger
	}
}

// Open opens or creates the database at path and ensures its schema.
func Open(path string, opts ...Option) (*DB, error) {
	dsn := path
	if path != MemoryPath {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if path == MemoryPath {
		// Every connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	d := &DB{db: db, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	d.logger.Debug("state db opened", slog.String("path", path))
	return d, nil
}

func (d *DB) initSchema() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key BLOB PRIMARY KEY,
			value BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			name TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS accounts (
			key BLOB PRIMARY KEY,
			name TEXT NOT NULL,
			balance INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS rows (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tbl TEXT NOT NULL,
			data BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS rows_tbl ON rows(tbl, id);
	`)
	if err != nil {
		return fmt.Errorf("init state schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Store implements ports.Persistence.
func (d *DB) Store(ctx context.Context, key, value []byte) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, nonNil(value))
	if err != nil {
		return fmt.Errorf("store key: %w", err)
	}
	return nil
}

// Get implements ports.Persistence.
func (d *DB) Get(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := d.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %x: %w", key, sdkerrors.ErrMissingKey)
	}
	if err != nil {
		return nil, fmt.Errorf("get key: %w", err)
	}
	return nonNil(value), nil
}

// Delete implements ports.Persistence.
func (d *DB) Delete(ctx context.Context, key []byte) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete key: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete key: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete %x: %w", key, sdkerrors.ErrMissingKey)
	}
	return nil
}

// KeyExists implements ports.Persistence.
func (d *DB) KeyExists(ctx context.Context, key []byte) (bool, error) {
	var exists bool
	err := d.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM kv WHERE key = ?)`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("key exists: %w", err)
	}
	return exists, nil
}

// SetOwner records key as the owner of the contract.
func (d *DB) SetOwner(ctx context.Context, key []byte) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO meta (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		ownerKey, nonNil(key))
	if err != nil {
		return fmt.Errorf("set owner: %w", err)
	}
	return nil
}

// SetAccount creates or replaces the account registered for key.
func (d *DB) SetAccount(ctx context.Context, key []byte, name string, balance uint64) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO accounts (key, name, balance) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET name = excluded.name, balance = excluded.balance`,
		key, name, int64(balance))
	if err != nil {
		return fmt.Errorf("set account: %w", err)
	}
	return nil
}

// IsOwner implements ports.Accounts. A contract without a recorded owner has none.
func (d *DB) IsOwner(ctx context.Context, key []byte) (bool, error) {
	var owner []byte
	err := d.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE name = ?`, ownerKey).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read owner: %w", err)
	}
	return bytes.Equal(owner, key), nil
}

// AccountName implements ports.Accounts.
func (d *DB) AccountName(ctx context.Context, key []byte) (string, error) {
	var name string
	err := d.db.QueryRowContext(ctx, `SELECT name FROM accounts WHERE key = ?`, key).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("account %x: %w", key, sdkerrors.ErrMissingKey)
	}
	if err != nil {
		return "", fmt.Errorf("account name: %w", err)
	}
	return name, nil
}

// AccountBalance implements ports.Accounts.
func (d *DB) AccountBalance(ctx context.Context, key []byte) (uint64, error) {
	var balance int64
	err := d.db.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE key = ?`, key).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("account %x: %w", key, sdkerrors.ErrMissingKey)
	}
	if err != nil {
		return 0, fmt.Errorf("account balance: %w", err)
	}
	return uint64(balance), nil
}

// AppendRow implements engine.Store.
func (d *DB) AppendRow(ctx context.Context, table string, row []byte) error {
	_, err := d.db.ExecContext(ctx, `INSERT INTO rows (tbl, data) VALUES (?, ?)`, table, nonNil(row))
	if err != nil {
		return fmt.Errorf("append row to %s: %w", table, err)
	}
	return nil
}

// ScanRows implements engine.Store. Rows come back in insertion order.
func (d *DB) ScanRows(ctx context.Context, table string) ([][]byte, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT data FROM rows WHERE tbl = ? ORDER BY id`, table)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", table, err)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", table, err)
	}
	return out, nil
}

// nonNil keeps empty values out of NOT NULL columns.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
