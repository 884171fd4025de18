// Package store reads ASA world save databases.
//
// An ASA world save (.ark) is a SQLite database: the game table maps
// actor keys to serialized game-object blobs, and the custom table holds
// save-wide metadata such as the SaveHeader. The store opens the
// database read-only and never mutates it; the live server may still be
// writing to the file.
package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"unicode"

	_ "modernc.org/sqlite"

	"github.com/BoldPhoenix/ark-asa-parser/errs"
)

// saveHeaderKey is the custom-table key the save metadata lives under.
const saveHeaderKey = "SaveHeader"

// Store is a read-only handle on one world save database. It is safe for
// concurrent use.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	path   string
	closed bool
}

// Open opens a world save database read-only.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open world save %s: %w", path, err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string { return s.path }

// Close releases the database handle. Closing twice reports
// ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errs.ErrStoreClosed
	}
	s.closed = true

	return s.db.Close()
}

func (s *Store) handle() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errs.ErrStoreClosed
	}

	return s.db, nil
}

// SaveHeader returns the raw SaveHeader blob from the custom table.
// A save without one reports ErrNoSuchKey.
func (s *Store) SaveHeader(ctx context.Context) ([]byte, error) {
	return s.Custom(ctx, saveHeaderKey)
}

// Custom returns one value from the custom metadata table.
func (s *Store) Custom(ctx context.Context, key string) ([]byte, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	var value []byte
	err = db.QueryRowContext(ctx,
		`SELECT value FROM custom WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: custom key %q", errs.ErrNoSuchKey, key)
	}
	if err != nil {
		return nil, fmt.Errorf("query custom %q: %w", key, err)
	}

	return value, nil
}

// GameObject returns one game-object blob by actor key.
func (s *Store) GameObject(ctx context.Context, key string) ([]byte, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	for _, k := range keyCandidates(key) {
		var value []byte
		err = db.QueryRowContext(ctx,
			`SELECT value FROM game WHERE key = ?`, k).Scan(&value)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("query game object %q: %w", key, err)
		}

		return value, nil
	}

	return nil, fmt.Errorf("%w: game object %q", errs.ErrNoSuchKey, key)
}

// keyCandidates reverses keyString. Actor keys are stored as BLOBs and
// SQLite compares by storage class, so the key must be bound as bytes.
// An ID that parses as hex may also be the rendering of a binary key;
// try the raw bytes first, then the decoded form.
func keyCandidates(key string) [][]byte {
	cands := [][]byte{[]byte(key)}
	if raw, err := hex.DecodeString(key); err == nil && len(raw) > 0 {
		cands = append(cands, raw)
	}

	return cands
}

// EachGameObject streams every game-object blob to fn in key order. A
// non-nil error from fn stops the walk and is returned unchanged. The
// blob slice is only valid for the duration of the call.
func (s *Store) EachGameObject(ctx context.Context, fn func(key string, blob []byte) error) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `SELECT key, value FROM game ORDER BY key`)
	if err != nil {
		return fmt.Errorf("query game objects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key  []byte
			blob []byte
		)
		if err := rows.Scan(&key, &blob); err != nil {
			return fmt.Errorf("scan game object: %w", err)
		}
		if err := fn(keyString(key), blob); err != nil {
			return err
		}
	}

	return rows.Err()
}

// CountGameObjects returns the number of rows in the game table.
func (s *Store) CountGameObjects(ctx context.Context) (int64, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM game`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count game objects: %w", err)
	}

	return n, nil
}

// keyString renders an actor key for use as a record ID. Text keys pass
// through; binary keys are hex-encoded.
func keyString(key []byte) string {
	for _, r := range string(key) {
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return fmt.Sprintf("%x", key)
		}
	}

	return string(key)
}
