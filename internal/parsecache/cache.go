// Package parsecache implements a content-addressed cache of parse results,
// backed by a sqlite database, in the style of the rest of this codebase's
// sqlite-backed storage layer. Results are keyed by the sha256 of the exact
// source bytes handed to Parse, since the parser's output depends on nothing
// but that buffer (no external files are consulted during a parse).
package parsecache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dekarrin/rezi"
	_ "modernc.org/sqlite"
)

// Cache is a sqlite-backed store of previously computed parse results, keyed
// by the hash of their source text.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the sqlite database at file and ensures its schema
// exists.
func Open(file string) (*Cache, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, fmt.Errorf("open parse cache: %w", err)
	}
	c := &Cache{db: db}
	if err := c.init(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	const stmt = `CREATE TABLE IF NOT EXISTS parse_results (
		hash TEXT NOT NULL PRIMARY KEY,
		elements BLOB NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := c.db.Exec(stmt)
	if err != nil {
		return fmt.Errorf("init parse cache schema: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key returns the cache key for the given raw source text.
func Key(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// Get looks up a previously stored result for src's exact bytes. The second
// return value is false on a miss.
func (c *Cache) Get(ctx context.Context, src string) ([]any, bool, error) {
	row := c.db.QueryRowContext(ctx, `SELECT elements FROM parse_results WHERE hash = ?`, Key(src))

	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read parse cache: %w", err)
	}

	var elements []any
	n, err := rezi.DecBinary(blob, &elements)
	if err != nil {
		return nil, false, fmt.Errorf("decode cached parse result: %w", err)
	}
	if n != len(blob) {
		return nil, false, fmt.Errorf("decode cached parse result: consumed %d/%d bytes", n, len(blob))
	}
	return elements, true, nil
}

// Put stores elements (a parsed script's top-level ParseResult elements,
// already hook-applied) under src's content hash, overwriting any existing
// entry for the same source text.
func (c *Cache) Put(ctx context.Context, src string, elements []any) error {
	blob := rezi.EncBinary(elements)
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO parse_results (hash, elements, created) VALUES (?, ?, ?)
		 ON CONFLICT(hash) DO UPDATE SET elements = excluded.elements, created = excluded.created`,
		Key(src), blob, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write parse cache: %w", err)
	}
	return nil
}
