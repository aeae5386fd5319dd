// Package sqlite is the storage layer backing the parse service: service
// account credentials, keyed the same way the rest of this codebase's
// sqlite-backed stores are (pure-Go driver, schema created on open).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Account is a service account allowed to call the parse service. SecretHash
// is a bcrypt hash, never the plaintext secret.
type Account struct {
	ID             uuid.UUID
	Name           string
	SecretHash     string
	Created        time.Time
	LastLogoutTime time.Time
}

// AccountsDB stores service accounts in a sqlite database.
type AccountsDB struct {
	db *sql.DB
}

// NewAccountsDBConn opens (creating if needed) the sqlite database at file
// and ensures its schema exists.
func NewAccountsDBConn(file string) (*AccountsDB, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, fmt.Errorf("open accounts db: %w", err)
	}
	repo := &AccountsDB{db: db}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func (repo *AccountsDB) init() error {
	const stmt = `CREATE TABLE IF NOT EXISTS accounts (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		secret_hash TEXT NOT NULL,
		created INTEGER NOT NULL,
		last_logout INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return fmt.Errorf("init accounts schema: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (repo *AccountsDB) Close() error {
	return repo.db.Close()
}

// Create inserts a new account with the given name and bcrypt secret hash.
func (repo *AccountsDB) Create(ctx context.Context, name, secretHash string) (Account, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Account{}, fmt.Errorf("generate account id: %w", err)
	}
	now := time.Now()

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, secret_hash, created, last_logout) VALUES (?, ?, ?, ?, ?)`,
		id.String(), name, secretHash, now.Unix(), 0,
	)
	if err != nil {
		return Account{}, fmt.Errorf("create account: %w", err)
	}
	return Account{ID: id, Name: name, SecretHash: secretHash, Created: now}, nil
}

// GetByName retrieves an account by its name.
func (repo *AccountsDB) GetByName(ctx context.Context, name string) (Account, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT id, name, secret_hash, created, last_logout FROM accounts WHERE name = ?`, name)
	return scanAccount(row)
}

// GetByID retrieves an account by its ID.
func (repo *AccountsDB) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT id, name, secret_hash, created, last_logout FROM accounts WHERE id = ?`, id.String())
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (Account, error) {
	var (
		idStr      string
		name       string
		secretHash string
		created    int64
		lastLogout int64
	)
	if err := row.Scan(&idStr, &name, &secretHash, &created, &lastLogout); err != nil {
		if err == sql.ErrNoRows {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("scan account: %w", err)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return Account{}, fmt.Errorf("parse account id: %w", err)
	}
	return Account{
		ID:             id,
		Name:           name,
		SecretHash:     secretHash,
		Created:        time.Unix(created, 0),
		LastLogoutTime: time.Unix(lastLogout, 0),
	}, nil
}

// ErrNotFound is returned when an account lookup finds no matching row.
var ErrNotFound = fmt.Errorf("account not found")
