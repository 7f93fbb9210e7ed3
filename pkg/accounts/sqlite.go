package accounts

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	_ "modernc.org/sqlite"
)

// scrypt parameters for deriving the sealing key from the caller secret.
const (
	kdfN      = 1 << 15
	kdfR      = 8
	kdfP      = 1
	saltSize  = 16
	metaSalt  = "kdf_salt"
	schemaDDL = `
		CREATE TABLE IF NOT EXISTS accounts (
			service     TEXT NOT NULL,
			username    TEXT NOT NULL,
			data        BLOB NOT NULL,
			updated_at  INTEGER NOT NULL,
			PRIMARY KEY (service, username)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key    TEXT PRIMARY KEY,
			value  BLOB NOT NULL
		);`
)

// SQLiteStore is a Store backed by a local SQLite database.
// Account records are sealed with XChaCha20-Poly1305 before they touch
// disk; the key is derived from the caller's secret with scrypt and a
// per-database random salt.
type SQLiteStore struct {
	db  *sql.DB
	key []byte
}

// storedAccount is the encrypted row payload.
type storedAccount struct {
	Username   string            `json:"username"`
	Properties map[string]string `json:"properties"`
}

// NewSQLiteStore opens (or creates) the database at path and prepares
// the sealing key. The secret must be non-empty; losing it makes
// existing records unreadable.
func NewSQLiteStore(path, secret string) (*SQLiteStore, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	salt, err := loadOrCreateSalt(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	key, err := scrypt.Key([]byte(secret), salt, kdfN, kdfR, kdfP, chacha20poly1305.KeySize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("derive key: %w", err)
	}

	return &SQLiteStore{db: db, key: key}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns all accounts stored for a service, ordered by username.
func (s *SQLiteStore) List(ctx context.Context, serviceID string) ([]*Account, error) {
	if serviceID == "" {
		return nil, ErrMissingServiceID
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM accounts WHERE service = ? ORDER BY username`, serviceID)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var out []*Account
	for rows.Next() {
		var sealed []byte
		if err := rows.Scan(&sealed); err != nil {
			return nil, err
		}
		acc, err := s.open(sealed)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, rows.Err()
}

// Save inserts or replaces the account for (serviceID, account.Username).
func (s *SQLiteStore) Save(ctx context.Context, serviceID string, account *Account) error {
	if serviceID == "" {
		return ErrMissingServiceID
	}
	if account == nil {
		return ErrNilAccount
	}

	sealed, err := s.seal(account)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO accounts (service, username, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (service, username) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		serviceID, account.Username, sealed, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// Delete removes the account for (serviceID, username).
func (s *SQLiteStore) Delete(ctx context.Context, serviceID, username string) error {
	if serviceID == "" {
		return ErrMissingServiceID
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM accounts WHERE service = ? AND username = ?`, serviceID, username)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) seal(account *Account) ([]byte, error) {
	plain, err := json.Marshal(storedAccount{
		Username:   account.Username,
		Properties: account.Properties,
	})
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plain, nil), nil
}

func (s *SQLiteStore) open(sealed []byte) (*Account, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, ErrDecrypt
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Join(ErrDecrypt, err)
	}

	var rec storedAccount
	if err := json.Unmarshal(plain, &rec); err != nil {
		return nil, errors.Join(ErrDecrypt, err)
	}
	return New(rec.Username, rec.Properties), nil
}

func loadOrCreateSalt(db *sql.DB) ([]byte, error) {
	var salt []byte
	err := db.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaSalt).Scan(&salt)
	switch {
	case err == nil:
		return salt, nil
	case errors.Is(err, sql.ErrNoRows):
		salt = make([]byte, saltSize)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, err
		}
		if _, err := db.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, metaSalt, salt); err != nil {
			return nil, fmt.Errorf("store salt: %w", err)
		}
		return salt, nil
	default:
		return nil, fmt.Errorf("load salt: %w", err)
	}
}
