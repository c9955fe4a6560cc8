// Package clientdata provides persistent caching for external service responses.
// Values are stored as msgpack blobs with expiration timestamps for cache-first behavior.
package clientdata

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache tables in client_data.db
const (
	TableNarratives = "narratives"
	TableListings   = "listings"
)

// AllTables lists all tables in client_data.db for cleanup operations.
var AllTables = []string{
	TableNarratives,
	TableListings,
}

// keyColumns maps each table to its primary key column; it doubles as the
// table allow-list so table names never come from user input.
var keyColumns = map[string]string{
	TableNarratives: "prompt_hash",
	TableListings:   "query_hash",
}

// Repository provides cache operations for client data.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new client data repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func keyColumn(table string) (string, error) {
	col, ok := keyColumns[table]
	if !ok {
		return "", fmt.Errorf("invalid table name: %s", table)
	}
	return col, nil
}

// Store saves data with expiration = now + ttl.
// Uses INSERT OR REPLACE to upsert data.
func (r *Repository) Store(table, key string, data interface{}, ttl time.Duration) error {
	keyCol, err := keyColumn(table)
	if err != nil {
		return err
	}

	blob, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	expiresAt := time.Now().Add(ttl).Unix()
	query := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s, data, expires_at) VALUES (?, ?, ?)",
		table, keyCol,
	)

	if _, err := r.db.Exec(query, key, blob, expiresAt); err != nil {
		return fmt.Errorf("failed to store data in %s: %w", table, err)
	}
	return nil
}

// GetIfFresh decodes the entry into out only if it has not expired.
// Returns false when the key is missing or expired.
func (r *Repository) GetIfFresh(table, key string, out interface{}) (bool, error) {
	keyCol, err := keyColumn(table)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf("SELECT data FROM %s WHERE %s = ? AND expires_at > ?", table, keyCol)
	return r.load(table, query, out, key, time.Now().Unix())
}

// Get decodes the entry into out regardless of expiration status.
// Use this as a fallback when the external service fails.
func (r *Repository) Get(table, key string, out interface{}) (bool, error) {
	keyCol, err := keyColumn(table)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf("SELECT data FROM %s WHERE %s = ?", table, keyCol)
	return r.load(table, query, out, key)
}

func (r *Repository) load(table, query string, out interface{}, args ...interface{}) (bool, error) {
	var blob []byte
	err := r.db.QueryRow(query, args...).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get data from %s: %w", table, err)
	}

	if err := msgpack.Unmarshal(blob, out); err != nil {
		return false, fmt.Errorf("failed to decode data from %s: %w", table, err)
	}
	return true, nil
}

// Delete removes a specific entry.
func (r *Repository) Delete(table, key string) error {
	keyCol, err := keyColumn(table)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, keyCol)
	if _, err := r.db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

// DeleteExpired removes all rows where expires_at < now.
// Returns the number of rows deleted.
func (r *Repository) DeleteExpired(table string) (int64, error) {
	if _, err := keyColumn(table); err != nil {
		return 0, err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE expires_at < ?", table)
	result, err := r.db.Exec(query, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired from %s: %w", table, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected for %s: %w", table, err)
	}
	return deleted, nil
}
