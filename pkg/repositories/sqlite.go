package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbodonnell/worldcanvas/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	dir, err := os.ReadDir(migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}

	for _, entry := range dir {
		if entry.IsDir() {
			continue
		}

		migrationPath := filepath.Join(migrations, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}

		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			return nil, fmt.Errorf("failed to execute migration %s: %v", migrationPath, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveUserAccount(ctx context.Context, account *models.UserAccount) error {
	q := `
	INSERT OR REPLACE INTO user_accounts (uid, username, last_placed, last_deleted, admin)
	VALUES (?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, account.UID, account.Username, account.LastPlaced, account.LastDeleted, account.Admin)
	if err != nil {
		return fmt.Errorf("failed to insert user account: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) LoadUserAccount(ctx context.Context, uid string) (*models.UserAccount, error) {
	q := `
	SELECT username, last_placed, last_deleted, admin FROM user_accounts WHERE uid = ?;
	`
	account := &models.UserAccount{UID: uid}
	if err := r.db.QueryRowContext(ctx, q, uid).Scan(&account.Username, &account.LastPlaced, &account.LastDeleted, &account.Admin); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan user account: %v", err)
	}

	return account, nil
}

func (r *SQLiteRepository) SaveUserAccounts(ctx context.Context, timestamp int64, accounts []*models.UserAccount) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	for _, account := range accounts {
		q := `
		INSERT OR REPLACE INTO user_accounts (uid, username, last_placed, last_deleted, admin, updated_at)
		VALUES (?, ?, ?, ?, ?, ?);
		`
		_, err = tx.ExecContext(ctx, q, account.UID, account.Username, account.LastPlaced, account.LastDeleted, account.Admin, timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert user account: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) SaveHistoryEntry(ctx context.Context, entry *models.HistoryEntry) error {
	q := `
	INSERT OR IGNORE INTO history_entries (seq, chunk_id, key, record, timestamp, username)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, entry.Seq, entry.ChunkID, entry.Key, entry.Record, entry.Timestamp, entry.Username)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) LoadHistoryEntries(ctx context.Context, afterSeq int64) ([]*models.HistoryEntry, error) {
	q := `
	SELECT seq, chunk_id, key, record, timestamp, username FROM history_entries
	WHERE seq > ? ORDER BY seq;
	`
	rows, err := r.db.QueryContext(ctx, q, afterSeq)
	if err != nil {
		return nil, fmt.Errorf("failed to query history entries: %v", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		entry := &models.HistoryEntry{}
		if err := rows.Scan(&entry.Seq, &entry.ChunkID, &entry.Key, &entry.Record, &entry.Timestamp, &entry.Username); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %v", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
