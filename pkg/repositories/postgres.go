package repositories

import (
	"context"
	"fmt"

	"github.com/cbodonnell/worldcanvas/pkg/log"
	"github.com/cbodonnell/worldcanvas/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database at connStr.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	var username string
	var database string
	if err := conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database); err != nil {
		return nil, fmt.Errorf("failed to query database: %v", err)
	}
	log.Info("Connected to %s as %s", database, username)

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveUserAccount(ctx context.Context, account *models.UserAccount) error {
	q := `
	INSERT INTO user_accounts (uid, username, last_placed, last_deleted, admin)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (uid) DO UPDATE SET username = $2, last_placed = $3, last_deleted = $4, admin = $5;
	`
	_, err := r.conn.Exec(ctx, q, account.UID, account.Username, account.LastPlaced, account.LastDeleted, account.Admin)
	if err != nil {
		return fmt.Errorf("failed to insert user account: %v", err)
	}

	return nil
}

func (r *PostgresRepository) LoadUserAccount(ctx context.Context, uid string) (*models.UserAccount, error) {
	q := `
	SELECT username, last_placed, last_deleted, admin FROM user_accounts WHERE uid = $1;
	`
	account := &models.UserAccount{UID: uid}
	if err := r.conn.QueryRow(ctx, q, uid).Scan(&account.Username, &account.LastPlaced, &account.LastDeleted, &account.Admin); err != nil {
		if err == pgx.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan user account: %v", err)
	}

	return account, nil
}

func (r *PostgresRepository) SaveUserAccounts(ctx context.Context, timestamp int64, accounts []*models.UserAccount) error {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	for _, account := range accounts {
		q := `
		INSERT INTO user_accounts (uid, username, last_placed, last_deleted, admin, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (uid) DO UPDATE SET username = $2, last_placed = $3, last_deleted = $4, admin = $5, updated_at = $6;
		`
		_, err = tx.Exec(ctx, q, account.UID, account.Username, account.LastPlaced, account.LastDeleted, account.Admin, timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert user account: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *PostgresRepository) SaveHistoryEntry(ctx context.Context, entry *models.HistoryEntry) error {
	q := `
	INSERT INTO history_entries (seq, chunk_id, key, record, timestamp, username)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (seq) DO NOTHING;
	`
	_, err := r.conn.Exec(ctx, q, entry.Seq, entry.ChunkID, entry.Key, entry.Record, entry.Timestamp, entry.Username)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %v", err)
	}

	return nil
}

func (r *PostgresRepository) LoadHistoryEntries(ctx context.Context, afterSeq int64) ([]*models.HistoryEntry, error) {
	q := `
	SELECT seq, chunk_id, key, record, timestamp, username FROM history_entries
	WHERE seq > $1 ORDER BY seq;
	`
	rows, err := r.conn.Query(ctx, q, afterSeq)
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
