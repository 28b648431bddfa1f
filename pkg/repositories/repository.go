package repositories

import (
	"context"

	"github.com/cbodonnell/worldcanvas/pkg/repositories/models"
)

type Repository interface {
	Close(ctx context.Context) error
	SaveUserAccount(ctx context.Context, account *models.UserAccount) error
	LoadUserAccount(ctx context.Context, uid string) (*models.UserAccount, error)
	SaveUserAccounts(ctx context.Context, timestamp int64, accounts []*models.UserAccount) error
	SaveHistoryEntry(ctx context.Context, entry *models.HistoryEntry) error
	LoadHistoryEntries(ctx context.Context, afterSeq int64) ([]*models.HistoryEntry, error)
}
