package workers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cbodonnell/worldcanvas/pkg/accounts"
	"github.com/cbodonnell/worldcanvas/pkg/history"
	"github.com/cbodonnell/worldcanvas/pkg/log"
	"github.com/cbodonnell/worldcanvas/pkg/repositories"
	"github.com/cbodonnell/worldcanvas/pkg/repositories/models"
	"github.com/cbodonnell/worldcanvas/pkg/store"
)

type SaveCanvasStateWorker struct {
	repository       repositories.Repository
	store            store.Store
	historyEntryChan <-chan history.Entry
	interval         time.Duration
}

type NewSaveCanvasStateWorkerOptions struct {
	Repository       repositories.Repository
	Store            store.Store
	HistoryEntryChan <-chan history.Entry
	Interval         time.Duration
}

// NewSaveCanvasStateWorker creates a new SaveCanvasStateWorker.
// The worker persists committed history entries as they arrive and
// periodically snapshots all user accounts to the repository.
func NewSaveCanvasStateWorker(opts NewSaveCanvasStateWorkerOptions) *SaveCanvasStateWorker {
	return &SaveCanvasStateWorker{
		repository:       opts.Repository,
		store:            opts.Store,
		historyEntryChan: opts.HistoryEntryChan,
		interval:         opts.Interval,
	}
}

func (w *SaveCanvasStateWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case entry := <-w.historyEntryChan:
			w.saveHistoryEntry(ctx, entry)
		case t := <-ticker.C:
			w.saveUserAccounts(ctx, t.UnixMilli())
		}
	}
}

func (w *SaveCanvasStateWorker) saveHistoryEntry(ctx context.Context, entry history.Entry) {
	err := w.repository.SaveHistoryEntry(ctx, &models.HistoryEntry{
		Seq:       entry.Seq,
		ChunkID:   entry.ChunkID,
		Key:       entry.Key,
		Record:    entry.PlacedObject,
		Timestamp: entry.Timestamp,
		Username:  entry.Username,
	})
	if err != nil {
		log.Error("Failed to save history entry: %v", err)
	}
}

func (w *SaveCanvasStateWorker) saveUserAccounts(ctx context.Context, timestamp int64) {
	children, err := w.store.GetChildren(ctx, store.PathUserData)
	if err != nil {
		log.Error("Failed to list user accounts: %v", err)
		return
	}

	var snapshot []*models.UserAccount
	for uid, value := range children {
		account := &accounts.Account{}
		if err := json.Unmarshal([]byte(value), account); err != nil {
			log.Error("Failed to decode account for %s: %v", uid, err)
			continue
		}
		snapshot = append(snapshot, &models.UserAccount{
			UID:         uid,
			Username:    account.Username,
			LastPlaced:  account.LastPlaced,
			LastDeleted: account.LastDeleted,
			Admin:       account.Admin,
		})
	}
	if len(snapshot) == 0 {
		return
	}

	if err := w.repository.SaveUserAccounts(ctx, timestamp, snapshot); err != nil {
		log.Error("Failed to save user accounts: %v", err)
	}
}
