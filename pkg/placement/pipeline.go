package placement

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/worldcanvas/pkg/accounts"
	"github.com/cbodonnell/worldcanvas/pkg/canvas"
	"github.com/cbodonnell/worldcanvas/pkg/canvas/grid"
	"github.com/cbodonnell/worldcanvas/pkg/history"
	"github.com/cbodonnell/worldcanvas/pkg/log"
	"github.com/cbodonnell/worldcanvas/pkg/store"
)

// CooldownGraceMs shaves a small grace off the enforced cooldown so that a
// client timer that fires right on the boundary is not rejected by clock
// skew between client and server.
const CooldownGraceMs = 5000

// Pipeline runs place, delete and identity commands against the store.
// Commands validate and commit synchronously; bookkeeping after the commit
// is best-effort and never fails the command.
type Pipeline struct {
	store       store.Store
	accounts    *accounts.Manager
	history     *history.Log
	state       *EditorState
	now         func() time.Time
	persistChan chan<- history.Entry
}

type NewPipelineOptions struct {
	Store    store.Store
	Accounts *accounts.Manager
	History  *history.Log
	State    *EditorState
	// Now overrides the clock, used in tests. Defaults to time.Now.
	Now func() time.Time
	// HistoryPersistChan, if set, receives a copy of every committed
	// history entry. Sends never block; a full channel drops the copy.
	HistoryPersistChan chan<- history.Entry
}

func NewPipeline(opts NewPipelineOptions) *Pipeline {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	state := opts.State
	if state == nil {
		state = DefaultEditorState()
	}
	return &Pipeline{
		store:       opts.Store,
		accounts:    opts.Accounts,
		history:     opts.History,
		state:       state,
		now:         now,
		persistChan: opts.HistoryPersistChan,
	}
}

// State returns the editor state the pipeline enforces.
func (p *Pipeline) State() *EditorState {
	return p.state
}

// PlaceObject validates the serialized record for uid and commits it to the
// target chunk. It returns the key the object was stored under.
func (p *Pipeline) PlaceObject(ctx context.Context, uid string, record string) (string, error) {
	account, err := p.requireAccount(ctx, uid)
	if err != nil {
		return "", err
	}

	nowMs := p.now().UnixMilli()
	if cmdErr := p.checkEventWindow(nowMs, account); cmdErr != nil {
		return "", cmdErr
	}
	if cmdErr := checkCooldown(nowMs, account.LastPlaced, effectiveCooldownSec(account.PlaceCooldownSec, p.state.PlaceCooldownSec)); cmdErr != nil {
		return "", cmdErr
	}

	obj, err := canvas.ParseObject(record)
	if err != nil {
		return "", newError(KindInvalidArgument, "malformed object record: %v", err)
	}
	if cmdErr := validateObject(obj, p.state); cmdErr != nil {
		return "", cmdErr
	}

	chunkID := grid.ChunkOf(obj.X, obj.Y)

	// Optimistically take a slot in the chunk counter. If that pushes the
	// chunk over its limit the slot is handed back and the command fails.
	count, err := p.store.IncrementCounter(ctx, store.ObjectCountPath(chunkID.String()), 1)
	if err != nil {
		return "", fmt.Errorf("failed to reserve chunk capacity: %v", err)
	}
	if count > int64(p.state.ChunkObjectLimit) {
		p.releaseChunkSlot(ctx, chunkID)
		return "", newError(KindResourceExhausted, "chunk %s is full (%d objects)", chunkID, p.state.ChunkObjectLimit)
	}

	key, err := p.store.Push(ctx, store.ChunkPath(chunkID.String()), obj.Serialize())
	if err != nil {
		p.releaseChunkSlot(ctx, chunkID)
		return "", fmt.Errorf("failed to commit object: %v", err)
	}

	p.afterPlace(ctx, uid, account, chunkID, key, obj.Serialize(), nowMs)
	return key, nil
}

// DeleteObject removes objectKey from the chunk. Deleting a key that is no
// longer present succeeds without effect, so racing deletes both succeed.
func (p *Pipeline) DeleteObject(ctx context.Context, uid string, chunkID string, objectKey string) error {
	account, err := p.requireAccount(ctx, uid)
	if err != nil {
		return err
	}

	nowMs := p.now().UnixMilli()
	if cmdErr := p.checkEventWindow(nowMs, account); cmdErr != nil {
		return cmdErr
	}
	if cmdErr := checkCooldown(nowMs, account.LastDeleted, effectiveCooldownSec(account.DeleteCooldownSec, p.state.DeleteCooldownSec)); cmdErr != nil {
		return cmdErr
	}

	if objectKey == "" {
		return newError(KindInvalidArgument, "object key is required")
	}
	parsed, err := grid.ParseChunkID(chunkID)
	if err != nil {
		return newError(KindInvalidArgument, "malformed chunk id %q: %v", chunkID, err)
	}

	if err := p.store.Delete(ctx, store.ObjectPath(parsed.String(), objectKey)); err != nil {
		return fmt.Errorf("failed to delete object: %v", err)
	}

	p.afterDelete(ctx, uid, account, parsed, objectKey, nowMs)
	return nil
}

// InitIdentity claims username for uid and creates its account. The claim
// is case-insensitive, first writer wins.
func (p *Pipeline) InitIdentity(ctx context.Context, uid string, username string) (*accounts.Account, error) {
	if uid == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}
	if err := accounts.ValidateUsername(username); err != nil {
		return nil, newError(KindInvalidArgument, "invalid username: %v", err)
	}

	if _, err := p.accounts.Get(ctx, uid); err == nil {
		return nil, newError(KindAlreadyExists, "identity already initialized")
	} else if !accounts.IsNotFound(err) {
		return nil, fmt.Errorf("failed to look up account: %v", err)
	}

	claimed, err := p.accounts.ClaimUsername(ctx, username, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to claim username: %v", err)
	}
	if !claimed {
		return nil, newError(KindAlreadyExists, "username %q is taken", username)
	}

	account := &accounts.Account{Username: username}
	if err := p.accounts.Put(ctx, uid, account); err != nil {
		if relErr := p.accounts.ReleaseUsername(ctx, username); relErr != nil {
			log.Error("failed to release username %q after account write failure: %v", username, relErr)
		}
		return nil, fmt.Errorf("failed to create account: %v", err)
	}

	if _, err := p.accounts.IncrementUserCount(ctx); err != nil {
		log.Warn("failed to increment user count: %v", err)
	}

	return account, nil
}

func (p *Pipeline) requireAccount(ctx context.Context, uid string) (*accounts.Account, error) {
	if uid == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}
	account, err := p.accounts.Get(ctx, uid)
	if err != nil {
		if accounts.IsNotFound(err) {
			return nil, newError(KindUnauthenticated, "identity not initialized")
		}
		return nil, fmt.Errorf("failed to look up account: %v", err)
	}
	return account, nil
}

func (p *Pipeline) checkEventWindow(nowMs int64, account *accounts.Account) *CommandError {
	if account.Admin {
		return nil
	}
	if nowMs < p.state.EventStart {
		return newError(KindPermissionDenied, "the event has not started")
	}
	if p.state.EventEnd > 0 && nowMs >= p.state.EventEnd {
		return newError(KindPermissionDenied, "the event has ended")
	}
	return nil
}

func checkCooldown(nowMs, lastMs int64, cooldownSec int) *CommandError {
	if lastMs <= 0 {
		return nil
	}
	cooldownMs := int64(cooldownSec)*1000 - CooldownGraceMs
	if cooldownMs < 0 {
		cooldownMs = 0
	}
	elapsed := nowMs - lastMs
	if elapsed < cooldownMs {
		remaining := time.Duration(cooldownMs-elapsed) * time.Millisecond
		return newError(KindResourceExhausted, "cooldown active, %s remaining", remaining.Round(time.Second))
	}
	return nil
}

func effectiveCooldownSec(override *int, fallback int) int {
	if override != nil {
		return *override
	}
	return fallback
}

func (p *Pipeline) releaseChunkSlot(ctx context.Context, chunkID grid.ChunkID) {
	if _, err := p.store.IncrementCounter(ctx, store.ObjectCountPath(chunkID.String()), -1); err != nil {
		log.Error("failed to release chunk slot for %s: %v", chunkID, err)
	}
}

func (p *Pipeline) afterPlace(ctx context.Context, uid string, account *accounts.Account, chunkID grid.ChunkID, key string, record string, nowMs int64) {
	if err := p.accounts.TouchLastPlaced(ctx, uid, nowMs); err != nil {
		log.Warn("failed to record last placement time for %s: %v", account.Username, err)
	}
	if err := p.store.Set(ctx, store.UserPlacedPath(key), account.Username); err != nil {
		log.Warn("failed to record ownership of %s: %v", key, err)
	}
	entry := history.Entry{
		Key:          key,
		ChunkID:      chunkID.String(),
		PlacedObject: &record,
		Timestamp:    nowMs,
		Username:     account.Username,
	}
	p.appendHistory(ctx, entry)
	if _, err := p.store.IncrementCounter(ctx, store.PathTotalPlaced, 1); err != nil {
		log.Warn("failed to increment total placed counter: %v", err)
	}
}

func (p *Pipeline) afterDelete(ctx context.Context, uid string, account *accounts.Account, chunkID grid.ChunkID, key string, nowMs int64) {
	if err := p.accounts.TouchLastDeleted(ctx, uid, nowMs); err != nil {
		log.Warn("failed to record last deletion time for %s: %v", account.Username, err)
	}
	if err := p.store.Delete(ctx, store.UserPlacedPath(key)); err != nil {
		log.Warn("failed to clear ownership of %s: %v", key, err)
	}
	entry := history.Entry{
		Key:       key,
		ChunkID:   chunkID.String(),
		Timestamp: nowMs,
		Username:  account.Username,
	}
	p.appendHistory(ctx, entry)
	count, err := p.store.IncrementCounter(ctx, store.ObjectCountPath(chunkID.String()), -1)
	if err != nil {
		log.Warn("failed to decrement object count for %s: %v", chunkID, err)
	} else if count < 0 {
		log.Warn("object count for %s went negative (%d)", chunkID, count)
	}
	if _, err := p.store.IncrementCounter(ctx, store.PathTotalDeleted, 1); err != nil {
		log.Warn("failed to increment total deleted counter: %v", err)
	}
}

func (p *Pipeline) appendHistory(ctx context.Context, entry history.Entry) {
	seq, err := p.history.Append(ctx, &entry)
	if err != nil {
		log.Warn("failed to append history entry for %s: %v", entry.Key, err)
		return
	}
	entry.Seq = seq
	if p.persistChan != nil {
		select {
		case p.persistChan <- entry:
		default:
			log.Warn("history persist channel full, dropping entry %s", entry.Key)
		}
	}
}
