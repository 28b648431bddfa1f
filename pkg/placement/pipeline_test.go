package placement

import (
	"context"
	"testing"
	"time"

	"github.com/cbodonnell/worldcanvas/pkg/accounts"
	"github.com/cbodonnell/worldcanvas/pkg/history"
	"github.com/cbodonnell/worldcanvas/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_000_000_000_000)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type pipelineFixture struct {
	store    *store.MemoryStore
	accounts *accounts.Manager
	history  *history.Log
	clock    *fakeClock
	pipeline *Pipeline
}

func newPipelineFixture(t *testing.T, state *EditorState) *pipelineFixture {
	t.Helper()
	s := store.NewMemoryStore()
	manager := accounts.NewManager(s)
	historyLog := history.NewLog(s)
	clock := newFakeClock()
	pipeline := NewPipeline(NewPipelineOptions{
		Store:    s,
		Accounts: manager,
		History:  historyLog,
		State:    state,
		Now:      clock.Now,
	})
	return &pipelineFixture{
		store:    s,
		accounts: manager,
		history:  historyLog,
		clock:    clock,
		pipeline: pipeline,
	}
}

func (f *pipelineFixture) initUser(t *testing.T, uid, username string) {
	t.Helper()
	_, err := f.pipeline.InitIdentity(context.Background(), uid, username)
	require.NoError(t, err)
}

const validRecord = "1;150;450;0;0;1.0;5;ffffff;0;1;ffffff;0;1"

func TestPipeline_InitIdentity(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, nil)

	account, err := f.pipeline.InitIdentity(ctx, "uid-1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)

	// The same uid cannot initialize twice.
	_, err = f.pipeline.InitIdentity(ctx, "uid-1", "alice2")
	assert.True(t, IsAlreadyExists(err))

	// The username is taken case-insensitively.
	_, err = f.pipeline.InitIdentity(ctx, "uid-2", "ALICE")
	assert.True(t, IsAlreadyExists(err))

	// A different name still works.
	_, err = f.pipeline.InitIdentity(ctx, "uid-2", "bob")
	assert.NoError(t, err)

	count, err := f.store.GetCounter(ctx, store.PathUserCount)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestPipeline_InitIdentity_Invalid(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, nil)

	_, err := f.pipeline.InitIdentity(ctx, "", "alice")
	assert.True(t, IsUnauthenticated(err))

	for _, username := range []string{"ab", "this-name-is-far-too-long", "bad name", "admin"} {
		_, err := f.pipeline.InitIdentity(ctx, "uid-1", username)
		assert.True(t, IsInvalidArgument(err), "username %q should be rejected", username)
	}
}

func TestPipeline_PlaceObject(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, nil)
	f.initUser(t, "uid-1", "alice")

	key, err := f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	// The object landed in its chunk under the returned key.
	children, err := f.store.GetChildren(ctx, store.ChunkPath("0,0"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{key: validRecord}, children)

	// Counters and history reflect the commit.
	count, err := f.store.GetCounter(ctx, store.ObjectCountPath("0,0"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	entries, err := f.history.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, key, entries[0].Key)
	assert.Equal(t, "alice", entries[0].Username)
	assert.True(t, entries[0].IsPlacement())
	assert.Equal(t, validRecord, *entries[0].PlacedObject)
}

func TestPipeline_PlaceObject_Auth(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, nil)

	_, err := f.pipeline.PlaceObject(ctx, "", validRecord)
	assert.True(t, IsUnauthenticated(err))

	// A verified uid that never initialized its identity is rejected too.
	_, err = f.pipeline.PlaceObject(ctx, "uid-unknown", validRecord)
	assert.True(t, IsUnauthenticated(err))
}

func TestPipeline_PlaceObject_Cooldown(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, nil)
	f.initUser(t, "uid-1", "alice")

	_, err := f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	require.NoError(t, err)

	// Immediately after, the cooldown blocks.
	_, err = f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	assert.True(t, IsResourceExhausted(err))

	// One millisecond before the grace-adjusted threshold still blocks.
	f.clock.Advance(295*time.Second - time.Millisecond)
	_, err = f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	assert.True(t, IsResourceExhausted(err))

	// At the threshold the command goes through.
	f.clock.Advance(time.Millisecond)
	_, err = f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	assert.NoError(t, err)
}

func TestPipeline_PlaceObject_CooldownOverride(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, nil)
	f.initUser(t, "uid-1", "alice")

	account, err := f.accounts.Get(ctx, "uid-1")
	require.NoError(t, err)
	short := 10
	account.PlaceCooldownSec = &short
	require.NoError(t, f.accounts.Put(ctx, "uid-1", account))

	_, err = f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	require.NoError(t, err)

	// 10s cooldown minus the 5s grace.
	f.clock.Advance(4 * time.Second)
	_, err = f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	assert.True(t, IsResourceExhausted(err))

	f.clock.Advance(time.Second)
	_, err = f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	assert.NoError(t, err)
}

func TestPipeline_PlaceObject_EventWindow(t *testing.T) {
	ctx := context.Background()
	clockStart := newFakeClock().Now().UnixMilli()

	state := DefaultEditorState()
	state.EventStart = clockStart + 60_000
	f := newPipelineFixture(t, state)
	f.initUser(t, "uid-1", "alice")
	f.initUser(t, "uid-admin", "carol")

	adminAccount, err := f.accounts.Get(ctx, "uid-admin")
	require.NoError(t, err)
	adminAccount.Admin = true
	require.NoError(t, f.accounts.Put(ctx, "uid-admin", adminAccount))

	// Before the event opens, regular users are rejected.
	_, err = f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	assert.True(t, IsPermissionDenied(err))

	// Admins bypass the window.
	_, err = f.pipeline.PlaceObject(ctx, "uid-admin", validRecord)
	assert.NoError(t, err)

	// Once the event opens, the command succeeds.
	f.clock.Advance(time.Minute)
	_, err = f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	assert.NoError(t, err)

	// After the event closes, regular users are rejected again.
	state.EventEnd = f.clock.Now().UnixMilli()
	err = f.pipeline.DeleteObject(ctx, "uid-1", "0,0", "some-key")
	assert.True(t, IsPermissionDenied(err))
}

func TestPipeline_PlaceObject_Validation(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, nil)
	f.initUser(t, "uid-1", "alice")

	for _, record := range []string{
		"",
		"not a record",
		"999999;150;450;0;0;1.0;5;ffffff;0;1;ffffff;0;1",
		"1;-10;450;0;0;1.0;5;ffffff;0;1;ffffff;0;1",
		"1;150;450;45;0;1.0;5;ffffff;0;1;ffffff;0;1",
	} {
		_, err := f.pipeline.PlaceObject(ctx, "uid-1", record)
		assert.True(t, IsInvalidArgument(err), "record %q should be rejected", record)
	}

	// A rejected command takes no chunk capacity.
	count, err := f.store.GetCounter(ctx, store.ObjectCountPath("0,0"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPipeline_PlaceObject_ChunkCapacity(t *testing.T) {
	ctx := context.Background()
	state := DefaultEditorState()
	state.ChunkObjectLimit = 1
	zero := 0
	f := newPipelineFixture(t, state)
	f.initUser(t, "uid-1", "alice")

	account, err := f.accounts.Get(ctx, "uid-1")
	require.NoError(t, err)
	account.PlaceCooldownSec = &zero
	account.DeleteCooldownSec = &zero
	require.NoError(t, f.accounts.Put(ctx, "uid-1", account))

	key, err := f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	require.NoError(t, err)

	f.clock.Advance(time.Second)
	_, err = f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	assert.True(t, IsResourceExhausted(err))

	// The failed reservation was handed back.
	count, err := f.store.GetCounter(ctx, store.ObjectCountPath("0,0"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Deleting frees the slot for the next placement.
	f.clock.Advance(time.Second)
	require.NoError(t, f.pipeline.DeleteObject(ctx, "uid-1", "0,0", key))
	f.clock.Advance(time.Second)
	_, err = f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	assert.NoError(t, err)
}

func TestPipeline_DeleteByAnotherUserFreesCapacity(t *testing.T) {
	ctx := context.Background()
	state := DefaultEditorState()
	state.ChunkObjectLimit = 1
	f := newPipelineFixture(t, state)
	f.initUser(t, "uid-1", "alice")
	f.initUser(t, "uid-2", "bob")

	key, err := f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	require.NoError(t, err)

	// The chunk is full for everyone, not just the placer.
	_, err = f.pipeline.PlaceObject(ctx, "uid-2", validRecord)
	assert.True(t, IsResourceExhausted(err))

	require.NoError(t, f.pipeline.DeleteObject(ctx, "uid-2", "0,0", key))

	count, err := f.store.GetCounter(ctx, store.ObjectCountPath("0,0"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// The deletion is attributed to the deleting user, with no record.
	entries, err := f.history.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[1].IsPlacement())
	assert.Nil(t, entries[1].PlacedObject)
	assert.Equal(t, "bob", entries[1].Username)
}

func TestPipeline_DeleteObject(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, nil)
	f.initUser(t, "uid-1", "alice")

	key, err := f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	require.NoError(t, err)

	require.NoError(t, f.pipeline.DeleteObject(ctx, "uid-1", "0,0", key))

	children, err := f.store.GetChildren(ctx, store.ChunkPath("0,0"))
	require.NoError(t, err)
	assert.Empty(t, children)

	count, err := f.store.GetCounter(ctx, store.ObjectCountPath("0,0"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	entries, err := f.history.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[1].IsPlacement())
	assert.Equal(t, key, entries[1].Key)
}

func TestPipeline_DeleteObject_AbsentKeyIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, nil)
	f.initUser(t, "uid-1", "alice")

	// Deleting a key that was never placed, or was already deleted by a
	// concurrent command, succeeds.
	assert.NoError(t, f.pipeline.DeleteObject(ctx, "uid-1", "0,0", "no-such-key"))
}

func TestPipeline_DeleteObject_Invalid(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, nil)
	f.initUser(t, "uid-1", "alice")

	err := f.pipeline.DeleteObject(ctx, "uid-1", "0,0", "")
	assert.True(t, IsInvalidArgument(err))

	err = f.pipeline.DeleteObject(ctx, "uid-1", "not-a-chunk", "some-key")
	assert.True(t, IsInvalidArgument(err))

	err = f.pipeline.DeleteObject(ctx, "", "0,0", "some-key")
	assert.True(t, IsUnauthenticated(err))
}

func TestPipeline_DeleteCooldownIndependentOfPlace(t *testing.T) {
	ctx := context.Background()
	f := newPipelineFixture(t, nil)
	f.initUser(t, "uid-1", "alice")

	key, err := f.pipeline.PlaceObject(ctx, "uid-1", validRecord)
	require.NoError(t, err)

	// Placing does not start the delete cooldown.
	require.NoError(t, f.pipeline.DeleteObject(ctx, "uid-1", "0,0", key))

	// But a second delete is on cooldown.
	err = f.pipeline.DeleteObject(ctx, "uid-1", "0,0", "other-key")
	assert.True(t, IsResourceExhausted(err))
}
