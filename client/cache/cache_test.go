package cache

import (
	"testing"
	"time"

	"github.com/cbodonnell/worldcanvas/pkg/canvas/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubscriber records subscribe and cancel calls.
type fakeSubscriber struct {
	subscribed map[grid.ChunkID]int
	cancelled  map[grid.ChunkID]int
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{
		subscribed: make(map[grid.ChunkID]int),
		cancelled:  make(map[grid.ChunkID]int),
	}
}

func (f *fakeSubscriber) Subscribe(chunkID grid.ChunkID, events ChunkEvents) (func(), error) {
	f.subscribed[chunkID]++
	return func() {
		f.cancelled[chunkID]++
	}, nil
}

// fakeTarget records unload notifications.
type fakeTarget struct {
	unloaded map[grid.ChunkID]int
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{unloaded: make(map[grid.ChunkID]int)}
}

func (f *fakeTarget) ObjectAdded(chunkID grid.ChunkID, key, record string) {}

func (f *fakeTarget) ObjectRemoved(chunkID grid.ChunkID, key, record, username string) {}
func (f *fakeTarget) ChunkUnloaded(chunkID grid.ChunkID) {
	f.unloaded[chunkID]++
}

func newTestCache() (*ChunkCache, *fakeSubscriber, *fakeTarget) {
	subscriber := newFakeSubscriber()
	target := newFakeTarget()
	c := NewChunkCache(NewChunkCacheOptions{
		Subscriber: subscriber,
		Target:     target,
	})
	return c, subscriber, target
}

var testEpoch = time.UnixMilli(1_000_000_000_000)

func TestChunkCache_SetViewport_LoadsVisibleChunks(t *testing.T) {
	c, subscriber, _ := newTestCache()

	viewport := grid.Rect{MinX: 400, MinY: 400, MaxX: 800, MaxY: 800}
	require.NoError(t, c.SetViewport(viewport, testEpoch))

	for _, id := range []grid.ChunkID{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}} {
		assert.True(t, c.Loaded(id), "chunk %s should be loaded", id)
		assert.True(t, c.Visible(id), "chunk %s should be visible", id)
		assert.Equal(t, 1, subscriber.subscribed[id])
	}
	assert.Equal(t, 4, c.LoadedCount())
}

func TestChunkCache_SetViewport_Idempotent(t *testing.T) {
	c, subscriber, _ := newTestCache()

	viewport := grid.Rect{MinX: 10, MinY: 10, MaxX: 500, MaxY: 500}
	require.NoError(t, c.SetViewport(viewport, testEpoch))
	require.NoError(t, c.SetViewport(viewport, testEpoch.Add(time.Second)))

	assert.Equal(t, 1, subscriber.subscribed[grid.ChunkID{X: 0, Y: 0}])
}

func TestChunkCache_LeavingViewportKeepsChunkLoaded(t *testing.T) {
	c, subscriber, target := newTestCache()

	left := grid.Rect{MinX: 10, MinY: 10, MaxX: 500, MaxY: 500}
	right := grid.Rect{MinX: 1210, MinY: 10, MaxX: 1700, MaxY: 500}

	require.NoError(t, c.SetViewport(left, testEpoch))
	require.NoError(t, c.SetViewport(right, testEpoch.Add(time.Second)))

	origin := grid.ChunkID{X: 0, Y: 0}
	assert.True(t, c.Loaded(origin), "offscreen chunk stays loaded until swept")
	assert.False(t, c.Visible(origin))
	assert.Zero(t, subscriber.cancelled[origin])
	assert.Zero(t, target.unloaded[origin])
}

func TestChunkCache_ReenteringViewportDoesNotResubscribe(t *testing.T) {
	c, subscriber, _ := newTestCache()

	left := grid.Rect{MinX: 10, MinY: 10, MaxX: 500, MaxY: 500}
	right := grid.Rect{MinX: 1210, MinY: 10, MaxX: 1700, MaxY: 500}

	require.NoError(t, c.SetViewport(left, testEpoch))
	require.NoError(t, c.SetViewport(right, testEpoch.Add(time.Second)))
	require.NoError(t, c.SetViewport(left, testEpoch.Add(2*time.Second)))

	origin := grid.ChunkID{X: 0, Y: 0}
	assert.True(t, c.Visible(origin))
	assert.Equal(t, 1, subscriber.subscribed[origin], "panning back reuses the live subscription")
}

func TestChunkCache_SweepOffscreen(t *testing.T) {
	c, subscriber, target := newTestCache()

	left := grid.Rect{MinX: 10, MinY: 10, MaxX: 500, MaxY: 500}
	right := grid.Rect{MinX: 1210, MinY: 10, MaxX: 1700, MaxY: 500}

	require.NoError(t, c.SetViewport(left, testEpoch))
	require.NoError(t, c.SetViewport(right, testEpoch.Add(time.Second)))

	origin := grid.ChunkID{X: 0, Y: 0}
	visible := grid.ChunkID{X: 2, Y: 0}

	// Not yet past the threshold.
	c.SweepOffscreen(testEpoch.Add(time.Second + UnloadAfter))
	assert.True(t, c.Loaded(origin))

	// Past the threshold, the offscreen chunk unloads; the visible one
	// stays regardless of age.
	c.SweepOffscreen(testEpoch.Add(2*time.Second + UnloadAfter))
	assert.False(t, c.Loaded(origin))
	assert.Equal(t, 1, subscriber.cancelled[origin])
	assert.Equal(t, 1, target.unloaded[origin])
	assert.True(t, c.Loaded(visible))
	assert.Zero(t, target.unloaded[visible])
}

func TestChunkCache_UnloadedChunkReloadsOnReturn(t *testing.T) {
	c, subscriber, _ := newTestCache()

	left := grid.Rect{MinX: 10, MinY: 10, MaxX: 500, MaxY: 500}
	right := grid.Rect{MinX: 1210, MinY: 10, MaxX: 1700, MaxY: 500}

	require.NoError(t, c.SetViewport(left, testEpoch))
	require.NoError(t, c.SetViewport(right, testEpoch.Add(time.Second)))
	c.SweepOffscreen(testEpoch.Add(2*time.Second + UnloadAfter))

	require.NoError(t, c.SetViewport(left, testEpoch.Add(3*time.Second+UnloadAfter)))

	origin := grid.ChunkID{X: 0, Y: 0}
	assert.True(t, c.Loaded(origin))
	assert.Equal(t, 2, subscriber.subscribed[origin], "a swept chunk subscribes fresh on return")
}

func TestChunkCache_Close(t *testing.T) {
	c, subscriber, target := newTestCache()

	viewport := grid.Rect{MinX: 10, MinY: 10, MaxX: 500, MaxY: 500}
	require.NoError(t, c.SetViewport(viewport, testEpoch))

	c.Close()
	origin := grid.ChunkID{X: 0, Y: 0}
	assert.Zero(t, c.LoadedCount())
	assert.Equal(t, 1, subscriber.cancelled[origin])
	assert.Equal(t, 1, target.unloaded[origin])
}
