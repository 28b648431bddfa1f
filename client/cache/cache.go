// Package cache manages which canvas chunks the client holds locally.
// Chunks load when they first become visible and stay loaded while
// subscribed; chunks that leave the viewport are unloaded only after
// they have been offscreen for a while, so panning back and forth does
// not thrash subscriptions.
package cache

import (
	"fmt"
	"time"

	"github.com/cbodonnell/worldcanvas/pkg/canvas/grid"
	"github.com/cbodonnell/worldcanvas/pkg/log"
)

// UnloadAfter is how long a chunk must stay offscreen before the sweep
// unloads it.
const UnloadAfter = 30 * time.Second

// ChunkEvents receives the object deltas of one subscribed chunk.
// Removals carry the removed record and, when the gateway could still
// resolve it, the username from the placed-by index.
type ChunkEvents interface {
	ObjectAdded(chunkID grid.ChunkID, key, record string)
	ObjectRemoved(chunkID grid.ChunkID, key, record, username string)
}

// Subscriber opens chunk streams. Subscribe delivers the chunk's current
// objects as adds, then live deltas, until the returned cancel func runs.
type Subscriber interface {
	Subscribe(chunkID grid.ChunkID, events ChunkEvents) (func(), error)
}

// Target is notified when the cache discards a chunk so the local copy
// can be destroyed.
type Target interface {
	ChunkEvents
	ChunkUnloaded(chunkID grid.ChunkID)
}

type chunkState struct {
	cancel      func()
	visible     bool
	lastVisible time.Time
}

// ChunkCache tracks loaded chunks against the viewport. It is not safe
// for concurrent use; the viewer drives it from a single loop.
type ChunkCache struct {
	subscriber Subscriber
	target     Target
	chunks     map[grid.ChunkID]*chunkState
}

type NewChunkCacheOptions struct {
	Subscriber Subscriber
	Target     Target
}

func NewChunkCache(opts NewChunkCacheOptions) *ChunkCache {
	return &ChunkCache{
		subscriber: opts.Subscriber,
		target:     opts.Target,
		chunks:     make(map[grid.ChunkID]*chunkState),
	}
}

// SetViewport loads any chunk that entered the viewport and marks the
// ones that left as offscreen. Calling it again with the same viewport
// is a no-op.
func (c *ChunkCache) SetViewport(viewport grid.Rect, now time.Time) error {
	visible := grid.VisibleChunks(viewport)

	for chunkID := range visible {
		state, ok := c.chunks[chunkID]
		if !ok {
			cancel, err := c.subscriber.Subscribe(chunkID, c.target)
			if err != nil {
				return fmt.Errorf("failed to subscribe to chunk %s: %v", chunkID, err)
			}
			state = &chunkState{cancel: cancel}
			c.chunks[chunkID] = state
		}
		state.visible = true
		state.lastVisible = now
	}

	for chunkID, state := range c.chunks {
		if _, ok := visible[chunkID]; ok {
			continue
		}
		if state.visible {
			state.visible = false
			state.lastVisible = now
		}
	}

	return nil
}

// SweepOffscreen unloads every chunk that has been offscreen longer than
// UnloadAfter. Visible chunks are never unloaded.
func (c *ChunkCache) SweepOffscreen(now time.Time) {
	for chunkID, state := range c.chunks {
		if state.visible {
			continue
		}
		if now.Sub(state.lastVisible) <= UnloadAfter {
			continue
		}
		log.Debug("Unloading chunk %s", chunkID)
		state.cancel()
		delete(c.chunks, chunkID)
		c.target.ChunkUnloaded(chunkID)
	}
}

// Loaded reports whether a chunk is currently held locally.
func (c *ChunkCache) Loaded(chunkID grid.ChunkID) bool {
	_, ok := c.chunks[chunkID]
	return ok
}

// Visible reports whether a chunk is currently inside the viewport.
func (c *ChunkCache) Visible(chunkID grid.ChunkID) bool {
	state, ok := c.chunks[chunkID]
	return ok && state.visible
}

// LoadedCount returns the number of locally held chunks.
func (c *ChunkCache) LoadedCount() int {
	return len(c.chunks)
}

// Close unloads every chunk.
func (c *ChunkCache) Close() {
	for chunkID, state := range c.chunks {
		state.cancel()
		delete(c.chunks, chunkID)
		c.target.ChunkUnloaded(chunkID)
	}
}
