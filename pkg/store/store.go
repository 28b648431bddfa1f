// Package store defines the replicated key-value/pub-sub store the canvas
// engine runs against. The interface mirrors the primitives the transport
// provides: point reads and writes at hierarchical paths, atomic counters,
// ordered log appends, and child subscriptions that deliver an initial
// snapshot followed by add/remove deltas in commit order.
package store

import "context"

// Persisted layout. Paths are slash-separated; the final segment of a
// child path is the child key.
const (
	PathChunks      = "chunks"
	PathObjectCount = "objectCount"
	PathUserData    = "userData"
	PathUserName    = "userName"
	PathUserPlaced  = "userPlaced"
	PathHistory     = "history"
	PathEditorState = "editorState"
	PathUserCount   = "userCount"
	PathTotalPlaced = "totalPlaced"
	PathTotalDeleted = "totalDeleted"
)

// LogRecord is one entry of an ordered log. Seq is assigned by the store
// and increases by one per successful append.
type LogRecord struct {
	Seq   int64
	Value string
}

// ChildEventHandler receives child deltas for a subscribed path. For a
// given path, calls are serialized and arrive in commit order; handlers
// must not block for long.
type ChildEventHandler interface {
	ChildAdded(key, value string)
	ChildRemoved(key, value string)
}

// Subscription is a handle to an active child subscription.
type Subscription interface {
	// Cancel stops delivery. Events already in flight when Cancel is
	// called may still be dropped without being delivered.
	Cancel()
}

// Store is the replicated store collaborator.
type Store interface {
	// Get reads the value at a path. The second return is false when the
	// path has never been written or was deleted.
	Get(ctx context.Context, path string) (string, bool, error)
	// Set writes the value at a path, creating it if absent.
	Set(ctx context.Context, path string, value string) error
	// SetIfAbsent writes the value only when the path is unset and
	// reports whether the write happened. This is the store's only
	// conditional primitive and backs username claims.
	SetIfAbsent(ctx context.Context, path string, value string) (bool, error)
	// Delete removes the value at a path. Deleting an absent path is not
	// an error.
	Delete(ctx context.Context, path string) error
	// Push writes the value under parent with a fresh store-assigned key
	// and returns that key.
	Push(ctx context.Context, parent string, value string) (string, error)
	// GetChildren returns all immediate children of parent as key to
	// value.
	GetChildren(ctx context.Context, parent string) (map[string]string, error)
	// IncrementCounter atomically adds delta to the counter at path and
	// returns the new value. Counters start at zero.
	IncrementCounter(ctx context.Context, path string, delta int64) (int64, error)
	// GetCounter reads a counter without modifying it.
	GetCounter(ctx context.Context, path string) (int64, error)
	// Append appends a value to the ordered log at path and returns the
	// assigned sequence number.
	Append(ctx context.Context, path string, value string) (int64, error)
	// ReadLog returns the full log at path in append order.
	ReadLog(ctx context.Context, path string) ([]LogRecord, error)
	// Subscribe delivers the current children of parent as ChildAdded
	// events, then every subsequent add and remove, with no gap or
	// duplication between snapshot and deltas.
	Subscribe(ctx context.Context, parent string, handler ChildEventHandler) (Subscription, error)
}

// ChunkPath returns the parent path of a chunk's member objects.
func ChunkPath(chunkID string) string {
	return PathChunks + "/" + chunkID
}

// ObjectPath returns the path of one object record.
func ObjectPath(chunkID, key string) string {
	return PathChunks + "/" + chunkID + "/" + key
}

// ObjectCountPath returns the counter path for a chunk's member count.
func ObjectCountPath(chunkID string) string {
	return PathObjectCount + "/" + chunkID
}

// UserDataPath returns the path of a user's account record.
func UserDataPath(uid string) string {
	return PathUserData + "/" + uid
}

// UserNamePath returns the username-index path for a lowercase username.
func UserNamePath(lower string) string {
	return PathUserName + "/" + lower
}

// UserPlacedPath returns the placed-by index path for an object key.
func UserPlacedPath(key string) string {
	return PathUserPlaced + "/" + key
}
