package placement

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/worldcanvas/pkg/store"
)

// EditorState is the global canvas tuning, loaded once at process start
// into an immutable struct. There is no runtime mutation path.
type EditorState struct {
	// EventStart and EventEnd bound the editing window in unix
	// milliseconds. Zero means unbounded on that side. Admins may edit
	// outside the window.
	EventStart int64 `json:"eventStart"`
	EventEnd   int64 `json:"eventEnd"`
	// PlaceCooldownSec and DeleteCooldownSec are the default per-user
	// cooldowns; accounts may carry overrides.
	PlaceCooldownSec  int `json:"placeCooldownSec"`
	DeleteCooldownSec int `json:"deleteCooldownSec"`
	// ChunkObjectLimit caps the live object count per chunk.
	ChunkObjectLimit int `json:"chunkObjectLimit"`
	// MinZOrder and MaxZOrder bound the accepted z order. The range was
	// originally [0,100] and was widened to cover the blending-layer
	// remap, which produces -1 and 120.
	MinZOrder int `json:"minZOrder"`
	MaxZOrder int `json:"maxZOrder"`
}

// DefaultEditorState returns the tuning used when the store holds none.
func DefaultEditorState() *EditorState {
	return &EditorState{
		PlaceCooldownSec:  300,
		DeleteCooldownSec: 300,
		ChunkObjectLimit:  640,
		MinZOrder:         -1,
		MaxZOrder:         121,
	}
}

// LoadEditorState reads the global state from the store, falling back to
// defaults when it has never been written.
func LoadEditorState(ctx context.Context, s store.Store) (*EditorState, error) {
	value, ok, err := s.Get(ctx, store.PathEditorState)
	if err != nil {
		return nil, fmt.Errorf("failed to read editor state: %v", err)
	}
	if !ok {
		return DefaultEditorState(), nil
	}
	state := DefaultEditorState()
	if err := json.Unmarshal([]byte(value), state); err != nil {
		return nil, fmt.Errorf("failed to decode editor state: %v", err)
	}
	return state, nil
}
