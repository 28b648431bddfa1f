// Package mirror keeps the client's local copy of the streamed canvas:
// one scene object per placed object, plus a spatial index for cursor
// hit tests.
package mirror

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/cbodonnell/worldcanvas/pkg/canvas"
	"github.com/cbodonnell/worldcanvas/pkg/canvas/grid"
	"github.com/cbodonnell/worldcanvas/pkg/canvas/registry"
	"github.com/cbodonnell/worldcanvas/pkg/log"
	"github.com/solarlune/resolv"
)

const (
	// baseObjectSize is the unscaled edge length of an object's hit box
	// in world units.
	baseObjectSize = 30
	// spaceCellSize is the resolv cell size. One cell per base object
	// keeps cell occupancy low across the long thin world.
	spaceCellSize = 30

	// Blended layers draw in a separate pass. Their draw order collapses
	// to either far-background or far-foreground around this cutoff.
	blendingZCutoff     = 45
	blendingForegroundZ = 120
	blendingBackgroundZ = -1
)

// SceneObject is one placed object as the client renders it.
type SceneObject struct {
	ChunkID grid.ChunkID
	Key     string
	Object  canvas.PlacedObject

	// RenderX and RenderY are the sprite anchor after the type's intrinsic
	// offset is rotated into place.
	RenderX float64
	RenderY float64
	// RenderZ is the draw order after the blending remap.
	RenderZ int

	body *resolv.Object
}

// SceneMirror holds the loaded chunks' objects. Safe for concurrent use;
// stream events and the frame loop touch it from different goroutines.
type SceneMirror struct {
	labels *LabelSet
	now    func() time.Time

	mu     sync.Mutex
	chunks map[grid.ChunkID]map[string]*SceneObject
	space  *resolv.Space
}

type NewSceneMirrorOptions struct {
	// Labels, when set, receives a delete label for every removal whose
	// user the stream could name.
	Labels *LabelSet
	// Now overrides the label clock, used in tests.
	Now func() time.Time
}

func NewSceneMirror(opts NewSceneMirrorOptions) *SceneMirror {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SceneMirror{
		labels: opts.Labels,
		now:    now,
		chunks: make(map[grid.ChunkID]map[string]*SceneObject),
		space:  resolv.NewSpace(grid.WorldEndX, grid.WorldEndY, spaceCellSize, spaceCellSize),
	}
}

// ObjectAdded inserts an object from the chunk stream. A malformed record
// is logged and dropped rather than poisoning the chunk.
func (m *SceneMirror) ObjectAdded(chunkID grid.ChunkID, key, record string) {
	obj, err := canvas.ParseObject(record)
	if err != nil {
		log.Warn("Dropping malformed object %s in chunk %s: %v", key, chunkID, err)
		return
	}

	scene := &SceneObject{
		ChunkID: chunkID,
		Key:     key,
		Object:  *obj,
	}
	scene.RenderX, scene.RenderY = renderPosition(obj)
	scene.RenderZ = renderOrder(obj)

	size := baseObjectSize * obj.Scale
	scene.body = resolv.NewObject(obj.X-size/2, obj.Y-size/2, size, size)
	scene.body.Data = scene

	m.mu.Lock()
	defer m.mu.Unlock()

	chunk, ok := m.chunks[chunkID]
	if !ok {
		chunk = make(map[string]*SceneObject)
		m.chunks[chunkID] = chunk
	}
	if prev, ok := chunk[key]; ok {
		m.space.Remove(prev.body)
	}
	chunk[key] = scene
	m.space.Add(scene.body)
}

// ObjectRemoved drops an object and, when the stream named the user,
// spawns a fading label at the object's position. Removing a key that is
// not present still spawns the label off the carried record, matching
// the server's idempotent delete.
func (m *SceneMirror) ObjectRemoved(chunkID grid.ChunkID, key, record, username string) {
	var x, y float64
	located := false

	m.mu.Lock()
	if chunk, ok := m.chunks[chunkID]; ok {
		if scene, ok := chunk[key]; ok {
			delete(chunk, key)
			m.space.Remove(scene.body)
			if len(chunk) == 0 {
				delete(m.chunks, chunkID)
			}
			x, y = scene.Object.X, scene.Object.Y
			located = true
		}
	}
	m.mu.Unlock()

	if m.labels == nil || username == "" {
		return
	}
	if !located {
		obj, err := canvas.ParseObject(record)
		if err != nil {
			return
		}
		x, y = obj.X, obj.Y
	}
	m.labels.Spawn(username, x, y, m.now())
}

// ChunkUnloaded drops every object of an unloaded chunk.
func (m *SceneMirror) ChunkUnloaded(chunkID grid.ChunkID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chunk, ok := m.chunks[chunkID]
	if !ok {
		return
	}
	for _, scene := range chunk {
		m.space.Remove(scene.body)
	}
	delete(m.chunks, chunkID)
}

// ApplyAdd replays a historical placement.
func (m *SceneMirror) ApplyAdd(chunkID, key, record string) {
	parsed, err := grid.ParseChunkID(chunkID)
	if err != nil {
		log.Warn("Dropping replayed object %s with malformed chunk id %q: %v", key, chunkID, err)
		return
	}
	m.ObjectAdded(parsed, key, record)
}

// ApplyRemove replays a historical deletion. Replay never animates
// labels.
func (m *SceneMirror) ApplyRemove(chunkID, key string) {
	parsed, err := grid.ParseChunkID(chunkID)
	if err != nil {
		log.Warn("Dropping replayed removal %s with malformed chunk id %q: %v", key, chunkID, err)
		return
	}
	m.ObjectRemoved(parsed, key, "", "")
}

// Get returns an object by chunk and key.
func (m *SceneMirror) Get(chunkID grid.ChunkID, key string) (*SceneObject, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	scene, ok := m.chunks[chunkID][key]
	return scene, ok
}

// ObjectsAt returns the objects whose hit box contains the point, topmost
// first.
func (m *SceneMirror) ObjectsAt(x, y float64) []*SceneObject {
	m.mu.Lock()
	defer m.mu.Unlock()

	probe := resolv.NewObject(x, y, 1, 1)
	m.space.Add(probe)
	defer m.space.Remove(probe)

	collision := probe.Check(0, 0)
	if collision == nil {
		return nil
	}

	var hits []*SceneObject
	for _, body := range collision.Objects {
		scene, ok := body.Data.(*SceneObject)
		if !ok {
			continue
		}
		// Cells are coarse; confirm against the exact box.
		if x < body.Position.X || x >= body.Position.X+body.Size.X ||
			y < body.Position.Y || y >= body.Position.Y+body.Size.Y {
			continue
		}
		hits = append(hits, scene)
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].RenderZ > hits[j].RenderZ
	})
	return hits
}

// ObjectCount returns the total number of mirrored objects.
func (m *SceneMirror) ObjectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, chunk := range m.chunks {
		count += len(chunk)
	}
	return count
}

// ChunkObjectCount returns the number of mirrored objects in one chunk.
func (m *SceneMirror) ChunkObjectCount(chunkID grid.ChunkID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chunks[chunkID])
}

// renderPosition applies the type's intrinsic sprite offset, rotated with
// the object and mirrored when flipped.
func renderPosition(obj *canvas.PlacedObject) (float64, float64) {
	meta, ok := registry.Lookup(obj.TypeID)
	if !ok {
		return obj.X, obj.Y
	}

	offX := meta.OffsetX
	offY := meta.OffsetY
	if obj.Flip {
		offX = -offX
	}

	rad := -float64(obj.Rotation) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	rotX := offX*cos - offY*sin
	rotY := offX*sin + offY*cos

	return obj.X + rotX*obj.Scale, obj.Y + rotY*obj.Scale
}

// renderOrder returns the effective draw order. Layers with blending
// enabled on the main color draw in a separate additive pass either
// behind everything or in front of everything.
func renderOrder(obj *canvas.PlacedObject) int {
	if !obj.MainColor.Blending {
		return obj.ZOrder
	}
	if obj.ZOrder >= blendingZCutoff {
		return blendingForegroundZ
	}
	return blendingBackgroundZ
}
