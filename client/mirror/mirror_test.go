package mirror

import (
	"testing"
	"time"

	"github.com/cbodonnell/worldcanvas/pkg/canvas/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRecord = "1;150;450;0;0;1.0;5;ffffff;0;1;ffffff;0;1"

func TestSceneMirror_AddAndRemove(t *testing.T) {
	m := NewSceneMirror(NewSceneMirrorOptions{})
	chunk := grid.ChunkID{X: 0, Y: 0}

	m.ObjectAdded(chunk, "k1", testRecord)
	assert.Equal(t, 1, m.ObjectCount())

	scene, ok := m.Get(chunk, "k1")
	require.True(t, ok)
	assert.Equal(t, 1, scene.Object.TypeID)
	assert.Equal(t, 150.0, scene.Object.X)
	assert.Equal(t, 5, scene.RenderZ)

	m.ObjectRemoved(chunk, "k1", testRecord, "alice")
	assert.Zero(t, m.ObjectCount())
	_, ok = m.Get(chunk, "k1")
	assert.False(t, ok)
}

func TestSceneMirror_RemoveAbsentIsNoOp(t *testing.T) {
	m := NewSceneMirror(NewSceneMirrorOptions{})
	chunk := grid.ChunkID{X: 0, Y: 0}

	m.ObjectRemoved(chunk, "never-added", "", "")
	assert.Zero(t, m.ObjectCount())

	m.ObjectAdded(chunk, "k1", testRecord)
	m.ObjectRemoved(chunk, "other", "", "")
	assert.Equal(t, 1, m.ObjectCount())
}

func TestSceneMirror_RemoveSpawnsDeleteLabel(t *testing.T) {
	labels := NewLabelSet()
	spawn := time.UnixMilli(1_000_000_000_000)
	m := NewSceneMirror(NewSceneMirrorOptions{
		Labels: labels,
		Now:    func() time.Time { return spawn },
	})
	chunk := grid.ChunkID{X: 0, Y: 0}

	m.ObjectAdded(chunk, "k1", testRecord)
	m.ObjectRemoved(chunk, "k1", testRecord, "alice")

	active := labels.Active(spawn.Add(time.Second))
	require.Len(t, active, 1)
	assert.Equal(t, "alice", active[0].Username)
	assert.Equal(t, 150.0, active[0].X)
	assert.Equal(t, 450.0, active[0].Y)

	// An unnamed removal leaves no label.
	m.ObjectAdded(chunk, "k2", testRecord)
	m.ObjectRemoved(chunk, "k2", testRecord, "")
	assert.Len(t, labels.Active(spawn.Add(time.Second)), 1)
}

func TestSceneMirror_RemoveOfUnmirroredObjectStillSpawnsLabel(t *testing.T) {
	labels := NewLabelSet()
	spawn := time.UnixMilli(1_000_000_000_000)
	m := NewSceneMirror(NewSceneMirrorOptions{
		Labels: labels,
		Now:    func() time.Time { return spawn },
	})

	// The object was never mirrored; the carried record supplies the
	// label position.
	m.ObjectRemoved(grid.ChunkID{X: 0, Y: 0}, "ghost", testRecord, "bob")

	active := labels.Active(spawn.Add(time.Second))
	require.Len(t, active, 1)
	assert.Equal(t, "bob", active[0].Username)
	assert.Equal(t, 150.0, active[0].X)

	// Without a parseable record there is nowhere to put the label.
	m.ObjectRemoved(grid.ChunkID{X: 0, Y: 0}, "ghost2", "", "bob")
	assert.Len(t, labels.Active(spawn.Add(time.Second)), 1)
}

func TestSceneMirror_MalformedRecordIsDropped(t *testing.T) {
	m := NewSceneMirror(NewSceneMirrorOptions{})
	chunk := grid.ChunkID{X: 0, Y: 0}

	m.ObjectAdded(chunk, "k1", "garbage")
	assert.Zero(t, m.ObjectCount())
}

func TestSceneMirror_ChunkUnloaded(t *testing.T) {
	m := NewSceneMirror(NewSceneMirrorOptions{})
	chunk := grid.ChunkID{X: 0, Y: 0}
	other := grid.ChunkID{X: 1, Y: 0}

	m.ObjectAdded(chunk, "k1", testRecord)
	m.ObjectAdded(chunk, "k2", "2;500;100;0;0;1.0;3;ffffff;0;1;ffffff;0;1")
	m.ObjectAdded(other, "k3", "3;700;100;0;0;1.0;3;ffffff;0;1;ffffff;0;1")

	m.ChunkUnloaded(chunk)
	assert.Equal(t, 1, m.ObjectCount())
	assert.Zero(t, m.ChunkObjectCount(chunk))
	assert.Equal(t, 1, m.ChunkObjectCount(other))

	// The unloaded chunk's objects also left the hit-test space.
	assert.Empty(t, m.ObjectsAt(150, 450))
	assert.Len(t, m.ObjectsAt(700, 100), 1)
}

func TestSceneMirror_ObjectsAt(t *testing.T) {
	m := NewSceneMirror(NewSceneMirrorOptions{})
	chunk := grid.ChunkID{X: 0, Y: 0}

	// Two overlapping objects and one far away.
	m.ObjectAdded(chunk, "low", "1;150;450;0;0;1.0;5;ffffff;0;1;ffffff;0;1")
	m.ObjectAdded(chunk, "high", "2;150;450;0;0;1.0;9;ffffff;0;1;ffffff;0;1")
	m.ObjectAdded(chunk, "far", "3;400;100;0;0;1.0;5;ffffff;0;1;ffffff;0;1")

	hits := m.ObjectsAt(150, 450)
	require.Len(t, hits, 2)
	assert.Equal(t, "high", hits[0].Key, "topmost object comes first")
	assert.Equal(t, "low", hits[1].Key)

	assert.Empty(t, m.ObjectsAt(150, 300))
}

func TestSceneMirror_ObjectsAt_RespectsScale(t *testing.T) {
	m := NewSceneMirror(NewSceneMirrorOptions{})
	chunk := grid.ChunkID{X: 0, Y: 0}

	// A half-scale object covers only a 15x15 box around its center.
	m.ObjectAdded(chunk, "small", "1;300;300;0;0;0.5;5;ffffff;0;1;ffffff;0;1")

	assert.Len(t, m.ObjectsAt(300, 300), 1)
	assert.Len(t, m.ObjectsAt(306, 306), 1)
	assert.Empty(t, m.ObjectsAt(310, 300))
}

func TestSceneMirror_Replay(t *testing.T) {
	m := NewSceneMirror(NewSceneMirrorOptions{})

	m.ApplyAdd("0,0", "k1", testRecord)
	m.ApplyAdd("0,0", "k2", "2;500;100;0;0;1.0;3;ffffff;0;1;ffffff;0;1")
	m.ApplyRemove("0,0", "k1")
	m.ApplyRemove("0,0", "never-placed")

	assert.Equal(t, 1, m.ObjectCount())
	_, ok := m.Get(grid.ChunkID{X: 0, Y: 0}, "k2")
	assert.True(t, ok)

	// Malformed chunk ids are dropped, not applied.
	m.ApplyAdd("not-a-chunk", "k3", testRecord)
	assert.Equal(t, 1, m.ObjectCount())
}

func TestRenderOrder_BlendingRemap(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   int
	}{
		{
			name:   "plain layer keeps its z order",
			record: "1;150;450;0;0;1.0;44;ffffff;0;1;ffffff;0;1",
			want:   44,
		},
		{
			name:   "blended background collapses behind everything",
			record: "1;150;450;0;0;1.0;44;ff00ff;1;1;ffffff;0;1",
			want:   blendingBackgroundZ,
		},
		{
			name:   "blended foreground collapses in front of everything",
			record: "1;150;450;0;0;1.0;45;ff00ff;1;1;ffffff;0;1",
			want:   blendingForegroundZ,
		},
	}
	m := NewSceneMirror(NewSceneMirrorOptions{})
	chunk := grid.ChunkID{X: 0, Y: 0}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := string(rune('a' + i))
			m.ObjectAdded(chunk, key, tt.record)
			scene, ok := m.Get(chunk, key)
			require.True(t, ok)
			assert.Equal(t, tt.want, scene.RenderZ)
		})
	}
}

func TestRenderPosition_OffsetRotation(t *testing.T) {
	m := NewSceneMirror(NewSceneMirrorOptions{})
	chunk := grid.ChunkID{X: 0, Y: 0}

	// Type 1339 carries an intrinsic x offset of 15.
	m.ObjectAdded(chunk, "plain", "1339;300;300;0;0;1.0;5;ffffff;0;1;ffffff;0;1")
	scene, ok := m.Get(chunk, "plain")
	require.True(t, ok)
	assert.InDelta(t, 315, scene.RenderX, 1e-9)
	assert.InDelta(t, 300, scene.RenderY, 1e-9)

	// Flipping mirrors the offset.
	m.ObjectAdded(chunk, "flipped", "1339;300;300;0;1;1.0;5;ffffff;0;1;ffffff;0;1")
	scene, ok = m.Get(chunk, "flipped")
	require.True(t, ok)
	assert.InDelta(t, 285, scene.RenderX, 1e-9)

	// Scaling scales the offset with the sprite.
	m.ObjectAdded(chunk, "scaled", "1339;300;300;0;0;2.0;5;ffffff;0;1;ffffff;0;1")
	scene, ok = m.Get(chunk, "scaled")
	require.True(t, ok)
	assert.InDelta(t, 330, scene.RenderX, 1e-9)
}
