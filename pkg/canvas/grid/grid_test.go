package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkOf(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		y    float64
		want ChunkID
	}{
		{
			name: "origin",
			x:    0,
			y:    0,
			want: ChunkID{X: 0, Y: 0},
		},
		{
			name: "inside first chunk",
			x:    599.9,
			y:    599.9,
			want: ChunkID{X: 0, Y: 0},
		},
		{
			name: "chunk boundary belongs to the next chunk",
			x:    600,
			y:    600,
			want: ChunkID{X: 1, Y: 1},
		},
		{
			name: "far right of the world",
			x:    89999,
			y:    2399,
			want: ChunkID{X: 149, Y: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChunkOf(tt.x, tt.y))
		})
	}
}

func TestChunkBounds_ContainsOwnPoints(t *testing.T) {
	chunk := ChunkID{X: 3, Y: 1}
	bounds := ChunkBounds(chunk)

	assert.True(t, bounds.Contains(1800, 600))
	assert.True(t, bounds.Contains(2399.9, 1199.9))
	assert.False(t, bounds.Contains(2400, 1200))

	// Every point inside the bounds maps back to the same chunk.
	for _, p := range [][2]float64{{1800, 600}, {2000, 900}, {2399.5, 1199.5}} {
		assert.Equal(t, chunk, ChunkOf(p[0], p[1]))
	}
}

func TestParseChunkID(t *testing.T) {
	for _, id := range []ChunkID{{0, 0}, {149, 3}, {-1, -2}} {
		parsed, err := ParseChunkID(id.String())
		assert.NoError(t, err)
		assert.Equal(t, id, parsed)
	}

	for _, s := range []string{"", "1", "1,2,3", "a,b", "1.5,2"} {
		_, err := ParseChunkID(s)
		assert.Error(t, err)
	}
}

func TestInWorld(t *testing.T) {
	assert.True(t, InWorld(0, 0))
	assert.True(t, InWorld(89999.9, 2399.9))
	assert.False(t, InWorld(-0.1, 0))
	assert.False(t, InWorld(90000, 0))
	assert.False(t, InWorld(0, 2400))
}

func TestVisibleChunks(t *testing.T) {
	tests := []struct {
		name     string
		viewport Rect
		want     []ChunkID
	}{
		{
			name:     "single chunk",
			viewport: Rect{MinX: 10, MinY: 10, MaxX: 500, MaxY: 500},
			want:     []ChunkID{{0, 0}},
		},
		{
			name:     "viewport straddling four chunks",
			viewport: Rect{MinX: 400, MinY: 400, MaxX: 800, MaxY: 800},
			want:     []ChunkID{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		},
		{
			name:     "camera pushed past the world edge clamps",
			viewport: Rect{MinX: 89500, MinY: 2000, MaxX: 95000, MaxY: 5000},
			want:     []ChunkID{{149, 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := VisibleChunks(tt.viewport)
			assert.Len(t, chunks, len(tt.want))
			for _, id := range tt.want {
				assert.Contains(t, chunks, id)
			}
		})
	}
}

func TestVisibleChunks_Deterministic(t *testing.T) {
	viewport := Rect{MinX: 1000, MinY: 0, MaxX: 3000, MaxY: 1200}
	first := VisibleChunks(viewport)
	second := VisibleChunks(viewport)
	assert.Equal(t, first, second)
}
