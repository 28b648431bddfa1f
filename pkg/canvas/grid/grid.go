// Package grid maps world coordinates to fixed-size chunks. The functions
// here are pure and must be identical on client and server: an object filed
// under a different chunk than clients subscribe to would simply never be
// seen.
package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// ChunkWidth and ChunkHeight are the chunk dimensions in world units.
	ChunkWidth  = 600
	ChunkHeight = 600
)

// WorldStartX, WorldStartY, WorldEndX, WorldEndY bound the canvas as the
// half-open rectangle [start, end). Fixed for the lifetime of an
// installation.
const (
	WorldStartX = 0
	WorldStartY = 0
	WorldEndX   = 90000
	WorldEndY   = 2400
)

// ChunkID identifies one chunk of the world grid.
type ChunkID struct {
	X int
	Y int
}

// String formats a chunk id as "cx,cy", the form used in store paths and
// subscription requests.
func (c ChunkID) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// ParseChunkID parses a "cx,cy" chunk id.
func ParseChunkID(s string) (ChunkID, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return ChunkID{}, fmt.Errorf("invalid chunk id %q", s)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return ChunkID{}, fmt.Errorf("invalid chunk id %q: %v", s, err)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return ChunkID{}, fmt.Errorf("invalid chunk id %q: %v", s, err)
	}
	return ChunkID{X: x, Y: y}, nil
}

// Rect is an axis-aligned rectangle in world coordinates, [Min, Max).
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// ChunkOf returns the chunk owning the given world position.
func ChunkOf(x, y float64) ChunkID {
	return ChunkID{
		X: int(math.Floor(x / ChunkWidth)),
		Y: int(math.Floor(y / ChunkHeight)),
	}
}

// ChunkBounds returns the world-space rectangle covered by a chunk.
func ChunkBounds(c ChunkID) Rect {
	return Rect{
		MinX: float64(c.X) * ChunkWidth,
		MinY: float64(c.Y) * ChunkHeight,
		MaxX: float64(c.X+1) * ChunkWidth,
		MaxY: float64(c.Y+1) * ChunkHeight,
	}
}

// InWorld reports whether the position lies within the world bounds.
func InWorld(x, y float64) bool {
	return x >= WorldStartX && x < WorldEndX && y >= WorldStartY && y < WorldEndY
}

// WorldBounds returns the full world rectangle.
func WorldBounds() Rect {
	return Rect{
		MinX: WorldStartX,
		MinY: WorldStartY,
		MaxX: WorldEndX,
		MaxY: WorldEndY,
	}
}

// ClampToWorld clamps a point to the world rectangle. The upper edge is
// exclusive, so clamped points land just inside it.
func ClampToWorld(x, y float64) (float64, float64) {
	x = math.Max(WorldStartX, math.Min(x, WorldEndX-1))
	y = math.Max(WorldStartY, math.Min(y, WorldEndY-1))
	return x, y
}

// VisibleChunks returns every chunk intersecting the viewport rectangle.
// The viewport is clamped to the world bounds first, so a camera pushed
// past the edge never produces out-of-world chunk ids.
func VisibleChunks(viewport Rect) map[ChunkID]struct{} {
	minX, minY := ClampToWorld(viewport.MinX, viewport.MinY)
	maxX, maxY := ClampToWorld(viewport.MaxX, viewport.MaxY)

	start := ChunkOf(minX, minY)
	end := ChunkOf(maxX, maxY)

	chunks := make(map[ChunkID]struct{})
	for x := start.X; x <= end.X; x++ {
		for y := start.Y; y <= end.Y; y++ {
			chunks[ChunkID{X: x, Y: y}] = struct{}{}
		}
	}
	return chunks
}
