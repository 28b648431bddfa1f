// Package viewer drives the client's frame loop: it tracks the camera,
// keeps the chunk cache pointed at the current viewport, and ages out
// delete labels.
package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/cbodonnell/worldcanvas/client/cache"
	"github.com/cbodonnell/worldcanvas/client/mirror"
	"github.com/cbodonnell/worldcanvas/pkg/canvas/grid"
	"github.com/cbodonnell/worldcanvas/pkg/log"
)

const (
	// DefaultFrameInterval paces viewport updates.
	DefaultFrameInterval = time.Second / 30
	// DefaultSweepInterval paces offscreen-chunk sweeps.
	DefaultSweepInterval = 10 * time.Second
)

type Viewer struct {
	cache         *cache.ChunkCache
	mirror        *mirror.SceneMirror
	labels        *mirror.LabelSet
	frameInterval time.Duration
	sweepInterval time.Duration

	mu           sync.Mutex
	cameraX      float64
	cameraY      float64
	viewWidth    float64
	viewHeight   float64
	lastViewport grid.Rect
	hasViewport  bool
}

type NewViewerOptions struct {
	Cache  *cache.ChunkCache
	Mirror *mirror.SceneMirror
	Labels *mirror.LabelSet
	// ViewWidth and ViewHeight are the viewport dimensions in world units.
	ViewWidth  float64
	ViewHeight float64
	// FrameInterval and SweepInterval override the default pacing, used
	// in tests.
	FrameInterval time.Duration
	SweepInterval time.Duration
}

func NewViewer(opts NewViewerOptions) *Viewer {
	frameInterval := opts.FrameInterval
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	sweepInterval := opts.SweepInterval
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	return &Viewer{
		cache:         opts.Cache,
		mirror:        opts.Mirror,
		labels:        opts.Labels,
		frameInterval: frameInterval,
		sweepInterval: sweepInterval,
		viewWidth:     opts.ViewWidth,
		viewHeight:    opts.ViewHeight,
	}
}

// MoveCamera positions the camera center. The camera clamps to the world
// bounds, so panning past an edge stops at it.
func (v *Viewer) MoveCamera(x, y float64) {
	x, y = grid.ClampToWorld(x, y)
	v.mu.Lock()
	v.cameraX = x
	v.cameraY = y
	v.mu.Unlock()
}

// Camera returns the current camera center.
func (v *Viewer) Camera() (float64, float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cameraX, v.cameraY
}

// Viewport returns the world rectangle currently on screen.
func (v *Viewer) Viewport() grid.Rect {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewportLocked()
}

func (v *Viewer) viewportLocked() grid.Rect {
	return grid.Rect{
		MinX: v.cameraX - v.viewWidth/2,
		MinY: v.cameraY - v.viewHeight/2,
		MaxX: v.cameraX + v.viewWidth/2,
		MaxY: v.cameraY + v.viewHeight/2,
	}
}

// ObjectsAt returns the mirrored objects under a world position, topmost
// first. Used for cursor picking.
func (v *Viewer) ObjectsAt(x, y float64) []*mirror.SceneObject {
	return v.mirror.ObjectsAt(x, y)
}

// Start runs the frame and sweep loops until ctx is cancelled.
func (v *Viewer) Start(ctx context.Context) error {
	frameTicker := time.NewTicker(v.frameInterval)
	defer frameTicker.Stop()
	sweepTicker := time.NewTicker(v.sweepInterval)
	defer sweepTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-frameTicker.C:
			if err := v.frameTick(t); err != nil {
				log.Error("Failed to run frame tick: %v", err)
			}
		case t := <-sweepTicker.C:
			v.cache.SweepOffscreen(t)
		}
	}
}

// frameTick runs one iteration of the frame loop. The cache is only
// touched when the viewport actually moved.
func (v *Viewer) frameTick(t time.Time) error {
	v.mu.Lock()
	viewport := v.viewportLocked()
	changed := !v.hasViewport || viewport != v.lastViewport
	if changed {
		v.lastViewport = viewport
		v.hasViewport = true
	}
	v.mu.Unlock()

	if changed {
		if err := v.cache.SetViewport(viewport, t); err != nil {
			return err
		}
	}

	v.labels.Active(t)
	return nil
}
