package mirror

import (
	"math"
	"sync"
	"time"
)

// labelLifetime is how long a delete label animates before expiring.
const labelLifetime = 2 * time.Second

// DeleteLabel is the floating username shown where someone deleted an
// object. It rises and fades out over its lifetime.
type DeleteLabel struct {
	Username  string
	X         float64
	Y         float64
	SpawnTime time.Time
}

// progress returns the normalized age of the label in [0, inf).
func (l *DeleteLabel) progress(now time.Time) float64 {
	return float64(now.Sub(l.SpawnTime)) / float64(labelLifetime)
}

// Expired reports whether the label's animation has finished.
func (l *DeleteLabel) Expired(now time.Time) bool {
	return l.progress(now) > 1
}

// Alpha returns the label's opacity at now. The curve fades in fast and
// out slow; values are clamped to [0, 1].
func (l *DeleteLabel) Alpha(now time.Time) float64 {
	d := l.progress(now)
	if d <= 0 {
		return 0
	}
	if d >= 1 {
		return 0
	}
	alpha := (1 - d) * 1.25 * (math.Log(5*d) + 1)
	return math.Max(0, math.Min(1, alpha))
}

// OffsetY returns how far the label has risen at now, in world units.
func (l *DeleteLabel) OffsetY(now time.Time) float64 {
	d := l.progress(now)
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	return d * d * 30
}

// LabelSet holds the active delete labels. Safe for concurrent use.
type LabelSet struct {
	mu     sync.Mutex
	labels []*DeleteLabel
}

func NewLabelSet() *LabelSet {
	return &LabelSet{}
}

// Spawn adds a label at the deleted object's position.
func (s *LabelSet) Spawn(username string, x, y float64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels = append(s.labels, &DeleteLabel{
		Username:  username,
		X:         x,
		Y:         y,
		SpawnTime: now,
	})
}

// Active returns the labels still animating at now and drops the rest.
func (s *LabelSet) Active(now time.Time) []*DeleteLabel {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.labels[:0]
	for _, l := range s.labels {
		if !l.Expired(now) {
			active = append(active, l)
		}
	}
	s.labels = active
	out := make([]*DeleteLabel, len(active))
	copy(out, active)
	return out
}
