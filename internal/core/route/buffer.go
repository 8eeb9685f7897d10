package route

import (
	"time"

	"pettrack/internal/core/model"
)

// Buffer is a bounded ordered sequence of route points for one tracker.
// Insertion order is chronological order. After every append the buffer
// enforces two limits: no point older than maxAge, and at most maxPoints
// entries (oldest dropped first). The single most recent point is never
// evicted, even when expired, so a lone stale point cannot empty the buffer
// on clock skew.
//
// The buffer is not synchronized; the owning tracker aggregate serializes
// access.
type Buffer struct {
	points    []model.RoutePoint
	maxAge    time.Duration
	maxPoints int
	now       func() time.Time
}

// NewBuffer creates an empty buffer. maxPoints must be positive; the
// configuration layer rejects zero or negative values before a buffer is
// ever built.
func NewBuffer(maxAge time.Duration, maxPoints int) *Buffer {
	return &Buffer{
		maxAge:    maxAge,
		maxPoints: maxPoints,
		now:       time.Now,
	}
}

// Append adds a point and prunes by age cutoff, then by capacity.
func (b *Buffer) Append(p model.RoutePoint) {
	b.points = append(b.points, p)
	b.Prune(b.now().Add(-b.maxAge), b.maxPoints)
}

// Prune drops points with timestamps before cutoff, then drops oldest points
// until at most maxPoints remain. The newest point always survives.
func (b *Buffer) Prune(cutoff time.Time, maxPoints int) {
	if len(b.points) == 0 {
		return
	}

	keepFrom := 0
	for keepFrom < len(b.points)-1 && b.points[keepFrom].Timestamp.Before(cutoff) {
		keepFrom++
	}
	if keepFrom > 0 {
		b.points = append(b.points[:0], b.points[keepFrom:]...)
	}

	if maxPoints > 0 && len(b.points) > maxPoints {
		excess := len(b.points) - maxPoints
		b.points = append(b.points[:0], b.points[excess:]...)
	}
}

// Snapshot returns a defensive copy of the points, newest last. A positive
// limit caps the copy to the most recent limit points; zero or negative
// copies everything.
func (b *Buffer) Snapshot(limit int) []model.RoutePoint {
	src := b.points
	if limit > 0 && len(src) > limit {
		src = src[len(src)-limit:]
	}
	out := make([]model.RoutePoint, len(src))
	for i, p := range src {
		out[i] = p.Clone()
	}
	return out
}

// View returns the live backing slice for read-only iteration without a
// copy. Callers must not retain it past the next mutation.
func (b *Buffer) View() []model.RoutePoint {
	return b.points
}

func (b *Buffer) Len() int {
	return len(b.points)
}

func (b *Buffer) Clear() {
	b.points = b.points[:0]
}
