package physics

import "gonum.org/v1/gonum/spatial/r2"

// Trail is a fixed-capacity FIFO of past positions. Once full, each Push
// evicts the oldest entry. Storage is allocated once.
type Trail struct {
	points []r2.Vec
	start  int
	size   int
}

func NewTrail(capacity int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail{points: make([]r2.Vec, capacity)}
}

func (t *Trail) Len() int { return t.size }
func (t *Trail) Cap() int { return len(t.points) }

func (t *Trail) Push(p r2.Vec) {
	n := len(t.points)
	if n == 0 {
		return
	}
	if t.size < n {
		t.points[(t.start+t.size)%n] = p
		t.size++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % n
}

// Points returns a copy of the trail, oldest first.
func (t *Trail) Points() []r2.Vec {
	out := make([]r2.Vec, t.size)
	n := len(t.points)
	for i := 0; i < t.size; i++ {
		out[i] = t.points[(t.start+i)%n]
	}
	return out
}

// Last returns the most recent position.
func (t *Trail) Last() (r2.Vec, bool) {
	if t.size == 0 {
		return r2.Vec{}, false
	}
	return t.points[(t.start+t.size-1)%len(t.points)], true
}

func (t *Trail) Reset() {
	t.start = 0
	t.size = 0
}

func (t *Trail) clone() *Trail {
	c := &Trail{points: make([]r2.Vec, len(t.points)), start: t.start, size: t.size}
	copy(c.points, t.points)
	return c
}
