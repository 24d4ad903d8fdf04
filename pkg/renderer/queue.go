package renderer

import (
	"sync"
	"sync/atomic"
)

// Unit is one claimable piece of work: a pixel rectangle rendered for
// one sub-pass. Bounds are half-open, clipped to the image.
type Unit struct {
	Index   int
	SubPass int
	X0, Y0  int
	X1, Y1  int
}

// Queue partitions (image area × pass count) into fixed-size square
// buckets and hands them out through a single atomic counter. Units are
// ordered so all buckets of sub-pass k precede those of sub-pass k+1.
//
// Claiming and completing are decoupled, so a fast worker can claim a
// unit of the next sub-pass while the previous one is still being
// rendered; Wait gates such workers until every earlier unit has
// finished. That closes the accumulation race between sub-passes
// touching the same pixels, and as a side effect makes multi-threaded
// accumulation order (and therefore the result) deterministic. Because
// claims are strictly monotonic, some worker always holds the oldest
// unfinished unit, so the gate cannot deadlock.
type Queue struct {
	width, height int
	bucketSize    int
	bucketsX      int
	buckets       int // Buckets per sub-pass
	passes        int

	next atomic.Int64

	mu       sync.Mutex
	cond     *sync.Cond
	finished int
}

// NewQueue creates a work queue over the given image area and pass count
func NewQueue(width, height, bucketSize, passes int) *Queue {
	q := &Queue{
		width:      width,
		height:     height,
		bucketSize: bucketSize,
		bucketsX:   (width + bucketSize - 1) / bucketSize,
		passes:     passes,
	}
	bucketsY := (height + bucketSize - 1) / bucketSize
	q.buckets = q.bucketsX * bucketsY
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Units returns the total number of work units
func (q *Queue) Units() int {
	return q.buckets * q.passes
}

// Claim atomically takes the next unit. It returns ok=false once all
// units have been handed out; claimed indices are strictly increasing
// across all goroutines combined.
func (q *Queue) Claim() (Unit, bool) {
	idx := int(q.next.Add(1) - 1)
	if idx >= q.Units() {
		return Unit{}, false
	}

	subPass := idx / q.buckets
	bucket := idx - q.buckets*subPass
	bucketY := bucket / q.bucketsX
	bucketX := bucket - q.bucketsX*bucketY

	x0 := bucketX * q.bucketSize
	y0 := bucketY * q.bucketSize
	return Unit{
		Index:   idx,
		SubPass: subPass,
		X0:      x0,
		Y0:      y0,
		X1:      min(x0+q.bucketSize, q.width),
		Y1:      min(y0+q.bucketSize, q.height),
	}, true
}

// Wait blocks until every unit of all sub-passes before subPass has
// finished. Units of sub-pass 0 never wait.
func (q *Queue) Wait(subPass int) {
	q.mu.Lock()
	for q.finished < subPass*q.buckets {
		q.cond.Wait()
	}
	q.mu.Unlock()
}

// Finish marks one claimed unit as complete. Every claimed unit must be
// finished exactly once, even if its rendering was abandoned, or later
// sub-passes stall.
func (q *Queue) Finish() {
	q.mu.Lock()
	q.finished++
	q.mu.Unlock()
	q.cond.Broadcast()
}
