package host

import (
	"slices"
	"time"
)

// FrameQueue implements Scheduler for hosts that pump frames from their own message loop.
// Callbacks requested while a batch is running are deferred to the next batch.
type FrameQueue struct {
	pending map[FrameID]FrameCallback
	nextID  FrameID
}

var _ Scheduler = &FrameQueue{}

// NewFrameQueue creates an empty FrameQueue.
//
// Returns:
//   - *FrameQueue: the queue
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{
		pending: make(map[FrameID]FrameCallback),
	}
}

func (q *FrameQueue) RequestFrame(callback FrameCallback) FrameID {
	q.nextID++
	q.pending[q.nextID] = callback
	return q.nextID
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	delete(q.pending, id)
}

// Pending returns the number of scheduled callbacks.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// RunFrame invokes every callback scheduled before the call, in request order.
// A callback cancelled by an earlier callback of the same batch does not run.
//
// Parameters:
//   - now: the frame timestamp passed to each callback
//
// Returns:
//   - int: the number of callbacks invoked
func (q *FrameQueue) RunFrame(now time.Duration) int {
	if len(q.pending) == 0 {
		return 0
	}
	ids := make([]FrameID, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	ran := 0
	for _, id := range ids {
		callback, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		callback(now)
		ran++
	}
	return ran
}
