package simulation

// FrameID identifies a pending frame request.
type FrameID uint64

// FrameHost delivers the recurring frame-synchronisation signal. A request
// fires once; callers that want the next frame must ask again.
type FrameHost interface {
	RequestFrame(cb func()) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	cb func()
}

// FrameQueue is a single-threaded FrameHost. The host loop calls Pump once
// per display frame; callbacks requested while a pump is running wait for
// the next one. It is not safe for concurrent use.
type FrameQueue struct {
	next    FrameID
	pending []frameRequest
	batch   []frameRequest
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue { return &FrameQueue{} }

// RequestFrame schedules cb for the next Pump.
func (q *FrameQueue) RequestFrame(cb func()) FrameID {
	q.next++
	q.pending = append(q.pending, frameRequest{id: q.next, cb: cb})
	return q.next
}

// CancelFrame drops a pending request. Unknown or already fired ids are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i := range q.pending {
		if q.pending[i].id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.batch {
		if q.batch[i].id == id {
			q.batch[i].cb = nil
			return
		}
	}
}

// Pending returns the number of requests waiting for the next Pump.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Pump fires every request that was pending when it was called and reports
// how many ran.
func (q *FrameQueue) Pump() int {
	q.batch, q.pending = q.pending, nil
	ran := 0
	for i := range q.batch {
		cb := q.batch[i].cb
		if cb == nil {
			continue
		}
		q.batch[i].cb = nil
		cb()
		ran++
	}
	q.batch = q.batch[:0]
	return ran
}
