package fbhost

import "context"

// Result is what a dispatched Request resolves to: either Data (possibly
// nil) on success, or a protocol-visible Reason on failure. Never both.
type Result struct {
	Data   Data
	Reason Error
}

// RequestHandle pairs a Request with its single-use reply slot, submitted
// by a connection task and consumed exactly once by the runtime driver.
type RequestHandle struct {
	Request Request
	replyCh chan Result
}

// Channel is the bounded many-producer/single-consumer request queue,
// capacity 128 by default (tunable via WithChannelCapacity). Go has no
// safe way for many independent producers to close a channel (only one
// owner may ever call close, and a racing send on a closed channel
// panics), so "the queue is shut down" is modelled as a dedicated `closed`
// signal that the runtime driver closes exactly once on shutdown;
// producers select on it wherever they'd otherwise block forever.
type Channel struct {
	ch     chan *RequestHandle
	closed chan struct{}
}

// NewChannel returns a Channel with the given capacity.
func NewChannel(capacity int) *Channel {
	return &Channel{
		ch:     make(chan *RequestHandle, capacity),
		closed: make(chan struct{}),
	}
}

// Submit hands req to the runtime driver and blocks for its Result. It
// yields NOT_READY if the channel has been closed (the runtime is gone),
// if the caller's context is done, or if the driver replies after the
// caller gave up waiting.
func (c *Channel) Submit(ctx context.Context, req Request) Result {
	handle := &RequestHandle{Request: req, replyCh: make(chan Result, 1)}

	select {
	case c.ch <- handle:
	case <-c.closed:
		return Result{Reason: ErrNotReady}
	case <-ctx.Done():
		return Result{Reason: ErrNotReady}
	}

	select {
	case res := <-handle.replyCh:
		return res
	case <-c.closed:
		return Result{Reason: ErrNotReady}
	case <-ctx.Done():
		return Result{Reason: ErrNotReady}
	}
}

// reply delivers res to the handle's single-use slot. The slot is a
// buffered channel of capacity 1, so this never blocks — if the
// originating connection dropped mid-request and nobody ever reads it,
// the send is simply a no-op from the driver's point of view.
func (h *RequestHandle) reply(res Result) {
	h.replyCh <- res
}
