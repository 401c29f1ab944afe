package fbhost

import "context"

// Runtime owns the root Container exclusively and is the sole serialisation
// point for the entire hierarchy: a single goroutine that is the only
// mutator of shared state, looping on a select between its work source and
// shutdown.
type Runtime struct {
	root    *Container
	channel *Channel
	metrics Metrics
}

// NewRuntime builds a Runtime whose root container only accepts Embedded
// Resources, each backed by innerFactory for its own children.
func NewRuntime(innerFactory *Factory, channel *Channel, metrics Metrics) *Runtime {
	return &Runtime{
		root:    NewContainer(NewRootFactory(innerFactory)),
		channel: channel,
		metrics: metrics,
	}
}

// Run drains the channel in arrival order until ctx is cancelled, applying
// each request to completion before fetching the next. It closes the
// channel's shutdown signal on exit so any connection tasks still waiting
// on Submit unblock with NOT_READY.
func (rt *Runtime) Run(ctx context.Context) {
	defer close(rt.channel.closed)
	for {
		select {
		case handle := <-rt.channel.ch:
			rt.handle(handle)
		case <-ctx.Done():
			return
		}
	}
}

func (rt *Runtime) handle(handle *RequestHandle) {
	data, err := rt.root.Dispatch(handle.Request)
	if err != nil {
		if rt.metrics != nil {
			rt.metrics.IncrementRequestsFailed()
		}
		reason, ok := err.(Error)
		if !ok {
			reason = ErrUnknown
		}
		handle.reply(Result{Reason: reason})
		return
	}
	if rt.metrics != nil {
		rt.metrics.IncrementRequestsHandled()
	}
	handle.reply(Result{Data: data})
}
