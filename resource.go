package fbhost

import "sync/atomic"

// resourceState values for EmbeddedResource.state. There is no terminal
// state: STOP and KILL both return a resource to Stopped.
const (
	resourceStopped uint32 = iota
	resourceRunning
)

// EmbeddedResource is a composite FunctionBlock of type EMB_RES hosting a
// Container, with START/STOP/KILL lifecycle actions layered in front of
// container dispatch. State transitions are naturally idempotent, so a
// plain atomic Store is enough — no compare-and-swap needed.
type EmbeddedResource struct {
	BaseBlock
	container *Container
	state     atomic.Uint32
}

// NewEmbeddedResource builds a Stopped Embedded Resource whose inner
// container instantiates children via factory.
func NewEmbeddedResource(factory *Factory) *EmbeddedResource {
	r := &EmbeddedResource{BaseBlock: BaseBlock{Type: RootFactoryTypeName}}
	r.container = NewContainer(factory)
	r.state.Store(resourceStopped)
	return r
}

// Request handles START/STOP/KILL locally only when addressed directly at
// this resource (empty destination); everything else, including
// START/STOP/KILL addressed further down, delegates to the inner container
// unconsulted.
func (r *EmbeddedResource) Request(req Request) (Data, error) {
	if req.Destination.Empty() {
		switch req.Action {
		case ActionStart:
			r.state.Store(resourceRunning)
			return nil, nil
		case ActionStop:
			r.state.Store(resourceStopped)
			return nil, nil
		case ActionKill:
			r.state.Store(resourceStopped)
			return nil, nil
		}
	}
	return r.container.Dispatch(req)
}

// Running reports whether the resource is currently in the Running state.
func (r *EmbeddedResource) Running() bool {
	return r.state.Load() == resourceRunning
}
