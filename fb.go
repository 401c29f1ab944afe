package fbhost

// Port marks the presence of a named attachment point on a FunctionBlock.
// It carries no value: the execution semantics of a port (actual event
// firing / data propagation) are out of scope here — a future scheduler
// subsystem is expected to attach real behaviour. Only introspection (does
// this port exist, under this name) is modelled.
type Port struct{}

// FunctionBlock is the capability interface every node in the hierarchy
// implements: a common surface with explicit default behaviour that
// composite blocks selectively override.
type FunctionBlock interface {
	// TypeName returns the stable type tag this instance was created under.
	TypeName() string

	// Request handles one request addressed at or below this block.
	// Default behaviour (BaseBlock): INVALID_OPERATION when Destination is
	// empty, INVALID_DST otherwise — a leaf block has nothing to route to.
	Request(req Request) (Data, error)

	DataInput(name string) (Port, bool)
	DataOutput(name string) (Port, bool)
	EventInput(name string) (Port, bool)
	EventOutput(name string) (Port, bool)
}

// BaseBlock supplies the default FunctionBlock behaviour: non-composite
// leaf blocks inherit "no routing". Standard block stubs and the Embedded
// Resource's local-action handling both embed BaseBlock and override only
// what they need.
type BaseBlock struct {
	Type string
}

func (b BaseBlock) TypeName() string { return b.Type }

func (b BaseBlock) Request(req Request) (Data, error) {
	if req.Destination.Empty() {
		return nil, ErrInvalidOperation
	}
	return nil, ErrInvalidDst
}

func (b BaseBlock) DataInput(string) (Port, bool)   { return Port{}, false }
func (b BaseBlock) DataOutput(string) (Port, bool)  { return Port{}, false }
func (b BaseBlock) EventInput(string) (Port, bool)  { return Port{}, false }
func (b BaseBlock) EventOutput(string) (Port, bool) { return Port{}, false }

// hasDataOutput reports whether fb exposes name as a data output, the kind
// a Connection's source endpoint must resolve to.
func hasDataOutput(fb FunctionBlock, name string) bool {
	_, ok := fb.DataOutput(name)
	return ok
}

// hasDataInput reports whether fb exposes name as a data input, the kind a
// Connection's destination endpoint must resolve to.
func hasDataInput(fb FunctionBlock, name string) bool {
	_, ok := fb.DataInput(name)
	return ok
}

// RootFactoryTypeName is the only type tag the root container's factory
// recognises.
const RootFactoryTypeName = "EMB_RES"

// NewRootFactory builds the factory used by the runtime's root container.
// It only knows how to construct Embedded Resources, each one wrapping
// inner for its own children.
func NewRootFactory(inner *Factory) *Factory {
	root := NewFactory()
	root.RegisterType(RootFactoryTypeName, func() FunctionBlock {
		return NewEmbeddedResource(inner)
	})
	return root
}
