package fbhost

// bindingKey identifies one installed connection. Execution (propagating
// values across the binding) is left to a future subsystem; Container only
// tracks that a binding was installed.
type bindingKey struct {
	srcBlock, srcPort string
	dstBlock, dstPort string
}

// Container is a named child map dispatching dotted-path requests. It is
// never touched concurrently: every request that reaches a Container, at
// any depth, has already been serialised through the single runtime driver
// goroutine, so no internal lock is needed.
type Container struct {
	factory  *Factory
	children map[string]FunctionBlock
	bindings map[bindingKey]struct{}
}

// NewContainer returns an empty Container that instantiates new children
// via factory.
func NewContainer(factory *Factory) *Container {
	return &Container{
		factory:  factory,
		children: make(map[string]FunctionBlock),
		bindings: make(map[bindingKey]struct{}),
	}
}

// Dispatch implements two-phase routing: pop one segment and delegate to a
// named child if the destination is non-empty, else execute the local
// operation table.
func (c *Container) Dispatch(req Request) (Data, error) {
	if !req.Destination.Empty() {
		head, rest := req.Destination.Pop()
		child, ok := c.children[head]
		if !ok {
			return nil, ErrInvalidDst
		}
		childReq := req
		childReq.Destination = rest
		return child.Request(childReq)
	}
	return c.dispatchLocal(req)
}

func (c *Container) dispatchLocal(req Request) (Data, error) {
	switch req.Action {
	case ActionQuery:
		fb, ok := req.Data.(FunctionBlockData)
		if !ok {
			return nil, ErrInvalidOperation
		}
		return c.query(fb)
	case ActionCreate:
		switch d := req.Data.(type) {
		case FunctionBlockData:
			return nil, c.createChild(d)
		case ConnectionData:
			return nil, c.createConnection(d)
		default:
			return nil, ErrInvalidOperation
		}
	case ActionDelete:
		switch d := req.Data.(type) {
		case FunctionBlockData:
			c.deleteChild(d.Name)
			return nil, nil
		case ConnectionData:
			return nil, c.deleteConnection(d)
		default:
			return nil, ErrInvalidOperation
		}
	case ActionRead:
		if _, ok := req.Data.(WatchesData); ok {
			return nil, nil
		}
		return nil, ErrInvalidOperation
	default:
		return nil, ErrInvalidOperation
	}
}

// query only implements the wildcard "*"/"*" pattern; any concrete
// name/type query returns no data rather than guessing at a filter
// semantics.
func (c *Container) query(pattern FunctionBlockData) (Data, error) {
	if pattern.Name != "*" || pattern.Type != "*" {
		return nil, nil
	}
	if len(c.children) == 0 {
		return nil, nil
	}
	list := FunctionBlockListData{Items: make([]FunctionBlockData, 0, len(c.children))}
	for name, fb := range c.children {
		list.Items = append(list.Items, FunctionBlockData{Name: name, Type: fb.TypeName()})
	}
	return list, nil
}

func (c *Container) createChild(d FunctionBlockData) error {
	if _, exists := c.children[d.Name]; exists {
		return ErrDuplicateObject
	}
	fb, err := c.factory.Create(d.Type)
	if err != nil {
		return err
	}
	c.children[d.Name] = fb
	return nil
}

// deleteChild removes a child if present. A missing name is silently OK;
// removing a node destroys the owned subtree, which in Go just means
// dropping the last reference.
func (c *Container) deleteChild(name string) {
	delete(c.children, name)
}

// resolveEndpoint looks up a "block.port" reference against this
// container's children, requiring the named port to resolve via hasPort
// — the source of a Connection must be a data output, the destination a
// data input, so the two directions are never interchangeable. Both
// endpoints of a connection must resolve before any binding state changes.
func (c *Container) resolveEndpoint(ref string, hasPort func(FunctionBlock, string) bool) (PortDestination, error) {
	pd, ok := ParsePortDestination(ref)
	if !ok {
		return PortDestination{}, ErrInvalidDst
	}
	fb, ok := c.children[pd.Block]
	if !ok {
		return PortDestination{}, ErrNoSuchObject
	}
	if !hasPort(fb, pd.Port) {
		return PortDestination{}, ErrInvalidObject
	}
	return pd, nil
}

func (c *Container) createConnection(d ConnectionData) error {
	src, err := c.resolveEndpoint(d.Source, hasDataOutput)
	if err != nil {
		return err
	}
	dst, err := c.resolveEndpoint(d.Destination, hasDataInput)
	if err != nil {
		return err
	}
	// Both endpoints resolved; only now does the container's state change.
	c.bindings[bindingKey{src.Block, src.Port, dst.Block, dst.Port}] = struct{}{}
	return nil
}

// deleteConnection removes a binding. An unknown binding behaves as a
// no-op NO_SUCH_OBJECT.
func (c *Container) deleteConnection(d ConnectionData) error {
	src, err := c.resolveEndpoint(d.Source, hasDataOutput)
	if err != nil {
		return err
	}
	dst, err := c.resolveEndpoint(d.Destination, hasDataInput)
	if err != nil {
		return err
	}
	key := bindingKey{src.Block, src.Port, dst.Block, dst.Port}
	if _, ok := c.bindings[key]; !ok {
		return ErrNoSuchObject
	}
	delete(c.bindings, key)
	return nil
}
