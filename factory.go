package fbhost

import "sync"

// Constructor produces a fresh, owned FunctionBlock instance for a
// registered type tag.
type Constructor func() FunctionBlock

// Factory is a type-tag-to-constructor registry. It's read-mostly:
// registration happens during startup, lookups happen continuously from
// the single runtime goroutine as CREATE requests are processed. An
// instance-level registry, so the root factory and a user-supplied factory
// can coexist without sharing state.
type Factory struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewFactory returns an empty, ready-to-use Factory.
func NewFactory() *Factory {
	return &Factory{ctors: make(map[string]Constructor)}
}

// RegisterType inserts or replaces the constructor for tag. Last
// registration wins.
func (f *Factory) RegisterType(tag string, ctor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctors[tag] = ctor
}

// Create produces a fresh FunctionBlock for tag, or fails UNSUPPORTED_TYPE
// if tag isn't registered. A constructor panic is recovered and surfaced
// as UNKNOWN rather than taking down the runtime driver goroutine.
func (f *Factory) Create(tag string) (fb FunctionBlock, err error) {
	f.mu.RLock()
	ctor, ok := f.ctors[tag]
	f.mu.RUnlock()
	if !ok {
		return nil, ErrUnsupportedType
	}

	defer func() {
		if r := recover(); r != nil {
			fb, err = nil, ErrUnknown
		}
	}()
	return ctor(), nil
}

// Types returns the currently registered type tags. Order is not
// guaranteed.
func (f *Factory) Types() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	tags := make([]string, 0, len(f.ctors))
	for tag := range f.ctors {
		tags = append(tags, tag)
	}
	return tags
}
