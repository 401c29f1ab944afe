package fbhost

import "strings"

// Destination is an ordered sequence of dotted-path segments addressing a
// node in the function block hierarchy. An empty Destination denotes "this
// container"; it is distinct from a Destination holding a single empty
// segment, which ParseDestination never produces.
type Destination []string

// ParseDestination splits a dotted path into its segments. An empty string
// maps to the empty Destination (self), not to a Destination of length one
// holding "".
func ParseDestination(s string) Destination {
	if s == "" {
		return Destination{}
	}
	return Destination(strings.Split(s, "."))
}

// String renders the Destination back into dotted-path form.
func (d Destination) String() string {
	return strings.Join(d, ".")
}

// Empty reports whether the Destination addresses the current container.
func (d Destination) Empty() bool {
	return len(d) == 0
}

// Pop removes and returns the head segment, along with the remaining tail.
// Callers must not invoke Pop on an empty Destination.
func (d Destination) Pop() (head string, rest Destination) {
	return d[0], d[1:]
}

// PortDestination is a `block.port` reference, as used by Connection data.
type PortDestination struct {
	Block string
	Port  string
}

// ParsePortDestination parses "block.port". A missing or extra "." is a
// parse error, surfaced by callers as Error ErrInvalidDst.
func ParsePortDestination(s string) (PortDestination, bool) {
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return PortDestination{}, false
	}
	block := s[:idx]
	rest := s[idx+1:]
	if block == "" || rest == "" || strings.IndexByte(rest, '.') >= 0 {
		return PortDestination{}, false
	}
	return PortDestination{Block: block, Port: rest}, true
}

// String renders the PortDestination back into "block.port" form.
func (p PortDestination) String() string {
	return p.Block + "." + p.Port
}
