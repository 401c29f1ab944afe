package fbhost

// Error is the closed set of protocol-visible error tags carried in a
// Response's Reason. It is distinct from Go's error type: Error values
// never invalidate a connection, they're just data.
type Error string

const (
	ErrNotReady         Error = "NOT_READY"
	ErrUnsupportedCmd   Error = "UNSUPPORTED_CMD"
	ErrUnsupportedType  Error = "UNSUPPORTED_TYPE"
	ErrNoSuchObject     Error = "NO_SUCH_OBJECT"
	ErrInvalidObject    Error = "INVALID_OBJECT"
	ErrInvalidOperation Error = "INVALID_OPERATION"
	ErrInvalidState     Error = "INVALID_STATE"
	ErrOverflow         Error = "OVERFLOW"
	ErrDuplicateObject  Error = "DUPLICATE_OBJECT"
	ErrInvalidDst       Error = "INVALID_DST"
	ErrNullPointer      Error = "NULL_POINTER"
	ErrInterrupted      Error = "INTERRUPTED"
	ErrUnknown          Error = "UNKNOWN"
)

// errorXMLName maps an Error to its wire rendering. Kept as an explicit
// table rather than derived via reflection/string munging, so a future
// member can't silently pick up the wrong mechanical rendering.
var errorXMLName = map[Error]string{
	ErrNotReady:         "NOT_READY",
	ErrUnsupportedCmd:   "UNSUPPORTED_CMD",
	ErrUnsupportedType:  "UNSUPPORTED_TYPE",
	ErrNoSuchObject:     "NO_SUCH_OBJECT",
	ErrInvalidObject:    "INVALID_OBJECT",
	ErrInvalidOperation: "INVALID_OPERATION",
	ErrInvalidState:     "INVALID_STATE",
	ErrOverflow:         "OVERFLOW",
	ErrDuplicateObject:  "DUPLICATE_OBJECT",
	ErrInvalidDst:       "INVALID_DST",
	ErrNullPointer:      "NULL_POINTER",
	ErrInterrupted:      "INTERRUPTED",
	ErrUnknown:          "UNKNOWN",
}

var errorFromXMLName map[string]Error

func init() {
	errorFromXMLName = make(map[string]Error, len(errorXMLName))
	for e, name := range errorXMLName {
		errorFromXMLName[name] = e
	}
}

// ParseError resolves a wire error tag, failing decode if it's not a
// recognised member of the closed set.
func ParseError(s string) (Error, bool) {
	e, ok := errorFromXMLName[s]
	return e, ok
}

// Error implements the standard error interface so an Error can be returned
// from Go functions that need to propagate a protocol-visible failure
// internally (container/runtime code), without being confused for a
// transport-fatal Go error.
func (e Error) Error() string { return string(e) }
