package rc

import "fmt"

// ParseError reports text that is not valid in the restricted settings format.
type ParseError struct {
	// Line is 1-based; 0 when unknown.
	Line int
	Msg  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line == 0 {
		return "could not parse settings file: " + e.Msg
	}
	return fmt.Sprintf("could not parse settings file: line %d: %s", e.Line, e.Msg)
}

// UnknownKeyError reports a key that is not in the schema.
type UnknownKeyError struct {
	Key string
}

// Error implements the error interface.
func (e *UnknownKeyError) Error() string {
	return e.Key + " is not a valid key"
}

// TypeMismatchError reports an operation applied to a key of the wrong kind,
// such as --add on a boolean key or --set on a list key.
type TypeMismatchError struct {
	Key  string
	Kind Kind
	Op   string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s cannot be used with %s key %s", e.Op, e.Kind, e.Key)
}
