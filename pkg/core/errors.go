package core

import "fmt"

// DimensionError reports components of the wrong dimensionality
type DimensionError struct {
	Op   string // What was being constructed or computed
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: got %d components, want %d", e.Op, e.Got, e.Want)
}

// DegenerateVectorError reports an operation that needs a direction but got a zero-length vector
type DegenerateVectorError struct {
	Vector Vector
}

func (e *DegenerateVectorError) Error() string {
	return fmt.Sprintf("degenerate vector %v has no direction", e.Vector)
}

// InvalidArgumentError reports a constructor argument outside of its valid domain
type InvalidArgumentError struct {
	Name   string // Name of the offending argument
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Name, e.Reason)
}

// InvalidArgument is a shorthand for building an InvalidArgumentError
func InvalidArgument(name, format string, args ...interface{}) error {
	return &InvalidArgumentError{Name: name, Reason: fmt.Sprintf(format, args...)}
}
