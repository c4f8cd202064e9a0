package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCircularConfiguration is matched by every CircularConfigurationError.
	ErrCircularConfiguration = errors.New("model: circular configuration")
	// ErrTypeNotRegistered is returned when an instance of a type that never
	// went through Register is filled.
	ErrTypeNotRegistered = errors.New("model: type is not registered")
)

// CircularConfigurationError reports a type that references one of its own
// ancestors through its configuration graph.
type CircularConfigurationError struct {
	// Type is the name of the type that closed the cycle.
	Type string
	// Path lists the ancestor chain, root first, ending with Type.
	Path []string
}

func (e *CircularConfigurationError) Error() string {
	if e == nil {
		return ErrCircularConfiguration.Error()
	}
	return fmt.Sprintf("model: detected circular configuration reference for %s (%s)", e.Type, strings.Join(e.Path, " -> "))
}

func (e *CircularConfigurationError) Unwrap() error {
	return ErrCircularConfiguration
}

func notRegistered(t *Type) error {
	return fmt.Errorf("%w: %s", ErrTypeNotRegistered, t.Name())
}
