// Package errs is the error catalog for the module: sentinel values for
// fixed, parameterless outcomes and constructor functions for outcomes that
// carry context.
package errs

import (
	"errors"
	"fmt"
)

// ========== scheduler wrapping helpers ==========
//
// The public, explicit error kinds a caller checks with errors.Is
// (NoHandler, NoReceiver, AttributeTaken) live in pkg/actor itself, not
// here: they are part of that package's external contract and must be
// reachable by importers outside this module, which internal/ packages
// are not. This catalog only wraps internal causes that never cross the
// module boundary as a sentinel.

func ErrRegisterScheduler(attr fmt.Stringer, cause error) error {
	return fmt.Errorf("actor: register scheduler %s failed: %w", attr, cause)
}

// ========== component lifecycle errors ==========

var (
	ErrComponentCannotBeNil                = errors.New("component: component cannot be nil")
	ErrComponentNameCannotBeEmpty          = errors.New("component: name cannot be empty")
	ErrCannotRegisterComponentAfterStarted = errors.New("component: cannot register after manager has started")
	ErrManagerAlreadyStarted               = errors.New("component: manager already started")
	ErrManagerStoppedCannotRestart         = errors.New("component: manager stopped, cannot restart")
)

func ErrComponentAlreadyRegistered(name string) error {
	return fmt.Errorf("component: %q already registered", name)
}

func ErrFailedToStartComponent(name string, cause error) error {
	return fmt.Errorf("component: failed to start %q: %w", name, cause)
}

// ========== config errors ==========

func ErrReadConfigFile(path string, cause error) error {
	return fmt.Errorf("config: read %q failed: %w", path, cause)
}

func ErrUnmarshalConfigKey(key string, cause error) error {
	return fmt.Errorf("config: unmarshal key %q failed: %w", key, cause)
}
