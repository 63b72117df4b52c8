// Package component provides a generic, ordered start/stop lifecycle
// manager shared by the demo application's components (logging, and one
// per configured scheduler).
package component

import (
	"context"
)

// IComponent is a named unit with an Init/Start/Stop lifecycle, parameterized
// over the environment value T passed to Init and Start (typically the
// application's top-level wiring struct).
type IComponent[T any] interface {
	Init(t T) error
	Start(ctx context.Context, t T) error
	Stop(ctx context.Context) error
	Name() string
}

// BaseComponent is embedded by components that only care about a subset of
// the lifecycle.
type BaseComponent[T any] struct{}

func (*BaseComponent[T]) Init(t T) error                       { return nil }
func (*BaseComponent[T]) Start(ctx context.Context, t T) error { return nil }
func (*BaseComponent[T]) Stop(ctx context.Context) error       { return nil }
