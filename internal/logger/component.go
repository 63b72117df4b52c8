// Package logger wires pkg/glog into the demo application's component
// lifecycle.
package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Je06jm/CrowFramework/internal/config"
	"github.com/Je06jm/CrowFramework/pkg/component"
	"github.com/Je06jm/CrowFramework/pkg/glog"
)

const ComponentName = "logger"

// Env is the minimal environment the logger component needs: a loaded
// Config. The demo's top-level env struct implements this.
type Env interface {
	LogConfig() *glog.Config
}

// Component initializes pkg/glog from configuration and flushes it on stop.
type Component[T Env] struct {
	component.BaseComponent[T]
	panicHook func(entry zapcore.Entry)
}

func NewComponent[T Env](panicHook func(entry zapcore.Entry)) *Component[T] {
	return &Component[T]{panicHook: panicHook}
}

func (c *Component[T]) Name() string { return ComponentName }

func (c *Component[T]) Start(ctx context.Context, env T) error {
	cfg := env.LogConfig()
	if cfg == nil {
		cfg = glog.DefaultConfig()
	}
	if err := glog.InitFromConfig(cfg); err != nil {
		return err
	}
	if c.panicHook != nil {
		glog.WithOptions(zap.Hooks(func(entry zapcore.Entry) error {
			if entry.Level >= zap.DPanicLevel {
				c.panicHook(entry)
			}
			return nil
		}))
	}
	return nil
}

func (c *Component[T]) Stop(ctx context.Context) error {
	glog.Stop()
	return nil
}

var _ Env = (*config.Config)(nil)
