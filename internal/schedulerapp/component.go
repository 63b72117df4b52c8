// Package schedulerapp wires internal/config.SchedulerConfig entries into
// live pkg/actor.Scheduler instances, one per pkg/component.Manager
// component, so the demo application starts and stops its schedulers the
// same way it starts and stops the logger.
package schedulerapp

import (
	"context"

	"go.uber.org/zap"

	"github.com/Je06jm/CrowFramework/internal/config"
	"github.com/Je06jm/CrowFramework/pkg/actor"
	"github.com/Je06jm/CrowFramework/pkg/component"
	"github.com/Je06jm/CrowFramework/pkg/glog"
)

// Component boots one Scheduler bound to the Attribute resolved from its
// SchedulerConfig.Name, and stops it on Manager shutdown.
type Component[T any] struct {
	component.BaseComponent[T]

	registry *actor.Registry
	cfg      config.SchedulerConfig

	scheduler *actor.Scheduler
}

// NewComponent returns a component that, on Start, creates a Scheduler for
// cfg inside registry.
func NewComponent[T any](registry *actor.Registry, cfg config.SchedulerConfig) *Component[T] {
	return &Component[T]{registry: registry, cfg: cfg}
}

func (c *Component[T]) Name() string { return "scheduler." + c.cfg.Name }

func (c *Component[T]) Start(ctx context.Context, _ T) error {
	attr := ResolveAttribute(c.cfg.Name)
	s, err := actor.NewScheduler(c.registry, attr, c.cfg.Workers)
	if err != nil {
		return err
	}
	c.scheduler = s
	glog.Info("scheduler started", zap.String("name", c.cfg.Name), zap.Int("workers", c.cfg.Workers))
	return nil
}

func (c *Component[T]) Stop(context.Context) error {
	if c.scheduler == nil {
		return nil
	}
	c.scheduler.Stop()
	glog.Info("scheduler stopped", zap.String("name", c.cfg.Name))
	return nil
}

// Scheduler returns the running Scheduler, or nil before Start or after
// Stop.
func (c *Component[T]) Scheduler() *actor.Scheduler { return c.scheduler }

// ResolveAttribute maps a configured scheduler name onto one of the
// well-known Attributes when it matches, or mints a fresh one otherwise.
func ResolveAttribute(name string) actor.Attribute {
	switch name {
	case "regular":
		return actor.SchedulerRegular
	case "rendering":
		return actor.SchedulerRendering
	case "non_critical":
		return actor.SchedulerNonCritical
	default:
		return actor.NewAttribute(name)
	}
}

var _ component.IComponent[any] = (*Component[any])(nil)
