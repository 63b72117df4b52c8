package component

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/duke-git/lancet/v2/maputil"
	"go.uber.org/zap"

	"github.com/Je06jm/CrowFramework/internal/errs"
	"github.com/Je06jm/CrowFramework/pkg/glog"
)

// IManager is the public surface of Manager, named for symmetry with
// IComponent.
type IManager[T any] interface {
	Init(t T) error
	Start(ctx context.Context, t T) error
	Stop(ctx context.Context) error
	ComponentCount() int
	GetComponent(name string) IComponent[T]
	GetComponentNames() []string
	Register(component IComponent[T]) error
}

// Manager starts registered components in registration order and stops them
// in reverse order, exactly once.
type Manager[T any] struct {
	components *maputil.ConcurrentMap[string, IComponent[T]]
	order      []string
	orderMu    sync.RWMutex
	started    atomic.Bool
	stopped    atomic.Bool
	stopOnce   sync.Once
}

func NewManager[T any]() *Manager[T] {
	return &Manager[T]{
		components: maputil.NewConcurrentMap[string, IComponent[T]](10),
		order:      make([]string, 0),
	}
}

var _ IManager[any] = (*Manager[any])(nil)

func (cm *Manager[T]) IsStarted() bool { return cm.started.Load() }
func (cm *Manager[T]) IsStopped() bool { return cm.stopped.Load() }

func (cm *Manager[T]) ComponentCount() int {
	cm.orderMu.RLock()
	defer cm.orderMu.RUnlock()
	return len(cm.order)
}

func (cm *Manager[T]) GetComponent(name string) IComponent[T] {
	c, _ := cm.components.Get(name)
	return c
}

func (cm *Manager[T]) GetComponentNames() []string {
	cm.orderMu.RLock()
	defer cm.orderMu.RUnlock()
	names := make([]string, len(cm.order))
	copy(names, cm.order)
	return names
}

// Register adds a component. Components start in registration order and
// stop in the reverse order.
func (cm *Manager[T]) Register(c IComponent[T]) error {
	if cm.started.Load() {
		return errs.ErrCannotRegisterComponentAfterStarted
	}
	if c == nil {
		return errs.ErrComponentCannotBeNil
	}
	if c.Name() == "" {
		return errs.ErrComponentNameCannotBeEmpty
	}

	cm.orderMu.Lock()
	defer cm.orderMu.Unlock()

	if _, exists := cm.components.Get(c.Name()); exists {
		return errs.ErrComponentAlreadyRegistered(c.Name())
	}

	cm.components.Set(c.Name(), c)
	cm.order = append(cm.order, c.Name())
	glog.Debug("component registered", zap.String("component", c.Name()))
	return nil
}

func (cm *Manager[T]) orderedSnapshot() []string {
	cm.orderMu.RLock()
	defer cm.orderMu.RUnlock()
	order := make([]string, len(cm.order))
	copy(order, cm.order)
	return order
}

// Init calls Init on every registered component in registration order.
func (cm *Manager[T]) Init(t T) error {
	if cm.started.Load() {
		return errs.ErrManagerAlreadyStarted
	}
	for _, name := range cm.orderedSnapshot() {
		c, exists := cm.components.Get(name)
		if !exists {
			continue
		}
		if err := c.Init(t); err != nil {
			return err
		}
	}
	return nil
}

// Start starts every registered component in registration order. If one
// fails, the components already started are stopped in reverse order before
// the error is returned.
func (cm *Manager[T]) Start(ctx context.Context, t T) error {
	if cm.started.Load() {
		return errs.ErrManagerAlreadyStarted
	}
	if cm.stopped.Load() {
		return errs.ErrManagerStoppedCannotRestart
	}

	order := cm.orderedSnapshot()
	glog.Info("component: starting components", zap.Int("count", len(order)))

	var started []IComponent[T]
	for i, name := range order {
		c, exists := cm.components.Get(name)
		if !exists {
			continue
		}
		glog.Info("component: starting", zap.String("component", name), zap.Int("index", i+1), zap.Int("total", len(order)))
		if err := c.Start(ctx, t); err != nil {
			glog.Error("component: start failed", zap.String("component", name), zap.Error(err))
			slices.Reverse(started)
			cm.stopComponents(ctx, started)
			return errs.ErrFailedToStartComponent(name, err)
		}
		started = append(started, c)
	}

	cm.started.Store(true)
	glog.Info("component: all components started", zap.Int("count", len(order)))
	return nil
}

// Stop stops every started component in reverse registration order. Safe to
// call more than once; only the first call has effect.
func (cm *Manager[T]) Stop(ctx context.Context) error {
	var err error
	cm.stopOnce.Do(func() {
		if !cm.started.Load() || cm.stopped.Load() {
			return
		}
		cm.stopped.Store(true)

		order := cm.orderedSnapshot()
		components := make([]IComponent[T], 0, len(order))
		for i := len(order) - 1; i >= 0; i-- {
			if c, exists := cm.components.Get(order[i]); exists {
				components = append(components, c)
			}
		}
		err = cm.stopComponents(ctx, components)
	})
	return err
}

func (cm *Manager[T]) stopComponents(ctx context.Context, components []IComponent[T]) error {
	var lastErr error
	for _, c := range components {
		if c == nil {
			continue
		}
		if err := c.Stop(ctx); err != nil {
			glog.Error("component: stop failed", zap.String("component", c.Name()), zap.Error(err))
			lastErr = err
			continue
		}
		glog.Info("component: stopped", zap.String("component", c.Name()))
	}
	return lastErr
}

// StopWithTimeout calls Stop with a context whose deadline is timeout from
// now. The deadline is only passed on to each component's Stop; Stop itself
// does not abort when it passes and returns once every component's Stop has
// returned.
func (cm *Manager[T]) StopWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return cm.Stop(ctx)
}
