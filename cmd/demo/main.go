// Command demo boots the module's demo application: a logging component and
// one scheduler component per entry in the loaded configuration, then spawns
// a couple of actors to exercise both the general and main-thread lanes.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Je06jm/CrowFramework/internal/config"
	"github.com/Je06jm/CrowFramework/internal/logger"
	"github.com/Je06jm/CrowFramework/internal/schedulerapp"
	"github.com/Je06jm/CrowFramework/pkg/actor"
	"github.com/Je06jm/CrowFramework/pkg/component"
	"github.com/Je06jm/CrowFramework/pkg/glog"
)

// env is the wiring struct threaded through component.Manager; it exposes
// just enough of the loaded config for the components that need it.
type env struct {
	cfg *config.Config
}

func (e *env) LogConfig() *glog.Config { return &e.cfg.Glog }

// pingMsg is routed to the echo actor on the general-lane scheduler.
type pingMsg struct{ n int }

// tickMsg is routed to the main-thread-only actor on the rendering
// scheduler.
type tickMsg struct{}

func main() {
	var configPath string
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: load config: %v\n", err)
		os.Exit(1)
	}
	e := &env{cfg: cfg}

	registry := actor.NewRegistry()
	manager := component.NewManager[*env]()
	if err := manager.Register(logger.NewComponent[*env](nil)); err != nil {
		fmt.Fprintf(os.Stderr, "demo: register logger: %v\n", err)
		os.Exit(1)
	}

	schedulers := make(map[string]*schedulerapp.Component[*env], len(cfg.Schedulers))
	for _, sc := range cfg.Schedulers {
		sched := schedulerapp.NewComponent[*env](registry, sc)
		schedulers[sc.Name] = sched
		if err := manager.Register(sched); err != nil {
			fmt.Fprintf(os.Stderr, "demo: register scheduler %q: %v\n", sc.Name, err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	if err := manager.Start(ctx, e); err != nil {
		fmt.Fprintf(os.Stderr, "demo: start: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := manager.Stop(ctx); err != nil {
			glog.Error("demo: stop failed", zap.Error(err))
		}
	}()

	regular := schedulers["regular"].Scheduler()
	rendering := schedulers["rendering"].Scheduler()
	if regular == nil || rendering == nil {
		glog.Fatal("demo: expected a \"regular\" and a \"rendering\" scheduler in config")
	}

	if _, err := actor.Spawn(regular, func(ctx *actor.Context, msg pingMsg) error {
		glog.Info("echo actor received ping", zap.Int("n", msg.n))
		return nil
	}); err != nil {
		glog.Fatal("demo: spawn echo actor", zap.Error(err))
	}
	for i := 0; i < 3; i++ {
		if err := actor.Send(regular, pingMsg{n: i}); err != nil {
			glog.Error("demo: send ping failed", zap.Error(err))
		}
	}
	regular.BlockUntilEmpty()

	if _, err := actor.Spawn(rendering, func(ctx *actor.Context, msg tickMsg) error {
		glog.Info("main-thread actor observed tick")
		return nil
	}, actor.MainThreadOnly()); err != nil {
		glog.Fatal("demo: spawn tick actor", zap.Error(err))
	}
	for i := 0; i < 5; i++ {
		if err := actor.Send(rendering, tickMsg{}); err != nil {
			glog.Error("demo: send tick failed", zap.Error(err))
		}
	}
	// The rendering scheduler's main lane is only drained by the thread
	// that calls Run; its worker count of 1 means no background worker
	// would otherwise touch it.
	rendering.Run(true)
}
