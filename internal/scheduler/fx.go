package scheduler

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("scheduler",
	fx.Provide(New),
	fx.Invoke(Register),
)

// Register starts the refresh loop when an interval is configured. A zero
// interval leaves refreshes entirely user-triggered.
func Register(lc fx.Lifecycle, sched *Scheduler) {
	if !sched.Enabled() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go sched.RunForever(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
