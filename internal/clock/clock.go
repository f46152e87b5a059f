package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time.Now so the scheduler and collector are deterministic
// under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// NewSystemClock returns the wall clock.
func NewSystemClock() Clock { return systemClock{} }

// Module wires the wall clock.
var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)
