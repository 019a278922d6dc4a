package clock

import (
	"time"

	"go.uber.org/fx"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

func New() Clock {
	return realClock{}
}

var Module = fx.Module("clock",
	fx.Provide(New),
)
