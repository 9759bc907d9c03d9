package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time for services that make expiry decisions.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Module provides the system clock.
var Module = fx.Provide(func() Clock { return SystemClock{} })
