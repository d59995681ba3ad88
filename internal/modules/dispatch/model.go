// README: Dispatch commands, errors and lock settings.
package dispatch

import (
	"errors"
	"time"

	"rideshare/internal/modules/ledger"
	"rideshare/internal/types"
)

var (
	ErrInvalidArgument   = ledger.ErrInvalidArgument
	ErrNotFound          = ledger.ErrNotFound
	ErrDataFormat        = ledger.ErrDataFormat
	ErrNoAvailableDriver = errors.New("no drivers available")
	ErrTripCompleted     = errors.New("trip already completed")
	ErrLockBusy          = errors.New("dispatch lock busy")
)

type CompleteCommand struct {
	TripID int64
	Cost   types.Money
	Rating int
}

const (
	// lockKey serializes driver selection across API instances.
	lockKey = "dispatch:lock"
	// busyDriversKey is the set of driver ids on a trip dispatched by any instance.
	busyDriversKey = "dispatch:busy"
	// DefaultLockTTL bounds how long a crashed holder can block dispatch.
	DefaultLockTTL = 5 * time.Second
	// lockRetryInterval is the pause between SET NX attempts.
	lockRetryInterval = 25 * time.Millisecond
	// lockWait is how long Lock keeps retrying before ErrLockBusy.
	lockWait = 2 * time.Second
)
