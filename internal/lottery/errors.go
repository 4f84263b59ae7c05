package lottery

import (
	"errors"
	"fmt"
)

// ErrRejected is the parent of every refusal caused by the current phase or
// by draw preconditions. Refusals leave the state unchanged.
var ErrRejected = errors.New("draw operation rejected")

var (
	ErrNoPrizeSelected        = fmt.Errorf("%w: no prize selected", ErrRejected)
	ErrUnknownPrize           = fmt.Errorf("%w: prize not found", ErrRejected)
	ErrPrizeExhausted         = fmt.Errorf("%w: prize has no remaining stock", ErrRejected)
	ErrNoEligibleParticipants = fmt.Errorf("%w: every participant has already won", ErrRejected)
	ErrNotIdle                = fmt.Errorf("%w: a round is already in progress", ErrRejected)
	ErrNotRunning             = fmt.Errorf("%w: draw is not running", ErrRejected)
	ErrNotDrawing             = fmt.Errorf("%w: no reveal is pending", ErrRejected)
	ErrNotShowingWinner       = fmt.Errorf("%w: no winners on display", ErrRejected)
	ErrRoundInProgress        = fmt.Errorf("%w: configuration cannot change mid-round", ErrRejected)
)
