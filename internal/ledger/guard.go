package ledger

import (
	"sync/atomic"

	"github.com/flashfund/server/internal/domain"
)

// ReentrancyGuard is a call-duration exclusive lock around fund-moving
// entry points. Acquisition never blocks: while the guard is held, any
// further attempt fails with ErrReentrant, including a callback from an
// in-flight external transfer re-entering the engine.
type ReentrancyGuard struct {
	locked atomic.Bool
}

// Enter acquires the guard and returns the release func. Release must run
// on every exit path.
func (g *ReentrancyGuard) Enter() (func(), error) {
	if !g.locked.CompareAndSwap(false, true) {
		return nil, domain.ErrReentrant
	}
	return func() { g.locked.Store(false) }, nil
}
