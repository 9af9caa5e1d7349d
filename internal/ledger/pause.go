package ledger

import "github.com/flashfund/server/internal/domain"

// PauseGate is the process-wide pause flag. Only campaign creation and
// donations consult it; settlement operations run while paused.
type PauseGate struct {
	paused bool
}

// RequireRunning fails when the ledger is paused.
func (g *PauseGate) RequireRunning() error {
	if g.paused {
		return domain.ErrPaused
	}
	return nil
}

// RequireStopped fails when the ledger is not paused.
func (g *PauseGate) RequireStopped() error {
	if !g.paused {
		return domain.ErrNotPaused
	}
	return nil
}

// Pause sets the flag; fails if already paused.
func (g *PauseGate) Pause() error {
	if err := g.RequireRunning(); err != nil {
		return err
	}
	g.paused = true
	return nil
}

// Unpause clears the flag; fails if not paused.
func (g *PauseGate) Unpause() error {
	if err := g.RequireStopped(); err != nil {
		return err
	}
	g.paused = false
	return nil
}

// Paused returns the flag.
func (g *PauseGate) Paused() bool { return g.paused }
