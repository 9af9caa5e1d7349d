package ledger

import (
	"context"
	"fmt"

	"github.com/flashfund/server/internal/domain"
)

// Replay rebuilds ledger state from the journal. It must run on a fresh
// engine before it serves traffic: recorded facts are applied directly,
// bypassing the pause gate, the guard, and time checks, and nothing is
// re-journaled.
func (e *Engine) Replay(ctx context.Context) (int, error) {
	if e.journal == nil {
		return 0, nil
	}
	events, err := e.journal.List(ctx)
	if err != nil {
		return 0, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, evt := range events {
		if err := e.apply(evt); err != nil {
			return i, fmt.Errorf("replay event %d (%s): %w", i, evt.Type, err)
		}
	}
	return len(events), nil
}

func (e *Engine) apply(evt domain.Event) error {
	switch evt.Type {
	case domain.EventCampaignCreated:
		if evt.Campaign == nil {
			return fmt.Errorf("missing campaign payload")
		}
		e.reg.Restore(*evt.Campaign)
		return nil
	case domain.EventDonationReceived:
		if err := e.book.Credit(evt.CampaignID, evt.Account, evt.Amount); err != nil {
			return err
		}
		if err := e.reg.AddRaised(evt.CampaignID, evt.Amount); err != nil {
			return err
		}
		return e.vault.Deposit(evt.Amount)
	case domain.EventCampaignCancelled:
		return e.reg.SetCancelled(evt.CampaignID)
	case domain.EventFundsClaimed:
		c, err := e.reg.Get(evt.CampaignID)
		if err != nil {
			return err
		}
		// The journal records the net payout; the fee is the remainder of
		// the raised total at claim time.
		e.fees.Restore(c.RaisedAmount - evt.Amount)
		if err := e.reg.SetClaimed(evt.CampaignID, true); err != nil {
			return err
		}
		return e.vault.Withdraw(evt.Amount)
	case domain.EventRefundProcessed:
		if _, err := e.book.Debit(evt.CampaignID, evt.Account); err != nil {
			return err
		}
		if err := e.reg.AddRaised(evt.CampaignID, -evt.Amount); err != nil {
			return err
		}
		return e.vault.Withdraw(evt.Amount)
	case domain.EventPaused:
		e.gate.paused = true
		return nil
	case domain.EventUnpaused:
		e.gate.paused = false
		return nil
	case domain.EventOwnershipTransferred:
		e.access.owner = evt.Account
		return nil
	case domain.EventFeeUpdated:
		return e.fees.SetPercent(evt.FeeBps)
	case domain.EventFeesWithdrawn:
		if _, err := e.fees.Withdraw(); err != nil {
			return err
		}
		return e.vault.Withdraw(evt.Amount)
	default:
		return fmt.Errorf("unknown event type %q", evt.Type)
	}
}
