package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the type of a ledger event.
type EventType string

// Campaign events.
const (
	// EventCampaignCreated records the creation of a campaign.
	EventCampaignCreated EventType = "campaign.created"
	// EventDonationReceived records a donation credited to a campaign.
	EventDonationReceived EventType = "donation.received"
	// EventCampaignCancelled records a creator cancellation.
	EventCampaignCancelled EventType = "campaign.cancelled"
	// EventFundsClaimed records a successful payout to the creator.
	EventFundsClaimed EventType = "funds.claimed"
	// EventRefundProcessed records a donor refund.
	EventRefundProcessed EventType = "refund.processed"
)

// Ledger-scoped events.
const (
	// EventPaused records the owner pausing the ledger.
	EventPaused EventType = "ledger.paused"
	// EventUnpaused records the owner resuming the ledger.
	EventUnpaused EventType = "ledger.unpaused"
	// EventOwnershipTransferred records an owner change.
	EventOwnershipTransferred EventType = "ledger.ownership_transferred"
	// EventFeeUpdated records a platform fee change.
	EventFeeUpdated EventType = "ledger.fee_updated"
	// EventFeesWithdrawn records an owner fee withdrawal.
	EventFeesWithdrawn EventType = "ledger.fees_withdrawn"
)

// Event is a fact emitted after a successful mutating operation. The journal
// stores events in order; replaying them rebuilds ledger state, so
// campaign.created carries the full record.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	CampaignID int64     `json:"campaign_id,omitempty"`
	Account    string    `json:"account,omitempty"`
	PrevOwner  string    `json:"prev_owner,omitempty"`
	Amount     Amount    `json:"amount,omitempty"`
	FeeBps     int64     `json:"fee_bps,omitempty"`
	Campaign   *Campaign `json:"campaign,omitempty"`
	At         time.Time `json:"at"`
}

// NewEvent assigns an id and timestamp to an event skeleton.
func NewEvent(evt Event, at time.Time) Event {
	evt.ID = uuid.NewString()
	evt.At = at
	return evt
}
