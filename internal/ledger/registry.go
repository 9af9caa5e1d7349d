package ledger

import (
	"time"

	"github.com/flashfund/server/internal/domain"
)

// Registry owns the campaign records and the monotonic id counter. Records
// are append-only; ids start at 1 and index into the backing slice.
type Registry struct {
	campaigns []*domain.Campaign
}

// CreateInput carries the caller-supplied campaign parameters.
type CreateInput struct {
	Title        string
	Description  string
	Image        string
	Author       string
	GoalAmount   domain.Amount
	DurationDays int
}

// Create validates the input, allocates the next id, and stores the record.
func (r *Registry) Create(in CreateInput, creator string, now time.Time) (domain.Campaign, error) {
	if err := domain.ValidateCampaignInput(in.Title, in.Description, in.GoalAmount, in.DurationDays); err != nil {
		return domain.Campaign{}, err
	}
	c := &domain.Campaign{
		ID:          int64(len(r.campaigns)) + 1,
		Creator:     creator,
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Author:      in.Author,
		GoalAmount:  in.GoalAmount,
		Deadline:    domain.DeadlineFor(now, in.DurationDays),
		IsActive:    true,
		CreatedAt:   now,
	}
	r.campaigns = append(r.campaigns, c)
	return *c, nil
}

// Get returns a snapshot of the campaign record.
func (r *Registry) Get(id int64) (domain.Campaign, error) {
	c, err := r.record(id)
	if err != nil {
		return domain.Campaign{}, err
	}
	return *c, nil
}

// List returns a snapshot of all campaigns in insertion order.
func (r *Registry) List() []domain.Campaign {
	out := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		out = append(out, *c)
	}
	return out
}

// Count returns the number of campaigns ever created.
func (r *Registry) Count() int64 {
	return int64(len(r.campaigns))
}

// SetCancelled marks a campaign cancelled and inactive.
func (r *Registry) SetCancelled(id int64) error {
	c, err := r.record(id)
	if err != nil {
		return err
	}
	c.IsActive = false
	c.IsCancelled = true
	return nil
}

// SetClaimed marks a campaign claimed and inactive. The claimed argument
// allows the engine to undo the flag when a payout fails.
func (r *Registry) SetClaimed(id int64, claimed bool) error {
	c, err := r.record(id)
	if err != nil {
		return err
	}
	c.IsActive = !claimed
	c.FundsClaimed = claimed
	return nil
}

// AddRaised adjusts the raised total. Refunds pass a negative delta so the
// raised amount stays equal to the sum of outstanding donations.
func (r *Registry) AddRaised(id int64, delta domain.Amount) error {
	c, err := r.record(id)
	if err != nil {
		return err
	}
	next, err := c.RaisedAmount.Add(delta)
	if err != nil {
		return err
	}
	c.RaisedAmount = next
	return nil
}

// Restore installs a previously recorded campaign during journal replay.
func (r *Registry) Restore(c domain.Campaign) {
	cp := c
	r.campaigns = append(r.campaigns, &cp)
}

func (r *Registry) record(id int64) (*domain.Campaign, error) {
	if id < 1 || id > int64(len(r.campaigns)) {
		return nil, domain.ErrNotFound
	}
	return r.campaigns[id-1], nil
}
