package domain

import "time"

// Campaign metadata and duration limits.
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
	MinDurationDays   = 1
	MaxDurationDays   = 365
	secondsPerDay     = 86400
)

// Campaign is a single funding request record. Metadata, goal, and deadline
// are immutable after creation; only RaisedAmount and the lifecycle flags
// change.
type Campaign struct {
	ID           int64     `json:"id"`
	Creator      string    `json:"creator"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Author       string    `json:"author"`
	GoalAmount   Amount    `json:"goal_amount"`
	Deadline     time.Time `json:"deadline"`
	RaisedAmount Amount    `json:"raised_amount"`
	IsActive     bool      `json:"is_active"`
	FundsClaimed bool      `json:"funds_claimed"`
	IsCancelled  bool      `json:"is_cancelled"`
	CreatedAt    time.Time `json:"created_at"`
}

// Status is derived from the stored record and the current time; it is
// never persisted.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusClaimable Status = "claimable"
	StatusExpired   Status = "expired"
	StatusClaimed   Status = "claimed"
)

// StatusAt computes the derived lifecycle status at the given time.
func (c Campaign) StatusAt(now time.Time) Status {
	switch {
	case c.IsCancelled:
		return StatusCancelled
	case c.FundsClaimed:
		return StatusClaimed
	case !now.After(c.Deadline):
		return StatusActive
	case c.RaisedAmount >= c.GoalAmount:
		return StatusClaimable
	default:
		return StatusExpired
	}
}

// Ended reports whether the campaign deadline has passed at the given time.
// A donation at exactly the deadline is still accepted.
func (c Campaign) Ended(now time.Time) bool {
	return now.After(c.Deadline)
}

// DeadlineFor computes the absolute deadline for a campaign created at the
// given time with the given duration.
func DeadlineFor(createdAt time.Time, durationDays int) time.Time {
	return createdAt.Add(time.Duration(int64(durationDays)*secondsPerDay) * time.Second)
}

// ValidateCampaignInput checks creation parameters. All checks run before
// any state is touched.
func ValidateCampaignInput(title, description string, goal Amount, durationDays int) error {
	if l := len(title); l < 1 || l > MaxTitleLen {
		return ErrInvalidTitle
	}
	if l := len(description); l < 1 || l > MaxDescriptionLen {
		return ErrInvalidDescription
	}
	if goal <= 0 {
		return ErrInvalidGoal
	}
	if durationDays < MinDurationDays {
		return ErrDurationTooShort
	}
	if durationDays > MaxDurationDays {
		return ErrDurationTooLong
	}
	return nil
}
