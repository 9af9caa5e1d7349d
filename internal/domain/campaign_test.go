package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateCampaignInput(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		desc     string
		goal     Amount
		duration int
		want     error
	}{
		{"valid", "t", "d", 1, 30, nil},
		{"max lengths", strings.Repeat("a", 100), strings.Repeat("b", 500), 1, 365, nil},
		{"min duration", "t", "d", 1, 1, nil},
		{"empty title", "", "d", 1, 30, ErrInvalidTitle},
		{"title too long", strings.Repeat("a", 101), "d", 1, 30, ErrInvalidTitle},
		{"empty description", "t", "", 1, 30, ErrInvalidDescription},
		{"description too long", "t", strings.Repeat("b", 501), 1, 30, ErrInvalidDescription},
		{"zero goal", "t", "d", 0, 30, ErrInvalidGoal},
		{"negative goal", "t", "d", -1, 30, ErrInvalidGoal},
		{"zero duration", "t", "d", 1, 0, ErrDurationTooShort},
		{"duration too long", "t", "d", 1, 366, ErrDurationTooLong},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCampaignInput(tc.title, tc.desc, tc.goal, tc.duration)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v want %v", err, tc.want)
			}
		})
	}
}

func TestDeadlineFor(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if got, want := DeadlineFor(created, 1), created.Add(24*time.Hour); !got.Equal(want) {
		t.Fatalf("1 day: got %v want %v", got, want)
	}
	if got, want := DeadlineFor(created, 365), created.Add(365*24*time.Hour); !got.Equal(want) {
		t.Fatalf("365 days: got %v want %v", got, want)
	}
}

func TestStatusAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	base := Campaign{
		GoalAmount: 10_000_000,
		Deadline:   now.Add(24 * time.Hour),
		IsActive:   true,
	}

	tests := []struct {
		name string
		mod  func(c *Campaign)
		at   time.Time
		want Status
	}{
		{"running", func(c *Campaign) {}, now, StatusActive},
		{"exactly at deadline", func(c *Campaign) {}, base.Deadline, StatusActive},
		{"ended unfunded", func(c *Campaign) {}, base.Deadline.Add(time.Second), StatusExpired},
		{"ended funded", func(c *Campaign) { c.RaisedAmount = 10_000_000 }, base.Deadline.Add(time.Second), StatusClaimable},
		{"ended overfunded", func(c *Campaign) { c.RaisedAmount = 15_000_000 }, base.Deadline.Add(time.Second), StatusClaimable},
		{"cancelled", func(c *Campaign) { c.IsCancelled = true }, now, StatusCancelled},
		{"cancelled wins over funded", func(c *Campaign) {
			c.IsCancelled = true
			c.RaisedAmount = 15_000_000
		}, base.Deadline.Add(time.Second), StatusCancelled},
		{"claimed", func(c *Campaign) {
			c.FundsClaimed = true
			c.RaisedAmount = 10_000_000
		}, base.Deadline.Add(time.Second), StatusClaimed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mod(&c)
			if got := c.StatusAt(tc.at); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestEnded(t *testing.T) {
	deadline := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c := Campaign{Deadline: deadline}
	if c.Ended(deadline) {
		t.Fatal("campaign must still accept at the exact deadline")
	}
	if !c.Ended(deadline.Add(time.Nanosecond)) {
		t.Fatal("campaign must end after the deadline")
	}
}
