package domain

import "errors"

// Validation failures, rejected before any mutation.
var (
	ErrInvalidTitle       = errors.New("invalid title length")
	ErrInvalidDescription = errors.New("invalid description length")
	ErrInvalidGoal        = errors.New("goal must be greater than zero")
	ErrDurationTooShort   = errors.New("duration too short")
	ErrDurationTooLong    = errors.New("duration too long")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrAmountOverflow     = errors.New("amount out of range")
	ErrInvalidFee         = errors.New("fee cannot exceed 10%")
	ErrInvalidAccount     = errors.New("invalid account")
)

// Authorization failures.
var (
	ErrNotOwner   = errors.New("only owner can call this")
	ErrNotCreator = errors.New("only creator can call this")
)

// State failures, rejected after lookup and before mutation.
var (
	ErrNotFound          = errors.New("campaign does not exist")
	ErrDonationTooSmall  = errors.New("donation too small")
	ErrSelfDonation      = errors.New("creator cannot donate to own campaign")
	ErrCampaignCancelled = errors.New("campaign is cancelled")
	ErrCampaignExpired   = errors.New("campaign expired")
	ErrCampaignEnded     = errors.New("campaign already ended")
	ErrAlreadyCancelled  = errors.New("campaign already cancelled")
	ErrStillRunning      = errors.New("campaign still running")
	ErrGoalNotReached    = errors.New("goal not reached")
	ErrAlreadyClaimed    = errors.New("funds already claimed")
	ErrRefundNotAllowed  = errors.New("cannot claim refund")
	ErrNoDonation        = errors.New("no donation found")
	ErrNothingToWithdraw = errors.New("no fees to withdraw")
	ErrPaused            = errors.New("ledger is paused")
	ErrNotPaused         = errors.New("ledger is not paused")
)

// Concurrency and boundary failures.
var (
	ErrReentrant      = errors.New("reentrant call")
	ErrDirectTransfer = errors.New("direct transfer not allowed")
	ErrInvalidCall    = errors.New("invalid call")
	ErrTransferFailed = errors.New("transfer failed")
)
