package domain

import "context"

// EventJournal is an append-only record of emitted ledger events. List
// returns events in append order so state can be rebuilt by replay.
type EventJournal interface {
	Append(ctx context.Context, evt Event) error
	List(ctx context.Context) ([]Event, error)
}
