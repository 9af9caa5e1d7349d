package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flashfund/server/internal/domain"
)

// EventJournalPG implements domain.EventJournal using PostgreSQL.
type EventJournalPG struct {
	pool *pgxpool.Pool
}

// NewEventJournal creates a new journal repo.
func NewEventJournal(pool *pgxpool.Pool) *EventJournalPG {
	return &EventJournalPG{pool: pool}
}

// EnsureSchema creates the journal table when it does not exist yet.
func (r *EventJournalPG) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS ledger_events (
	seq         BIGSERIAL PRIMARY KEY,
	id          UUID NOT NULL,
	type        TEXT NOT NULL,
	campaign_id BIGINT NOT NULL DEFAULT 0,
	account     TEXT NOT NULL DEFAULT '',
	prev_owner  TEXT NOT NULL DEFAULT '',
	amount      BIGINT NOT NULL DEFAULT 0,
	fee_bps     BIGINT NOT NULL DEFAULT 0,
	campaign    JSONB,
	at          TIMESTAMPTZ NOT NULL
);
`)
	if err != nil {
		return fmt.Errorf("ensure journal schema: %w", err)
	}
	return nil
}

// Append inserts an event at the end of the journal.
func (r *EventJournalPG) Append(ctx context.Context, evt domain.Event) error {
	var campaignJSON []byte
	if evt.Campaign != nil {
		b, err := json.Marshal(evt.Campaign)
		if err != nil {
			return fmt.Errorf("encode campaign payload: %w", err)
		}
		campaignJSON = b
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO ledger_events (id, type, campaign_id, account, prev_owner, amount, fee_bps, campaign, at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`, evt.ID, string(evt.Type), evt.CampaignID, evt.Account, evt.PrevOwner, int64(evt.Amount), evt.FeeBps, campaignJSON, evt.At)
	return err
}

// List returns all events in append order.
func (r *EventJournalPG) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, type, campaign_id, account, prev_owner, amount, fee_bps, campaign, at
FROM ledger_events
ORDER BY seq;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Event
	for rows.Next() {
		var (
			evt          domain.Event
			evtType      string
			amount       int64
			campaignJSON []byte
		)
		if err := rows.Scan(&evt.ID, &evtType, &evt.CampaignID, &evt.Account, &evt.PrevOwner, &amount, &evt.FeeBps, &campaignJSON, &evt.At); err != nil {
			return nil, err
		}
		evt.Type = domain.EventType(evtType)
		evt.Amount = domain.Amount(amount)
		if len(campaignJSON) > 0 {
			var c domain.Campaign
			if err := json.Unmarshal(campaignJSON, &c); err != nil {
				return nil, fmt.Errorf("decode campaign payload: %w", err)
			}
			evt.Campaign = &c
		}
		items = append(items, evt)
	}
	return items, rows.Err()
}

var _ domain.EventJournal = (*EventJournalPG)(nil)
