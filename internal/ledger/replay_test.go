package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/flashfund/server/internal/adapter/repo"
	"github.com/flashfund/server/internal/domain"
)

// Runs a full lifecycle against a journaled engine, then rebuilds a fresh
// engine from the same journal and checks the states agree.
func TestReplayRebuildsState(t *testing.T) {
	ctx := context.Background()
	journal := repo.NewMemoryJournal()
	live, clk := testEngine(t, WithJournal(journal))

	c1 := createCampaign(t, live, "5", 30)
	c2 := createCampaign(t, live, "10", 30)

	donate(t, live, testDonor1, c1.ID, "3")
	donate(t, live, testDonor2, c1.ID, "2")
	donate(t, live, testDonor1, c2.ID, "4")

	if err := live.UpdateFeePercent(ctx, testOwner, 500); err != nil {
		t.Fatalf("UpdateFeePercent returned error: %v", err)
	}
	if _, err := live.CancelCampaign(ctx, testCreator, c2.ID); err != nil {
		t.Fatalf("CancelCampaign returned error: %v", err)
	}
	if _, err := live.ClaimRefund(ctx, testDonor1, c2.ID); err != nil {
		t.Fatalf("ClaimRefund returned error: %v", err)
	}

	clk.Advance(31 * 24 * time.Hour)
	if _, err := live.ClaimFunds(ctx, testCreator, c1.ID); err != nil {
		t.Fatalf("ClaimFunds returned error: %v", err)
	}
	if _, err := live.WithdrawFees(ctx, testOwner); err != nil {
		t.Fatalf("WithdrawFees returned error: %v", err)
	}
	if err := live.Pause(ctx, testOwner); err != nil {
		t.Fatalf("Pause returned error: %v", err)
	}
	const newOwner = "acct-new-owner"
	if err := live.TransferOwnership(ctx, testOwner, newOwner); err != nil {
		t.Fatalf("TransferOwnership returned error: %v", err)
	}

	rebuilt, err := New(testOwner, zerolog.Nop(), WithJournal(journal))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	events, err := journal.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	n, err := rebuilt.Replay(ctx)
	if err != nil {
		t.Fatalf("Replay returned error: %v", err)
	}
	if n != len(events) {
		t.Fatalf("Replay applied %d of %d events", n, len(events))
	}

	if got, want := rebuilt.TotalCampaigns(), live.TotalCampaigns(); got != want {
		t.Fatalf("TotalCampaigns: got %d want %d", got, want)
	}
	for _, id := range []int64{c1.ID, c2.ID} {
		want, err := live.GetCampaign(id)
		if err != nil {
			t.Fatalf("GetCampaign(%d) returned error: %v", id, err)
		}
		got, err := rebuilt.GetCampaign(id)
		if err != nil {
			t.Fatalf("rebuilt GetCampaign(%d) returned error: %v", id, err)
		}
		if got != want {
			t.Fatalf("campaign %d mismatch:\n got %+v\nwant %+v", id, got, want)
		}
	}
	for _, donor := range []string{testDonor1, testDonor2} {
		for _, id := range []int64{c1.ID, c2.ID} {
			if got, want := rebuilt.GetDonation(id, donor), live.GetDonation(id, donor); got != want {
				t.Fatalf("donation %s/%d: got %d want %d", donor, id, got, want)
			}
		}
	}
	if got, want := rebuilt.ContractBalance(), live.ContractBalance(); got != want {
		t.Fatalf("ContractBalance: got %d want %d", got, want)
	}
	if got, want := rebuilt.AccumulatedFees(), live.AccumulatedFees(); got != want {
		t.Fatalf("AccumulatedFees: got %d want %d", got, want)
	}
	if got, want := rebuilt.FeePercent(), live.FeePercent(); got != want {
		t.Fatalf("FeePercent: got %d want %d", got, want)
	}
	if got, want := rebuilt.Paused(), live.Paused(); got != want {
		t.Fatalf("Paused: got %v want %v", got, want)
	}
	if got := rebuilt.Owner(); got != newOwner {
		t.Fatalf("Owner: got %q want %q", got, newOwner)
	}
}

func TestReplayWithoutJournal(t *testing.T) {
	e, _ := testEngine(t)
	n, err := e.Replay(context.Background())
	if err != nil {
		t.Fatalf("Replay returned error: %v", err)
	}
	if n != 0 {
		t.Fatalf("Replay applied %d events on empty engine", n)
	}
}

func TestReplayRejectsUnknownEvent(t *testing.T) {
	ctx := context.Background()
	journal := repo.NewMemoryJournal()
	if err := journal.Append(ctx, domain.Event{Type: "bogus.event"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	e, err := New(testOwner, zerolog.Nop(), WithJournal(journal))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := e.Replay(ctx); err == nil {
		t.Fatal("Replay accepted an unknown event type")
	}
}

func TestEventJournalOrder(t *testing.T) {
	ctx := context.Background()
	journal := repo.NewMemoryJournal()
	e, clk := testEngine(t, WithJournal(journal))

	c := createCampaign(t, e, "5", 30)
	donate(t, e, testDonor1, c.ID, "5")
	clk.Advance(31 * 24 * time.Hour)
	if _, err := e.ClaimFunds(ctx, testCreator, c.ID); err != nil {
		t.Fatalf("ClaimFunds returned error: %v", err)
	}

	events, err := journal.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	want := []domain.EventType{
		domain.EventCampaignCreated,
		domain.EventDonationReceived,
		domain.EventFundsClaimed,
	}
	if len(events) != len(want) {
		t.Fatalf("event count: got %d want %d", len(events), len(want))
	}
	for i, typ := range want {
		if events[i].Type != typ {
			t.Fatalf("event %d: got %q want %q", i, events[i].Type, typ)
		}
		if events[i].ID == "" {
			t.Fatalf("event %d missing id", i)
		}
		if events[i].At.IsZero() {
			t.Fatalf("event %d missing timestamp", i)
		}
	}
}
