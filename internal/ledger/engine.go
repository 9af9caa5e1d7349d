package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/flashfund/server/internal/domain"
)

// Engine composes the registry, donation book, fee account, access control,
// pause gate, and reentrancy guard into the campaign lifecycle state
// machine. Every public call is a single atomic unit: it either commits all
// its mutations or leaves no trace. External value leaves the vault only
// through the Sink, and state that releases funds (claimed flag, zeroed
// donation balance) is always updated before the transfer so a reentrant
// callback observes post-mutation state.
type Engine struct {
	mu      sync.RWMutex
	guard   ReentrancyGuard
	reg     Registry
	book    DonationBook
	fees    FeeAccount
	access  AccessControl
	gate    PauseGate
	vault   Vault
	sink    Sink
	journal domain.EventJournal
	log     zerolog.Logger
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink installs the outbound transfer backend.
func WithSink(s Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithJournal installs the append-only event journal.
func WithJournal(j domain.EventJournal) Option {
	return func(e *Engine) { e.journal = j }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithFeeBps overrides the initial platform fee rate.
func WithFeeBps(bps int64) Option {
	return func(e *Engine) { e.fees.bps = bps }
}

// New constructs an engine owned by the given account.
func New(owner string, log zerolog.Logger, opts ...Option) (*Engine, error) {
	if owner == "" {
		return nil, domain.ErrInvalidAccount
	}
	e := &Engine{
		access: AccessControl{owner: owner},
		fees:   FeeAccount{bps: domain.DefaultFeeBps},
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := domain.ValidateFeeBps(e.fees.bps); err != nil {
		return nil, err
	}
	if e.sink == nil {
		e.sink = SinkFunc(func(ctx context.Context, account string, amount domain.Amount) error {
			log.Info().Str("account", account).Str("amount", amount.String()).Msg("payout")
			return nil
		})
	}
	return e, nil
}

// CreateCampaign validates and stores a new campaign. Gated by pause.
func (e *Engine) CreateCampaign(ctx context.Context, caller string, in CreateInput) (domain.Campaign, error) {
	if caller == "" {
		return domain.Campaign{}, domain.ErrInvalidAccount
	}
	e.mu.Lock()
	if err := e.gate.RequireRunning(); err != nil {
		e.mu.Unlock()
		return domain.Campaign{}, err
	}
	c, err := e.reg.Create(in, caller, e.now())
	e.mu.Unlock()
	if err != nil {
		return domain.Campaign{}, err
	}
	e.emit(ctx, domain.Event{
		Type:       domain.EventCampaignCreated,
		CampaignID: c.ID,
		Account:    caller,
		Campaign:   &c,
	})
	return c, nil
}

// Donate credits amount to the donor's balance on an active campaign.
// Gated by pause and by the reentrancy guard.
func (e *Engine) Donate(ctx context.Context, caller string, campaignID int64, amount domain.Amount) (domain.Campaign, error) {
	release, err := e.guard.Enter()
	if err != nil {
		return domain.Campaign{}, err
	}
	defer release()

	if caller == "" {
		return domain.Campaign{}, domain.ErrInvalidAccount
	}
	e.mu.Lock()
	c, err := e.donateLocked(caller, campaignID, amount)
	e.mu.Unlock()
	if err != nil {
		return domain.Campaign{}, err
	}
	e.emit(ctx, domain.Event{
		Type:       domain.EventDonationReceived,
		CampaignID: campaignID,
		Account:    caller,
		Amount:     amount,
	})
	return c, nil
}

func (e *Engine) donateLocked(caller string, campaignID int64, amount domain.Amount) (domain.Campaign, error) {
	if err := e.gate.RequireRunning(); err != nil {
		return domain.Campaign{}, err
	}
	c, err := e.reg.Get(campaignID)
	if err != nil {
		return domain.Campaign{}, err
	}
	switch {
	case amount < domain.MinimumDonation:
		return domain.Campaign{}, domain.ErrDonationTooSmall
	case caller == c.Creator:
		return domain.Campaign{}, domain.ErrSelfDonation
	case c.IsCancelled:
		return domain.Campaign{}, domain.ErrCampaignCancelled
	case c.Ended(e.now()):
		return domain.Campaign{}, domain.ErrCampaignExpired
	}
	// All overflow checks run before any mutation commits.
	if _, err := e.book.BalanceOf(campaignID, caller).Add(amount); err != nil {
		return domain.Campaign{}, err
	}
	if _, err := c.RaisedAmount.Add(amount); err != nil {
		return domain.Campaign{}, err
	}
	if _, err := e.vault.Balance().Add(amount); err != nil {
		return domain.Campaign{}, err
	}
	if err := e.book.Credit(campaignID, caller, amount); err != nil {
		return domain.Campaign{}, err
	}
	if err := e.reg.AddRaised(campaignID, amount); err != nil {
		return domain.Campaign{}, err
	}
	if err := e.vault.Deposit(amount); err != nil {
		return domain.Campaign{}, err
	}
	return e.reg.Get(campaignID)
}

// CancelCampaign marks a still-running campaign cancelled; existing
// donations become refundable.
func (e *Engine) CancelCampaign(ctx context.Context, caller string, campaignID int64) (domain.Campaign, error) {
	e.mu.Lock()
	c, err := e.reg.Get(campaignID)
	if err == nil {
		err = e.access.RequireCreator(caller, c)
	}
	if err == nil && c.Ended(e.now()) {
		err = domain.ErrCampaignEnded
	}
	if err == nil && c.IsCancelled {
		err = domain.ErrAlreadyCancelled
	}
	if err == nil {
		err = e.reg.SetCancelled(campaignID)
	}
	if err == nil {
		c, err = e.reg.Get(campaignID)
	}
	e.mu.Unlock()
	if err != nil {
		return domain.Campaign{}, err
	}
	e.emit(ctx, domain.Event{
		Type:       domain.EventCampaignCancelled,
		CampaignID: campaignID,
		Account:    c.Creator,
	})
	return c, nil
}

// ClaimFunds pays the creator of a funded, ended campaign the raised total
// minus the platform fee. Succeeds at most once per campaign.
func (e *Engine) ClaimFunds(ctx context.Context, caller string, campaignID int64) (domain.Amount, error) {
	release, err := e.guard.Enter()
	if err != nil {
		return 0, err
	}
	defer release()

	e.mu.Lock()
	c, err := e.reg.Get(campaignID)
	if err != nil {
		e.mu.Unlock()
		return 0, err
	}
	if err := e.access.RequireCreator(caller, c); err != nil {
		e.mu.Unlock()
		return 0, err
	}
	switch {
	case c.IsCancelled:
		err = domain.ErrCampaignCancelled
	case !c.Ended(e.now()):
		err = domain.ErrStillRunning
	case c.RaisedAmount < c.GoalAmount:
		err = domain.ErrGoalNotReached
	case c.FundsClaimed:
		err = domain.ErrAlreadyClaimed
	}
	if err != nil {
		e.mu.Unlock()
		return 0, err
	}
	fee, net := e.fees.Take(c.RaisedAmount)
	if err := e.reg.SetClaimed(campaignID, true); err != nil {
		e.fees.Refund(fee)
		e.mu.Unlock()
		return 0, err
	}
	if err := e.vault.Withdraw(net); err != nil {
		e.fees.Refund(fee)
		_ = e.reg.SetClaimed(campaignID, false)
		e.mu.Unlock()
		return 0, err
	}
	e.mu.Unlock()

	// Claimed flag and fee are committed before the transfer; undo them
	// field by field if the payout fails.
	if err := e.sink.Transfer(ctx, c.Creator, net); err != nil {
		e.mu.Lock()
		e.fees.Refund(fee)
		_ = e.reg.SetClaimed(campaignID, false)
		_ = e.vault.Deposit(net)
		e.mu.Unlock()
		return 0, fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}
	e.emit(ctx, domain.Event{
		Type:       domain.EventFundsClaimed,
		CampaignID: campaignID,
		Account:    c.Creator,
		Amount:     net,
	})
	return net, nil
}

// ClaimRefund returns a donor's full outstanding balance for a cancelled or
// failed campaign. Repeatable per donor until the balance is zero.
func (e *Engine) ClaimRefund(ctx context.Context, caller string, campaignID int64) (domain.Amount, error) {
	release, err := e.guard.Enter()
	if err != nil {
		return 0, err
	}
	defer release()

	e.mu.Lock()
	c, err := e.reg.Get(campaignID)
	if err != nil {
		e.mu.Unlock()
		return 0, err
	}
	eligible := c.IsCancelled || (c.Ended(e.now()) && c.RaisedAmount < c.GoalAmount)
	if !eligible {
		e.mu.Unlock()
		return 0, domain.ErrRefundNotAllowed
	}
	amount, err := e.book.Debit(campaignID, caller)
	if err != nil {
		e.mu.Unlock()
		return 0, err
	}
	if err := e.reg.AddRaised(campaignID, -amount); err != nil {
		_ = e.book.Credit(campaignID, caller, amount)
		e.mu.Unlock()
		return 0, err
	}
	if err := e.vault.Withdraw(amount); err != nil {
		_ = e.reg.AddRaised(campaignID, amount)
		_ = e.book.Credit(campaignID, caller, amount)
		e.mu.Unlock()
		return 0, err
	}
	e.mu.Unlock()

	// Balance is zeroed before the transfer; a reentrant retry fails the
	// NoDonation precondition even without the guard.
	if err := e.sink.Transfer(ctx, caller, amount); err != nil {
		e.mu.Lock()
		_ = e.book.Credit(campaignID, caller, amount)
		_ = e.reg.AddRaised(campaignID, amount)
		_ = e.vault.Deposit(amount)
		e.mu.Unlock()
		return 0, fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}
	e.emit(ctx, domain.Event{
		Type:       domain.EventRefundProcessed,
		CampaignID: campaignID,
		Account:    caller,
		Amount:     amount,
	})
	return amount, nil
}

// WithdrawFees pays the accrued platform fees to the owner.
func (e *Engine) WithdrawFees(ctx context.Context, caller string) (domain.Amount, error) {
	release, err := e.guard.Enter()
	if err != nil {
		return 0, err
	}
	defer release()

	e.mu.Lock()
	if err := e.access.RequireOwner(caller); err != nil {
		e.mu.Unlock()
		return 0, err
	}
	amount, err := e.fees.Withdraw()
	if err != nil {
		e.mu.Unlock()
		return 0, err
	}
	if err := e.vault.Withdraw(amount); err != nil {
		e.fees.Restore(amount)
		e.mu.Unlock()
		return 0, err
	}
	owner := e.access.Owner()
	e.mu.Unlock()

	if err := e.sink.Transfer(ctx, owner, amount); err != nil {
		e.mu.Lock()
		e.fees.Restore(amount)
		_ = e.vault.Deposit(amount)
		e.mu.Unlock()
		return 0, fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}
	e.emit(ctx, domain.Event{
		Type:    domain.EventFeesWithdrawn,
		Account: owner,
		Amount:  amount,
	})
	return amount, nil
}

// UpdateFeePercent sets the platform fee rate in basis points.
func (e *Engine) UpdateFeePercent(ctx context.Context, caller string, bps int64) error {
	e.mu.Lock()
	err := e.access.RequireOwner(caller)
	if err == nil {
		err = e.fees.SetPercent(bps)
	}
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.emit(ctx, domain.Event{
		Type:    domain.EventFeeUpdated,
		Account: caller,
		FeeBps:  bps,
	})
	return nil
}

// Pause stops campaign creation and donations.
func (e *Engine) Pause(ctx context.Context, caller string) error {
	e.mu.Lock()
	err := e.access.RequireOwner(caller)
	if err == nil {
		err = e.gate.Pause()
	}
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.emit(ctx, domain.Event{Type: domain.EventPaused, Account: caller})
	return nil
}

// Unpause resumes campaign creation and donations.
func (e *Engine) Unpause(ctx context.Context, caller string) error {
	e.mu.Lock()
	err := e.access.RequireOwner(caller)
	if err == nil {
		err = e.gate.Unpause()
	}
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.emit(ctx, domain.Event{Type: domain.EventUnpaused, Account: caller})
	return nil
}

// TransferOwnership hands the owner role to newOwner.
func (e *Engine) TransferOwnership(ctx context.Context, caller, newOwner string) error {
	e.mu.Lock()
	err := e.access.RequireOwner(caller)
	var prev string
	if err == nil {
		prev, err = e.access.Transfer(newOwner)
	}
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.emit(ctx, domain.Event{
		Type:      domain.EventOwnershipTransferred,
		Account:   newOwner,
		PrevOwner: prev,
	})
	return nil
}

// GetCampaign returns a snapshot of one campaign.
func (e *Engine) GetCampaign(campaignID int64) (domain.Campaign, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.reg.Get(campaignID)
}

// AllCampaigns returns a snapshot of every campaign in insertion order.
func (e *Engine) AllCampaigns() []domain.Campaign {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.reg.List()
}

// GetDonation returns the donor's outstanding balance, zero if absent.
func (e *Engine) GetDonation(campaignID int64, donor string) domain.Amount {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.book.BalanceOf(campaignID, donor)
}

// ContractBalance returns the custodied balance: accrued fees plus all
// outstanding donations.
func (e *Engine) ContractBalance() domain.Amount {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vault.Balance()
}

// TotalCampaigns returns the number of campaigns ever created.
func (e *Engine) TotalCampaigns() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.reg.Count()
}

// FeePercent returns the platform fee rate in basis points.
func (e *Engine) FeePercent() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fees.Percent()
}

// AccumulatedFees returns the accrued, not-yet-withdrawn fee balance.
func (e *Engine) AccumulatedFees() domain.Amount {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fees.Accrued()
}

// Paused returns the pause flag.
func (e *Engine) Paused() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gate.Paused()
}

// Owner returns the current owner account.
func (e *Engine) Owner() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.access.Owner()
}

// Now returns the engine's current time; handlers use it to derive status.
func (e *Engine) Now() time.Time { return e.now() }

func (e *Engine) emit(ctx context.Context, evt domain.Event) {
	evt = domain.NewEvent(evt, e.now())
	e.log.Info().
		Str("event", string(evt.Type)).
		Int64("campaign_id", evt.CampaignID).
		Str("account", evt.Account).
		Str("amount", evt.Amount.String()).
		Msg("ledger event")
	if e.journal == nil {
		return
	}
	if err := e.journal.Append(ctx, evt); err != nil {
		e.log.Error().Err(err).Str("event", string(evt.Type)).Msg("journal append failed")
	}
}
