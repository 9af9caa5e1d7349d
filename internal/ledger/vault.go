package ledger

import (
	"context"
	"fmt"

	"github.com/flashfund/server/internal/domain"
)

// Sink receives outbound value transfers to an account. Implementations
// are untrusted: a transfer may fail, or attempt to call back into the
// engine before returning.
type Sink interface {
	Transfer(ctx context.Context, account string, amount domain.Amount) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, account string, amount domain.Amount) error

// Transfer implements Sink.
func (f SinkFunc) Transfer(ctx context.Context, account string, amount domain.Amount) error {
	return f(ctx, account, amount)
}

// Vault tracks the custodied balance. Deposits happen only inside donate;
// every outbound movement is matched by a Withdraw, so the balance always
// equals accrued fees plus outstanding donations.
type Vault struct {
	balance domain.Amount
}

// Deposit adds custodied funds.
func (v *Vault) Deposit(amount domain.Amount) error {
	next, err := v.balance.Add(amount)
	if err != nil {
		return err
	}
	v.balance = next
	return nil
}

// Withdraw removes custodied funds ahead of an outbound transfer.
func (v *Vault) Withdraw(amount domain.Amount) error {
	if amount > v.balance {
		return fmt.Errorf("%w: vault underflow", domain.ErrAmountOverflow)
	}
	v.balance -= amount
	return nil
}

// Balance returns the custodied balance.
func (v *Vault) Balance() domain.Amount { return v.balance }
