package ledger

import "github.com/flashfund/server/internal/domain"

// FeeAccount holds the platform fee configuration and the accumulated,
// not-yet-withdrawn fee balance.
type FeeAccount struct {
	bps     int64
	accrued domain.Amount
}

// Take splits raw into the platform cut and the remainder, accumulating the
// cut.
func (f *FeeAccount) Take(raw domain.Amount) (fee, net domain.Amount) {
	fee, net = domain.SplitFee(raw, f.bps)
	f.accrued += fee
	return fee, net
}

// Refund reverses a previous Take when the associated payout failed.
func (f *FeeAccount) Refund(fee domain.Amount) {
	f.accrued -= fee
}

// SetPercent updates the fee rate in basis points.
func (f *FeeAccount) SetPercent(bps int64) error {
	if err := domain.ValidateFeeBps(bps); err != nil {
		return err
	}
	f.bps = bps
	return nil
}

// Withdraw zeroes and returns the accrued balance.
func (f *FeeAccount) Withdraw() (domain.Amount, error) {
	if f.accrued == 0 {
		return 0, domain.ErrNothingToWithdraw
	}
	amount := f.accrued
	f.accrued = 0
	return amount, nil
}

// Restore reinstates an accrued balance after a failed withdrawal payout.
func (f *FeeAccount) Restore(amount domain.Amount) {
	f.accrued += amount
}

// Percent returns the current fee rate in basis points.
func (f *FeeAccount) Percent() int64 { return f.bps }

// Accrued returns the accumulated fee balance.
func (f *FeeAccount) Accrued() domain.Amount { return f.accrued }
