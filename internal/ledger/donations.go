package ledger

import "github.com/flashfund/server/internal/domain"

// DonationBook tracks per-campaign, per-donor contributed amounts. Entries
// are created on first credit and reset to zero on debit; balances are
// never negative.
type DonationBook struct {
	balances map[int64]map[string]domain.Amount
}

// Credit adds amount to the donor's balance for the campaign.
func (b *DonationBook) Credit(campaignID int64, donor string, amount domain.Amount) error {
	next, err := b.BalanceOf(campaignID, donor).Add(amount)
	if err != nil {
		return err
	}
	if b.balances == nil {
		b.balances = make(map[int64]map[string]domain.Amount)
	}
	byDonor, ok := b.balances[campaignID]
	if !ok {
		byDonor = make(map[string]domain.Amount)
		b.balances[campaignID] = byDonor
	}
	byDonor[donor] = next
	return nil
}

// Debit returns the donor's balance and resets it to zero.
func (b *DonationBook) Debit(campaignID int64, donor string) (domain.Amount, error) {
	amount := b.BalanceOf(campaignID, donor)
	if amount == 0 {
		return 0, domain.ErrNoDonation
	}
	b.balances[campaignID][donor] = 0
	return amount, nil
}

// BalanceOf returns the donor's current balance, zero if absent.
func (b *DonationBook) BalanceOf(campaignID int64, donor string) domain.Amount {
	return b.balances[campaignID][donor]
}
