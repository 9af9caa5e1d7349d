package ledger

import (
	"strings"

	"github.com/flashfund/server/internal/domain"
)

// AccessControl tracks the ledger owner and gates owner- and
// creator-restricted operations.
type AccessControl struct {
	owner string
}

// RequireOwner fails unless caller is the current owner.
func (a *AccessControl) RequireOwner(caller string) error {
	if caller == "" || caller != a.owner {
		return domain.ErrNotOwner
	}
	return nil
}

// RequireCreator fails unless caller created the campaign.
func (a *AccessControl) RequireCreator(caller string, c domain.Campaign) error {
	if caller == "" || caller != c.Creator {
		return domain.ErrNotCreator
	}
	return nil
}

// Transfer hands ownership to newOwner and returns the previous owner.
func (a *AccessControl) Transfer(newOwner string) (string, error) {
	if strings.TrimSpace(newOwner) == "" {
		return "", domain.ErrInvalidAccount
	}
	prev := a.owner
	a.owner = newOwner
	return prev, nil
}

// Owner returns the current owner account.
func (a *AccessControl) Owner() string { return a.owner }
