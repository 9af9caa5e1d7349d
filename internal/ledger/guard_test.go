package ledger

import (
	"errors"
	"testing"

	"github.com/flashfund/server/internal/domain"
)

func TestReentrancyGuard(t *testing.T) {
	var g ReentrancyGuard

	release, err := g.Enter()
	if err != nil {
		t.Fatalf("first Enter returned error: %v", err)
	}
	if _, err := g.Enter(); !errors.Is(err, domain.ErrReentrant) {
		t.Fatalf("nested Enter: got %v want %v", err, domain.ErrReentrant)
	}
	release()
	release2, err := g.Enter()
	if err != nil {
		t.Fatalf("Enter after release returned error: %v", err)
	}
	release2()
}
